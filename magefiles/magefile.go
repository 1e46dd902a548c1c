//go:build mage

// Package main contains Mage build targets for chronologist developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "chronologist"
	cmdPkg  = "./cmd/chronologist"
)

// Default is the target run by a bare `mage`.
var Default = Build

// Build compiles the CLI binary into bin/, stamping the version from
// $CHRONOLOGIST_VERSION when set.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	args := []string{"build", "-o", out}
	if v := os.Getenv("CHRONOLOGIST_VERSION"); v != "" {
		args = append(args, "-ldflags", "-X main.version="+v)
	}
	args = append(args, cmdPkg)
	if err := sh.RunV("go", args...); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Test vets and then runs the test suite with the race detector.
func Test() error {
	mg.Deps(Vet)
	return sh.RunV("go", "test", "-race", "./...")
}

// Stats prints non-blank Go lines per package, split into production and test.
func Stats() error {
	prod, test, err := countGoLines(".")
	if err != nil {
		return err
	}
	pkgs := make([]string, 0, len(prod))
	for p := range prod {
		pkgs = append(pkgs, p)
	}
	for p := range test {
		if _, ok := prod[p]; !ok {
			pkgs = append(pkgs, p)
		}
	}
	sort.Strings(pkgs)

	var totalProd, totalTest int
	fmt.Printf("%-30s  %8s  %8s\n", "Package", "Prod", "Test")
	for _, p := range pkgs {
		fmt.Printf("%-30s  %8d  %8d\n", p, prod[p], test[p])
		totalProd += prod[p]
		totalTest += test[p]
	}
	fmt.Printf("%-30s  %8d  %8d\n", "total", totalProd, totalTest)
	return nil
}

// countGoLines walks root and counts non-blank Go lines per directory,
// skipping hidden and underscore-prefixed directories.
func countGoLines(root string) (prod, test map[string]int, err error) {
	prod, test = map[string]int{}, map[string]int{}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		n := 0
		for _, line := range strings.Split(string(data), "\n") {
			if strings.TrimSpace(line) != "" {
				n++
			}
		}
		dir := filepath.Dir(path)
		if strings.HasSuffix(path, "_test.go") {
			test[dir] += n
		} else {
			prod[dir] += n
		}
		return nil
	})
	return prod, test, err
}
