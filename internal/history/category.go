// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/pdiddy/chronologist/pkg/types"
)

var (
	// ErrSearchUnsupported is returned by Search on a category built without a key.
	ErrSearchUnsupported = errors.New("search unsupported: category has no key")

	// ErrIndexOutOfRange is returned by positional access past either end.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Key names the field a category is sorted and searched by, and how that
// field converts to an integer.
type Key struct {
	Field   func(types.RawEntry) string
	Convert func(string) (int, bool)
}

// YearKey sorts and searches entries by their year label.
var YearKey = &Key{
	Field:   func(e types.RawEntry) string { return e.Year },
	Convert: YearToInt,
}

// Category is a read-only ordered collection of one kind of entry. Raw
// records are stored as received and wrapped into Entry values on access.
//
// A keyed category drops records whose key does not convert and assumes
// the rest arrive sorted by non-decreasing key; unsorted input still
// searches, with best-effort results.
type Category struct {
	kind Kind
	raw  []types.RawEntry
	key  *Key
	keys []int
}

// NewCategory builds a category over raw. When key is nil the category is
// not sanitized and cannot be searched.
func NewCategory(kind Kind, raw []types.RawEntry, key *Key) *Category {
	c := &Category{kind: kind, key: key}
	if key == nil {
		c.raw = append([]types.RawEntry(nil), raw...)
		return c
	}
	for _, r := range raw {
		n, ok := key.Convert(key.Field(r))
		if !ok {
			continue
		}
		c.raw = append(c.raw, r)
		c.keys = append(c.keys, n)
	}
	return c
}

// Kind returns the category's render kind.
func (c *Category) Kind() Kind { return c.kind }

// Len returns the number of retained records.
func (c *Category) Len() int { return len(c.raw) }

// At returns the entry at index i. Negative indices count from the end.
func (c *Category) At(i int) (Entry, error) {
	n := len(c.raw)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Entry{}, fmt.Errorf("%s: %w", c.kind, ErrIndexOutOfRange)
	}
	return newEntry(c.kind, c.raw[i]), nil
}

// Slice materializes the entries in [start, stop). Bounds follow sequence
// slicing rules: negative values count from the end and out-of-range values
// are clamped.
func (c *Category) Slice(start, stop int) []Entry {
	start, stop = clampRange(start, stop, len(c.raw))
	out := make([]Entry, 0, stop-start)
	for i := start; i < stop; i++ {
		out = append(out, newEntry(c.kind, c.raw[i]))
	}
	return out
}

// All yields every entry in order. Each call starts over.
func (c *Category) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, r := range c.raw {
			if !yield(newEntry(c.kind, r)) {
				return
			}
		}
	}
}

// Entries materializes the whole category.
func (c *Category) Entries() []Entry {
	return c.Slice(0, len(c.raw))
}

// Search returns a new category holding the contiguous run of records whose
// key label equals term exactly.
//
// Each step bisects the unread suffix for the leftmost key >= the target
// and accepts the record there only if its label is term; the first
// mismatch ends the run. A second run of equal keys separated from the
// first is therefore not reported. A term that does not convert matches
// nothing.
func (c *Category) Search(term string) (*Category, error) {
	if c.key == nil {
		return nil, ErrSearchUnsupported
	}
	found := &Category{kind: c.kind, key: c.key}

	target, ok := c.key.Convert(term)
	if !ok {
		return found, nil
	}

	i := 0
	for i < len(c.raw) {
		i += sort.SearchInts(c.keys[i:], target)
		if i >= len(c.raw) {
			break
		}
		if c.key.Field(c.raw[i]) != term {
			break
		}
		found.raw = append(found.raw, c.raw[i])
		found.keys = append(found.keys, c.keys[i])
		i++
	}
	return found, nil
}

// clampRange normalizes slice bounds against a sequence of length n.
func clampRange(start, stop, n int) (int, int) {
	norm := func(v int) int {
		if v < 0 {
			v += n
			if v < 0 {
				v = 0
			}
		}
		if v > n {
			v = n
		}
		return v
	}
	start, stop = norm(start), norm(stop)
	if stop < start {
		stop = start
	}
	return start, stop
}
