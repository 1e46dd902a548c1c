// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the chronologist CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/chronologist/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE and synced on exit.
var logger = zap.NewNop()

// rootCmd is the base command for the chronologist CLI.
var rootCmd = &cobra.Command{
	Use:   "chronologist",
	Short: "What happened in history on a given day",
	Long: `chronologist fetches the events, births and deaths recorded for a calendar
day, optionally narrowed to a single year, and prints each one as a sentence.

Years are labels as the provider writes them: "1527", or "366 BC" for years
before the common era.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./chronologist.yaml or ~/.config/chronologist/chronologist.yaml)")
	pf.String("base-url", types.DefaultBaseURL, "history provider base URL")
	pf.Duration("timeout", 30*time.Second, "HTTP request timeout")
	pf.Float64("requests-per-second", 0, "throttle provider requests (0 disables)")
	pf.Int("burst", 1, "request burst allowed by the throttle")
	pf.BoolP("verbose", "v", false, "debug logging")

	for key, flag := range map[string]string{
		"base_url":            "base-url",
		"timeout":             "timeout",
		"requests_per_second": "requests-per-second",
		"burst":               "burst",
		"verbose":             "verbose",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chronologist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chronologist"))
		}
	}

	viper.SetEnvPrefix("CHRONOLOGIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// providerConfig assembles the provider settings from flags, environment
// and config file.
func providerConfig() types.ProviderConfig {
	return types.ProviderConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: "chronologist/" + version,
		},
		BaseURL:           viper.GetString("base_url"),
		RequestsPerSecond: viper.GetFloat64("requests_per_second"),
		Burst:             viper.GetInt("burst"),
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
