// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/chronologist/internal/provider"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show what happened on today's date",
	Long: `Today fetches the provider's entries for the current day and prints
every event, birth and death as a sentence.`,
	Args: cobra.NoArgs,
	RunE: runToday,
}

func init() {
	addOutputFlags(todayCmd)
	rootCmd.AddCommand(todayCmd)
}

func runToday(cmd *cobra.Command, args []string) error {
	client := provider.New(providerConfig(), logger)
	set, err := client.Today(cmd.Context())
	if err != nil {
		return err
	}
	return writeSet(cmd, set, cmd.OutOrStdout())
}
