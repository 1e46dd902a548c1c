// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chronologist/internal/history"
	"github.com/pdiddy/chronologist/internal/provider"
)

var dateCmd = &cobra.Command{
	Use:   "date MONTH DAY [YEAR]",
	Short: "Show what happened on a calendar day, optionally in one year",
	Long: `Date fetches the entries recorded for MONTH/DAY. With YEAR only the
entries whose year label matches exactly are printed; quote labels with
spaces, e.g. "25 BC".`,
	Example: `  chronologist date 2 4
  chronologist date 2 4 1527
  chronologist date 2 4 "366 BC" --format json`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runDate,
}

func init() {
	addOutputFlags(dateCmd)
	rootCmd.AddCommand(dateCmd)
}

// dateArgs holds the parsed positional arguments of the date command.
type dateArgs struct {
	Month int
	Day   int
	Year  string
}

func parseDateArgs(args []string) (dateArgs, error) {
	var d dateArgs
	month, err := strconv.Atoi(args[0])
	if err != nil {
		return d, fmt.Errorf("month %q is not a number", args[0])
	}
	day, err := strconv.Atoi(args[1])
	if err != nil {
		return d, fmt.Errorf("day %q is not a number", args[1])
	}
	d.Month, d.Day = month, day
	if len(args) == 3 {
		d.Year = strings.TrimSpace(args[2])
	}
	return d, nil
}

func runDate(cmd *cobra.Command, args []string) error {
	d, err := parseDateArgs(args)
	if err != nil {
		return err
	}

	client := provider.New(providerConfig(), logger)
	var set *history.RecordSet
	if d.Year == "" {
		set, err = client.Date(cmd.Context(), d.Month, d.Day)
	} else {
		set, err = client.DateInYear(cmd.Context(), d.Month, d.Day, d.Year)
	}
	if err != nil {
		return err
	}
	return writeSet(cmd, set, cmd.OutOrStdout())
}
