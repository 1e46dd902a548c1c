// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/chronologist/internal/history"
)

// addOutputFlags registers the flags shared by the history commands.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "text", "output format: text, json or yaml")
	cmd.Flags().String("category", "", "limit output to one category: events, births or deaths")
}

// writeSet narrows set per --category and writes it per --format.
func writeSet(cmd *cobra.Command, set *history.RecordSet, w io.Writer) error {
	category, _ := cmd.Flags().GetString("category")
	if category != "" {
		k, err := history.ParseKind(category)
		if err != nil {
			return err
		}
		set = set.Only(k)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "", "text":
		history.FormatText(set, w)
		return nil
	case "json":
		return history.FormatJSON(set, w)
	case "yaml":
		return history.FormatYAML(set, w)
	default:
		return fmt.Errorf("unknown format %q: want text, json or yaml", format)
	}
}
