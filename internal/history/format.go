// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// NothingFound is the message shown for an empty result.
const NothingFound = "Nothing special found in history for this date"

// Document is the serialized form of a RecordSet.
type Document struct {
	Date   string          `json:"date" yaml:"date"`
	URL    string          `json:"url" yaml:"url"`
	Events []DocumentEntry `json:"events" yaml:"events"`
	Births []DocumentEntry `json:"births" yaml:"births"`
	Deaths []DocumentEntry `json:"deaths" yaml:"deaths"`
}

// DocumentEntry is an Entry with its rendered sentence.
type DocumentEntry struct {
	Entry    `yaml:",inline"`
	Rendered string `json:"rendered" yaml:"rendered"`
}

// NewDocument snapshots s for serialization.
func NewDocument(s *RecordSet) Document {
	conv := func(c *Category) []DocumentEntry {
		out := make([]DocumentEntry, 0, c.Len())
		for e := range c.All() {
			out = append(out, DocumentEntry{Entry: e, Rendered: e.Render()})
		}
		return out
	}
	return Document{
		Date:   s.Date,
		URL:    s.URL,
		Events: conv(s.Events),
		Births: conv(s.Births),
		Deaths: conv(s.Deaths),
	}
}

// Messages returns the rendered sentence of every entry, in sequence order.
func Messages(s *RecordSet) []string {
	out := make([]string, 0, s.Len())
	for e := range s.All() {
		out = append(out, e.Render())
	}
	return out
}

// FormatText writes one rendered sentence per line followed by a count.
func FormatText(s *RecordSet, w io.Writer) {
	if s.Len() == 0 {
		fmt.Fprintln(w, NothingFound)
		return
	}
	for e := range s.All() {
		fmt.Fprintln(w, e.Render())
	}
	fmt.Fprintf(w, "\n%d entries (%s)\n", s.Len(), s.Date)
}

// FormatJSON writes s as indented JSON.
func FormatJSON(s *RecordSet, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(s))
}

// FormatYAML writes s as YAML.
func FormatYAML(s *RecordSet, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(s)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
