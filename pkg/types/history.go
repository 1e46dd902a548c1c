// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the wire and configuration structures shared by the
// chronologist packages.
package types

import "encoding/json"

// DayPayload is the JSON document the history provider returns for one
// calendar day.
type DayPayload struct {
	// Date is the provider's label for the day (e.g. "February 4").
	Date string `json:"date" yaml:"date"`

	// URL points at the provider's source page for the day.
	URL string `json:"url" yaml:"url"`

	Data DayData `json:"data" yaml:"data"`
}

// DayData partitions the day's entries by category. The capitalized keys
// follow the provider's format.
type DayData struct {
	Events []RawEntry `json:"Events" yaml:"events"`
	Births []RawEntry `json:"Births" yaml:"births"`
	Deaths []RawEntry `json:"Deaths" yaml:"deaths"`
}

// UnmarshalJSON decodes each category one record at a time. A record that
// does not decode as a RawEntry is kept as a zero RawEntry, which has no
// usable year and is dropped when the category is built.
func (d *DayData) UnmarshalJSON(data []byte) error {
	var raw struct {
		Events []json.RawMessage `json:"Events"`
		Births []json.RawMessage `json:"Births"`
		Deaths []json.RawMessage `json:"Deaths"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Events = decodeEntries(raw.Events)
	d.Births = decodeEntries(raw.Births)
	d.Deaths = decodeEntries(raw.Deaths)
	return nil
}

func decodeEntries(msgs []json.RawMessage) []RawEntry {
	if msgs == nil {
		return nil
	}
	entries := make([]RawEntry, len(msgs))
	for i, m := range msgs {
		if err := json.Unmarshal(m, &entries[i]); err != nil {
			entries[i] = RawEntry{}
		}
	}
	return entries
}

// RawEntry is one undecoded record. Year is the provider's label verbatim
// ("1527", "366 BC"); an absent year decodes to "".
type RawEntry struct {
	Year  string    `json:"year" yaml:"year"`
	Text  string    `json:"text" yaml:"text"`
	Links []RawLink `json:"links" yaml:"links"`
}

// RawLink is a reference attached to a RawEntry.
type RawLink struct {
	Title string `json:"title" yaml:"title"`
	Link  string `json:"link" yaml:"link"`
}
