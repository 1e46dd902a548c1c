// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import "github.com/pdiddy/chronologist/pkg/types"

// Link is a titled reference attached to an Entry.
type Link struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// Entry is one event, birth or death. Year is the provider's label verbatim
// and is the value search terms are compared against.
type Entry struct {
	Year  string `json:"year" yaml:"year"`
	Text  string `json:"text" yaml:"text"`
	Links []Link `json:"links" yaml:"links"`
	Kind  Kind   `json:"-" yaml:"-"`
}

// newEntry wraps a raw record. Entries are built on access and never cached.
func newEntry(kind Kind, raw types.RawEntry) Entry {
	links := make([]Link, len(raw.Links))
	for i, l := range raw.Links {
		links[i] = Link{Title: l.Title, URL: l.Link}
	}
	return Entry{
		Year:  raw.Year,
		Text:  raw.Text,
		Links: links,
		Kind:  kind,
	}
}

// Render returns the display sentence for the entry.
func (e Entry) Render() string {
	return e.Kind.Render(e.Year, e.Text)
}

// String implements fmt.Stringer.
func (e Entry) String() string {
	return e.Render()
}
