// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"iter"

	"github.com/pdiddy/chronologist/pkg/types"
)

// RecordSet is one day's events, births and deaths viewed as a single
// sequence: events first, then births, then deaths.
type RecordSet struct {
	Date string
	URL  string

	Events *Category
	Births *Category
	Deaths *Category

	raw types.DayPayload
}

// NewRecordSet builds the three year-keyed categories from a provider payload.
func NewRecordSet(p types.DayPayload) *RecordSet {
	return newRecordSet(p,
		NewCategory(Event, p.Data.Events, YearKey),
		NewCategory(Birth, p.Data.Births, YearKey),
		NewCategory(Death, p.Data.Deaths, YearKey),
	)
}

func newRecordSet(p types.DayPayload, events, births, deaths *Category) *RecordSet {
	return &RecordSet{
		Date:   p.Date,
		URL:    p.URL,
		Events: events,
		Births: births,
		Deaths: deaths,
		raw:    p,
	}
}

// Categories returns the categories in sequence order.
func (s *RecordSet) Categories() []*Category {
	return []*Category{s.Events, s.Births, s.Deaths}
}

// Category returns the category of the given kind.
func (s *RecordSet) Category(k Kind) *Category {
	switch k {
	case Birth:
		return s.Births
	case Death:
		return s.Deaths
	default:
		return s.Events
	}
}

// Only returns a set that keeps the category of kind k and empties the others.
func (s *RecordSet) Only(k Kind) *RecordSet {
	cats := make([]*Category, 3)
	for i, c := range s.Categories() {
		if c.Kind() == k {
			cats[i] = c
			continue
		}
		cats[i] = &Category{kind: c.kind, key: c.key}
	}
	return newRecordSet(s.raw, cats[0], cats[1], cats[2])
}

// Payload returns the provider payload the set was built from.
func (s *RecordSet) Payload() types.DayPayload { return s.raw }

// Len returns the total number of entries across all categories.
func (s *RecordSet) Len() int {
	return s.Events.Len() + s.Births.Len() + s.Deaths.Len()
}

// At returns the entry at index i of the flattened sequence. Negative
// indices count back from the last death.
func (s *RecordSet) At(i int) (Entry, error) {
	if i >= 0 {
		for _, c := range s.Categories() {
			if i < c.Len() {
				return c.At(i)
			}
			i -= c.Len()
		}
		return Entry{}, fmt.Errorf("record set: %w", ErrIndexOutOfRange)
	}

	back := -i
	for _, c := range []*Category{s.Deaths, s.Births, s.Events} {
		if back <= c.Len() {
			return c.At(-back)
		}
		back -= c.Len()
	}
	return Entry{}, fmt.Errorf("record set: %w", ErrIndexOutOfRange)
}

// Slice materializes the entries in [start, stop) with the same bound rules
// as Category.Slice.
func (s *RecordSet) Slice(start, stop int) []Entry {
	start, stop = clampRange(start, stop, s.Len())
	out := make([]Entry, 0, stop-start)
	for i := start; i < stop; i++ {
		e, err := s.At(i)
		if err != nil {
			break
		}
		out = append(out, e)
	}
	return out
}

// All yields every entry in sequence order. Each call starts over.
func (s *RecordSet) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, c := range s.Categories() {
			for e := range c.All() {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Entries materializes the whole set.
func (s *RecordSet) Entries() []Entry {
	return s.Slice(0, s.Len())
}

// Search returns a new set with each category narrowed to the entries whose
// year label is term. The receiver is not modified.
func (s *RecordSet) Search(term string) (*RecordSet, error) {
	found := make([]*Category, 0, 3)
	for _, c := range s.Categories() {
		r, err := c.Search(term)
		if err != nil {
			return nil, fmt.Errorf("searching %s for %q: %w", c.Kind(), term, err)
		}
		found = append(found, r)
	}
	return newRecordSet(s.raw, found[0], found[1], found[2]), nil
}
