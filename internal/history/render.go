// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxRenderedLength is the rune limit of a rendered entry, ellipsis included.
const MaxRenderedLength = 320

const ellipsis = "..."

// Kind selects how an entry is rendered.
type Kind int

const (
	Event Kind = iota
	Birth
	Death
)

// String returns the category name used in output and in the provider payload.
func (k Kind) String() string {
	switch k {
	case Event:
		return "events"
	case Birth:
		return "births"
	case Death:
		return "deaths"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a category name ("events", "births", "deaths") to its Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "events", "event":
		return Event, nil
	case "births", "birth":
		return Birth, nil
	case "deaths", "death":
		return Death, nil
	}
	return 0, fmt.Errorf("unknown category %q: want events, births or deaths", name)
}

// The provider's text uses Unicode spacing (no-break spaces, line
// separators), so \s alone is not enough.
const space = `[\s\p{Z}\v\x{85}]`

var (
	whitespaceRun = regexp.MustCompile(space + `+`)
	// lifeYear matches an embedded " (b. 1555)" or " (d. 1555)" annotation.
	lifeYear = regexp.MustCompile(`(` + space + `\([bd]\.` + space + `([\p{L}\p{N}_]*?)\))`)
)

// Render turns a year label and raw text into the display sentence for k.
func (k Kind) Render(year, text string) string {
	switch k {
	case Birth:
		return renderBirth(year, text)
	case Death:
		return renderDeath(year, text)
	default:
		return renderEvent(year, text)
	}
}

func renderEvent(year, text string) string {
	text = collapseSpace(text)
	return truncate(fmt.Sprintf("Year %s: %s", year, text), MaxRenderedLength)
}

func renderBirth(year, text string) string {
	text = collapseSpace(text)
	var msg string
	if lifeYear.MatchString(text) {
		msg = lifeYear.ReplaceAllString(text, " was born in "+escapeTemplate(year)+" this date (died in ${2})")
	} else {
		msg = text + " was born in " + year + " this date"
	}
	return truncate(strings.TrimSpace(msg), MaxRenderedLength)
}

// renderDeath expects the birth-year annotation. Without one the text is
// returned collapsed but otherwise unchanged.
func renderDeath(year, text string) string {
	text = collapseSpace(text)
	msg := lifeYear.ReplaceAllString(text, " died in "+escapeTemplate(year)+" this date (born in ${2})")
	return truncate(strings.TrimSpace(msg), MaxRenderedLength)
}

func collapseSpace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// escapeTemplate protects literal text spliced into a regexp replacement.
func escapeTemplate(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}

// truncate cuts s to at most limit runes, ending with an ellipsis when cut.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-len(ellipsis)]) + ellipsis
}
