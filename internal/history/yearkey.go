// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history organizes a day's historical records into key-sorted
// categories, answers exact-year lookups over them, and renders each record
// as a sentence.
package history

import (
	"strconv"
	"strings"
)

// YearToInt converts a year label to a signed year: "1234" is 1234 and
// "1234 BC" is -1234. Otherwise, a label whose first whitespace-delimited
// token is an integer is read as BC. The second result is false when the label
// cannot be converted.
func YearToInt(label string) (int, bool) {
	if n, err := strconv.Atoi(strings.TrimSpace(label)); err == nil {
		return n, true
	}
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, false
	}
	return -n, true
}
