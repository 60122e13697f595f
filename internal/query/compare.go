// Package query implements the in-memory engine behind the activity listing:
// filtering, multi-type sorting, distinct-value extraction, and the detail
// aggregation for a single record. Everything operates on a collection that
// is fetched wholesale and fits in memory; all functions are pure and never
// fail on malformed field values.
package query

import (
	"strconv"
	"strings"
	"time"

	"example.com/studylog/internal/domain"
)

// integerFields are compared numerically; unparsable values count as zero.
var integerFields = map[string]struct{}{
	domain.FieldID:        {},
	domain.FieldQuestions: {},
	domain.FieldCorrect:   {},
}

// dateFields hold localized dd/mm/yyyy stamps; unparsable values compare as
// the epoch so malformed dates cluster at one end instead of crashing.
var dateFields = map[string]struct{}{
	domain.FieldExecutedAt: {},
	domain.FieldIncludedAt: {},
}

// Compare orders two raw field values according to the field's class and
// reports -1, 0, or 1. Direction is the sort engine's concern: comparators
// stay direction-agnostic so they compose and test independently.
func Compare(field, a, b string) int {
	if _, ok := integerFields[field]; ok {
		return compareInts(parseInt(a), parseInt(b))
	}
	if _, ok := dateFields[field]; ok {
		return parseDate(a).Compare(parseDate(b))
	}
	return strings.Compare(a, b)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func parseInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{domain.TimestampLayout, domain.DateLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}
