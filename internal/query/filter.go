package query

import (
	"strings"

	"example.com/studylog/internal/domain"
)

// Options parameterizes the engine: which dimensions get exact-match
// selectors and which fields the free-text search scans. The two legacy
// listing views were near-duplicate implementations of the same feature;
// they survive here as two configurations of one engine.
type Options struct {
	FilterFields []string
	SearchFields []string
}

// DefaultOptions is the full listing: filter on type and area, search over
// title, subject, and topic.
func DefaultOptions() Options {
	return Options{
		FilterFields: []string{domain.FieldType, domain.FieldArea},
		SearchFields: []string{domain.FieldTitle, domain.FieldSubject, domain.FieldTopic},
	}
}

// CompactOptions is the reduced listing: filter on type only, search over
// identifier and title.
func CompactOptions() Options {
	return Options{
		FilterFields: []string{domain.FieldType},
		SearchFields: []string{domain.FieldID, domain.FieldTitle},
	}
}

// FilterState holds the user's active filters. It is transient, process
// local, and survives collection refreshes untouched.
type FilterState struct {
	Selections map[string]string
	Query      string
}

// NewFilterState returns an all-clear state.
func NewFilterState() FilterState {
	return FilterState{Selections: make(map[string]string)}
}

// Active reports whether any predicate would apply under the given options.
func (f FilterState) Active(opts Options) bool {
	if strings.TrimSpace(f.Query) != "" {
		return true
	}
	for _, dim := range opts.FilterFields {
		if f.Selections[dim] != "" {
			return true
		}
	}
	return false
}

// ApplyFilters narrows the collection to records matching every active
// predicate: one exact-match check per selected dimension, AND one
// case-insensitive substring search across the configured fields. An empty
// selection means "match everything", not "match empty". When nothing is
// active the input slice itself is returned, unchanged.
func ApplyFilters(records []domain.Activity, state FilterState, opts Options) []domain.Activity {
	if !state.Active(opts) {
		return records
	}

	query := strings.ToLower(strings.TrimSpace(state.Query))

	out := make([]domain.Activity, 0, len(records))
	for _, record := range records {
		if !matchesSelections(record, state, opts) {
			continue
		}
		if query != "" && !matchesQuery(record, query, opts) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesSelections(record domain.Activity, state FilterState, opts Options) bool {
	for _, dim := range opts.FilterFields {
		want := state.Selections[dim]
		if want == "" {
			continue
		}
		if record.Field(dim) != want {
			return false
		}
	}
	return true
}

func matchesQuery(record domain.Activity, loweredQuery string, opts Options) bool {
	for _, field := range opts.SearchFields {
		value := record.Field(field)
		if value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(value), loweredQuery) {
			return true
		}
	}
	return false
}
