package query

import (
	"slices"

	"example.com/studylog/internal/domain"
)

// Direction of a sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec names the active sort column and its direction.
type SortSpec struct {
	Field     string
	Direction Direction
}

// DefaultSort is the listing's initial ordering: most recently executed
// first.
func DefaultSort() SortSpec {
	return SortSpec{Field: domain.FieldExecutedAt, Direction: Descending}
}

// Toggle returns the spec that results from the user clicking the header of
// the given field: same field flips direction, a new field starts ascending.
func (s SortSpec) Toggle(field string) SortSpec {
	if s.Field == field && s.Direction == Ascending {
		return SortSpec{Field: field, Direction: Descending}
	}
	return SortSpec{Field: field, Direction: Ascending}
}

// ApplySort returns a new ordering of the collection under the spec. The
// input slice is never reordered. The sort is stable: records with equal
// sort keys keep their relative input order in both directions, because
// descending only inverts the comparator's sign and a tie stays a tie.
func ApplySort(records []domain.Activity, spec SortSpec) []domain.Activity {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b domain.Activity) int {
		c := Compare(spec.Field, a.Field(spec.Field), b.Field(spec.Field))
		if spec.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}
