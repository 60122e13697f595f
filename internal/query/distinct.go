package query

import "example.com/studylog/internal/domain"

// Distinct returns the unique non-empty values of a field across the
// collection, in first-seen order. The listing's filter dropdowns are built
// from this, so the order reflects data recency rather than alphabet. The
// result must be recomputed after every wholesale refresh: the set can
// shrink as well as grow.
func Distinct(records []domain.Activity, field string) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, record := range records {
		value := record.Field(field)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
