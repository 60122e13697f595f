package query

import "example.com/studylog/internal/domain"

// View is one listing session: the current collection plus the filter, sort,
// and detail-selection state the presentation layer mutates. The derived
// view is never stored; Results recomputes it from scratch on every call,
// which makes recomputation trivially idempotent.
//
// A View is single-writer by design: interactions are applied one at a time
// by whoever owns the session, so it carries no locking of its own.
type View struct {
	opts     Options
	records  []domain.Activity
	filter   FilterState
	sort     SortSpec
	selected *domain.Activity
}

// NewView builds an empty session. It is valid to query a View before the
// first successful fetch; the derived view is simply empty.
func NewView(opts Options) *View {
	return &View{
		opts:   opts,
		filter: NewFilterState(),
		sort:   DefaultSort(),
	}
}

// Replace swaps in a freshly fetched collection wholesale. Filter and sort
// state deliberately survive a refresh; only an explicit clear resets them.
// The View has no notion of collection versions: whatever arrives last is
// the current collection, discarding out-of-order fetches is the caller's
// job.
func (v *View) Replace(records []domain.Activity) {
	v.records = records
}

// SetFilter selects an exact-match value for one filter dimension. Setting
// the empty string deactivates the dimension. Dimensions outside the
// configured set are ignored.
func (v *View) SetFilter(dimension, value string) {
	for _, dim := range v.opts.FilterFields {
		if dim == dimension {
			v.filter.Selections[dimension] = value
			return
		}
	}
}

// SetSearchQuery replaces the free-text query.
func (v *View) SetSearchQuery(text string) {
	v.filter.Query = text
}

// ClearFilters resets every selector and the search query.
func (v *View) ClearFilters() {
	v.filter = NewFilterState()
}

// ToggleSort applies the header-click transition for the given field.
func (v *View) ToggleSort(field string) {
	v.sort = v.sort.Toggle(field)
}

// Sort exposes the active spec, e.g. for rendering header direction markers.
func (v *View) Sort() SortSpec {
	return v.sort
}

// SelectRecordForDetail marks a record as the detail-view subject.
func (v *View) SelectRecordForDetail(record domain.Activity) {
	v.selected = &record
}

// CloseDetail drops the detail selection.
func (v *View) CloseDetail() {
	v.selected = nil
}

// SelectedDetail aggregates the currently selected record, if any.
func (v *View) SelectedDetail() (DetailView, bool) {
	if v.selected == nil {
		return DetailView{}, false
	}
	return AggregateDetail(*v.selected), true
}

// Results runs the pipeline: filter, then sort. With everything cleared and
// the default sort untouched by ties, equal inputs always produce identical
// output ordering.
func (v *View) Results() []domain.Activity {
	return ApplySort(ApplyFilters(v.records, v.filter, v.opts), v.sort)
}

// Total is the size of the unfiltered collection, for the "N of M" counter.
func (v *View) Total() int {
	return len(v.records)
}

// FilterValues lists the distinct options for one filter dimension, derived
// from the source collection (not the filtered result, so choosing a type
// never empties the area dropdown).
func (v *View) FilterValues(dimension string) []string {
	return Distinct(v.records, dimension)
}
