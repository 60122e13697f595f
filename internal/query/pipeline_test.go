package query

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"example.com/studylog/internal/domain"
)

func TestViewEndToEnd(t *testing.T) {
	records := []domain.Activity{
		{ID: 1, Type: "A", Title: "Math Test", Questions: "10", Correct: "7", ExecutedAt: "01/02/2024"},
		{ID: 2, Type: "B", Title: "Physics", Questions: "10", Correct: "3", ExecutedAt: "05/02/2024"},
	}

	session := NewView(Options{
		FilterFields: []string{domain.FieldType},
		SearchFields: []string{domain.FieldTitle},
	})
	session.Replace(records)

	session.SetFilter(domain.FieldType, "A")
	if diff := cmp.Diff([]int{1}, recordIDs(session.Results())); diff != "" {
		t.Fatalf("filtered result wrong (-want +got):\n%s", diff)
	}
	if session.Total() != 2 {
		t.Fatalf("total must count the unfiltered collection, got %d", session.Total())
	}

	session.ClearFilters()
	session.ToggleSort(domain.FieldExecutedAt)
	session.ToggleSort(domain.FieldExecutedAt)
	if diff := cmp.Diff([]int{2, 1}, recordIDs(session.Results())); diff != "" {
		t.Fatalf("date-descending order wrong (-want +got):\n%s", diff)
	}
}

func TestViewFilterSurvivesReplace(t *testing.T) {
	session := NewView(DefaultOptions())
	session.Replace(sampleRecords())
	session.SetFilter(domain.FieldType, "SIMULADO")

	// A refresh swaps the collection but keeps the user's filter.
	refreshed := append(sampleRecords(), domain.Activity{ID: 4, Type: "SIMULADO", Area: "Direito"})
	session.Replace(refreshed)

	if diff := cmp.Diff([]int{1, 3, 4}, sortedIDs(session.Results())); diff != "" {
		t.Fatalf("filter lost across replace (-want +got):\n%s", diff)
	}
}

func TestViewIgnoresUnconfiguredDimension(t *testing.T) {
	session := NewView(CompactOptions())
	session.Replace(sampleRecords())

	// Area is not a filter dimension in compact mode; setting it is a no-op.
	session.SetFilter(domain.FieldArea, "Direito")
	if got := len(session.Results()); got != 3 {
		t.Fatalf("unconfigured dimension filtered records, got %d", got)
	}
}

func TestViewQueryBeforeFirstFetch(t *testing.T) {
	session := NewView(DefaultOptions())
	if got := session.Results(); len(got) != 0 {
		t.Fatalf("expected empty results, got %d", len(got))
	}
	if session.Total() != 0 {
		t.Fatalf("expected zero total, got %d", session.Total())
	}
	if got := session.FilterValues(domain.FieldType); len(got) != 0 {
		t.Fatalf("expected no filter values, got %v", got)
	}
}

func TestViewResultsIdempotent(t *testing.T) {
	session := NewView(DefaultOptions())
	session.Replace(sampleRecords())
	session.SetFilter(domain.FieldArea, "Português")
	session.ToggleSort(domain.FieldTitle)

	first := recordIDs(session.Results())
	second := recordIDs(session.Results())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated Results diverged (-first +second):\n%s", diff)
	}
}

func TestViewDetailSelection(t *testing.T) {
	session := NewView(DefaultOptions())
	session.Replace(sampleRecords())

	if _, ok := session.SelectedDetail(); ok {
		t.Fatalf("expected no detail selection initially")
	}

	session.SelectRecordForDetail(sampleRecords()[0])
	detail, ok := session.SelectedDetail()
	if !ok {
		t.Fatalf("expected a detail selection")
	}
	if detail.ActivityID != 1 || detail.Shape != ShapeExam {
		t.Fatalf("unexpected detail %+v", detail)
	}

	session.CloseDetail()
	if _, ok := session.SelectedDetail(); ok {
		t.Fatalf("expected detail selection cleared")
	}
}

func sortedIDs(records []domain.Activity) []int {
	ids := recordIDs(records)
	slices.Sort(ids)
	return ids
}
