package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"example.com/studylog/internal/domain"
)

func sampleRecords() []domain.Activity {
	return []domain.Activity{
		{ID: 1, Title: "Simulado CESPE", Type: "SIMULADO", Area: "Direito", ExecutedAt: "10/01/2026"},
		{ID: 2, Title: "Bloco de Português", Type: "BLOCO DE EXERCICIOS", Area: "Português", Subject: "Gramática", Topic: "Crase", ExecutedAt: "12/01/2026"},
		{ID: 3, Title: "Simulado FGV", Type: "SIMULADO", Area: "Português", ExecutedAt: "11/01/2026"},
	}
}

func TestApplyFiltersIdentityWhenClear(t *testing.T) {
	records := sampleRecords()
	state := NewFilterState()

	got := ApplyFilters(records, state, DefaultOptions())
	if len(got) != len(records) {
		t.Fatalf("expected all %d records, got %d", len(records), len(got))
	}
	// The all-clear state returns the input slice itself, not a copy.
	if &got[0] != &records[0] {
		t.Fatalf("expected the input slice back, got a copy")
	}

	// Whitespace-only search is still all-clear.
	state.Query = "   "
	got = ApplyFilters(records, state, DefaultOptions())
	if &got[0] != &records[0] {
		t.Fatalf("expected whitespace query to count as inactive")
	}
}

func TestApplyFiltersExactSelection(t *testing.T) {
	state := NewFilterState()
	state.Selections[domain.FieldType] = "SIMULADO"

	got := ApplyFilters(sampleRecords(), state, DefaultOptions())
	want := []int{1, 3}
	ids := recordIDs(got)
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}

	// Selection is exact, not substring.
	state.Selections[domain.FieldType] = "SIMUL"
	if got := ApplyFilters(sampleRecords(), state, DefaultOptions()); len(got) != 0 {
		t.Fatalf("partial selection value must not match, got %d records", len(got))
	}
}

func TestApplyFiltersSelectionsCombineWithAnd(t *testing.T) {
	state := NewFilterState()
	state.Selections[domain.FieldType] = "SIMULADO"
	state.Selections[domain.FieldArea] = "Português"

	ids := recordIDs(ApplyFilters(sampleRecords(), state, DefaultOptions()))
	if diff := cmp.Diff([]int{3}, ids); diff != "" {
		t.Fatalf("unexpected intersection (-want +got):\n%s", diff)
	}
}

func TestApplyFiltersSearchIsCaseInsensitiveSubstring(t *testing.T) {
	state := NewFilterState()
	state.Query = "cespe"

	ids := recordIDs(ApplyFilters(sampleRecords(), state, DefaultOptions()))
	if diff := cmp.Diff([]int{1}, ids); diff != "" {
		t.Fatalf("unexpected search result (-want +got):\n%s", diff)
	}

	// Matches any configured search field, here the topic.
	state.Query = "CRASE"
	ids = recordIDs(ApplyFilters(sampleRecords(), state, DefaultOptions()))
	if diff := cmp.Diff([]int{2}, ids); diff != "" {
		t.Fatalf("unexpected topic match (-want +got):\n%s", diff)
	}
}

func TestApplyFiltersRespectsConfiguredSearchFields(t *testing.T) {
	// The compact configuration searches id and title only, so a topic
	// match from the full configuration finds nothing here.
	state := NewFilterState()
	state.Query = "crase"
	if got := ApplyFilters(sampleRecords(), state, CompactOptions()); len(got) != 0 {
		t.Fatalf("topic must not be searched in compact mode, got %d records", len(got))
	}

	state.Query = "2"
	ids := recordIDs(ApplyFilters(sampleRecords(), state, CompactOptions()))
	if diff := cmp.Diff([]int{2}, ids); diff != "" {
		t.Fatalf("unexpected id search (-want +got):\n%s", diff)
	}
}

func TestApplyFiltersSelectionAndSearchCombine(t *testing.T) {
	state := NewFilterState()
	state.Selections[domain.FieldType] = "SIMULADO"
	state.Query = "fgv"

	ids := recordIDs(ApplyFilters(sampleRecords(), state, DefaultOptions()))
	if diff := cmp.Diff([]int{3}, ids); diff != "" {
		t.Fatalf("unexpected combined result (-want +got):\n%s", diff)
	}
}

func recordIDs(records []domain.Activity) []int {
	out := make([]int, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
