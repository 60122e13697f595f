package query

import (
	"testing"

	"example.com/studylog/internal/domain"
)

func TestAggregateDetailExamShape(t *testing.T) {
	record := domain.Activity{
		ID:    7,
		Title: "Simulado CESPE",
		Type:  "simulado", // type tag match is case-insensitive
		Details: []domain.DetailEntry{
			{SubID: "7.1", Area: "Direito", Subject: "should vanish", Topic: "should vanish", Questions: "40", Correct: "28"},
			{SubID: "7.2", Area: "Português", Questions: "0", Correct: "0"},
		},
	}

	detail := AggregateDetail(record)
	if detail.Shape != ShapeExam {
		t.Fatalf("expected exam shape, got %q", detail.Shape)
	}
	if len(detail.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(detail.Rows))
	}
	if detail.Rows[0].Subject != "" || detail.Rows[0].Topic != "" {
		t.Fatalf("exam rows must not expose subject/topic: %+v", detail.Rows[0])
	}
	if !detail.Rows[0].Percent.Valid || detail.Rows[0].Percent.Value != 70 {
		t.Fatalf("unexpected percentage %+v", detail.Rows[0].Percent)
	}
	if detail.Rows[1].Percent.Valid {
		t.Fatalf("zero questions must yield the not-applicable sentinel")
	}
}

func TestAggregateDetailExerciseShape(t *testing.T) {
	record := domain.Activity{
		ID:   8,
		Type: "BLOCO DE EXERCICIOS",
		Details: []domain.DetailEntry{
			{SubID: "8.1", Area: "Português", Subject: "Gramática", Topic: "Crase", Questions: "20", Correct: "9"},
		},
	}

	detail := AggregateDetail(record)
	if detail.Shape != ShapeExercise {
		t.Fatalf("expected exercise shape, got %q", detail.Shape)
	}
	row := detail.Rows[0]
	if row.Subject != "Gramática" || row.Topic != "Crase" {
		t.Fatalf("exercise row lost subject/topic: %+v", row)
	}
	if row.Percent.Value != 45 || row.Percent.Band() != domain.BandLow {
		t.Fatalf("unexpected metric %+v band %q", row.Percent, row.Percent.Band())
	}
}

func TestAggregateDetailNoResults(t *testing.T) {
	detail := AggregateDetail(domain.Activity{ID: 9, Type: "SIMULADO"})
	if detail.Rows == nil {
		t.Fatalf("rows must be an empty slice, not nil")
	}
	if len(detail.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(detail.Rows))
	}
}
