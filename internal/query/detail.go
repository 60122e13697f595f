package query

import "example.com/studylog/internal/domain"

// DetailShape selects which column set the detail view renders.
type DetailShape string

const (
	// ShapeExam: sub-id, area, questions, correct, percentage, elapsed,
	// comment, dates.
	ShapeExam DetailShape = "exam"
	// ShapeExercise adds subject and topic columns.
	ShapeExercise DetailShape = "exercise"
)

// DetailRow is one aggregated sub-record, percentage precomputed.
type DetailRow struct {
	SubID      string
	Area       string
	Subject    string
	Topic      string
	Questions  string
	Correct    string
	Percent    domain.Percent
	Elapsed    string
	Comment    string
	ExecutedAt string
	IncludedAt string
}

// DetailView is the drill-down projection for a single activity.
type DetailView struct {
	ActivityID int
	Title      string
	Type       string
	Shape      DetailShape
	Rows       []DetailRow
}

// AggregateDetail fans one record out into its sub-records, choosing the
// shape from the record's type tag and running every entry through the
// metric calculator. A record with no recorded sub-results yields an empty
// row list, which is a legitimate state and not an error.
func AggregateDetail(record domain.Activity) DetailView {
	shape := ShapeExercise
	if domain.IsExamType(record.Type) {
		shape = ShapeExam
	}

	view := DetailView{
		ActivityID: record.ID,
		Title:      record.Title,
		Type:       record.Type,
		Shape:      shape,
		Rows:       make([]DetailRow, 0, len(record.Details)),
	}

	for _, entry := range record.Details {
		row := DetailRow{
			SubID:      entry.SubID,
			Area:       entry.Area,
			Questions:  entry.Questions,
			Correct:    entry.Correct,
			Percent:    domain.ComputePercent(entry.Correct, entry.Questions),
			Elapsed:    entry.Elapsed,
			Comment:    entry.Comment,
			ExecutedAt: entry.ExecutedAt,
			IncludedAt: entry.IncludedAt,
		}
		if shape == ShapeExercise {
			row.Subject = entry.Subject
			row.Topic = entry.Topic
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
