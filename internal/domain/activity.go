// Package domain defines the study-activity model and business logic for studylog.
package domain

import (
	"strconv"
	"strings"
)

// Known activity type tags. The set is open: records fetched from the legacy
// source may carry tags outside this list and are handled like any other.
const (
	TypeSimulado   = "SIMULADO"
	TypeLista      = "LISTA"
	TypeRevisao    = "REVISAO"
	TypeExercicios = "EXERCICIOS"
	TypeLeitura    = "LEITURA"
	TypeVideoAula  = "VIDEO_AULA"
)

// Field names resolvable through Activity.Field. Query code must use these
// constants instead of literals so a typo fails visibly at compile time
// rather than silently matching nothing.
const (
	FieldID          = "id"
	FieldSecondaryID = "secondary_id"
	FieldTitle       = "title"
	FieldType        = "type"
	FieldArea        = "area"
	FieldSubject     = "subject"
	FieldTopic       = "topic"
	FieldQuestions   = "questions"
	FieldCorrect     = "correct"
	FieldElapsed     = "elapsed"
	FieldComment     = "comment"
	FieldExecutedAt  = "executed_at"
	FieldIncludedAt  = "included_at"
)

// Activity is one logged unit of study work as served to the listing view.
//
// Everything beyond the identifier is raw localized text, the shape the
// spreadsheet-era source supplies: counts are digit strings, dates are
// dd/mm/yyyy. Optional attributes are empty strings when the record's schema
// version does not carry them; typed interpretation is the query engine's job.
type Activity struct {
	ID          int
	Title       string
	Type        string
	SecondaryID string
	Area        string
	Subject     string
	Topic       string
	Questions   string
	Correct     string
	Elapsed     string
	Comment     string
	ExecutedAt  string
	IncludedAt  string
	Details     []DetailEntry
}

// DetailEntry is one constituent result nested inside an activity: a single
// exam section or exercise block. Subject and Topic are populated only for
// the exercise-block variant.
type DetailEntry struct {
	SubID      string
	Area       string
	Subject    string
	Topic      string
	Questions  string
	Correct    string
	Elapsed    string
	Comment    string
	ExecutedAt string
	IncludedAt string
}

// Field resolves a named field to its text value. Absent attributes and
// unknown names yield "": missing data is a valid, common state for records
// coming from partial schema versions and must never be an error.
func (a Activity) Field(name string) string {
	switch name {
	case FieldID:
		return strconv.Itoa(a.ID)
	case FieldSecondaryID:
		return a.SecondaryID
	case FieldTitle:
		return a.Title
	case FieldType:
		return a.Type
	case FieldArea:
		return a.Area
	case FieldSubject:
		return a.Subject
	case FieldTopic:
		return a.Topic
	case FieldQuestions:
		return a.Questions
	case FieldCorrect:
		return a.Correct
	case FieldElapsed:
		return a.Elapsed
	case FieldComment:
		return a.Comment
	case FieldExecutedAt:
		return a.ExecutedAt
	case FieldIncludedAt:
		return a.IncludedAt
	default:
		return ""
	}
}

// IsExamType reports whether a type tag denotes a full exam attempt. Legacy
// records carry "Simulado", the creation form writes "SIMULADO"; both count.
func IsExamType(tag string) bool {
	return strings.EqualFold(strings.TrimSpace(tag), TypeSimulado)
}
