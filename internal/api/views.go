package api

import (
	"encoding/json"
	"net/http"

	"example.com/studylog/internal/domain"
	"example.com/studylog/internal/query"
)

// CreateActivityRequest is the payload for POST /v1/activities, mirroring
// the legacy creation form.
type CreateActivityRequest struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Elapsed string `json:"elapsed"`
	Comment string `json:"comment"`
}

// CreateActivityResponse describes the response body for create.
type CreateActivityResponse struct {
	ActivityID int    `json:"activity_id"`
	IncludedAt string `json:"included_at"`
}

// AddResultRequest is the payload for POST /v1/activities/{id}/results.
// Subject and topic apply only to exercise-block activities and are ignored
// for exams.
type AddResultRequest struct {
	Area       string `json:"area"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	Questions  string `json:"questions"`
	Correct    string `json:"correct"`
	Elapsed    string `json:"elapsed"`
	Comment    string `json:"comment"`
	ExecutedAt string `json:"executed_at"`
}

// AddResultResponse echoes the stored sub-record with its derived metric.
type AddResultResponse struct {
	ActivityID int      `json:"activity_id"`
	Area       string   `json:"area"`
	Percentage *float64 `json:"percentage"`
	Band       string   `json:"band,omitempty"`
}

// ActivityView is one listing row: raw record fields plus the derived
// percentage and band. Percentage is null when not applicable, which is
// distinct from 0.
type ActivityView struct {
	ActivityID  int      `json:"activity_id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	SecondaryID string   `json:"secondary_id,omitempty"`
	Area        string   `json:"area,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	Questions   string   `json:"questions,omitempty"`
	Correct     string   `json:"correct,omitempty"`
	Percentage  *float64 `json:"percentage"`
	Band        string   `json:"band,omitempty"`
	Elapsed     string   `json:"elapsed,omitempty"`
	Comment     string   `json:"comment,omitempty"`
	ExecutedAt  string   `json:"executed_at,omitempty"`
	IncludedAt  string   `json:"included_at,omitempty"`
}

// SortView reports the ordering the listing was produced under.
type SortView struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// FilterOptionsView carries the distinct value sets for the filter
// dropdowns, in first-seen order.
type FilterOptionsView struct {
	Types []string `json:"types"`
	Areas []string `json:"areas,omitempty"`
}

// ListActivitiesResponse packages list results with the "N of M" counts.
type ListActivitiesResponse struct {
	Items    []ActivityView    `json:"items"`
	Filtered int               `json:"filtered"`
	Total    int               `json:"total"`
	Sort     SortView          `json:"sort"`
	Filters  FilterOptionsView `json:"filters"`
}

// DetailRowView is one sub-record in the detail projection.
type DetailRowView struct {
	SubID      string   `json:"sub_id"`
	Area       string   `json:"area"`
	Subject    string   `json:"subject,omitempty"`
	Topic      string   `json:"topic,omitempty"`
	Questions  string   `json:"questions"`
	Correct    string   `json:"correct"`
	Percentage *float64 `json:"percentage"`
	Band       string   `json:"band,omitempty"`
	Elapsed    string   `json:"elapsed,omitempty"`
	Comment    string   `json:"comment,omitempty"`
	ExecutedAt string   `json:"executed_at,omitempty"`
	IncludedAt string   `json:"included_at,omitempty"`
}

// DetailViewResponse is the drill-down for one activity.
type DetailViewResponse struct {
	ActivityID int             `json:"activity_id"`
	Title      string          `json:"title"`
	Type       string          `json:"type"`
	Shape      string          `json:"shape"`
	Rows       []DetailRowView `json:"rows"`
}

func toActivityView(record domain.Activity) ActivityView {
	percent := domain.ComputePercent(record.Correct, record.Questions)
	return ActivityView{
		ActivityID:  record.ID,
		Title:       record.Title,
		Type:        record.Type,
		SecondaryID: record.SecondaryID,
		Area:        record.Area,
		Subject:     record.Subject,
		Topic:       record.Topic,
		Questions:   record.Questions,
		Correct:     record.Correct,
		Percentage:  percentValue(percent),
		Band:        string(percent.Band()),
		Elapsed:     record.Elapsed,
		Comment:     record.Comment,
		ExecutedAt:  record.ExecutedAt,
		IncludedAt:  record.IncludedAt,
	}
}

func toDetailViewResponse(detail query.DetailView) DetailViewResponse {
	rows := make([]DetailRowView, 0, len(detail.Rows))
	for _, row := range detail.Rows {
		rows = append(rows, DetailRowView{
			SubID:      row.SubID,
			Area:       row.Area,
			Subject:    row.Subject,
			Topic:      row.Topic,
			Questions:  row.Questions,
			Correct:    row.Correct,
			Percentage: percentValue(row.Percent),
			Band:       string(row.Percent.Band()),
			Elapsed:    row.Elapsed,
			Comment:    row.Comment,
			ExecutedAt: row.ExecutedAt,
			IncludedAt: row.IncludedAt,
		})
	}
	return DetailViewResponse{
		ActivityID: detail.ActivityID,
		Title:      detail.Title,
		Type:       detail.Type,
		Shape:      string(detail.Shape),
		Rows:       rows,
	}
}

// percentValue renders the not-applicable sentinel as nil rather than 0.
func percentValue(p domain.Percent) *float64 {
	if !p.Valid {
		return nil
	}
	value := p.Value
	return &value
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{
		"type":   code,
		"detail": detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
