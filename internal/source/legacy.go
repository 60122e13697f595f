// Package source contains fetch collaborators that supply the activity
// collection wholesale.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"example.com/studylog/internal/domain"
)

// LegacyClient reads the old serverless listing endpoint, which fronts the
// original spreadsheet. It lets the service run against the legacy backend
// while records migrate to Postgres.
type LegacyClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLegacyClient constructs a client with sane defaults.
func NewLegacyClient(baseURL string) *LegacyClient {
	return &LegacyClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListAll fetches the complete record collection.
func (c *LegacyClient) ListAll(ctx context.Context) ([]domain.Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/listar_atividades", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("legacy source status %d", resp.StatusCode)
	}

	var payload struct {
		Success bool           `json:"success"`
		Data    []legacyRecord `json:"data"`
		Total   int            `json:"total"`
		Error   string         `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode legacy response: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("legacy source error: %s", payload.Error)
	}

	records := make([]domain.Activity, 0, len(payload.Data))
	for _, raw := range payload.Data {
		records = append(records, raw.toActivity())
	}
	return records, nil
}

// Get scans the full listing for the requested record. The legacy endpoint
// has no per-record route, and the collection is small enough that a full
// fetch is acceptable.
func (c *LegacyClient) Get(ctx context.Context, activityID int) (*domain.Activity, error) {
	records, err := c.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == activityID {
			return &records[i], nil
		}
	}
	return nil, nil
}

// CreateActivity is not supported by the legacy source.
func (c *LegacyClient) CreateActivity(ctx context.Context, activity domain.Activity) (int, error) {
	return 0, domain.ErrReadOnly
}

// AddExamResult is not supported by the legacy source.
func (c *LegacyClient) AddExamResult(ctx context.Context, activityID int, entry domain.DetailEntry) error {
	return domain.ErrReadOnly
}

// AddExerciseResult is not supported by the legacy source.
func (c *LegacyClient) AddExerciseResult(ctx context.Context, activityID int, entry domain.DetailEntry) error {
	return domain.ErrReadOnly
}

// legacyRecord mirrors the spreadsheet row JSON, where cell values arrive as
// strings or numbers depending on what the sheet happened to contain.
type legacyRecord struct {
	ID          textCell `json:"id_atividade"`
	Title       textCell `json:"titulo"`
	Type        textCell `json:"tipo"`
	SecondaryID textCell `json:"id_secundario"`
	Area        textCell `json:"area"`
	Subject     textCell `json:"materia"`
	Topic       textCell `json:"assunto"`
	Questions   textCell `json:"questoes"`
	Correct     textCell `json:"acertos"`
	Elapsed     textCell `json:"tempo_total"`
	Comment     textCell `json:"comentarios"`
	ExecutedAt  textCell `json:"data_execucao"`
	IncludedAt  textCell `json:"data_inclusao"`
}

func (r legacyRecord) toActivity() domain.Activity {
	id, _ := strconv.Atoi(string(r.ID))
	return domain.Activity{
		ID:          id,
		Title:       string(r.Title),
		Type:        string(r.Type),
		SecondaryID: string(r.SecondaryID),
		Area:        string(r.Area),
		Subject:     string(r.Subject),
		Topic:       string(r.Topic),
		Questions:   string(r.Questions),
		Correct:     string(r.Correct),
		Elapsed:     string(r.Elapsed),
		Comment:     string(r.Comment),
		ExecutedAt:  string(r.ExecutedAt),
		IncludedAt:  string(r.IncludedAt),
	}
}

// textCell accepts a JSON string, number, bool, or null and keeps its text
// form.
type textCell string

func (t *textCell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = textCell(s)
		return nil
	}
	*t = textCell(data)
	return nil
}
