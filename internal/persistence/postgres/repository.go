// Package postgres provides the Postgres-backed store for activities, their
// nested results, and the transactional outbox.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/studylog/internal/domain"
	"example.com/studylog/internal/observability"
	"example.com/studylog/internal/outbox"
)

// Repository implements domain.Repository on a pgx pool.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListAll loads the whole collection: base activity rows merged with their
// exam or exercise sub-records. The first sub-record's fields are copied
// onto the parent so the flat listing can show area, counts, and execution
// date without joining per row; all sub-records stay attached for the
// detail view.
func (r *Repository) ListAll(ctx context.Context) ([]domain.Activity, error) {
	activities, err := r.listActivities(ctx)
	if err != nil {
		return nil, err
	}

	examByActivity, err := r.listExamResults(ctx)
	if err != nil {
		return nil, err
	}
	exerciseByActivity, err := r.listExerciseResults(ctx)
	if err != nil {
		return nil, err
	}

	for i := range activities {
		merge(&activities[i], examByActivity, exerciseByActivity)
	}
	return activities, nil
}

// Get retrieves one activity with its sub-records, or nil when absent.
func (r *Repository) Get(ctx context.Context, activityID int) (*domain.Activity, error) {
	const query = `SELECT activity_id, title, activity_type, elapsed, comment, included_at
        FROM activities WHERE activity_id=$1`

	row := r.pool.QueryRow(ctx, query, activityID)
	var activity domain.Activity
	if err := row.Scan(&activity.ID, &activity.Title, &activity.Type, &activity.Elapsed, &activity.Comment, &activity.IncludedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	examByActivity, err := r.listExamResults(ctx)
	if err != nil {
		return nil, err
	}
	exerciseByActivity, err := r.listExerciseResults(ctx)
	if err != nil {
		return nil, err
	}
	merge(&activity, examByActivity, exerciseByActivity)
	return &activity, nil
}

// CreateActivity persists the record and its outbox event in one
// transaction, returning the store-assigned identifier.
func (r *Repository) CreateActivity(ctx context.Context, activity domain.Activity) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	const insert = `INSERT INTO activities (title, activity_type, elapsed, comment, included_at)
        VALUES ($1,$2,$3,$4,$5) RETURNING activity_id`

	var id int
	if err = tx.QueryRow(ctx, insert,
		activity.Title,
		activity.Type,
		activity.Elapsed,
		activity.Comment,
		activity.IncludedAt,
	).Scan(&id); err != nil {
		return 0, err
	}

	if err = insertOutbox(ctx, tx, outbox.EventActivityCreated, strconv.Itoa(id), outbox.ActivityCreated{
		ActivityID: id,
		Title:      activity.Title,
		Type:       activity.Type,
		IncludedAt: activity.IncludedAt,
	}); err != nil {
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	observability.RecordActivityCreated(time.Now().UTC())
	return id, nil
}

// AddExamResult appends an exam sub-record.
func (r *Repository) AddExamResult(ctx context.Context, activityID int, entry domain.DetailEntry) error {
	const insert = `INSERT INTO exam_results (activity_id, executed_at, area, questions, correct, elapsed, comment, included_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	return r.addResult(ctx, activityID, "exam", entry.Area, entry.ExecutedAt, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insert,
			activityID, entry.ExecutedAt, entry.Area, entry.Questions, entry.Correct, entry.Elapsed, entry.Comment, entry.IncludedAt)
		return err
	})
}

// AddExerciseResult appends an exercise-block sub-record.
func (r *Repository) AddExerciseResult(ctx context.Context, activityID int, entry domain.DetailEntry) error {
	const insert = `INSERT INTO exercise_results (activity_id, executed_at, area, subject, topic, questions, correct, elapsed, comment, included_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	return r.addResult(ctx, activityID, "exercise", entry.Area, entry.ExecutedAt, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, insert,
			activityID, entry.ExecutedAt, entry.Area, entry.Subject, entry.Topic, entry.Questions, entry.Correct, entry.Elapsed, entry.Comment, entry.IncludedAt)
		return err
	})
}

func (r *Repository) addResult(ctx context.Context, activityID int, shape, area, executedAt string, insertRow func(pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback(ctx)
		}
	}()

	if err = insertRow(tx); err != nil {
		return err
	}

	if err = insertOutbox(ctx, tx, outbox.EventResultAdded, strconv.Itoa(activityID), outbox.ResultAdded{
		ActivityID: activityID,
		Shape:      shape,
		Area:       area,
		ExecutedAt: executedAt,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertOutbox(ctx context.Context, tx pgx.Tx, eventType, partitionKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	const stmt = `INSERT INTO outbox (event_type, topic, partition_key, payload)
        VALUES ($1,$2,$3,$4)`

	if _, err := tx.Exec(ctx, stmt, eventType, outbox.Topic, partitionKey, body); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *Repository) listActivities(ctx context.Context) ([]domain.Activity, error) {
	const query = `SELECT activity_id, title, activity_type, elapsed, comment, included_at
        FROM activities ORDER BY activity_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0)
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(&activity.ID, &activity.Title, &activity.Type, &activity.Elapsed, &activity.Comment, &activity.IncludedAt); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (r *Repository) listExamResults(ctx context.Context) (map[int][]domain.DetailEntry, error) {
	const query = `SELECT result_id, activity_id, executed_at, area, questions, correct, elapsed, comment, included_at
        FROM exam_results ORDER BY result_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byActivity := make(map[int][]domain.DetailEntry)
	for rows.Next() {
		var resultID, activityID int
		var entry domain.DetailEntry
		if err := rows.Scan(&resultID, &activityID, &entry.ExecutedAt, &entry.Area, &entry.Questions, &entry.Correct, &entry.Elapsed, &entry.Comment, &entry.IncludedAt); err != nil {
			return nil, err
		}
		entry.SubID = strconv.Itoa(resultID)
		byActivity[activityID] = append(byActivity[activityID], entry)
	}
	return byActivity, rows.Err()
}

func (r *Repository) listExerciseResults(ctx context.Context) (map[int][]domain.DetailEntry, error) {
	const query = `SELECT result_id, activity_id, executed_at, area, subject, topic, questions, correct, elapsed, comment, included_at
        FROM exercise_results ORDER BY result_id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byActivity := make(map[int][]domain.DetailEntry)
	for rows.Next() {
		var resultID, activityID int
		var entry domain.DetailEntry
		if err := rows.Scan(&resultID, &activityID, &entry.ExecutedAt, &entry.Area, &entry.Subject, &entry.Topic, &entry.Questions, &entry.Correct, &entry.Elapsed, &entry.Comment, &entry.IncludedAt); err != nil {
			return nil, err
		}
		entry.SubID = strconv.Itoa(resultID)
		byActivity[activityID] = append(byActivity[activityID], entry)
	}
	return byActivity, rows.Err()
}

// merge attaches the activity's sub-records, routed by its type tag, and
// copies the first one's fields onto the parent the way the legacy listing
// endpoint flattened its worksheets.
func merge(activity *domain.Activity, exam, exercise map[int][]domain.DetailEntry) {
	details := exercise[activity.ID]
	if domain.IsExamType(activity.Type) {
		details = exam[activity.ID]
	}
	if len(details) == 0 {
		return
	}

	activity.Details = details
	first := details[0]
	activity.SecondaryID = first.SubID
	activity.ExecutedAt = first.ExecutedAt
	activity.Area = first.Area
	activity.Questions = first.Questions
	activity.Correct = first.Correct
	if first.Comment != "" {
		activity.Comment = first.Comment
	}
	if !domain.IsExamType(activity.Type) {
		activity.Subject = first.Subject
		activity.Topic = first.Topic
	}
}
