package domain

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layouts for the localized day/month/year text stamps the legacy source
// uses. All dates in the model stay in this text form; chronological
// interpretation happens only inside the query engine's comparators.
const (
	DateLayout      = "02/01/2006"
	TimestampLayout = "02/01/2006 15:04:05"
)

var (
	// ErrActivityNotFound is returned when an activity cannot be located.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrInvalidInput marks validation failures so transport code can map
	// them to a 400 without string matching.
	ErrInvalidInput = errors.New("invalid input")
	// ErrReadOnly is returned by repositories that cannot accept writes,
	// such as the legacy listing endpoint.
	ErrReadOnly = errors.New("repository is read-only")
)

// elapsedPattern mirrors the creation form's H:MM input mask.
var elapsedPattern = regexp.MustCompile(`^[0-9]+:[0-5][0-9]$`)

// Repository captures persistence operations for activities and their
// nested results.
type Repository interface {
	ListAll(ctx context.Context) ([]Activity, error)
	Get(ctx context.Context, activityID int) (*Activity, error)
	CreateActivity(ctx context.Context, activity Activity) (int, error)
	AddExamResult(ctx context.Context, activityID int, entry DetailEntry) error
	AddExerciseResult(ctx context.Context, activityID int, entry DetailEntry) error
}

// Service orchestrates activity workflows on top of a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateActivityInput captures the creation form payload.
type CreateActivityInput struct {
	Title   string
	Type    string
	Elapsed string
	Comment string
}

// Validate enforces the same rules as the legacy creation form.
func (in CreateActivityInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Type) == "" {
		return fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Elapsed) == "" {
		return fmt.Errorf("%w: elapsed time is required", ErrInvalidInput)
	}
	if !elapsedPattern.MatchString(strings.TrimSpace(in.Elapsed)) {
		return fmt.Errorf("%w: elapsed time must match H:MM", ErrInvalidInput)
	}
	return nil
}

// CreateActivity validates the input, stamps the inclusion time, and stores
// the record. The repository assigns the identifier.
func (s *Service) CreateActivity(ctx context.Context, in CreateActivityInput) (*Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	activity := Activity{
		Title:      strings.TrimSpace(in.Title),
		Type:       strings.TrimSpace(in.Type),
		Elapsed:    strings.TrimSpace(in.Elapsed),
		Comment:    strings.TrimSpace(in.Comment),
		IncludedAt: s.now().Format(TimestampLayout),
	}

	id, err := s.repo.CreateActivity(ctx, activity)
	if err != nil {
		return nil, fmt.Errorf("create activity: %w", err)
	}
	activity.ID = id
	return &activity, nil
}

// AddResultInput captures one sub-record to append to an existing activity.
type AddResultInput struct {
	Area       string
	Subject    string
	Topic      string
	Questions  string
	Correct    string
	Elapsed    string
	Comment    string
	ExecutedAt string
}

// AddResult appends a sub-record to the activity, routed to the exam or
// exercise-block table by the activity's type tag. Subject and topic are
// meaningful only for the exercise-block variant and are dropped for exams.
func (s *Service) AddResult(ctx context.Context, activityID int, in AddResultInput) (*DetailEntry, error) {
	if strings.TrimSpace(in.Area) == "" {
		return nil, fmt.Errorf("%w: area is required", ErrInvalidInput)
	}

	activity, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	entry := DetailEntry{
		Area:       strings.TrimSpace(in.Area),
		Questions:  strings.TrimSpace(in.Questions),
		Correct:    strings.TrimSpace(in.Correct),
		Elapsed:    strings.TrimSpace(in.Elapsed),
		Comment:    strings.TrimSpace(in.Comment),
		ExecutedAt: strings.TrimSpace(in.ExecutedAt),
		IncludedAt: s.now().Format(TimestampLayout),
	}
	if entry.ExecutedAt == "" {
		entry.ExecutedAt = s.now().Format(DateLayout)
	}

	if IsExamType(activity.Type) {
		if err := s.repo.AddExamResult(ctx, activityID, entry); err != nil {
			return nil, fmt.Errorf("add exam result: %w", err)
		}
	} else {
		entry.Subject = strings.TrimSpace(in.Subject)
		entry.Topic = strings.TrimSpace(in.Topic)
		if err := s.repo.AddExerciseResult(ctx, activityID, entry); err != nil {
			return nil, fmt.Errorf("add exercise result: %w", err)
		}
	}
	return &entry, nil
}

// GetActivity fetches by ID.
func (s *Service) GetActivity(ctx context.Context, activityID int) (*Activity, error) {
	activity, err := s.repo.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}
