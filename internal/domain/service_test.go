package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockRepo struct {
	activities map[int]*Activity
	nextID     int

	examEntries     []DetailEntry
	exerciseEntries []DetailEntry
}

func newMockRepo() *mockRepo {
	return &mockRepo{activities: make(map[int]*Activity), nextID: 1}
}

func (m *mockRepo) ListAll(ctx context.Context) ([]Activity, error) {
	out := make([]Activity, 0, len(m.activities))
	for _, a := range m.activities {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, activityID int) (*Activity, error) {
	a, ok := m.activities[activityID]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (m *mockRepo) CreateActivity(ctx context.Context, activity Activity) (int, error) {
	id := m.nextID
	m.nextID++
	activity.ID = id
	m.activities[id] = &activity
	return id, nil
}

func (m *mockRepo) AddExamResult(ctx context.Context, activityID int, entry DetailEntry) error {
	m.examEntries = append(m.examEntries, entry)
	return nil
}

func (m *mockRepo) AddExerciseResult(ctx context.Context, activityID int, entry DetailEntry) error {
	m.exerciseEntries = append(m.exerciseEntries, entry)
	return nil
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
}

func TestCreateActivityStampsInclusion(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	service.now = fixedClock

	activity, err := service.CreateActivity(context.Background(), CreateActivityInput{
		Title:   "  Revisão de Direito  ",
		Type:    "SIMULADO",
		Elapsed: "2:30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if activity.ID != 1 {
		t.Fatalf("expected id 1 got %d", activity.ID)
	}
	if activity.Title != "Revisão de Direito" {
		t.Fatalf("expected trimmed title, got %q", activity.Title)
	}
	if activity.IncludedAt != "14/03/2026 09:30:00" {
		t.Fatalf("unexpected inclusion stamp %q", activity.IncludedAt)
	}
}

func TestCreateActivityValidation(t *testing.T) {
	service := NewService(newMockRepo())

	cases := []struct {
		name  string
		input CreateActivityInput
	}{
		{"missing title", CreateActivityInput{Type: "SIMULADO", Elapsed: "1:00"}},
		{"missing type", CreateActivityInput{Title: "x", Elapsed: "1:00"}},
		{"missing elapsed", CreateActivityInput{Title: "x", Type: "SIMULADO"}},
		{"bad elapsed format", CreateActivityInput{Title: "x", Type: "SIMULADO", Elapsed: "90m"}},
		{"bad elapsed minutes", CreateActivityInput{Title: "x", Type: "SIMULADO", Elapsed: "1:75"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateActivity(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAddResultRoutesByType(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	service.now = fixedClock

	examID, _ := repo.CreateActivity(context.Background(), Activity{Type: "SIMULADO"})
	exerciseID, _ := repo.CreateActivity(context.Background(), Activity{Type: "BLOCO DE EXERCICIOS"})

	_, err := service.AddResult(context.Background(), examID, AddResultInput{
		Area:      "Direito",
		Subject:   "should be dropped",
		Questions: "40",
		Correct:   "30",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.examEntries) != 1 || len(repo.exerciseEntries) != 0 {
		t.Fatalf("expected routing to exam table, got exam=%d exercise=%d", len(repo.examEntries), len(repo.exerciseEntries))
	}
	if repo.examEntries[0].Subject != "" {
		t.Fatalf("exam entries must not carry a subject, got %q", repo.examEntries[0].Subject)
	}

	_, err = service.AddResult(context.Background(), exerciseID, AddResultInput{
		Area:    "Português",
		Subject: "Gramática",
		Topic:   "Crase",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.exerciseEntries) != 1 {
		t.Fatalf("expected routing to exercise table")
	}
	if repo.exerciseEntries[0].Subject != "Gramática" || repo.exerciseEntries[0].Topic != "Crase" {
		t.Fatalf("exercise entry lost subject/topic: %+v", repo.exerciseEntries[0])
	}
}

func TestAddResultDefaultsExecutionDate(t *testing.T) {
	repo := newMockRepo()
	service := NewService(repo)
	service.now = fixedClock

	id, _ := repo.CreateActivity(context.Background(), Activity{Type: "SIMULADO"})
	entry, err := service.AddResult(context.Background(), id, AddResultInput{Area: "Direito"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.ExecutedAt != "14/03/2026" {
		t.Fatalf("expected default execution date, got %q", entry.ExecutedAt)
	}
	if entry.IncludedAt != "14/03/2026 09:30:00" {
		t.Fatalf("unexpected inclusion stamp %q", entry.IncludedAt)
	}
}

func TestAddResultUnknownActivity(t *testing.T) {
	service := NewService(newMockRepo())
	_, err := service.AddResult(context.Background(), 99, AddResultInput{Area: "Direito"})
	if !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("expected ErrActivityNotFound, got %v", err)
	}
}

func TestAddResultRequiresArea(t *testing.T) {
	service := NewService(newMockRepo())
	_, err := service.AddResult(context.Background(), 1, AddResultInput{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
