// Package view holds the in-memory activity collection the listing engine
// queries. The collection is replaced wholesale on every refresh, never
// merged or patched.
package view

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"example.com/studylog/internal/domain"
	"example.com/studylog/internal/observability"
)

// Source supplies the full record collection. The postgres repository and
// the legacy HTTP client both satisfy it.
type Source interface {
	ListAll(ctx context.Context) ([]domain.Activity, error)
}

// Snapshot owns the current collection. Reads and refreshes may come from
// different goroutines (HTTP handlers, the refresh ticker, the event
// consumer), so access is guarded; the query engine itself never mutates
// what it is handed.
type Snapshot struct {
	source Source
	logger *log.Logger

	mu          sync.RWMutex
	records     []domain.Activity
	refreshedAt time.Time
}

// Option configures optional behaviour for the Snapshot.
type Option func(*Snapshot)

// WithLogger overrides the logger used by the refresh loop.
func WithLogger(logger *log.Logger) Option {
	return func(s *Snapshot) {
		s.logger = logger
	}
}

// NewSnapshot constructs an empty snapshot. Callers may query it before the
// first successful refresh and simply see an empty collection.
func NewSnapshot(source Source, opts ...Option) *Snapshot {
	s := &Snapshot{
		source: source,
		logger: log.New(log.Writer(), "[snapshot] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the collection and swaps it in wholesale. On failure the
// previous collection stays current; one bad fetch must not blank the
// listing.
func (s *Snapshot) Refresh(ctx context.Context) error {
	records, err := s.source.ListAll(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	s.mu.Lock()
	s.records = records
	s.refreshedAt = now
	s.mu.Unlock()

	observability.RecordSnapshotRefreshed(now, len(records))
	return nil
}

// Records returns the current collection. The slice is shared: callers must
// treat it as read-only, which the query engine does (sorting clones).
func (s *Snapshot) Records() []domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// RefreshedAt reports when the collection was last replaced; zero before the
// first successful refresh.
func (s *Snapshot) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}

// Start runs the periodic refresh loop until the context is cancelled. It
// should be called in a goroutine.
func (s *Snapshot) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := s.Refresh(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Printf("refresh error: %v", err)
		}
	}
}
