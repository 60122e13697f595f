package consumer

import (
	"context"

	"example.com/studylog/internal/view"
)

// RefreshHandler treats every event as a hint that the stored collection
// changed and refreshes the snapshot wholesale. The event payload is not
// applied incrementally: the listing engine is defined over full-collection
// replacement, so a late or duplicated event at worst triggers a redundant
// fetch.
type RefreshHandler struct {
	snapshot *view.Snapshot
}

// NewRefreshHandler constructs a handler bound to the snapshot.
func NewRefreshHandler(snapshot *view.Snapshot) *RefreshHandler {
	return &RefreshHandler{snapshot: snapshot}
}

// Handle refreshes the snapshot.
func (h *RefreshHandler) Handle(ctx context.Context, _ Message) error {
	return h.snapshot.Refresh(ctx)
}
