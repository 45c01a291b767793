package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
)

const (
	EventActivityStarted = "activity.started"
	EventActivityEnded   = "activity.ended"
	EventRoundAdvanced   = "round.advanced"
)

// LifecycleEvent notifies companion apps of activity transitions. Publishing
// is best effort and happens after the transaction commits; a failure is
// logged, never surfaced to the caller.
type LifecycleEvent struct {
	Kind       string              `json:"kind"`
	ActivityID uuid.UUID           `json:"activity_id"`
	EventID    uuid.UUID           `json:"event_id"`
	Type       domain.ActivityType `json:"type"`
	RoundIndex int                 `json:"round_index,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

type LifecyclePublisher interface {
	Publish(ctx context.Context, event LifecycleEvent) error
}
