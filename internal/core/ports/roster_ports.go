package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
)

type RosterRepository interface {
	Get(ctx context.Context, activityID, participantID uuid.UUID) (*domain.ActivityParticipant, error)
	Insert(ctx context.Context, row *domain.ActivityParticipant) error
	DeleteByActivity(ctx context.Context, activityID uuid.UUID) error
}

type CanJoinResult struct {
	CanJoin bool   `json:"can_join"`
	Reason  string `json:"reason,omitempty"`
}

type JoinResult struct {
	AlreadyJoined bool      `json:"already_joined"`
	JoinedAt      time.Time `json:"joined_at"`
}

type RosterService interface {
	CanJoin(ctx context.Context, activityID uuid.UUID) (CanJoinResult, error)
	Join(ctx context.Context, activityID, participantID uuid.UUID) (JoinResult, error)
}
