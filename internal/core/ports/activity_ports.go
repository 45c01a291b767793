package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Activity, error)
	Update(ctx context.Context, activity *domain.Activity) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type LogoRepository interface {
	ReplaceForActivity(ctx context.Context, activityID uuid.UUID, items []domain.LogoItem) error
	GetByIndex(ctx context.Context, activityID uuid.UUID, index int) (*domain.LogoItem, error)
	ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.LogoItem, error)
	DeleteByActivity(ctx context.Context, activityID uuid.UUID) error
}

type CreateActivityInput struct {
	EventID            uuid.UUID
	Type               domain.ActivityType
	Title              string
	Status             domain.ActivityStatus
	ScheduledStartTime *time.Time
	Config             domain.ActivityConfig
}

// UpdateActivityInput patches only the fields that are set.
type UpdateActivityInput struct {
	Title              *string
	Status             *domain.ActivityStatus
	ScheduledStartTime *time.Time
	Config             *domain.ActivityConfig
}

// AdvanceResult reports the outcome of advancing a guess-logo round.
type AdvanceResult struct {
	Ended    bool `json:"ended"`
	NewIndex int  `json:"new_index,omitempty"`
}

type ActivityService interface {
	Create(ctx context.Context, input CreateActivityInput) (*domain.Activity, error)
	Get(ctx context.Context, id string) (*domain.Activity, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Activity, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateActivityInput) (*domain.Activity, error)
	Start(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	End(ctx context.Context, id uuid.UUID) (*domain.Activity, error)
	AdvanceRound(ctx context.Context, id uuid.UUID) (AdvanceResult, error)
	Remove(ctx context.Context, id uuid.UUID) error
	SeedLogoItems(ctx context.Context, id uuid.UUID, items []domain.LogoItem) error
}
