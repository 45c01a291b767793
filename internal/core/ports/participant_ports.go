package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
)

// ParticipantRepository is the directory used to check event membership and
// resolve display names.
type ParticipantRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Participant, error)
}
