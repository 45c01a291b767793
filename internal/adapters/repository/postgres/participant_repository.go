package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type participantRepository struct {
	db *sql.DB
}

func NewParticipantRepository(db *sql.DB) ports.ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Participant, error) {
	query := `SELECT id, event_id, name FROM participants WHERE id = $1`
	var participant domain.Participant
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&participant.ID, &participant.EventID, &participant.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &participant, nil
}

func (r *participantRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Participant, error) {
	out := make(map[uuid.UUID]domain.Participant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query := `SELECT id, event_id, name FROM participants WHERE id = ANY($1)`
	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participant domain.Participant
		if err := rows.Scan(&participant.ID, &participant.EventID, &participant.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		out[participant.ID] = participant
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}
	return out, nil
}
