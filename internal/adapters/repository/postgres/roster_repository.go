package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type rosterRepository struct {
	db *sql.DB
}

func NewRosterRepository(db *sql.DB) ports.RosterRepository {
	return &rosterRepository{db: db}
}

func (r *rosterRepository) Get(ctx context.Context, activityID, participantID uuid.UUID) (*domain.ActivityParticipant, error) {
	query := `
		SELECT activity_id, participant_id, joined_at
		FROM activity_participants
		WHERE activity_id = $1 AND participant_id = $2
	`
	var row domain.ActivityParticipant
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, activityID, participantID).Scan(
		&row.ActivityID, &row.ParticipantID, &row.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get roster row: %w", err)
	}
	return &row, nil
}

func (r *rosterRepository) Insert(ctx context.Context, row *domain.ActivityParticipant) error {
	query := `
		INSERT INTO activity_participants (activity_id, participant_id, joined_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (activity_id, participant_id) DO NOTHING
	`
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, query, row.ActivityID, row.ParticipantID, row.JoinedAt)
	if err != nil {
		return fmt.Errorf("failed to insert roster row: %w", err)
	}
	return nil
}

func (r *rosterRepository) DeleteByActivity(ctx context.Context, activityID uuid.UUID) error {
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM activity_participants WHERE activity_id = $1`, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete roster rows: %w", err)
	}
	return nil
}
