package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type responseRepository struct {
	db *sql.DB
}

func NewResponseRepository(db *sql.DB) ports.ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) Save(ctx context.Context, response *domain.Response) error {
	query := `
		INSERT INTO responses (id, activity_id, participant_id, data, submitted_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, query,
		response.ID, response.ActivityID, response.ParticipantID, response.Data, response.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

func (r *responseRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]*domain.Response, error) {
	query := `
		SELECT id, activity_id, participant_id, data, submitted_at
		FROM responses
		WHERE activity_id = $1
		ORDER BY submitted_at, id
	`
	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	defer rows.Close()

	var responses []*domain.Response
	for rows.Next() {
		var response domain.Response
		if err := rows.Scan(
			&response.ID, &response.ActivityID, &response.ParticipantID,
			&response.Data, &response.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, &response)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responses: %w", err)
	}
	return responses, nil
}

func (r *responseRepository) HasPollVote(ctx context.Context, activityID, participantID uuid.UUID) (bool, error) {
	query := `
		SELECT 1 FROM responses
		WHERE activity_id = $1 AND participant_id = $2 AND data->>'type' = 'poll'
		LIMIT 1
	`
	var exists int
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, activityID, participantID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *responseRepository) CountWordSubmissions(ctx context.Context, activityID, participantID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*) FROM responses
		WHERE activity_id = $1 AND participant_id = $2 AND data->>'type' = 'word_cloud'
	`
	var count int
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, activityID, participantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count word submissions: %w", err)
	}
	return count, nil
}

func (r *responseRepository) GuessAttempts(ctx context.Context, activityID, participantID uuid.UUID, logoIndex int) (int, bool, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(BOOL_OR((data->'logo_guess'->>'is_correct')::boolean), FALSE)
		FROM responses
		WHERE activity_id = $1 AND participant_id = $2
		  AND data->>'type' = 'guess_logo'
		  AND (data->'logo_guess'->>'logo_index')::int = $3
	`
	var attempts int
	var solved bool
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, activityID, participantID, logoIndex).Scan(&attempts, &solved)
	if err != nil {
		return 0, false, fmt.Errorf("failed to count guess attempts: %w", err)
	}
	return attempts, solved, nil
}

func (r *responseRepository) SolvedRounds(ctx context.Context, activityID, participantID uuid.UUID) (map[int]bool, error) {
	query := `
		SELECT DISTINCT (data->'logo_guess'->>'logo_index')::int
		FROM responses
		WHERE activity_id = $1 AND participant_id = $2
		  AND data->>'type' = 'guess_logo'
		  AND (data->'logo_guess'->>'is_correct')::boolean
	`
	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, activityID, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list solved rounds: %w", err)
	}
	defer rows.Close()

	solved := make(map[int]bool)
	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, fmt.Errorf("failed to scan solved round: %w", err)
		}
		solved[index] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating solved rounds: %w", err)
	}
	return solved, nil
}

func (r *responseRepository) DeleteByActivity(ctx context.Context, activityID uuid.UUID) error {
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM responses WHERE activity_id = $1`, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete responses: %w", err)
	}
	return nil
}
