package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/engage/internal/core/domain"
	"github.com/vncsmyrnk/engage/internal/core/ports"
)

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ports.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (id, event_id, type, title, status, scheduled_start_time, actual_start_time, ended_at, config, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, query,
		activity.ID, activity.EventID, activity.Type, activity.Title, activity.Status,
		activity.ScheduledStartTime, activity.ActualStartTime, activity.EndedAt,
		activity.Config, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Activity, error) {
	query := `
		SELECT id, event_id, type, title, status, scheduled_start_time, actual_start_time, ended_at, config, created_at
		FROM activities
		WHERE id = $1
	`
	var activity domain.Activity
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&activity.ID, &activity.EventID, &activity.Type, &activity.Title, &activity.Status,
		&activity.ScheduledStartTime, &activity.ActualStartTime, &activity.EndedAt,
		&activity.Config, &activity.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*domain.Activity, error) {
	query := `
		SELECT id, event_id, type, title, status, scheduled_start_time, actual_start_time, ended_at, config, created_at
		FROM activities
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID, &activity.EventID, &activity.Type, &activity.Title, &activity.Status,
			&activity.ScheduledStartTime, &activity.ActualStartTime, &activity.EndedAt,
			&activity.Config, &activity.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	query := `
		UPDATE activities
		SET title = $2, status = $3, scheduled_start_time = $4, actual_start_time = $5, ended_at = $6, config = $7
		WHERE id = $1
	`
	result, err := querierFrom(ctx, r.db).ExecContext(ctx, query,
		activity.ID, activity.Title, activity.Status, activity.ScheduledStartTime,
		activity.ActualStartTime, activity.EndedAt, activity.Config,
	)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}
