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

type logoRepository struct {
	db *sql.DB
}

func NewLogoRepository(db *sql.DB) ports.LogoRepository {
	return &logoRepository{db: db}
}

func (r *logoRepository) ReplaceForActivity(ctx context.Context, activityID uuid.UUID, items []domain.LogoItem) error {
	q := querierFrom(ctx, r.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM logo_items WHERE activity_id = $1`, activityID); err != nil {
		return fmt.Errorf("failed to clear logo items: %w", err)
	}

	query := `
		INSERT INTO logo_items (activity_id, logo_index, company_name, logo_url, hints, alternate_names)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, item := range items {
		_, err := q.ExecContext(ctx, query,
			activityID, item.Index, item.CompanyName, item.LogoURL,
			pq.Array(item.Hints), pq.Array(item.AlternateNames),
		)
		if err != nil {
			return fmt.Errorf("failed to insert logo item %d: %w", item.Index, err)
		}
	}
	return nil
}

func (r *logoRepository) GetByIndex(ctx context.Context, activityID uuid.UUID, index int) (*domain.LogoItem, error) {
	query := `
		SELECT activity_id, logo_index, company_name, logo_url, hints, alternate_names
		FROM logo_items
		WHERE activity_id = $1 AND logo_index = $2
	`
	var item domain.LogoItem
	err := querierFrom(ctx, r.db).QueryRowContext(ctx, query, activityID, index).Scan(
		&item.ActivityID, &item.Index, &item.CompanyName, &item.LogoURL,
		pq.Array(&item.Hints), pq.Array(&item.AlternateNames),
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrLogoNotFound
		}
		return nil, fmt.Errorf("failed to get logo item: %w", err)
	}
	return &item, nil
}

func (r *logoRepository) ListByActivity(ctx context.Context, activityID uuid.UUID) ([]domain.LogoItem, error) {
	query := `
		SELECT activity_id, logo_index, company_name, logo_url, hints, alternate_names
		FROM logo_items
		WHERE activity_id = $1
		ORDER BY logo_index
	`
	rows, err := querierFrom(ctx, r.db).QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logo items: %w", err)
	}
	defer rows.Close()

	var items []domain.LogoItem
	for rows.Next() {
		var item domain.LogoItem
		if err := rows.Scan(
			&item.ActivityID, &item.Index, &item.CompanyName, &item.LogoURL,
			pq.Array(&item.Hints), pq.Array(&item.AlternateNames),
		); err != nil {
			return nil, fmt.Errorf("failed to scan logo item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating logo items: %w", err)
	}
	return items, nil
}

func (r *logoRepository) DeleteByActivity(ctx context.Context, activityID uuid.UUID) error {
	_, err := querierFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM logo_items WHERE activity_id = $1`, activityID)
	if err != nil {
		return fmt.Errorf("failed to delete logo items: %w", err)
	}
	return nil
}
