package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateFacilitator inserts a facilitator and returns the stored row
func (db *DB) CreateFacilitator(ctx context.Context, name, email string) (*Facilitator, error) {
	var f Facilitator
	err := db.pool.QueryRow(ctx,
		`INSERT INTO facilitators (name, email)
		 VALUES ($1, $2)
		 RETURNING id, name, email, created_at`,
		name, email,
	).Scan(&f.ID, &f.Name, &f.Email, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create facilitator: %w", err)
	}
	return &f, nil
}

// GetFacilitator retrieves a facilitator by ID. Returns nil, nil when absent.
func (db *DB) GetFacilitator(ctx context.Context, id uuid.UUID) (*Facilitator, error) {
	var f Facilitator
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM facilitators WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.Name, &f.Email, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get facilitator: %w", err)
	}
	return &f, nil
}

// ListFacilitatorIDs returns every facilitator ID in creation order
func (db *DB) ListFacilitatorIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx, `SELECT id FROM facilitators ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilitators: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan facilitator id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate facilitators: %w", err)
	}
	return ids, nil
}

// DeleteFacilitator removes a facilitator and, by cascade, all their records
func (db *DB) DeleteFacilitator(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM facilitators WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete facilitator: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("facilitator not found: %s", id)
	}
	return nil
}
