package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// ListCompetencyStatuses returns the stored statuses of a facilitator.
// Competencies never scored or set are absent.
func (db *DB) ListCompetencyStatuses(ctx context.Context, facilitatorID uuid.UUID) ([]CompetencyStatus, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT facilitator_id, competency_id, score, suggested_status, manual_status, updated_at
		 FROM competency_statuses WHERE facilitator_id = $1
		 ORDER BY competency_id`,
		facilitatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list competency statuses: %w", err)
	}
	defer rows.Close()

	var out []CompetencyStatus
	for rows.Next() {
		var (
			s          CompetencyStatus
			competency string
			suggested  string
			manual     *string
		)
		if err := rows.Scan(&s.FacilitatorID, &competency, &s.Score, &suggested, &manual, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan competency status: %w", err)
		}
		s.CompetencyID, s.SuggestedStatus, s.ManualStatus, err = scanStatusColumns(competency, suggested, manual)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate competency statuses: %w", err)
	}
	return out, nil
}

// SaveSuggestedStatuses upserts score and suggested status for every row in one transaction.
// manual_status is never touched.
func (db *DB) SaveSuggestedStatuses(ctx context.Context, facilitatorID uuid.UUID, scores []types.CompetencyScore) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, s := range scores {
		_, err = tx.Exec(ctx,
			`INSERT INTO competency_statuses (facilitator_id, competency_id, score, suggested_status, updated_at)
			 VALUES ($1, $2, $3, $4, NOW())
			 ON CONFLICT (facilitator_id, competency_id) DO UPDATE SET
			     score = EXCLUDED.score,
			     suggested_status = EXCLUDED.suggested_status,
			     updated_at = NOW()`,
			facilitatorID, string(s.CompetencyID), s.Score, string(s.Status),
		)
		if err != nil {
			return fmt.Errorf("failed to save status for %s: %w", s.CompetencyID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetManualStatus records an explicit status for one competency; nil clears it.
// A row is created with a zero score if the competency was never scored.
func (db *DB) SetManualStatus(ctx context.Context, facilitatorID uuid.UUID, competencyID types.CompetencyID, status *types.GrowthStatus) error {
	var manual *string
	if status != nil {
		s := string(*status)
		manual = &s
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO competency_statuses (facilitator_id, competency_id, manual_status, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (facilitator_id, competency_id) DO UPDATE SET
		     manual_status = EXCLUDED.manual_status,
		     updated_at = NOW()`,
		facilitatorID, string(competencyID), manual,
	)
	if err != nil {
		return fmt.Errorf("failed to set manual status: %w", err)
	}
	return nil
}
