package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// -----------------------------------------------------------------------------
// Qualifications
// -----------------------------------------------------------------------------

// CreateQualification stores a qualification for a facilitator
func (db *DB) CreateQualification(ctx context.Context, facilitatorID uuid.UUID, q types.Qualification) (*Qualification, error) {
	var out Qualification
	err := db.pool.QueryRow(ctx,
		`INSERT INTO qualifications (facilitator_id, course_title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, facilitator_id, course_title, description, created_at`,
		facilitatorID, q.CourseTitle, nullIfEmpty(q.Description),
	).Scan(&out.ID, &out.FacilitatorID, &out.CourseTitle, &out.Description, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create qualification: %w", err)
	}
	return &out, nil
}

// ListQualifications returns all qualifications of a facilitator, oldest first
func (db *DB) ListQualifications(ctx context.Context, facilitatorID uuid.UUID) ([]Qualification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, facilitator_id, course_title, description, created_at
		 FROM qualifications WHERE facilitator_id = $1
		 ORDER BY created_at, id`,
		facilitatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list qualifications: %w", err)
	}
	defer rows.Close()

	var out []Qualification
	for rows.Next() {
		var q Qualification
		if err := rows.Scan(&q.ID, &q.FacilitatorID, &q.CourseTitle, &q.Description, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan qualification: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate qualifications: %w", err)
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Activities
// -----------------------------------------------------------------------------

// CreateActivity stores an activity for a facilitator
func (db *DB) CreateActivity(ctx context.Context, facilitatorID uuid.UUID, a types.Activity) (*Activity, error) {
	var out Activity
	err := db.pool.QueryRow(ctx,
		`INSERT INTO activities (facilitator_id, activity_type, years_of_experience, chapters_count, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, facilitator_id, activity_type, years_of_experience, chapters_count, description, created_at`,
		facilitatorID, nullIfEmpty(a.ActivityType), a.YearsOfExperience, a.ChaptersCount, nullIfEmpty(a.Description),
	).Scan(&out.ID, &out.FacilitatorID, &out.ActivityType, &out.YearsOfExperience,
		&out.ChaptersCount, &out.Description, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &out, nil
}

// ListActivities returns all activities of a facilitator, oldest first
func (db *DB) ListActivities(ctx context.Context, facilitatorID uuid.UUID) ([]Activity, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, facilitator_id, activity_type, years_of_experience, chapters_count, description, created_at
		 FROM activities WHERE facilitator_id = $1
		 ORDER BY created_at, id`,
		facilitatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.FacilitatorID, &a.ActivityType, &a.YearsOfExperience,
			&a.ChaptersCount, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return out, nil
}
