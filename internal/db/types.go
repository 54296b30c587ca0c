package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// Facilitator represents a person whose competencies are tracked
type Facilitator struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Qualification is a stored course or certificate
type Qualification struct {
	ID            uuid.UUID `json:"id"`
	FacilitatorID uuid.UUID `json:"facilitator_id"`
	CourseTitle   string    `json:"course_title"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToDomain strips storage fields for scoring
func (q Qualification) ToDomain() types.Qualification {
	return types.Qualification{
		CourseTitle: q.CourseTitle,
		Description: q.Description,
	}
}

// Activity is a stored record of practical work
type Activity struct {
	ID                uuid.UUID `json:"id"`
	FacilitatorID     uuid.UUID `json:"facilitator_id"`
	ActivityType      *string   `json:"activity_type,omitempty"`
	YearsOfExperience *float64  `json:"years_of_experience,omitempty"`
	ChaptersCount     *int      `json:"chapters_count,omitempty"`
	Description       *string   `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ToDomain strips storage fields for scoring
func (a Activity) ToDomain() types.Activity {
	return types.Activity{
		ActivityType:      a.ActivityType,
		YearsOfExperience: a.YearsOfExperience,
		ChaptersCount:     a.ChaptersCount,
		Description:       a.Description,
	}
}

// CompetencyStatus is the persisted state of one competency for one facilitator.
// ManualStatus is nil unless someone has set it explicitly.
type CompetencyStatus struct {
	FacilitatorID   uuid.UUID           `json:"facilitator_id"`
	CompetencyID    types.CompetencyID  `json:"competency_id"`
	Score           float64             `json:"score"`
	SuggestedStatus types.GrowthStatus  `json:"suggested_status"`
	ManualStatus    *types.GrowthStatus `json:"manual_status,omitempty"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// scanStatusColumns converts the text columns of competency_statuses into typed values
func scanStatusColumns(competencyID, suggested string, manual *string) (types.CompetencyID, types.GrowthStatus, *types.GrowthStatus, error) {
	id, err := types.ParseCompetencyID(competencyID)
	if err != nil {
		return "", "", nil, fmt.Errorf("invalid stored competency: %w", err)
	}
	suggestedStatus, err := types.ParseGrowthStatus(suggested)
	if err != nil {
		return "", "", nil, fmt.Errorf("invalid stored suggested status: %w", err)
	}
	if manual == nil {
		return id, suggestedStatus, nil, nil
	}
	manualStatus, err := types.ParseGrowthStatus(*manual)
	if err != nil {
		return "", "", nil, fmt.Errorf("invalid stored manual status: %w", err)
	}
	return id, suggestedStatus, &manualStatus, nil
}

func nullIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
