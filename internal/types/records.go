//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// Qualification is a completed course, certification or formal training
type Qualification struct {
	CourseTitle string  `json:"course_title" validate:"max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// Activity is a recorded work or experience entry
type Activity struct {
	ActivityType      *string  `json:"activity_type,omitempty" validate:"omitempty,max=100"`
	YearsOfExperience *float64 `json:"years_of_experience,omitempty" validate:"omitempty,gte=0,lte=100"`
	ChaptersCount     *int     `json:"chapters_count,omitempty" validate:"omitempty,gte=0,lte=10000"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// CreateQualificationRequest registers a qualification for a facilitator.
type CreateQualificationRequest struct {
	CourseTitle string  `json:"course_title" validate:"required,min=1,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

// Qualification converts the request into a scoring record
func (r *CreateQualificationRequest) Qualification() Qualification {
	return Qualification{CourseTitle: r.CourseTitle, Description: r.Description}
}

// Validate validates the CreateQualificationRequest using the validator.
func (r *CreateQualificationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CreateActivityRequest registers a work or experience entry for a facilitator.
// Negative counts are rejected here rather than in the scoring engine.
type CreateActivityRequest struct {
	Activity
}

// Validate validates the CreateActivityRequest using the validator.
func (r *CreateActivityRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScoreRequest is a stateless scoring request: one person's records
type ScoreRequest struct {
	Qualifications []Qualification `json:"qualifications" validate:"max=500,dive"`
	Activities     []Activity      `json:"activities,omitempty" validate:"max=500,dive"`
}

// Validate validates the ScoreRequest using the validator.
func (r *ScoreRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// UpdateStatusRequest sets or clears (null) a manual growth status override
type UpdateStatusRequest struct {
	ManualStatus *string `json:"manual_status"`
}

// Status parses the requested manual status. A nil result clears the override.
func (r *UpdateStatusRequest) Status() (*GrowthStatus, error) {
	if r.ManualStatus == nil {
		return nil, nil
	}
	s, err := ParseGrowthStatus(*r.ManualStatus)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
