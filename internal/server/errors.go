// Package server provides the HTTP REST API for the competency engine.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/progress"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrForbidden indicates the caller may not act on another facilitator's records
type ErrForbidden struct {
	FacilitatorID uuid.UUID
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("not allowed to access facilitator: %s", e.FacilitatorID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation        *ErrValidation
		forbidden         *ErrForbidden
		notFound          *progress.ErrFacilitatorNotFound
		unknownCompetency *progress.ErrUnknownCompetency
		unknownStatus     *progress.ErrUnknownStatus
	)

	switch {
	case errors.As(err, &validation),
		errors.As(err, &unknownCompetency),
		errors.As(err, &unknownStatus):
		return http.StatusBadRequest
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
