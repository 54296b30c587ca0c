package progress

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrFacilitatorNotFound indicates the facilitator does not exist
type ErrFacilitatorNotFound struct {
	FacilitatorID uuid.UUID
}

func (e *ErrFacilitatorNotFound) Error() string {
	return fmt.Sprintf("facilitator not found: %s", e.FacilitatorID)
}

// ErrUnknownCompetency indicates a competency identifier outside the canonical set
type ErrUnknownCompetency struct {
	Value string
}

func (e *ErrUnknownCompetency) Error() string {
	return fmt.Sprintf("unknown competency: %q", e.Value)
}

// ErrUnknownStatus indicates a growth status outside the canonical set
type ErrUnknownStatus struct {
	Value string
}

func (e *ErrUnknownStatus) Error() string {
	return fmt.Sprintf("unknown growth status: %q", e.Value)
}
