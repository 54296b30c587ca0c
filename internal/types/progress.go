package types

// CompetencyProgress is the reconciled view of one competency for a facilitator.
//
// Status is the effective status: ManualStatus when set, otherwise SuggestedStatus.
// Suggestion is true when a manual status is set and the calculated status ranks above it.
type CompetencyProgress struct {
	CompetencyID    CompetencyID  `json:"competency_id"`
	Score           float64       `json:"score"`
	SuggestedStatus GrowthStatus  `json:"suggested_status"`
	ManualStatus    *GrowthStatus `json:"manual_status"`
	Status          GrowthStatus  `json:"status"`
	Suggestion      bool          `json:"suggestion"`
}
