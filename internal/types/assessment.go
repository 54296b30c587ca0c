//nolint:revive // types is a standard Go package name pattern
package types

// CompetencyScore is one competency's accumulated score and derived status
type CompetencyScore struct {
	CompetencyID CompetencyID `json:"competency_id"`
	Score        float64      `json:"score"`
	Status       GrowthStatus `json:"status"`
}

// Assessment is the full scoring result for one person.
// Competencies lists every canonical competency, including zero scores.
type Assessment struct {
	RulesVersion string            `json:"rules_version"`
	Competencies []CompetencyScore `json:"competencies"`
}

// Lookup returns the row for the given competency
func (a *Assessment) Lookup(id CompetencyID) (CompetencyScore, bool) {
	for _, c := range a.Competencies {
		if c.CompetencyID == id {
			return c, true
		}
	}
	return CompetencyScore{}, false
}
