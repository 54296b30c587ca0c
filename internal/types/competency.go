// Package types provides type definitions for structured data used throughout the competency scoring system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// CompetencyID identifies one of the canonical facilitator competencies
type CompetencyID string

// Canonical competencies, in display order
const (
	InterpersonalSkills        CompetencyID = "interpersonal_skills"
	InterculturalCommunication CompetencyID = "intercultural_communication"
	MultimodalSkills           CompetencyID = "multimodal_skills"
	TranslationTheory          CompetencyID = "translation_theory"
	LanguagesCommunication     CompetencyID = "languages_communication"
	BiblicalLanguages          CompetencyID = "biblical_languages"
	BiblicalStudies            CompetencyID = "biblical_studies"
	PlanningQualityAssurance   CompetencyID = "planning_quality_assurance"
	ConsultingMentoring        CompetencyID = "consulting_mentoring"
	AppliedTechnology          CompetencyID = "applied_technology"
	ReflectivePractice         CompetencyID = "reflective_practice"
)

//nolint:gochecknoglobals // closed competency set
var allCompetencies = []CompetencyID{
	InterpersonalSkills,
	InterculturalCommunication,
	MultimodalSkills,
	TranslationTheory,
	LanguagesCommunication,
	BiblicalLanguages,
	BiblicalStudies,
	PlanningQualityAssurance,
	ConsultingMentoring,
	AppliedTechnology,
	ReflectivePractice,
}

// AllCompetencies returns the canonical competencies in display order.
// The returned slice is a copy and may be modified by the caller.
func AllCompetencies() []CompetencyID {
	out := make([]CompetencyID, len(allCompetencies))
	copy(out, allCompetencies)
	return out
}

// Valid reports whether id is one of the canonical competencies
func (id CompetencyID) Valid() bool {
	for _, c := range allCompetencies {
		if c == id {
			return true
		}
	}
	return false
}

// ParseCompetencyID converts a raw string into a CompetencyID, rejecting unknown ids
func ParseCompetencyID(raw string) (CompetencyID, error) {
	id := CompetencyID(raw)
	if !id.Valid() {
		return "", fmt.Errorf("unknown competency: %q", raw)
	}
	return id, nil
}

// GrowthStatus is the ordinal growth level derived from a competency score
type GrowthStatus string

// Growth statuses, lowest to highest
const (
	StatusNotStarted GrowthStatus = "not_started"
	StatusEmerging   GrowthStatus = "emerging"
	StatusGrowing    GrowthStatus = "growing"
	StatusProficient GrowthStatus = "proficient"
	StatusAdvanced   GrowthStatus = "advanced"
)

//nolint:gochecknoglobals // ordinal lookup
var statusRank = map[GrowthStatus]int{
	StatusNotStarted: 0,
	StatusEmerging:   1,
	StatusGrowing:    2,
	StatusProficient: 3,
	StatusAdvanced:   4,
}

// AllGrowthStatuses returns every status from lowest to highest.
func AllGrowthStatuses() []GrowthStatus {
	return []GrowthStatus{StatusNotStarted, StatusEmerging, StatusGrowing, StatusProficient, StatusAdvanced}
}

// Rank returns the ordinal position of the status, or -1 if it is unknown.
func (s GrowthStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// Less reports whether s ranks below other
func (s GrowthStatus) Less(other GrowthStatus) bool {
	return s.Rank() < other.Rank()
}

// Valid reports whether s is a known growth status
func (s GrowthStatus) Valid() bool {
	return s.Rank() >= 0
}

// ParseGrowthStatus converts a raw string into a GrowthStatus, rejecting unknown values
func ParseGrowthStatus(raw string) (GrowthStatus, error) {
	s := GrowthStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown growth status: %q", raw)
	}
	return s, nil
}
