// Package competency scores a facilitator's qualifications and activities against
// the competency rule tables and classifies each total into a growth status.
//
// An Engine is immutable once built and safe for concurrent use.
package competency

import (
	"github.com/shemaobt/translation-helper-sub001/internal/rules"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// Scores maps competencies to accumulated points.
// Competencies with no contribution are absent.
type Scores map[types.CompetencyID]float64

// add accumulates other into s
func (s Scores) add(other Scores) {
	for id, weight := range other {
		s[id] += weight
	}
}

// Engine evaluates records against one ruleset
type Engine struct {
	rules *rules.Ruleset
}

// New creates an engine for the given ruleset; nil selects the embedded default.
func New(rs *rules.Ruleset) *Engine {
	if rs == nil {
		rs = rules.Default()
	}
	return &Engine{rules: rs}
}

// Rules returns the ruleset the engine scores with
func (e *Engine) Rules() *rules.Ruleset {
	return e.rules
}

// Default returns an engine over the embedded ruleset
func Default() *Engine {
	return New(nil)
}

// MatchQualification scores a qualification with the default ruleset.
func MatchQualification(courseTitle string, description *string) Scores {
	return Default().MatchQualification(courseTitle, description)
}

// MatchActivity scores an activity with the default ruleset.
func MatchActivity(activityType *string, yearsOfExperience *float64, chaptersCount *int, description *string) Scores {
	return Default().MatchActivity(activityType, yearsOfExperience, chaptersCount, description)
}

// Aggregate sums all contributions with the default ruleset.
func Aggregate(qualifications []types.Qualification, activities []types.Activity) Scores {
	return Default().Aggregate(qualifications, activities)
}

// Assess scores and classifies with the default ruleset.
func Assess(qualifications []types.Qualification, activities []types.Activity) types.Assessment {
	return Default().Assess(qualifications, activities)
}
