package competency

import (
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// Upper bounds (inclusive) of each growth band
const (
	emergingMax   = 3.0
	growingMax    = 7.0
	proficientMax = 12.0
)

// Aggregate sums the contributions of every qualification and activity.
// Addition is the only combining step, so input order never changes the result.
// Inputs are not modified; activities may be nil.
func (e *Engine) Aggregate(qualifications []types.Qualification, activities []types.Activity) Scores {
	totals := make(Scores)

	for _, q := range qualifications {
		totals.add(e.MatchQualification(q.CourseTitle, q.Description))
	}

	for _, a := range activities {
		totals.add(e.MatchActivity(a.ActivityType, a.YearsOfExperience, a.ChaptersCount, a.Description))
	}

	return totals
}

// Classify maps a score onto a growth status. Band upper bounds are inclusive,
// so 3, 7 and 12 belong to the lower band. Scores at or below zero are not_started.
func Classify(score float64) types.GrowthStatus {
	switch {
	case score <= 0:
		return types.StatusNotStarted
	case score <= emergingMax:
		return types.StatusEmerging
	case score <= growingMax:
		return types.StatusGrowing
	case score <= proficientMax:
		return types.StatusProficient
	default:
		return types.StatusAdvanced
	}
}

// ClassifyAll classifies every score in the map
func ClassifyAll(scores Scores) map[types.CompetencyID]types.GrowthStatus {
	statuses := make(map[types.CompetencyID]types.GrowthStatus, len(scores))
	for id, score := range scores {
		statuses[id] = Classify(score)
	}
	return statuses
}

// Assess aggregates and classifies, returning one row per canonical competency
// in display order. Competencies without contributions appear with a zero score.
func (e *Engine) Assess(qualifications []types.Qualification, activities []types.Activity) types.Assessment {
	scores := e.Aggregate(qualifications, activities)

	all := types.AllCompetencies()
	rows := make([]types.CompetencyScore, 0, len(all))
	for _, id := range all {
		score := scores[id]
		rows = append(rows, types.CompetencyScore{
			CompetencyID: id,
			Score:        score,
			Status:       Classify(score),
		})
	}

	return types.Assessment{
		RulesVersion: e.rules.Version,
		Competencies: rows,
	}
}
