package competency

import (
	"math"
	"strings"

	"github.com/shemaobt/translation-helper-sub001/internal/rules"
)

const (
	// yearStep is the multiplier gained per year beyond the first
	yearStep = 0.2
	// maxMultiplier caps experience scaling regardless of input size
	maxMultiplier = 2.0
)

// Multiplier returns the experience scaling factor for an activity.
//
// Positive years win: 1 + (years-1)*0.2, capped at 2.0. Otherwise positive
// chapter counts are tiered (>=20: 2.0, >=11: 1.5, >=6: 1.2). Anything else,
// including negative inputs, stays at 1.0.
func Multiplier(yearsOfExperience *float64, chaptersCount *int) float64 {
	if yearsOfExperience != nil && *yearsOfExperience > 0 {
		return math.Min(1+(*yearsOfExperience-1)*yearStep, maxMultiplier)
	}

	if chaptersCount != nil && *chaptersCount > 0 {
		switch chapters := *chaptersCount; {
		case chapters >= 20:
			return 2.0
		case chapters >= 11:
			return 1.5
		case chapters >= 6:
			return 1.2
		}
	}

	return 1.0
}

// MatchActivity returns the competency weights contributed by one activity.
//
// The activity type's base impacts are scaled by Multiplier; a nil or unknown
// type uses the general_experience entry. Description keyword boosts then add a
// flat, unscaled bonus on top.
func (e *Engine) MatchActivity(activityType *string, yearsOfExperience *float64, chaptersCount *int, description *string) Scores {
	tag := rules.FallbackActivityType
	if activityType != nil {
		tag = *activityType
	}
	impacts, _ := e.rules.ActivityImpacts(tag)

	multiplier := Multiplier(yearsOfExperience, chaptersCount)

	result := make(Scores, len(impacts))
	for _, impact := range impacts {
		result[impact.CompetencyID] = float64(impact.Weight) * multiplier
	}

	if description != nil {
		text := strings.ToLower(*description)
		for _, boost := range e.rules.Boosts {
			if containsAny(text, boost.Keywords) {
				result[boost.CompetencyID] += float64(boost.Bonus)
			}
		}
	}

	return result
}
