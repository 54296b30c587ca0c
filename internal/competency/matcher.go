package competency

import (
	"strings"
)

// MatchQualification returns the competency weights contributed by one qualification.
//
// The title and description are joined and lowercased. A pattern fires when any
// of its keywords is a substring of that text; word boundaries are deliberately
// ignored, so "bible" also matches "biblestudies". Every fired pattern adds all of
// its impacts, summed with other fired patterns. No match yields an empty map.
func (e *Engine) MatchQualification(courseTitle string, description *string) Scores {
	text := courseTitle
	if description != nil {
		text += " " + *description
	}
	text = strings.ToLower(text)

	result := make(Scores)
	for _, pattern := range e.rules.Patterns {
		if !containsAny(text, pattern.Keywords) {
			continue
		}
		for _, impact := range pattern.Impacts {
			result[impact.CompetencyID] += float64(impact.Weight)
		}
	}

	return result
}

// containsAny reports whether text contains at least one keyword.
// Empty keywords never match.
func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if keyword != "" && strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
