package rules

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shemaobt/translation-helper-sub001/internal/schemas"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

func TestDefault_Loads(t *testing.T) {
	rs := Default()
	require.NotNil(t, rs)
	assert.NotEmpty(t, rs.Version)
	assert.NotEmpty(t, rs.Patterns)
	assert.Len(t, rs.Boosts, 5)

	// Same instance on every call
	assert.Same(t, rs, Default())
}

func TestDefault_ActivityTypes(t *testing.T) {
	rs := Default()
	assert.Equal(t, []string{
		"facilitation",
		"general_experience",
		"indigenous_work",
		"school_work",
		"teaching",
		"translation",
	}, rs.ActivityTypeNames())
}

func TestDefault_KeywordsAreLowercase(t *testing.T) {
	rs := Default()
	for _, p := range rs.Patterns {
		for _, k := range p.Keywords {
			assert.Equal(t, strings.ToLower(k), k, "pattern %s keyword %q", p.Name, k)
		}
	}
	for _, b := range rs.Boosts {
		for _, k := range b.Keywords {
			assert.Equal(t, strings.ToLower(k), k)
		}
	}
}

func TestDefault_HebrewPattern(t *testing.T) {
	rs := Default()

	var found *Pattern
	for i := range rs.Patterns {
		for _, k := range rs.Patterns[i].Keywords {
			if k == "hebrew" {
				found = &rs.Patterns[i]
			}
		}
	}
	require.NotNil(t, found, "a pattern must carry the hebrew keyword")

	weights := make(map[types.CompetencyID]int)
	for _, impact := range found.Impacts {
		weights[impact.CompetencyID] = impact.Weight
	}
	assert.Equal(t, 5, weights[types.BiblicalLanguages])
	assert.Equal(t, 3, weights[types.BiblicalStudies])
}

func TestDefault_DescriptionBoosts(t *testing.T) {
	rs := Default()

	expected := map[types.CompetencyID][]string{
		types.InterpersonalSkills:        {"lead", "leader", "leadership"},
		types.ConsultingMentoring:        {"mentor", "coach", "train"},
		types.TranslationTheory:          {"translation", "translate"},
		types.InterculturalCommunication: {"culture", "cultural", "cross-cultural"},
		types.AppliedTechnology:          {"technology", "software", "digital"},
	}

	for _, b := range rs.Boosts {
		want, ok := expected[b.CompetencyID]
		require.True(t, ok, "unexpected boost for %s", b.CompetencyID)
		assert.Equal(t, want, b.Keywords)
		assert.Equal(t, 1, b.Bonus)
	}
}

func TestActivityImpacts_Fallback(t *testing.T) {
	rs := Default()

	impacts, known := rs.ActivityImpacts("translation")
	assert.True(t, known)
	assert.NotEmpty(t, impacts)

	fallback, known := rs.ActivityImpacts("some_unrecognized_tag")
	assert.False(t, known)
	assert.Equal(t, rs.ActivityTypes[FallbackActivityType], fallback)
}

func TestParse_NormalizesKeywords(t *testing.T) {
	doc := `{
		"version": "t",
		"patterns": [{"name": "p", "keywords": ["HeBrEw"], "impacts": [{"competency_id": "biblical_languages", "weight": 5}]}],
		"activity_types": {"general_experience": [{"competency_id": "interpersonal_skills", "weight": 1}]},
		"description_boosts": [{"keywords": ["LEAD"], "competency_id": "interpersonal_skills", "bonus": 1}]
	}`

	rs, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"hebrew"}, rs.Patterns[0].Keywords)
	assert.Equal(t, []string{"lead"}, rs.Boosts[0].Keywords)
}

func TestParse_SchemaViolation(t *testing.T) {
	_, err := Parse([]byte(`{"version": "t"}`))
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestParse_DuplicateActivityCompetency(t *testing.T) {
	doc := `{
		"version": "t",
		"patterns": [{"name": "p", "keywords": ["a"], "impacts": [{"competency_id": "biblical_languages", "weight": 5}]}],
		"activity_types": {
			"general_experience": [{"competency_id": "interpersonal_skills", "weight": 1}],
			"translation": [
				{"competency_id": "translation_theory", "weight": 3},
				{"competency_id": "translation_theory", "weight": 2}
			]
		},
		"description_boosts": []
	}`

	_, err := Parse([]byte(doc))
	require.Error(t, err)

	var rulesetErr *RulesetError
	require.True(t, errors.As(err, &rulesetErr))
	assert.Contains(t, rulesetErr.Error(), "more than once")
}

func TestValidate_StructConstraints(t *testing.T) {
	rs := &Ruleset{
		Version: "t",
		Patterns: []Pattern{
			{Name: "p", Keywords: []string{"a"}, Impacts: []Impact{{CompetencyID: "bogus", Weight: 2}}},
		},
		ActivityTypes: map[string][]Impact{
			FallbackActivityType: {{CompetencyID: types.InterpersonalSkills, Weight: 1}},
		},
	}

	err := rs.Validate()
	require.Error(t, err)
	var rulesetErr *RulesetError
	assert.True(t, errors.As(err, &rulesetErr))

	rs.Patterns[0].Impacts[0].CompetencyID = types.BiblicalLanguages
	assert.NoError(t, rs.Validate())

	delete(rs.ActivityTypes, FallbackActivityType)
	rs.ActivityTypes["translation"] = []Impact{{CompetencyID: types.TranslationTheory, Weight: 3}}
	assert.Error(t, rs.Validate(), "fallback activity type is mandatory")
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "rules.json")
	require.NoError(t, os.WriteFile(path, DefaultDocument(), 0600))

	rs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Version, rs.Version)
	assert.NotSame(t, Default(), rs)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("/nonexistent/rules.json")
	assert.Error(t, err)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	rs, err := Load("")
	require.NoError(t, err)
	assert.Same(t, Default(), rs)
}
