package competency

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

func TestMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		years    *float64
		chapters *int
		want     float64
	}{
		{name: "nothing", want: 1.0},
		{name: "one year", years: floatPtr(1), want: 1.0},
		{name: "two years", years: floatPtr(2), want: 1.2},
		{name: "three years", years: floatPtr(3), want: 1.4},
		{name: "six years hits cap", years: floatPtr(6), want: 2.0},
		{name: "hundred years capped", years: floatPtr(100), want: 2.0},
		{name: "fractional year", years: floatPtr(0.5), want: 0.9},
		{name: "twenty chapters", chapters: intPtr(20), want: 2.0},
		{name: "nineteen chapters", chapters: intPtr(19), want: 1.5},
		{name: "eleven chapters", chapters: intPtr(11), want: 1.5},
		{name: "ten chapters", chapters: intPtr(10), want: 1.2},
		{name: "six chapters", chapters: intPtr(6), want: 1.2},
		{name: "five chapters", chapters: intPtr(5), want: 1.0},
		{name: "zero years falls through to chapters", years: floatPtr(0), chapters: intPtr(20), want: 2.0},
		{name: "negative years falls through", years: floatPtr(-3), chapters: intPtr(11), want: 1.5},
		{name: "years win over chapters", years: floatPtr(2), chapters: intPtr(50), want: 1.2},
		{name: "negative chapters", chapters: intPtr(-10), want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Multiplier(tt.years, tt.chapters), 1e-9)
		})
	}
}

func TestMatchActivity_ChapterTiers(t *testing.T) {
	translation := strPtr("translation")

	at20 := MatchActivity(translation, nil, intPtr(20), nil)
	assert.InDelta(t, 6.0, at20[types.TranslationTheory], 1e-9)
	assert.InDelta(t, 4.0, at20[types.LanguagesCommunication], 1e-9)
	assert.InDelta(t, 2.0, at20[types.BiblicalLanguages], 1e-9)

	at19 := MatchActivity(translation, nil, intPtr(19), nil)
	assert.InDelta(t, 4.5, at19[types.TranslationTheory], 1e-9)

	at5 := MatchActivity(translation, nil, intPtr(5), nil)
	assert.InDelta(t, 3.0, at5[types.TranslationTheory], 1e-9)
}

func TestMatchActivity_YearsScaling(t *testing.T) {
	facilitation := strPtr("facilitation")

	got := MatchActivity(facilitation, floatPtr(3), nil, nil)
	assert.InDelta(t, 3*1.4, got[types.ConsultingMentoring], 1e-9)
	assert.InDelta(t, 2*1.4, got[types.InterpersonalSkills], 1e-9)
	assert.InDelta(t, 1*1.4, got[types.PlanningQualityAssurance], 1e-9)

	capped := MatchActivity(facilitation, floatPtr(100), nil, nil)
	assert.InDelta(t, 6.0, capped[types.ConsultingMentoring], 1e-9)
}

func TestMatchActivity_UnknownTypeFallsBack(t *testing.T) {
	unknown := MatchActivity(strPtr("underwater_basketry"), nil, nil, nil)
	missing := MatchActivity(nil, nil, nil, nil)
	general := MatchActivity(strPtr("general_experience"), nil, nil, nil)

	assert.Equal(t, general, unknown)
	assert.Equal(t, general, missing)
	assert.Equal(t, Scores{
		types.InterpersonalSkills: 1,
		types.ReflectivePractice:  1,
	}, general)
}

func TestMatchActivity_DescriptionBoosts(t *testing.T) {
	got := MatchActivity(strPtr("general_experience"), nil, nil, strPtr("I worked as a mentor using new technology"))

	assert.Equal(t, Scores{
		types.InterpersonalSkills: 1,
		types.ReflectivePractice:  1,
		types.ConsultingMentoring: 1,
		types.AppliedTechnology:   1,
	}, got)
}

func TestMatchActivity_BoostsAreNotMultiplied(t *testing.T) {
	// translation base 3 scaled to 6, then the translate boost adds a flat 1
	got := MatchActivity(strPtr("translation"), nil, intPtr(25), strPtr("Helped Translate Mark"))
	assert.InDelta(t, 7.0, got[types.TranslationTheory], 1e-9)
}

func TestMatchActivity_BoostFiresOncePerEntry(t *testing.T) {
	got := MatchActivity(nil, nil, nil, strPtr("leader showing leadership, lead by example"))
	assert.Equal(t, 2.0, got[types.InterpersonalSkills])
}

func TestMatchActivity_TypeIsCaseSensitive(t *testing.T) {
	upper := MatchActivity(strPtr("TRANSLATION"), nil, nil, nil)
	assert.Equal(t, MatchActivity(nil, nil, nil, nil), upper)
}
