package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

func sampleAssessment() types.Assessment {
	return types.Assessment{
		RulesVersion: "2024.2",
		Competencies: []types.CompetencyScore{
			{CompetencyID: types.BiblicalLanguages, Score: 5, Status: types.StatusGrowing},
			{CompetencyID: types.TranslationTheory, Score: 3.5999999999999996, Status: types.StatusGrowing},
			{CompetencyID: types.AppliedTechnology, Score: 0, Status: types.StatusNotStarted},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw     string
		want    Format
		wantErr bool
	}{
		{raw: "table", want: FormatTable},
		{raw: "JSON", want: FormatJSON},
		{raw: " json ", want: FormatJSON},
		{raw: "yaml", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFormat(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "5", FormatScore(5))
	assert.Equal(t, "3.6", FormatScore(3.5999999999999996))
	assert.Equal(t, "0", FormatScore(0))
	assert.Equal(t, "0.9", FormatScore(0.9))
	assert.Equal(t, "13.33", FormatScore(13.333333))
}

func TestWriteAssessment_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAssessment(&buf, sampleAssessment(), FormatTable))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Rules version: 2024.2\n"))
	assert.Contains(t, out, "biblical_languages")
	assert.Contains(t, out, "3.6")
	assert.Contains(t, out, "not_started")
	assert.NotContains(t, out, "3.5999")
}

func TestWriteAssessment_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAssessment(&buf, sampleAssessment(), FormatJSON))

	var decoded types.Assessment
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "2024.2", decoded.RulesVersion)
	assert.Len(t, decoded.Competencies, 3)
	assert.Contains(t, buf.String(), "\n  \"rules_version\"")
}

func TestWriteProgress_Table(t *testing.T) {
	emerging := types.StatusEmerging
	rows := []types.CompetencyProgress{
		{
			CompetencyID:    types.BiblicalStudies,
			Score:           11,
			SuggestedStatus: types.StatusProficient,
			ManualStatus:    &emerging,
			Status:          types.StatusEmerging,
			Suggestion:      true,
		},
		{
			CompetencyID:    types.ReflectivePractice,
			SuggestedStatus: types.StatusNotStarted,
			Status:          types.StatusNotStarted,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProgress(&buf, rows, FormatTable))

	lines := strings.Split(buf.String(), "\n")
	var studies, reflective string
	for _, line := range lines {
		switch {
		case strings.Contains(line, "biblical_studies"):
			studies = line
		case strings.Contains(line, "reflective_practice"):
			reflective = line
		}
	}

	require.NotEmpty(t, studies)
	assert.Contains(t, studies, "proficient")
	assert.Contains(t, studies, "emerging")
	assert.Contains(t, studies, "review")

	require.NotEmpty(t, reflective)
	assert.Contains(t, reflective, "-")
	assert.NotContains(t, reflective, "review")
}

func TestWriteProgress_JSON(t *testing.T) {
	rows := []types.CompetencyProgress{{CompetencyID: types.BiblicalLanguages, Score: 5, SuggestedStatus: types.StatusGrowing, Status: types.StatusGrowing}}

	var buf bytes.Buffer
	require.NoError(t, WriteProgress(&buf, rows, FormatJSON))

	var decoded []types.CompetencyProgress
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil, nil))
}
