package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

func statusPtr(s types.GrowthStatus) *types.GrowthStatus { return &s }

func findProgress(t *testing.T, rows []types.CompetencyProgress, id types.CompetencyID) types.CompetencyProgress {
	t.Helper()
	for _, r := range rows {
		if r.CompetencyID == id {
			return r
		}
	}
	require.Failf(t, "competency missing", "%s not in result", id)
	return types.CompetencyProgress{}
}

func TestReconcile_Empty(t *testing.T) {
	rows := Reconcile(nil)
	require.Len(t, rows, len(types.AllCompetencies()))
	for i, id := range types.AllCompetencies() {
		assert.Equal(t, id, rows[i].CompetencyID)
		assert.Equal(t, types.StatusNotStarted, rows[i].Status)
		assert.Equal(t, types.StatusNotStarted, rows[i].SuggestedStatus)
		assert.Nil(t, rows[i].ManualStatus)
		assert.False(t, rows[i].Suggestion)
	}
}

func TestReconcile(t *testing.T) {
	tests := []struct {
		name           string
		suggested      types.GrowthStatus
		manual         *types.GrowthStatus
		wantStatus     types.GrowthStatus
		wantSuggestion bool
	}{
		{name: "no manual uses suggestion", suggested: types.StatusGrowing, wantStatus: types.StatusGrowing},
		{name: "manual below suggestion", suggested: types.StatusProficient, manual: statusPtr(types.StatusEmerging), wantStatus: types.StatusEmerging, wantSuggestion: true},
		{name: "manual equal to suggestion", suggested: types.StatusGrowing, manual: statusPtr(types.StatusGrowing), wantStatus: types.StatusGrowing},
		{name: "manual above suggestion", suggested: types.StatusEmerging, manual: statusPtr(types.StatusAdvanced), wantStatus: types.StatusAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Reconcile([]db.CompetencyStatus{{
				CompetencyID:    types.BiblicalLanguages,
				Score:           6,
				SuggestedStatus: tt.suggested,
				ManualStatus:    tt.manual,
			}})

			got := findProgress(t, rows, types.BiblicalLanguages)
			assert.Equal(t, 6.0, got.Score)
			assert.Equal(t, tt.suggested, got.SuggestedStatus)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantSuggestion, got.Suggestion)
		})
	}
}

func TestReconcile_ManualOnlyRow(t *testing.T) {
	// A manual status set before any calculation has no suggestion yet
	rows := Reconcile([]db.CompetencyStatus{{
		CompetencyID: types.AppliedTechnology,
		ManualStatus: statusPtr(types.StatusGrowing),
	}})

	got := findProgress(t, rows, types.AppliedTechnology)
	assert.Equal(t, types.StatusNotStarted, got.SuggestedStatus)
	assert.Equal(t, types.StatusGrowing, got.Status)
	assert.False(t, got.Suggestion)
}
