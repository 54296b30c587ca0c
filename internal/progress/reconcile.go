package progress

import (
	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// Reconcile merges stored statuses into one row per canonical competency, in display order.
// Competencies without a stored row are reported as zero and not_started.
func Reconcile(statuses []db.CompetencyStatus) []types.CompetencyProgress {
	byID := make(map[types.CompetencyID]db.CompetencyStatus, len(statuses))
	for _, s := range statuses {
		byID[s.CompetencyID] = s
	}

	all := types.AllCompetencies()
	out := make([]types.CompetencyProgress, 0, len(all))
	for _, id := range all {
		stored, ok := byID[id]
		if !ok {
			stored = db.CompetencyStatus{CompetencyID: id, SuggestedStatus: types.StatusNotStarted}
		}
		out = append(out, reconcileOne(stored))
	}
	return out
}

func reconcileOne(s db.CompetencyStatus) types.CompetencyProgress {
	suggested := s.SuggestedStatus
	if suggested == "" {
		suggested = types.StatusNotStarted
	}

	p := types.CompetencyProgress{
		CompetencyID:    s.CompetencyID,
		Score:           s.Score,
		SuggestedStatus: suggested,
		ManualStatus:    s.ManualStatus,
		Status:          suggested,
	}

	if s.ManualStatus != nil {
		p.Status = *s.ManualStatus
		p.Suggestion = s.ManualStatus.Less(suggested)
	}

	return p
}
