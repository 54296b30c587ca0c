package progress

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// MemoryStore is a Store kept in process memory. The server falls back to it when
// no database is configured; nothing survives a restart.
type MemoryStore struct {
	mu             sync.RWMutex
	facilitators   map[uuid.UUID]db.Facilitator
	order          []uuid.UUID
	qualifications map[uuid.UUID][]db.Qualification
	activities     map[uuid.UUID][]db.Activity
	statuses       map[uuid.UUID]map[types.CompetencyID]db.CompetencyStatus
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		facilitators:   make(map[uuid.UUID]db.Facilitator),
		qualifications: make(map[uuid.UUID][]db.Qualification),
		activities:     make(map[uuid.UUID][]db.Activity),
		statuses:       make(map[uuid.UUID]map[types.CompetencyID]db.CompetencyStatus),
	}
}

// CreateFacilitator adds a facilitator
func (m *MemoryStore) CreateFacilitator(_ context.Context, name, email string) (*db.Facilitator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.facilitators {
		if f.Email == email {
			return nil, fmt.Errorf("failed to create facilitator: email already exists: %s", email)
		}
	}

	f := db.Facilitator{ID: uuid.New(), Name: name, Email: email, CreatedAt: time.Now()}
	m.facilitators[f.ID] = f
	m.order = append(m.order, f.ID)
	return &f, nil
}

// GetFacilitator returns nil, nil when absent
func (m *MemoryStore) GetFacilitator(_ context.Context, id uuid.UUID) (*db.Facilitator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.facilitators[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

// ListFacilitatorIDs returns IDs in creation order
func (m *MemoryStore) ListFacilitatorIDs(_ context.Context) ([]uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]uuid.UUID(nil), m.order...), nil
}

// ListQualifications returns a copy of the stored qualifications
func (m *MemoryStore) ListQualifications(_ context.Context, facilitatorID uuid.UUID) ([]db.Qualification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]db.Qualification(nil), m.qualifications[facilitatorID]...), nil
}

// ListActivities returns a copy of the stored activities
func (m *MemoryStore) ListActivities(_ context.Context, facilitatorID uuid.UUID) ([]db.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]db.Activity(nil), m.activities[facilitatorID]...), nil
}

// CreateQualification appends a qualification
func (m *MemoryStore) CreateQualification(_ context.Context, facilitatorID uuid.UUID, q types.Qualification) (*db.Qualification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilitators[facilitatorID]; !ok {
		return nil, fmt.Errorf("failed to create qualification: unknown facilitator %s", facilitatorID)
	}

	stored := db.Qualification{
		ID:            uuid.New(),
		FacilitatorID: facilitatorID,
		CourseTitle:   q.CourseTitle,
		Description:   q.Description,
		CreatedAt:     time.Now(),
	}
	m.qualifications[facilitatorID] = append(m.qualifications[facilitatorID], stored)
	return &stored, nil
}

// CreateActivity appends an activity
func (m *MemoryStore) CreateActivity(_ context.Context, facilitatorID uuid.UUID, a types.Activity) (*db.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.facilitators[facilitatorID]; !ok {
		return nil, fmt.Errorf("failed to create activity: unknown facilitator %s", facilitatorID)
	}

	stored := db.Activity{
		ID:                uuid.New(),
		FacilitatorID:     facilitatorID,
		ActivityType:      a.ActivityType,
		YearsOfExperience: a.YearsOfExperience,
		ChaptersCount:     a.ChaptersCount,
		Description:       a.Description,
		CreatedAt:         time.Now(),
	}
	m.activities[facilitatorID] = append(m.activities[facilitatorID], stored)
	return &stored, nil
}

// ListCompetencyStatuses returns stored rows ordered by competency ID
func (m *MemoryStore) ListCompetencyStatuses(_ context.Context, facilitatorID uuid.UUID) ([]db.CompetencyStatus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.statuses[facilitatorID]
	out := make([]db.CompetencyStatus, 0, len(rows))
	for _, s := range rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompetencyID < out[j].CompetencyID })
	return out, nil
}

// SaveSuggestedStatuses upserts scores and suggestions, keeping manual statuses
func (m *MemoryStore) SaveSuggestedStatuses(_ context.Context, facilitatorID uuid.UUID, scores []types.CompetencyScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rowsFor(facilitatorID)
	now := time.Now()
	for _, s := range scores {
		row := rows[s.CompetencyID]
		row.FacilitatorID = facilitatorID
		row.CompetencyID = s.CompetencyID
		row.Score = s.Score
		row.SuggestedStatus = s.Status
		row.UpdatedAt = now
		rows[s.CompetencyID] = row
	}
	return nil
}

// SetManualStatus sets or clears one manual status
func (m *MemoryStore) SetManualStatus(_ context.Context, facilitatorID uuid.UUID, competencyID types.CompetencyID, status *types.GrowthStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rowsFor(facilitatorID)
	row, ok := rows[competencyID]
	if !ok {
		row = db.CompetencyStatus{
			FacilitatorID:   facilitatorID,
			CompetencyID:    competencyID,
			SuggestedStatus: types.StatusNotStarted,
		}
	}
	if status != nil {
		s := *status
		row.ManualStatus = &s
	} else {
		row.ManualStatus = nil
	}
	row.UpdatedAt = time.Now()
	rows[competencyID] = row
	return nil
}

// rowsFor must be called with the write lock held
func (m *MemoryStore) rowsFor(facilitatorID uuid.UUID) map[types.CompetencyID]db.CompetencyStatus {
	rows, ok := m.statuses[facilitatorID]
	if !ok {
		rows = make(map[types.CompetencyID]db.CompetencyStatus)
		m.statuses[facilitatorID] = rows
	}
	return rows
}
