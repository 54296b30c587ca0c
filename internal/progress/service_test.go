package progress

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestService(t *testing.T) (*Service, *MemoryStore, uuid.UUID) {
	t.Helper()
	store := NewMemoryStore()
	f, err := store.CreateFacilitator(context.Background(), "Ana", "ana@example.com")
	require.NoError(t, err)
	return NewService(store, nil, nil, 2), store, f.ID
}

func TestService_RecalculateUnknownFacilitator(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Recalculate(context.Background(), uuid.New())
	require.Error(t, err)

	var notFound *ErrFacilitatorNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestService_AddQualificationRecalculates(t *testing.T) {
	svc, _, id := newTestService(t)
	ctx := context.Background()

	stored, rows, err := svc.AddQualification(ctx, id, types.Qualification{CourseTitle: "Hebrew Exegesis Intensive"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, id, stored.FacilitatorID)

	languages := findProgress(t, rows, types.BiblicalLanguages)
	assert.Equal(t, 5.0, languages.Score)
	assert.Equal(t, types.StatusGrowing, languages.Status)

	tech := findProgress(t, rows, types.AppliedTechnology)
	assert.Equal(t, 0.0, tech.Score)
	assert.Equal(t, types.StatusNotStarted, tech.Status)

	// Persisted view matches
	again, err := svc.Progress(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}

func TestService_AddActivityRecalculates(t *testing.T) {
	svc, _, id := newTestService(t)

	_, rows, err := svc.AddActivity(context.Background(), id, types.Activity{
		ActivityType:  strPtr("translation"),
		ChaptersCount: intPtr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, 6.0, findProgress(t, rows, types.TranslationTheory).Score)
	assert.Equal(t, types.StatusGrowing, findProgress(t, rows, types.TranslationTheory).Status)
}

func TestService_ManualStatusSurvivesRecalculation(t *testing.T) {
	svc, _, id := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.AddQualification(ctx, id, types.Qualification{CourseTitle: "Hebrew Exegesis Intensive"})
	require.NoError(t, err)

	emerging := types.StatusEmerging
	rows, err := svc.SetManualStatus(ctx, id, string(types.BiblicalStudies), &emerging)
	require.NoError(t, err)

	studies := findProgress(t, rows, types.BiblicalStudies)
	assert.Equal(t, types.StatusEmerging, studies.Status)
	assert.Equal(t, types.StatusGrowing, studies.SuggestedStatus)
	assert.True(t, studies.Suggestion)

	// More evidence raises the suggestion but never the manual status
	_, rows, err = svc.AddQualification(ctx, id, types.Qualification{CourseTitle: "New Testament Theology"})
	require.NoError(t, err)

	studies = findProgress(t, rows, types.BiblicalStudies)
	assert.Equal(t, types.StatusEmerging, studies.Status)
	assert.Equal(t, types.StatusProficient, studies.SuggestedStatus)
	assert.True(t, studies.Suggestion)

	// Clearing restores the calculated status
	rows, err = svc.SetManualStatus(ctx, id, string(types.BiblicalStudies), nil)
	require.NoError(t, err)
	studies = findProgress(t, rows, types.BiblicalStudies)
	assert.Nil(t, studies.ManualStatus)
	assert.Equal(t, types.StatusProficient, studies.Status)
	assert.False(t, studies.Suggestion)
}

func TestService_SetManualStatusValidation(t *testing.T) {
	svc, _, id := newTestService(t)
	ctx := context.Background()

	_, err := svc.SetManualStatus(ctx, id, "juggling", nil)
	var unknownCompetency *ErrUnknownCompetency
	require.True(t, errors.As(err, &unknownCompetency))
	assert.Equal(t, "juggling", unknownCompetency.Value)

	bogus := types.GrowthStatus("expert")
	_, err = svc.SetManualStatus(ctx, id, string(types.BiblicalLanguages), &bogus)
	var unknownStatus *ErrUnknownStatus
	assert.True(t, errors.As(err, &unknownStatus))

	growing := types.StatusGrowing
	_, err = svc.SetManualStatus(ctx, uuid.New(), string(types.BiblicalLanguages), &growing)
	var notFound *ErrFacilitatorNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestService_RecalculateAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		f, err := store.CreateFacilitator(ctx, "F", fmt.Sprintf("f%d@example.com", i))
		require.NoError(t, err)
		_, err = store.CreateQualification(ctx, f.ID, types.Qualification{CourseTitle: "Greek I"})
		require.NoError(t, err)
	}

	svc := NewService(store, nil, nil, 2)
	completed, err := svc.RecalculateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, completed)

	ids, err := store.ListFacilitatorIDs(ctx)
	require.NoError(t, err)
	for _, id := range ids {
		rows, err := svc.Progress(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 5.0, findProgress(t, rows, types.BiblicalLanguages).Score)
	}
}

func TestService_RecalculateAllEmpty(t *testing.T) {
	svc := NewService(NewMemoryStore(), nil, nil, 0)
	completed, err := svc.RecalculateAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, completed)
}

// failingStore rejects saves for one facilitator
type failingStore struct {
	*MemoryStore
	failFor uuid.UUID
}

func (f *failingStore) SaveSuggestedStatuses(ctx context.Context, id uuid.UUID, scores []types.CompetencyScore) error {
	if id == f.failFor {
		return errors.New("disk full")
	}
	return f.MemoryStore.SaveSuggestedStatuses(ctx, id, scores)
}

func TestService_RecalculateAllStopsOnError(t *testing.T) {
	mem := NewMemoryStore()
	ctx := context.Background()

	bad, err := mem.CreateFacilitator(ctx, "Bad", "bad@example.com")
	require.NoError(t, err)
	_, err = mem.CreateFacilitator(ctx, "Good", "good@example.com")
	require.NoError(t, err)

	store := &failingStore{MemoryStore: mem, failFor: bad.ID}
	svc := NewService(store, nil, nil, 1)

	completed, err := svc.RecalculateAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Contains(t, err.Error(), bad.ID.String())
	assert.Less(t, completed, 2)
}
