// Package progress recalculates facilitators' competency statuses from their stored
// records and reconciles them with manually set statuses.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/shemaobt/translation-helper-sub001/internal/competency"
	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/logging"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// Store is the persistence the service needs; *db.DB implements it.
type Store interface {
	GetFacilitator(ctx context.Context, id uuid.UUID) (*db.Facilitator, error)
	ListFacilitatorIDs(ctx context.Context) ([]uuid.UUID, error)
	ListQualifications(ctx context.Context, facilitatorID uuid.UUID) ([]db.Qualification, error)
	ListActivities(ctx context.Context, facilitatorID uuid.UUID) ([]db.Activity, error)
	CreateQualification(ctx context.Context, facilitatorID uuid.UUID, q types.Qualification) (*db.Qualification, error)
	CreateActivity(ctx context.Context, facilitatorID uuid.UUID, a types.Activity) (*db.Activity, error)
	ListCompetencyStatuses(ctx context.Context, facilitatorID uuid.UUID) ([]db.CompetencyStatus, error)
	SaveSuggestedStatuses(ctx context.Context, facilitatorID uuid.UUID, scores []types.CompetencyScore) error
	SetManualStatus(ctx context.Context, facilitatorID uuid.UUID, competencyID types.CompetencyID, status *types.GrowthStatus) error
}

var _ Store = (*db.DB)(nil)

// Service provides recalculation and status management
type Service struct {
	store          Store
	engine         *competency.Engine
	logger         *slog.Logger
	maxConcurrency int
}

// NewService creates a Service. A nil engine uses the embedded ruleset, a nil logger discards output,
// and maxConcurrency below 1 means one facilitator at a time.
func NewService(store Store, engine *competency.Engine, logger *slog.Logger, maxConcurrency int) *Service {
	if engine == nil {
		engine = competency.Default()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Service{
		store:          store,
		engine:         engine,
		logger:         logger.With(slog.String(logging.FieldComponent, "progress")),
		maxConcurrency: maxConcurrency,
	}
}

// Engine returns the scoring engine in use
func (s *Service) Engine() *competency.Engine {
	return s.engine
}

func (s *Service) requireFacilitator(ctx context.Context, id uuid.UUID) error {
	f, err := s.store.GetFacilitator(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get facilitator: %w", err)
	}
	if f == nil {
		return &ErrFacilitatorNotFound{FacilitatorID: id}
	}
	return nil
}

// Progress returns the reconciled statuses without recalculating
func (s *Service) Progress(ctx context.Context, facilitatorID uuid.UUID) ([]types.CompetencyProgress, error) {
	if err := s.requireFacilitator(ctx, facilitatorID); err != nil {
		return nil, err
	}

	statuses, err := s.store.ListCompetencyStatuses(ctx, facilitatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	return Reconcile(statuses), nil
}

// Recalculate scores a facilitator's stored records, persists the suggested statuses
// and returns the reconciled view. Manual statuses are left untouched.
func (s *Service) Recalculate(ctx context.Context, facilitatorID uuid.UUID) ([]types.CompetencyProgress, error) {
	if err := s.requireFacilitator(ctx, facilitatorID); err != nil {
		return nil, err
	}
	return s.recalculate(ctx, facilitatorID)
}

func (s *Service) recalculate(ctx context.Context, facilitatorID uuid.UUID) ([]types.CompetencyProgress, error) {
	storedQuals, err := s.store.ListQualifications(ctx, facilitatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load qualifications: %w", err)
	}
	storedActs, err := s.store.ListActivities(ctx, facilitatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	quals := make([]types.Qualification, 0, len(storedQuals))
	for _, q := range storedQuals {
		quals = append(quals, q.ToDomain())
	}
	acts := make([]types.Activity, 0, len(storedActs))
	for _, a := range storedActs {
		acts = append(acts, a.ToDomain())
	}

	assessment := s.engine.Assess(quals, acts)

	if err := s.store.SaveSuggestedStatuses(ctx, facilitatorID, assessment.Competencies); err != nil {
		return nil, fmt.Errorf("failed to save suggested statuses: %w", err)
	}

	s.logger.Debug("recalculated competencies",
		slog.String(logging.FieldFacilitatorID, facilitatorID.String()),
		slog.String(logging.FieldRulesVersion, assessment.RulesVersion),
		slog.Int("qualifications", len(quals)),
		slog.Int("activities", len(acts)),
	)

	statuses, err := s.store.ListCompetencyStatuses(ctx, facilitatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	return Reconcile(statuses), nil
}

// RecalculateAll recalculates every facilitator, at most maxConcurrency at a time.
// The first failure cancels the remaining work. Returns how many facilitators completed.
func (s *Service) RecalculateAll(ctx context.Context) (int, error) {
	ids, err := s.store.ListFacilitatorIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list facilitators: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	var done atomic.Int64
	for _, id := range ids {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if _, err := s.recalculate(gCtx, id); err != nil {
				return fmt.Errorf("facilitator %s: %w", id, err)
			}
			done.Add(1)
			return nil
		})
	}

	err = g.Wait()
	completed := int(done.Load())

	s.logger.Info("bulk recalculation finished",
		slog.Int("facilitators", len(ids)),
		slog.Int("completed", completed),
		slog.Bool("failed", err != nil),
	)

	if err != nil {
		return completed, fmt.Errorf("bulk recalculation failed: %w", err)
	}
	return completed, nil
}

// SetManualStatus stores or clears (nil status) the manual status of one competency
// and returns the reconciled view.
func (s *Service) SetManualStatus(ctx context.Context, facilitatorID uuid.UUID, competencyID string, status *types.GrowthStatus) ([]types.CompetencyProgress, error) {
	id, err := types.ParseCompetencyID(competencyID)
	if err != nil {
		return nil, &ErrUnknownCompetency{Value: competencyID}
	}
	if status != nil && !status.Valid() {
		return nil, &ErrUnknownStatus{Value: string(*status)}
	}

	if err := s.requireFacilitator(ctx, facilitatorID); err != nil {
		return nil, err
	}

	if err := s.store.SetManualStatus(ctx, facilitatorID, id, status); err != nil {
		return nil, fmt.Errorf("failed to set manual status: %w", err)
	}

	attrs := []any{
		slog.String(logging.FieldFacilitatorID, facilitatorID.String()),
		slog.String("competency_id", string(id)),
	}
	if status != nil {
		attrs = append(attrs, slog.String("manual_status", string(*status)))
	}
	s.logger.Info("manual status updated", attrs...)

	statuses, err := s.store.ListCompetencyStatuses(ctx, facilitatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load statuses: %w", err)
	}
	return Reconcile(statuses), nil
}

// AddQualification stores a qualification and recalculates the facilitator
func (s *Service) AddQualification(ctx context.Context, facilitatorID uuid.UUID, q types.Qualification) (*db.Qualification, []types.CompetencyProgress, error) {
	if err := s.requireFacilitator(ctx, facilitatorID); err != nil {
		return nil, nil, err
	}

	stored, err := s.store.CreateQualification(ctx, facilitatorID, q)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store qualification: %w", err)
	}

	progress, err := s.recalculate(ctx, facilitatorID)
	if err != nil {
		return stored, nil, err
	}
	return stored, progress, nil
}

// AddActivity stores an activity and recalculates the facilitator
func (s *Service) AddActivity(ctx context.Context, facilitatorID uuid.UUID, a types.Activity) (*db.Activity, []types.CompetencyProgress, error) {
	if err := s.requireFacilitator(ctx, facilitatorID); err != nil {
		return nil, nil, err
	}

	stored, err := s.store.CreateActivity(ctx, facilitatorID, a)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store activity: %w", err)
	}

	progress, err := s.recalculate(ctx, facilitatorID)
	if err != nil {
		return stored, nil, err
	}
	return stored, progress, nil
}
