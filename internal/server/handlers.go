package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/db"
	"github.com/shemaobt/translation-helper-sub001/internal/logging"
	"github.com/shemaobt/translation-helper-sub001/internal/server/middleware"
	"github.com/shemaobt/translation-helper-sub001/internal/server/ratelimit"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// RateLimitInfo describes the public score allowance
type RateLimitInfo struct {
	Limit         int `json:"limit"`
	WindowSeconds int `json:"window_seconds"`
}

// PublicInfoResponse describes the scoring rules in effect
type PublicInfoResponse struct {
	RulesVersion  string               `json:"rules_version"`
	Competencies  []types.CompetencyID `json:"competencies"`
	Statuses      []types.GrowthStatus `json:"statuses"`
	ActivityTypes []string             `json:"activity_types"`
	RateLimit     *RateLimitInfo       `json:"rate_limit,omitempty"`
}

// ProgressResponse is a facilitator's reconciled competency view
type ProgressResponse struct {
	FacilitatorID uuid.UUID                  `json:"facilitator_id"`
	RulesVersion  string                     `json:"rules_version"`
	Competencies  []types.CompetencyProgress `json:"competencies"`
}

// QualificationResponse is returned after registering a qualification
type QualificationResponse struct {
	Qualification *db.Qualification `json:"qualification"`
	ProgressResponse
}

// ActivityResponse is returned after registering an activity
type ActivityResponse struct {
	Activity *db.Activity `json:"activity"`
	ProgressResponse
}

// RecalculateAllResponse reports a bulk recalculation
type RecalculateAllResponse struct {
	Recalculated int `json:"recalculated"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePublicInfo(w http.ResponseWriter, _ *http.Request) {
	rs := s.engine.Rules()
	resp := PublicInfoResponse{
		RulesVersion:  rs.Version,
		Competencies:  types.AllCompetencies(),
		Statuses:      types.AllGrowthStatuses(),
		ActivityTypes: rs.ActivityTypeNames(),
	}

	if s.rateConfig.Enabled {
		if endpoint := ratelimit.MatchEndpoint("/api/public/score", http.MethodPost, s.rateConfig.EndpointConfigs); endpoint != nil {
			resp.RateLimit = &RateLimitInfo{
				Limit:         endpoint.Limit,
				WindowSeconds: int(endpoint.Window.Seconds()),
			}
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleScore scores the posted records without storing anything
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	assessment := s.engine.Assess(req.Qualifications, req.Activities)

	logging.WithContext(r.Context(), s.logger).Debug("scored public request",
		slog.Int("qualifications", len(req.Qualifications)),
		slog.Int("activities", len(req.Activities)),
		slog.String(logging.FieldRulesVersion, assessment.RulesVersion),
	)

	s.jsonResponse(w, http.StatusOK, assessment)
}

func (s *Server) handleGetCompetencies(w http.ResponseWriter, r *http.Request) {
	facilitatorID, ok := s.authorizeFacilitator(w, r)
	if !ok {
		return
	}

	rows, err := s.service.Progress(r.Context(), facilitatorID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.progressResponse(facilitatorID, rows))
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	facilitatorID, ok := s.authorizeFacilitator(w, r)
	if !ok {
		return
	}

	rows, err := s.service.Recalculate(r.Context(), facilitatorID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.progressResponse(facilitatorID, rows))
}

// handleUpdateStatus sets or clears a manual status
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	facilitatorID, ok := s.authorizeFacilitator(w, r)
	if !ok {
		return
	}

	var req types.UpdateStatusRequest
	if !s.decode(w, r, &req) {
		return
	}

	status, err := req.Status()
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := s.service.SetManualStatus(r.Context(), facilitatorID, r.PathValue("competency_id"), status)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, s.progressResponse(facilitatorID, rows))
}

func (s *Server) handleAddQualification(w http.ResponseWriter, r *http.Request) {
	facilitatorID, ok := s.authorizeFacilitator(w, r)
	if !ok {
		return
	}

	var req types.CreateQualificationRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	stored, rows, err := s.service.AddQualification(r.Context(), facilitatorID, req.Qualification())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, QualificationResponse{
		Qualification:    stored,
		ProgressResponse: s.progressResponse(facilitatorID, rows),
	})
}

func (s *Server) handleAddActivity(w http.ResponseWriter, r *http.Request) {
	facilitatorID, ok := s.authorizeFacilitator(w, r)
	if !ok {
		return
	}

	var req types.CreateActivityRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	stored, rows, err := s.service.AddActivity(r.Context(), facilitatorID, req.Activity)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, ActivityResponse{
		Activity:         stored,
		ProgressResponse: s.progressResponse(facilitatorID, rows),
	})
}

// handleRecalculateAll recalculates every facilitator; admin only
func (s *Server) handleRecalculateAll(w http.ResponseWriter, r *http.Request) {
	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if !principal.IsAdmin() {
		s.errorResponse(w, http.StatusForbidden, "admin token required")
		return
	}

	completed, err := s.service.RecalculateAll(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RecalculateAllResponse{Recalculated: completed})
}

// authorizeFacilitator parses {id} and checks the caller may act on it.
// It writes the error response and returns false on failure.
func (s *Server) authorizeFacilitator(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	facilitatorID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid facilitator ID")
		return uuid.Nil, false
	}

	principal, err := middleware.GetPrincipal(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return uuid.Nil, false
	}

	if !principal.IsAdmin() && principal.GetFacilitatorID() != facilitatorID {
		s.serviceError(w, r, &ErrForbidden{FacilitatorID: facilitatorID})
		return uuid.Nil, false
	}

	return facilitatorID, true
}

func (s *Server) progressResponse(facilitatorID uuid.UUID, rows []types.CompetencyProgress) ProgressResponse {
	return ProgressResponse{
		FacilitatorID: facilitatorID,
		RulesVersion:  s.engine.Rules().Version,
		Competencies:  rows,
	}
}

// decode reads a bounded JSON body into dst
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !s.decode(w, r, dst) {
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return false
	}
	return true
}

// extractValidationErrors extracts validation error messages from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return (&ErrValidation{Field: ve.Field(), Message: ve.Tag()}).Error()
		}
	}
	return "validation error: invalid request"
}
