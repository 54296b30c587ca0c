package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/shemaobt/translation-helper-sub001/internal/competency"
	"github.com/shemaobt/translation-helper-sub001/internal/config"
	"github.com/shemaobt/translation-helper-sub001/internal/logging"
	"github.com/shemaobt/translation-helper-sub001/internal/progress"
	"github.com/shemaobt/translation-helper-sub001/internal/server/middleware"
	"github.com/shemaobt/translation-helper-sub001/internal/server/ratelimit"
)

// RequestIDHeader carries the per-request correlation ID
const RequestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	service     *progress.Service
	engine      *competency.Engine
	jwtService  *JWTService
	rateLimiter *ratelimit.Limiter
	rateConfig  *ratelimit.Config
	validator   *validator.Validate
	logger      *slog.Logger
	onClose     func()
}

// Config holds server configuration
type Config struct {
	Port      int
	Service   *progress.Service
	JWT       *config.JWTConfig
	APIKeys   *config.APIKeyConfig
	RateLimit *ratelimit.Config // nil loads RATE_LIMIT_* from the environment
	Logger    *slog.Logger
	OnClose   func() // runs after shutdown, e.g. to close the database pool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, fmt.Errorf("progress service is required")
	}
	if cfg.JWT == nil {
		return nil, fmt.Errorf("JWT config is required")
	}
	if err := cfg.JWT.Validate(); err != nil {
		return nil, fmt.Errorf("invalid JWT config: %w", err)
	}
	if cfg.APIKeys == nil {
		return nil, fmt.Errorf("API key config is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		service:     cfg.Service,
		engine:      cfg.Service.Engine(),
		jwtService:  NewJWTService(cfg.JWT),
		rateLimiter: ratelimit.NewLimiter(rateConfig),
		rateConfig:  rateConfig,
		validator:   validator.New(),
		logger:      logger.With(slog.String(logging.FieldComponent, "server")),
		onClose:     cfg.OnClose,
	}

	if !cfg.APIKeys.Enabled() {
		s.logger.Warn("no API keys configured, public score endpoint will reject every request")
	}

	requireToken := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	requireKey := middleware.APIKeyMiddleware(cfg.APIKeys)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Public endpoints
	mux.HandleFunc("GET /api/public/info", s.handlePublicInfo)
	mux.Handle("POST /api/public/score", requireKey(http.HandlerFunc(s.handleScore)))

	// Facilitator endpoints
	mux.Handle("GET /api/facilitators/{id}/competencies", requireToken(http.HandlerFunc(s.handleGetCompetencies)))
	mux.Handle("POST /api/facilitators/{id}/competencies/recalculate", requireToken(http.HandlerFunc(s.handleRecalculate)))
	mux.Handle("PUT /api/facilitators/{id}/competencies/{competency_id}/status", requireToken(http.HandlerFunc(s.handleUpdateStatus)))
	mux.Handle("POST /api/facilitators/{id}/qualifications", requireToken(http.HandlerFunc(s.handleAddQualification)))
	mux.Handle("POST /api/facilitators/{id}/activities", requireToken(http.HandlerFunc(s.handleAddActivity)))

	// Admin endpoints
	mux.Handle("POST /api/admin/recalculate", requireToken(http.HandlerFunc(s.handleRecalculateAll)))

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and runs OnClose
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.onClose != nil {
		s.onClose()
		s.onClose = nil
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.logger.Warn("rate limit exceeded",
				slog.String("client", clientID),
				slog.String("path", r.URL.Path),
				slog.Int("limit", info.Limit),
			)
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging assigns a request ID and logs each completed request
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := logging.WithRequestID(r.Context(), requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logging.WithContext(ctx, s.logger).Info("request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps err to a status; internal errors are logged and not echoed
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logging.WithContext(r.Context(), s.logger).Error("request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
