package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/lift/internal/completion"
	"github.com/jonathan/lift/internal/config"
	"github.com/jonathan/lift/internal/llm"
	"github.com/jonathan/lift/internal/observability"
	"github.com/jonathan/lift/internal/pipeline"
	"github.com/jonathan/lift/internal/preferences"
	"github.com/jonathan/lift/internal/server/middleware"
	"github.com/jonathan/lift/internal/server/ratelimit"
	"github.com/jonathan/lift/internal/templates"
)

// requestIDHeader carries the request ID in and out of the service
const requestIDHeader = "X-Request-ID"

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	handler        http.Handler
	logger         *slog.Logger
	generator      *pipeline.Generator
	preferences    *preferences.Service
	storeCloser    io.Closer
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	validate       *validator.Validate
	corsOrigins    []string
	maxUploadBytes int64
}

// Options supplies collaborators that would otherwise be built from configuration
type Options struct {
	Logger *slog.Logger
	// Resolver overrides the provider resolver built from cfg
	Resolver *llm.Resolver
	// Store overrides the preference store opened from cfg
	Store     preferences.Store
	Rand      templates.Rand
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(ctx context.Context, cfg *config.Config, opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = llm.NewResolver(cfg.LLMConfig(), logger)
	}

	s := &Server{
		logger:         logger,
		validate:       newValidator(),
		corsOrigins:    cfg.CORSOrigins,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = config.DefaultMaxUploadBytes
	}

	store := opts.Store
	if store == nil {
		opened, closer, err := OpenStore(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		store = opened
		s.storeCloser = closer
	}
	s.preferences = preferences.NewService(store, cfg.PreferenceCacheTTL.Duration, logger)

	orchestrator := completion.New(resolver, completion.Options{
		Timeout: cfg.CompletionTimeout.Duration,
		Model:   cfg.Model,
		Rand:    opts.Rand,
		Logger:  logger,
	})
	s.generator = pipeline.New(orchestrator, pipeline.Options{
		NotesTimeout: cfg.NotesTimeout.Duration,
		Rand:         opts.Rand,
		Logger:       logger,
	})

	jwtConfig, err := cfg.JWT()
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig != nil {
		s.jwtService = NewJWTService(jwtConfig)
	} else {
		logger.Warn("jwt_secret not set, API requests are anonymous")
	}

	rateConfig := opts.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	// API routes, behind bearer auth when configured
	api := http.NewServeMux()
	api.HandleFunc("POST /api/career", s.handleCareer)
	api.HandleFunc("POST /api/notes", s.handleNotes)
	api.HandleFunc("POST /api/notes/quiz", s.handleQuiz)
	api.HandleFunc("POST /api/notes/extract", s.handleExtract)
	api.HandleFunc("GET /api/preferences", s.handleGetPreferences)
	api.HandleFunc("PUT /api/preferences", s.handlePutPreferences)

	mux := http.NewServeMux()
	mux.Handle("/api/", s.withAuth(api))
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.Close()
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	s.logger.Info("server stopped")
	return nil
}

// Close releases the rate limiter and the preference store
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	s.closeStore()
}

func (s *Server) closeStore() {
	if s.storeCloser == nil {
		return
	}
	if err := s.storeCloser.Close(); err != nil {
		s.logger.Error("failed to close preference store", slog.String("error", err.Error()))
	}
	s.storeCloser = nil
}

// withAuth requires a bearer token when JWT auth is configured
func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// withCORS adds CORS headers. An empty origin list allows any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.corsOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.corsOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for request logs
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging assigns a request ID, stores a request-scoped logger in the
// context, and logs each completed request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = observability.NewRequestID()
		}
		w.Header().Set(requestIDHeader, requestID)

		logger := s.logger.With(slog.String("request_id", requestID))
		ctx := observability.WithRequestID(r.Context(), requestID)
		ctx = observability.WithLogger(ctx, logger)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.Info("request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to its status code and writes it. Server-side failures
// are logged and their details withheld from the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	logger := observability.LoggerFromContext(r.Context(), s.logger)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
		s.errorResponse(w, status, http.StatusText(status))
		return
	}
	logger.Debug("request rejected", slog.String("path", r.URL.Path), slog.String("error", err.Error()))
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
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Round(time.Second).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		slog.String("client", clientID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("limit", info.Limit),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
