package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"

	"github.com/jonathan/directionwise/internal/config"
	"github.com/jonathan/directionwise/internal/db"
	"github.com/jonathan/directionwise/internal/events"
	"github.com/jonathan/directionwise/internal/export"
	"github.com/jonathan/directionwise/internal/insights"
	"github.com/jonathan/directionwise/internal/knowledge"
	"github.com/jonathan/directionwise/internal/quiz"
	"github.com/jonathan/directionwise/internal/recommend"
	"github.com/jonathan/directionwise/internal/resume"
	"github.com/jonathan/directionwise/internal/server/middleware"
	"github.com/jonathan/directionwise/internal/server/ratelimit"
	"github.com/jonathan/directionwise/internal/similarity"
)

// Archiver keeps a copy of generated exports.
type Archiver interface {
	Archive(ctx context.Context, format export.Format, data []byte) (string, error)
}

// Deps are the collaborators the server routes to. Events and Archiver are
// optional.
type Deps struct {
	Store       db.Store
	Knowledge   *knowledge.Base
	Search      *similarity.Engine
	Sessions    quiz.SessionStore
	Market      insights.Provider
	Recommender *recommend.Recommender
	Resume      *resume.Analyzer
	Events      events.Publisher
	Archiver    Archiver
	Passwords   *config.PasswordConfig
	JWT         *config.JWTConfig
}

// Config holds server configuration.
type Config struct {
	Addr            string
	CORSOrigins     []string
	RateLimit       *ratelimit.Config
	ShutdownTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	Deps
	httpServer  *http.Server
	handler     http.Handler
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	validate    *validator.Validate
	shutdown    time.Duration
}

// New wires the routes and middleware.
func New(cfg Config, deps Deps) (*Server, error) {
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("server: store is required")
	case deps.Knowledge == nil:
		return nil, fmt.Errorf("server: knowledge base is required")
	case deps.Sessions == nil:
		return nil, fmt.Errorf("server: quiz session store is required")
	case deps.Passwords == nil || deps.JWT == nil:
		return nil, fmt.Errorf("server: password and jwt config are required")
	}
	if deps.Events == nil {
		deps.Events = events.NopPublisher{}
	}
	if deps.Search == nil {
		deps.Search = similarity.NewEngine(deps.Store)
	}
	if deps.Market == nil {
		provider, err := insights.NewStaticProvider()
		if err != nil {
			return nil, err
		}
		deps.Market = provider
	}
	if deps.Recommender == nil {
		deps.Recommender = recommend.New(deps.Store, nil)
	}
	if deps.Resume == nil {
		deps.Resume = resume.NewAnalyzer(deps.Knowledge, deps.Search)
	}

	s := &Server{
		Deps:        deps,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:  NewJWTService(deps.JWT),
		userService: NewUserService(deps.Store, deps.Passwords),
		validate:    validator.New(),
		shutdown:    cfg.ShutdownTimeout,
	}
	if s.shutdown <= 0 {
		s.shutdown = 30 * time.Second
	}
	s.authHandler = NewAuthHandler(s.userService, s.jwtService, deps.Events)

	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	optionalAuth := middleware.OptionalAuth(s.jwtService.AsTokenValidator())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	mux.HandleFunc("GET /quiz/questions", s.handleQuizQuestions)
	mux.Handle("POST /quiz/evaluate", optionalAuth(http.HandlerFunc(s.handleQuizEvaluate)))
	mux.HandleFunc("POST /quiz/sessions", s.handleCreateQuizSession)
	mux.HandleFunc("POST /quiz/sessions/{id}/answers", s.handleAnswerQuizSession)
	mux.Handle("POST /quiz/sessions/{id}/complete", optionalAuth(http.HandlerFunc(s.handleCompleteQuizSession)))
	mux.HandleFunc("POST /match", s.handleMatch)

	mux.HandleFunc("GET /fields", s.handleListFields)
	mux.HandleFunc("GET /fields/{id}", s.handleGetField)
	mux.HandleFunc("GET /mentorship/{field}", s.handleMentorship)

	mux.HandleFunc("GET /careers", s.handleListCareers)
	mux.HandleFunc("GET /careers/search", s.handleSearchCareers)
	mux.HandleFunc("GET /careers/random", s.handleRandomCareers)
	mux.HandleFunc("GET /careers/trends", s.handleCareerTrends)
	mux.HandleFunc("GET /careers/compare", s.handleCompareCareers)
	mux.Handle("POST /careers/reindex", requireAuth(http.HandlerFunc(s.handleReindex)))

	mux.HandleFunc("GET /market/insights", s.handleMarketInsights)
	mux.HandleFunc("GET /market/comparison", s.handleMarketComparison)
	mux.HandleFunc("GET /market/trends", s.handleMarketTrends)

	mux.HandleFunc("POST /exports", s.handleExport)
	mux.HandleFunc("POST /resume/analyze", s.handleAnalyzeResume)

	mux.Handle("GET /me", requireAuth(http.HandlerFunc(s.handleMe)))
	mux.Handle("GET /me/assessments", requireAuth(http.HandlerFunc(s.handleListAssessments)))
	mux.Handle("GET /me/saved-careers", requireAuth(http.HandlerFunc(s.handleListSavedCareers)))
	mux.Handle("POST /me/saved-careers", requireAuth(http.HandlerFunc(s.handleSaveCareer)))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "X-Export-Key"},
		MaxAge:         600,
	})

	s.handler = s.withRateLimit(s.withLogging(corsHandler.Handler(mux)))
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler exposes the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.Close()
	slog.Info("server stopped")
	return nil
}

// Close stops background work. The injected dependencies are owned by the
// caller.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		slog.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)))
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP without its port.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	body := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		secs := int(info.RetryAfter.Round(time.Second).Seconds())
		if secs < 1 {
			secs = 1
		}
		body["retry_after"] = secs
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	slog.Warn("rate limit exceeded",
		slog.String("client", clientID(r)),
		slog.String("path", r.URL.Path),
		slog.Int("limit", info.Limit))
	writeJSON(w, http.StatusTooManyRequests, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"status": "ok", "knowledge_base": s.Knowledge.Version()}
	if n, err := s.Store.CountCareers(r.Context()); err == nil {
		resp["careers"] = n
	} else {
		resp["status"] = "degraded"
		slog.Warn("health: store unavailable", slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps err to a status and writes {"error": ...}. Internal
// errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", msg))
		msg = "internal server error"
	}
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the body into v and validates its struct tags.
func (s *Server) decodeJSON(r *http.Request, v any) error {
	return decodeAndValidate(r, v, func() error { return s.validate.Struct(v) })
}

func decodeAndValidate(r *http.Request, v any, validate func() error) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON request body"}
	}
	if err := validate(); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError reports the first failed validator tag.
func validationError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return &ErrValidation{Field: ve[0].Field(), Message: ve[0].Tag()}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}

// intQuery parses a bounded integer query parameter.
func intQuery(r *http.Request, name string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, &ErrValidation{Field: name, Message: fmt.Sprintf("must be an integer between %d and %d", lo, hi)}
	}
	return v, nil
}
