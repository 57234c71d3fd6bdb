package transport

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

// Options configures the API router.
type Options struct {
	Logger *slog.Logger
	// Now stamps created tasks and login tokens. Defaults to time.Now.
	Now            func() time.Time
	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
	// MCP, when set, is served at /mcp.
	MCP http.Handler
}

// Server holds the mock API handlers.
type Server struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewServer creates the API router.
func NewServer(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	srv := &Server{now: now, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "Not found")
	})

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(RateLimiter(opts.RateLimitRPS, opts.RateLimitBurst))
		r.Use(IdentityMiddleware)

		r.Post("/api/auth/login", srv.handleLogin)

		r.Get("/api/tasks", srv.handleTasksHint)
		r.Post("/api/tasks", srv.handleCreateTask)
		r.Get("/api/tasks/{id}", srv.handleTaskHint)
		r.Put("/api/tasks/{id}", srv.handleUpdateTask)
		r.Delete("/api/tasks/{id}", srv.handleDeleteTask)

		r.With(recoverWith(logger, "Failed to analyze task")).Post("/api/ai/analyze", srv.handleAnalyze)
	})

	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
	}

	if len(opts.AllowedOrigins) == 0 {
		return r
	}
	return cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Mcp-Session-Id"},
		AllowCredentials: true,
	}).Handler(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
