package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docfill/internal/config"
	"docfill/internal/question"
	"docfill/internal/session"
)

// Server is the HTTP API for the template fill workflow.
type Server struct {
	router    chi.Router
	sessions  *session.Store
	questions question.Source
	stats     *question.Stats
	log       *slog.Logger
	cfg       config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Store, questions question.Source, stats *question.Stats, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions:  sessions,
		questions: questions,
		stats:     stats,
		log:       log,
		cfg:       cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/template", s.handleUpload)
	r.Post("/api/template/sample", s.handleSample)

	r.Get("/api/session/{sessionID}", s.handleGetSession)
	r.Post("/api/session/{sessionID}/answer", s.handleAnswer)
	r.Post("/api/session/{sessionID}/skip", s.handleSkip)
	r.Post("/api/session/{sessionID}/reset", s.handleReset)
	r.Delete("/api/session/{sessionID}", s.handleDeleteSession)
	r.Get("/api/session/{sessionID}/document", s.handleDocument)

	r.Get("/api/stats/enrichment", s.handleEnrichmentStats)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
