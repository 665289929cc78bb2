package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/drywaters/textsum/internal/config"
	"github.com/drywaters/textsum/internal/handler"
	"github.com/drywaters/textsum/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	bridge handler.Bridge
}

// New creates a new Server
func New(cfg *config.Config, b handler.Bridge) *Server {
	return &Server{
		cfg:    cfg,
		bridge: b,
	}
}

// Router returns the configured chi router
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(s.cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	summarizeHandler := handler.NewSummarizeHandler(s.bridge, s.cfg.ReadyTimeout, s.cfg.MaxBodyBytes)
	r.Get("/ready", summarizeHandler.Ready)
	r.Post("/summarize", summarizeHandler.Summarize)

	pageHandler := handler.NewPageHandler(s.bridge, s.cfg.ReadyTimeout, s.cfg.MaxBodyBytes)
	r.Get("/", pageHandler.Page)
	r.Post("/", pageHandler.Submit)

	return r
}
