package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/energydash/internal/chart"
	"github.com/dukerupert/energydash/internal/dashboard"
	"github.com/dukerupert/energydash/internal/handler"
	"github.com/dukerupert/energydash/internal/middleware"
	"github.com/dukerupert/energydash/internal/store"
	ws "github.com/dukerupert/energydash/internal/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	StaticDir          string
	RateLimitPerMinute int
}

type Server struct {
	db          *sql.DB
	cfg         Config
	hub         *ws.Hub
	service     *dashboard.Service
	templateH   *handler.TemplateHandler
	householdH  *handler.HouseholdHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	renderer := chart.NewRenderer(cfg.StaticDir, logger.With("component", "chart"))
	svc := dashboard.NewService(
		store.NewHouseholdStore(db),
		store.NewReadingStore(db),
		renderer,
		hub,
		logger.With("component", "dashboard"),
	)

	return &Server{
		db:          db,
		cfg:         cfg,
		hub:         hub,
		service:     svc,
		templateH:   handler.NewTemplateHandler(svc, logger.With("component", "template")),
		householdH:  handler.NewHouseholdHandler(svc, logger.With("component", "household")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// Hub returns the websocket hub.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Pages regenerate chart files on every view, so they are rate limited.
	mux.HandleFunc("GET /{$}", s.templateH.Index)
	mux.HandleFunc("GET /home/{id}", s.rateLimited(s.templateH.Dashboard))
	mux.HandleFunc("GET /details/{id}", s.rateLimited(s.templateH.Details))

	// JSON API
	mux.HandleFunc("GET /api/households", s.householdH.List)
	mux.HandleFunc("GET /api/households/{id}/stats", s.householdH.Stats)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{"status": "ok", "clients": s.hub.ClientCount()}
	code := http.StatusOK
	if err := s.db.PingContext(r.Context()); err != nil {
		s.logger.Error("health check", "error", err)
		status["status"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, s.cfg.RateLimitPerMinute, time.Minute)
	limited := rl(h)
	return limited.ServeHTTP
}
