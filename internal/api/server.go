// Package api exposes element set decoding, construction and propagation
// over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/turkmvc/satmad/internal/gravity"
	"github.com/turkmvc/satmad/internal/metrics"
)

// DefaultMaxBodyBytes bounds request bodies when Config leaves it unset.
const DefaultMaxBodyBytes = 64 << 10

// Config holds server settings.
type Config struct {
	Addr         string
	Profile      gravity.Profile
	MaxBodyBytes int64

	AuthEnabled bool
	AuthToken   string

	// TrustProxy makes request logs use X-Forwarded-For / X-Real-IP.
	// Only enable behind a trusted reverse proxy.
	TrustProxy bool
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        Config
	draining   atomic.Bool
}

// NewServer creates a configured HTTP server.
func NewServer(cfg Config, logger *slog.Logger) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Profile.Name == "" {
		cfg.Profile = gravity.Default
	}

	s := &Server{logger: logger, cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", healthz)
	mux.HandleFunc("GET /readyz", s.readyz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("POST /api/v1/tle/decode", s.handleDecode)
	mux.HandleFunc("POST /api/v1/tle/elements", s.handleElements)
	mux.HandleFunc("POST /api/v1/tle/geo", s.handleGeo)
	mux.HandleFunc("POST /api/v1/tle/propagate", s.handlePropagate)
	mux.HandleFunc("GET /api/v1/gravity", s.handleProfiles)
	mux.HandleFunc("GET /api/v1/gravity/{name}", s.handleProfile)

	// Build middleware chain: metrics -> tracing -> logging -> auth -> mux.
	var handler http.Handler = mux
	handler = authMiddleware(cfg.AuthEnabled, cfg.AuthToken)(handler)
	handler = loggingMiddleware(logger, cfg.TrustProxy)(handler)
	handler = tracingMiddleware(handler)
	handler = metrics.Middleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root handler, middleware included.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", "component", "api", "addr", s.cfg.Addr, "gravity", s.cfg.Profile.Name, "auth", s.cfg.AuthEnabled)
	return s.httpServer.ListenAndServe()
}

// Drain marks the server not ready so load balancers stop routing to it
// before shutdown.
func (s *Server) Drain() {
	s.draining.Store(true)
}
