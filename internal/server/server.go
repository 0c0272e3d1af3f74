// Package server implements the HTTP API frontend: status checks, default server
// updates, metrics and build info.
package server

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/woozymasta/mcwho/internal/allowlist"
	"github.com/woozymasta/mcwho/internal/checker"
	"github.com/woozymasta/mcwho/internal/config"
	"github.com/woozymasta/mcwho/internal/metrics"
)

// New creates a new Server instance with the provided checker, allowlist and configuration.
func New(c *checker.Checker, allowed *allowlist.List, cfg *config.Config) *Server {
	return &Server{
		checker:    c,
		allowed:    allowed,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		shutdown:   make(chan struct{}),
		authToken:  cfg.Server.AuthToken,
		maxBody:    cfg.Server.MaxBodySize,
		rateCount:  cfg.RateLimit.Count,
		rateWindow: cfg.RateLimit.Window,
		trustProxy: cfg.Server.TrustProxy,
	}
}

// Close stops background goroutines started by the handlers.
func (s *Server) Close() {
	close(s.shutdown)
}

// Run configures the HTTP routes and returns the main handler.
func (s *Server) Run() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /api/check", s.RateLimitMiddleware(http.HandlerFunc(s.handleCheck)))
	mux.Handle("PUT /api/default", AdminAuthMiddleware(s.authToken, http.HandlerFunc(s.handleSetDefault)))
	mux.Handle("GET /api/version", http.HandlerFunc(handleVersion))
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("GET /healthz", http.HandlerFunc(handleHealth))

	return s.LoggingMiddleware(mux)
}
