// Package httpserver exposes the confidential ledger's public query
// surface: position submission, commitment verification, aggregates,
// market listing and creation, settlement, and the aggregate stream.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sagardabas0007/private-markets/internal/gateway"
	"github.com/sagardabas0007/private-markets/internal/indexer"
	"github.com/sagardabas0007/private-markets/internal/ledger"
	"github.com/sagardabas0007/private-markets/internal/reconcile"
	"github.com/sagardabas0007/private-markets/internal/register"
	"github.com/sagardabas0007/private-markets/internal/stream"
	"github.com/sagardabas0007/private-markets/pkg/healthprobe"
)

// Server provides the HTTP API plus metrics and health endpoints.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

// Config holds server configuration.
type Config struct {
	Port          string
	Logger        *zap.Logger
	HealthChecker *healthprobe.HealthChecker

	Ledger   *ledger.Ledger
	Register *register.Register
	Merger   *reconcile.Merger
	Indexer  *indexer.Service
	Stream   *stream.Hub
	Verifier *gateway.Verifier

	// AdminToken guards the settle endpoint. Empty disables settlement
	// over HTTP entirely.
	AdminToken string
}

// New creates a new HTTP server.
func New(cfg *Config) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Operational routes
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", cfg.HealthChecker.Health())
	r.Get("/ready", cfg.HealthChecker.Ready())

	ph := newPositionHandler(cfg.Ledger, cfg.Verifier, cfg.Logger)
	mh := newMarketHandler(cfg.Ledger, cfg.Register, cfg.Merger, cfg.Indexer, cfg.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/positions", ph.handleSubmit)
		r.Get("/commitments/{hash}", ph.handleVerifyCommitment)
		r.Post("/positions/{id}/settlement", ph.handleFillSettlement)

		r.With(requireWalletSignature(cfg.Logger)).
			Get("/wallets/{address}/positions", ph.handleWalletPositions)

		r.Get("/markets", mh.handleListMarkets)
		r.Post("/markets", mh.handleCreateMarket)
		r.Get("/markets/{address}/aggregate", mh.handleAggregate)

		r.With(requireAdminToken(cfg.AdminToken, cfg.Logger)).
			Post("/markets/{address}/settle", mh.handleSettle)

		if cfg.Stream != nil {
			r.Get("/stream", cfg.Stream.HandleWS)
		}
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		server: server,
		logger: cfg.Logger,
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
// Blocking; returns when the server stops or encounters an error.
func (s *Server) Start() error {
	s.logger.Info("http-server-starting", zap.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http-server-shutting-down")

	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("http-server-shutdown-complete")
	return nil
}
