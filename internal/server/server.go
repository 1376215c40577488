// Package server exposes the validation surface over HTTP.
//
// The boundary rejects non-text payloads before they reach the scoring
// core and surfaces detector outcomes verbatim: detected, deception_type,
// probability and matched_signals pass through untouched.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/orchestrator"
)

// Server is the HTTP API over an orchestrator instance
type Server struct {
	orch   *orchestrator.Orchestrator
	cfg    model.ServerConfig
	logger *slog.Logger
	router chi.Router
}

// New creates a server around the given orchestrator
func New(orch *orchestrator.Orchestrator, cfg model.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		orch:   orch,
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(s.rateLimit())
	r.Use(s.countRequests)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.apiKeyAuth)
		r.Post("/validate", s.handleValidate)
		r.Post("/detect", s.handleDetect)
		r.Post("/statements", s.handleRegisterStatement)
		r.Get("/statements/{id}/records", s.handleCheckRecords)
		r.Get("/validations/summary", s.handleSummary)
		r.Get("/status", s.handleStatus)
	})

	return r
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
