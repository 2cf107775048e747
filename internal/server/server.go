// Package server exposes the calculators and session store over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/bernstein1/touchcarecalc-sub000/internal/calculation"
	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/bernstein1/touchcarecalc-sub000/internal/storage"
)

// maxBodyBytes bounds request bodies; calculator inputs are a few hundred bytes
const maxBodyBytes = 1 << 20

// Server serves the calculator API
type Server struct {
	limits      *config.LimitRegistry
	defaultYear int
	store       storage.Store
	logger      *zap.Logger
}

// New creates a server. A nil logger disables logging.
func New(limits *config.LimitRegistry, defaultYear int, store storage.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		limits:      limits,
		defaultYear: defaultYear,
		store:       store,
		logger:      logger,
	}
}

// Routes returns the API handler with request logging applied
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.Health)
	mux.HandleFunc("GET /api/limits", s.ListLimits)
	mux.HandleFunc("GET /api/limits/{year}", s.GetLimits)
	mux.HandleFunc("POST /api/calculate/{type}", s.Calculate)
	mux.HandleFunc("POST /api/compare/{type}", s.Compare)
	mux.HandleFunc("POST /api/sessions", s.CreateSession)
	mux.HandleFunc("GET /api/sessions", s.ListSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.GetSession)
	return s.RequestLogger(mux)
}

// engine builds a calculation engine for a plan year (zero means the default year)
func (s *Server) engine(year int) (*calculation.Engine, error) {
	if year == 0 {
		year = s.defaultYear
	}
	limits, err := s.limits.Lookup(year)
	if err != nil {
		return nil, err
	}
	e := calculation.NewEngine(limits)
	e.SetLogger(s.logger.Sugar())
	e.Debug = s.logger.Core().Enabled(zap.DebugLevel)
	return e, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}

func calculatorFromPath(r *http.Request) (domain.CalculatorType, error) {
	return domain.ParseCalculatorType(r.PathValue("type"))
}
