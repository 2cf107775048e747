// Package storage persists calculation sessions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// ErrNotFound is returned when a requested session does not exist.
var ErrNotFound = errors.New("session not found")

// Store persists calculation sessions.
type Store interface {
	// Create assigns the session's ID and CreatedAt and saves it.
	Create(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	// List returns all sessions, newest first.
	List(ctx context.Context) ([]domain.Session, error)
	// ListByType returns one calculator's sessions, newest first.
	ListByType(ctx context.Context, calcType domain.CalculatorType) ([]domain.Session, error)
	Close() error
}

var nowFunc = time.Now

// stamp fills the generated fields. Microsecond precision matches what Postgres keeps.
func stamp(s *domain.Session) {
	s.ID = uuid.NewString()
	s.CreatedAt = nowFunc().UTC().Truncate(time.Microsecond)
}

func validateSession(s *domain.Session) error {
	if s == nil {
		return fmt.Errorf("session is required")
	}
	calcType, err := domain.ParseCalculatorType(string(s.CalculatorType))
	if err != nil {
		return err
	}
	s.CalculatorType = calcType
	if !json.Valid([]byte(s.InputData)) {
		return fmt.Errorf("session input data must be a JSON document")
	}
	if !json.Valid([]byte(s.Results)) {
		return fmt.Errorf("session results must be a JSON document")
	}
	return nil
}

// Open creates the store selected by the storage settings
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.Path)
	case "postgres":
		return NewPostgresStore(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// SaveReport persists a report as a new session
func SaveReport(ctx context.Context, st Store, r *domain.Report) (*domain.Session, error) {
	s, err := domain.NewSession(r)
	if err != nil {
		return nil, err
	}
	if err := st.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}
