package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	calculator_type TEXT NOT NULL,
	input_data JSONB NOT NULL,
	results JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_type_created ON sessions (calculator_type, created_at);
`

// PostgresStore keeps sessions in PostgreSQL
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and ensures the sessions table exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Create(ctx context.Context, s *domain.Session) error {
	if err := validateSession(s); err != nil {
		return err
	}
	stamp(s)

	_, err := p.pool.Exec(ctx,
		`INSERT INTO sessions (id, calculator_type, input_data, results, created_at) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, string(s.CalculatorType), s.InputData, s.Results, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := p.pool.QueryRow(ctx,
		`SELECT id, calculator_type, input_data::text, results::text, created_at FROM sessions WHERE id = $1`, id)

	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) List(ctx context.Context) ([]domain.Session, error) {
	return p.query(ctx,
		`SELECT id, calculator_type, input_data::text, results::text, created_at FROM sessions ORDER BY created_at DESC, id`)
}

func (p *PostgresStore) ListByType(ctx context.Context, calcType domain.CalculatorType) ([]domain.Session, error) {
	return p.query(ctx,
		`SELECT id, calculator_type, input_data::text, results::text, created_at FROM sessions WHERE calculator_type = $1 ORDER BY created_at DESC, id`,
		string(calcType))
}

func (p *PostgresStore) query(ctx context.Context, q string, args ...any) ([]domain.Session, error) {
	rows, err := p.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	out := []domain.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (p *PostgresStore) Close() error {
	p.pool.Close()
	return nil
}
