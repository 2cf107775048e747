package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// SQLiteStore keeps sessions in a SQLite database file
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) and migrates a SQLite database
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) Create(ctx context.Context, sess *domain.Session) error {
	if err := validateSession(sess); err != nil {
		return err
	}
	stamp(sess)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, calculator_type, input_data, results, created_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID, string(sess.CalculatorType), sess.InputData, sess.Results, sess.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, calculator_type, input_data, results, created_at FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]domain.Session, error) {
	return s.query(ctx,
		`SELECT id, calculator_type, input_data, results, created_at FROM sessions ORDER BY created_at DESC, id`)
}

func (s *SQLiteStore) ListByType(ctx context.Context, calcType domain.CalculatorType) ([]domain.Session, error) {
	return s.query(ctx,
		`SELECT id, calculator_type, input_data, results, created_at FROM sessions WHERE calculator_type = ? ORDER BY created_at DESC, id`,
		string(calcType))
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []domain.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (*domain.Session, error) {
	var (
		sess      domain.Session
		calcType  string
		createdAt time.Time
	)
	if err := r.Scan(&sess.ID, &calcType, &sess.InputData, &sess.Results, &createdAt); err != nil {
		return nil, err
	}
	sess.CalculatorType = domain.CalculatorType(calcType)
	sess.CreatedAt = createdAt.UTC()
	return &sess, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
