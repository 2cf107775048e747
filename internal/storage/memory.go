package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// MemoryStore keeps sessions in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Session)}
}

func (m *MemoryStore) Create(ctx context.Context, s *domain.Session) error {
	if err := validateSession(s); err != nil {
		return err
	}
	stamp(s)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]domain.Session, error) {
	return m.filter(func(domain.Session) bool { return true }), nil
}

func (m *MemoryStore) ListByType(ctx context.Context, calcType domain.CalculatorType) ([]domain.Session, error) {
	return m.filter(func(s domain.Session) bool { return s.CalculatorType == calcType }), nil
}

func (m *MemoryStore) filter(keep func(domain.Session) bool) []domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (m *MemoryStore) Close() error { return nil }
