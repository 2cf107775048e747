package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// steppingClock makes creation times strictly increasing so list order is deterministic
func steppingClock(t *testing.T) {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	n := 0
	nowFunc = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	t.Cleanup(func() { nowFunc = time.Now })
}

func newSession(calcType domain.CalculatorType, results string) *domain.Session {
	return &domain.Session{
		CalculatorType: calcType,
		InputData:      `{"tax_bracket":"22"}`,
		Results:        results,
	}
}

// testStoreContract runs the behavior every Store implementation shares
func testStoreContract(t *testing.T, st Store) {
	ctx := context.Background()
	steppingClock(t)

	hsa := newSession(domain.CalculatorHSA, `{"net_cashflow_advantage":"1200"}`)
	require.NoError(t, st.Create(ctx, hsa))
	_, err := uuid.Parse(hsa.ID)
	assert.NoError(t, err, "ids are UUIDs")
	assert.Equal(t, time.Date(2024, 3, 1, 9, 1, 0, 0, time.UTC), hsa.CreatedAt)

	life := newSession("life", `{"dime_total":"100000"}`)
	require.NoError(t, st.Create(ctx, life))
	assert.Equal(t, domain.CalculatorLifeInsurance, life.CalculatorType, "aliases are stored canonically")

	hsa2 := newSession(domain.CalculatorHSA, `{"net_cashflow_advantage":"900"}`)
	require.NoError(t, st.Create(ctx, hsa2))

	got, err := st.Get(ctx, hsa.ID)
	require.NoError(t, err)
	assert.Equal(t, hsa.ID, got.ID)
	assert.Equal(t, domain.CalculatorHSA, got.CalculatorType)
	assert.JSONEq(t, hsa.InputData, got.InputData)
	assert.JSONEq(t, hsa.Results, got.Results)
	assert.True(t, hsa.CreatedAt.Equal(got.CreatedAt), "created at %s, read back %s", hsa.CreatedAt, got.CreatedAt)

	_, err = st.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{hsa2.ID, life.ID, hsa.ID}, []string{all[0].ID, all[1].ID, all[2].ID}, "newest first")

	hsaOnly, err := st.ListByType(ctx, domain.CalculatorHSA)
	require.NoError(t, err)
	require.Len(t, hsaOnly, 2)
	assert.Equal(t, hsa2.ID, hsaOnly[0].ID)

	none, err := st.ListByType(ctx, domain.CalculatorCommuter)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	assert.ErrorIs(t, st.Create(ctx, newSession("pension", `{}`)), domain.ErrUnknownCalculator)
	assert.ErrorContains(t, st.Create(ctx, newSession(domain.CalculatorFSA, `not json`)), "results must be a JSON document")
	assert.ErrorContains(t, st.Create(ctx, nil), "session is required")
}

func TestMemoryStore(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()
	testStoreContract(t, st)
}

func TestMemoryStore_ConcurrentCreate(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, st.Create(ctx, newSession(domain.CalculatorCommuter, `{}`)))
		}()
	}
	wg.Wait()

	all, err := st.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func TestSQLiteStore(t *testing.T) {
	st, err := NewSQLiteStore(context.Background(), filepath.Join(t.TempDir(), "db", "sessions.db"))
	require.NoError(t, err)
	defer st.Close()
	testStoreContract(t, st)
}

func TestSQLiteStore_ReopenKeepsSessions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	st, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	s := newSession(domain.CalculatorRetirement, `{"final_balance":"26000"}`)
	require.NoError(t, st.Create(ctx, s))
	require.NoError(t, st.Close())

	// migrations are idempotent on an up-to-date database
	st, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.JSONEq(t, s.Results, got.Results)

	var version int
	require.NoError(t, st.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestNewSQLiteStore_Errors(t *testing.T) {
	_, err := NewSQLiteStore(context.Background(), "")
	assert.ErrorContains(t, err, "path is required")
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	st, err := NewPostgresStore(ctx, dsn)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.pool.Exec(ctx, `TRUNCATE sessions`)
	require.NoError(t, err)
	testStoreContract(t, st)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	st, err := Open(ctx, config.StorageConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, st)

	st, err = Open(ctx, config.StorageConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, st)
	require.NoError(t, st.Close())

	_, err = Open(ctx, config.StorageConfig{Driver: "redis"})
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestSaveReport(t *testing.T) {
	st := NewMemoryStore()
	report := &domain.Report{
		CalculatorType: domain.CalculatorLifeInsurance,
		PlanYear:       2024,
		Inputs:         domain.LifeInsuranceInputs{IncomeYears: decimal.NewFromInt(10)},
		Results:        domain.LifeInsuranceResults{},
	}

	s, err := SaveReport(context.Background(), st, report)
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)

	got, err := st.Get(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Contains(t, got.InputData, `"income_years":"10"`)
}
