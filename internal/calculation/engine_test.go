package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	debug []string
	info  []string
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.debug = append(r.debug, format) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.info = append(r.info, format) }

type bogusInputs struct{}

func (bogusInputs) CalculatorType() domain.CalculatorType { return "bogus" }

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
	return now
}

func TestEngineCalculate(t *testing.T) {
	now := fixedNow(t)
	engine := NewEngine(config.Limits2025())

	tests := []struct {
		name     string
		inputs   domain.CalculatorInputs
		expected domain.CalculatorType
	}{
		{"hsa", domain.HSAInputs{Coverage: domain.CoverageIndividual, EmployeeContribution: dec("5000")}, domain.CalculatorHSA},
		{"fsa", domain.FSAInputs{HealthElection: dec("3500")}, domain.CalculatorFSA},
		{"commuter", domain.CommuterInputs{MonthlyTransitCost: dec("400")}, domain.CalculatorCommuter},
		{"life insurance", domain.LifeInsuranceInputs{Income: dec("50000"), IncomeYears: dec("3")}, domain.CalculatorLifeInsurance},
		{"retirement", baseRetirementInputs(), domain.CalculatorRetirement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := engine.Calculate(tt.inputs)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, report.CalculatorType)
			assert.Equal(t, 2025, report.PlanYear)
			assert.Equal(t, now, report.GeneratedAt)
			assert.Equal(t, tt.inputs, report.Inputs)
			require.NotNil(t, report.Results)
			assert.NotEmpty(t, report.Results.Summary())
		})
	}
}

// TestEngineUsesPlanYear checks the injected table drives the limits
func TestEngineUsesPlanYear(t *testing.T) {
	in := domain.FSAInputs{HealthElection: dec("5000")}

	r24, err := NewEngine(config.Limits2024()).Calculate(in)
	require.NoError(t, err)
	r25, err := NewEngine(config.Limits2025()).Calculate(in)
	require.NoError(t, err)

	assertMoney(t, "3200", r24.Results.(domain.FSAResults).CappedHealthElection)
	assertMoney(t, "3300", r25.Results.(domain.FSAResults).CappedHealthElection)
}

func TestEngineCalculateErrors(t *testing.T) {
	engine := NewEngine(config.Limits2024())

	_, err := engine.Calculate(nil)
	assert.Error(t, err)

	_, err = engine.Calculate(bogusInputs{})
	assert.True(t, errors.Is(err, domain.ErrUnknownCalculator))
}

func TestEngineDebugLogging(t *testing.T) {
	engine := NewEngine(config.Limits2024())
	logger := &recordingLogger{}
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Calculate(domain.CommuterInputs{MonthlyTransitCost: dec("100"), TaxBracket: dec("22")})
	require.NoError(t, err)
	assert.Len(t, logger.debug, 1)

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
