package integration

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bernstein1/touchcarecalc-sub000/internal/calculation"
	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

func testdataPath(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// runFile loads an input file and runs it against the file's plan year (or the default)
func runFile(t *testing.T, name string) *domain.ScenarioComparison {
	t.Helper()
	req, err := config.NewInputParser().LoadFromFile(testdataPath(name), "")
	require.NoError(t, err)

	year := req.PlanYear
	if year == 0 {
		year = config.DefaultPlanYear
	}
	limits, err := config.NewLimitRegistry().Lookup(year)
	require.NoError(t, err)

	results, err := calculation.NewEngine(limits).CompareScenarios(req.Scenarios)
	require.NoError(t, err)
	require.Len(t, results.Scenarios, len(req.Scenarios))
	return results
}

func TestEndToEnd_HSA(t *testing.T) {
	results := runFile(t, "hsa_family.yaml")
	assert.Equal(t, 2024, results.PlanYear)
	assert.Nil(t, results.Recommendation, "a single scenario has nothing to compare")

	r, ok := results.Scenarios[0].Report.Results.(domain.HSAResults)
	require.True(t, ok)

	// family 8300 plus 1000 catch-up at 57; 9000 + 1000 planned is capped
	assert.True(t, dec("9300").Equal(r.AnnualContributionLimit))
	assert.True(t, dec("9300").Equal(r.TotalContribution))
	assert.True(t, dec("1000").Equal(r.EmployerContribution))
	assert.True(t, dec("8300").Equal(r.EmployeeContribution))
	assert.True(t, dec("1000").Equal(r.CatchUpContribution))
	assert.True(t, dec("1992").Equal(r.TaxSavings), "24%% of the employee share, got %s", r.TaxSavings)
	assert.True(t, dec("2400").Equal(r.AnnualPremiumSavings))
	assert.True(t, r.ReserveShortfall.IsZero())
	assert.True(t, dec("-2908").Equal(r.NetCashflowAdvantage), "got %s", r.NetCashflowAdvantage)
}

func TestEndToEnd_FSADependentCare(t *testing.T) {
	results := runFile(t, "fsa_dependent_care.yaml")

	r := results.Scenarios[0].Report.Results.(domain.FSAResults)
	assert.True(t, dec("3200").Equal(r.CappedHealthElection), "2024 health FSA cap applies")
	assert.True(t, r.ExpectedUtilization.LessThanOrEqual(r.CappedHealthElection))
	assert.False(t, r.ForfeitureRisk.IsNegative())

	require.NotNil(t, r.DependentCare)
	assert.True(t, dec("5000").Equal(r.DependentCare.CappedElection))
	assert.True(t, dec("4000").Equal(r.DependentCare.Utilization))
	assert.True(t, dec("1000").Equal(r.DependentCare.ForfeitureRisk))
}

func TestEndToEnd_CommuterComparison(t *testing.T) {
	results := runFile(t, "commuter_scenarios.yaml")

	require.NotNil(t, results.Recommendation)
	assert.Equal(t, "Train and garage", results.Recommendation.ScenarioName)
	assert.Equal(t, "Bus pass", results.Recommendation.BaselineName)
	assert.True(t, dec("1491.6").Equal(results.Recommendation.Value))

	income := results.Scenarios[2].Report.Results.(domain.CommuterResults)
	assert.True(t, dec("22").Equal(income.MarginalRate), "married filing jointly at 120k sits in the 22%% bracket")
}

func TestEndToEnd_LifeInsurance(t *testing.T) {
	results := runFile(t, "life_scenarios.yaml")

	for _, sc := range results.Scenarios {
		r := sc.Report.Results.(domain.LifeInsuranceResults)
		assert.True(t, dec("970000").Equal(r.DIMETotal), "%s: got %s", sc.Name, r.DIMETotal)
	}
	require.NotNil(t, results.Recommendation)
	assert.Equal(t, "Employer group life", results.Recommendation.ScenarioName, "lower coverage gap wins")
	assert.True(t, dec("-100000").Equal(results.Recommendation.Change))
}

func TestEndToEnd_Retirement(t *testing.T) {
	results := runFile(t, "retirement.json")
	assert.Equal(t, 2025, results.PlanYear)

	r := results.Scenarios[0].Report.Results.(domain.RetirementResults)
	assert.Equal(t, 25, r.YearsToRetirement)
	require.Len(t, r.Projection, r.YearsToRetirement)

	contributions := r.TotalEmployeeContributions.Add(r.TotalEmployerContributions)
	assert.True(t, r.FinalBalance.Equal(r.StartingBalance.Add(contributions).Add(r.InvestmentGrowth)),
		"final balance is start + contributions + growth")
	assert.True(t, r.TotalEmployeeContributions.Equal(r.TotalTraditionalContribution.Add(r.TotalRothContribution)))
	assert.True(t, r.Projection[len(r.Projection)-1].Balance.Equal(r.FinalBalance))
}

func TestEndToEnd_CustomPlanYear(t *testing.T) {
	registry := config.NewLimitRegistry()
	require.NoError(t, registry.LoadLimitsFromFile(testdataPath("limits_2026.yaml")))

	limits, err := registry.Lookup(2026)
	require.NoError(t, err)

	req, err := config.NewInputParser().LoadFromFile(testdataPath("commuter_scenarios.yaml"), domain.CalculatorCommuter)
	require.NoError(t, err)

	results, err := calculation.NewEngine(limits).CompareScenarios(req.Scenarios)
	require.NoError(t, err)
	assert.Equal(t, 2026, results.PlanYear)
	assert.Equal(t, 2026, results.Scenarios[0].Report.PlanYear)
}
