package calculation

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRetirementInputs() domain.RetirementInputs {
	return domain.RetirementInputs{
		CurrentAge:              30,
		RetirementAge:           32,
		CurrentSalary:           dec("100000"),
		EmployeeContributionPct: dec("10"),
		EmployerMatchPct:        dec("50"),
		EmployerMatchCapPct:     dec("6"),
		ContributionType:        domain.ContributionTraditional,
		TaxBracket:              dec("22"),
	}
}

// TestCalculateRetirement_FlatProjection uses zero return and zero growth so every figure is hand-checkable
func TestCalculateRetirement_FlatProjection(t *testing.T) {
	r := CalculateRetirement(baseRetirementInputs(), limits2024())

	assert.Equal(t, 2, r.YearsToRetirement)
	require.Len(t, r.Projection, 2)
	assertMoney(t, "23000", r.ContributionLimit)
	assertMoney(t, "20000", r.TotalEmployeeContributions)
	assertMoney(t, "6000", r.TotalEmployerContributions) // min(10, 6)% * 100000 * 50%
	assertMoney(t, "20000", r.TotalTraditionalContribution)
	assertMoney(t, "0", r.TotalRothContribution)
	assertMoney(t, "26000", r.FinalBalance)
	assertMoney(t, "0", r.InvestmentGrowth)
	assertMoney(t, "833.33", r.MonthlyContribution) // 20000 / 12 / 2
	assertMoney(t, "4400", r.TaxSavings)

	for i, row := range r.Projection {
		assert.Equal(t, i+1, row.Year)
		assert.Equal(t, 31+i, row.Age)
		assertMoney(t, "100000", row.Salary)
		assertMoney(t, "10000", row.EmployeeContribution)
		assertMoney(t, "3000", row.EmployerContribution)
		assertMoney(t, "2200", row.TaxSavings)
	}
}

func TestCalculateRetirement_SalaryGrowthAndReturns(t *testing.T) {
	in := baseRetirementInputs()
	in.CurrentBalance = dec("50000")
	in.SalaryGrowth = dec("3")
	in.ExpectedReturn = dec("7")
	in.RetirementAge = 40

	r := CalculateRetirement(in, limits2024())

	require.Len(t, r.Projection, 10)
	assertMoney(t, "103000", r.Projection[0].Salary)
	assertMoney(t, "106090", r.Projection[1].Salary)
	assert.True(t, r.FinalBalance.GreaterThan(r.StartingBalance))
	assert.True(t, r.InvestmentGrowth.IsPositive())

	// growth identity holds exactly
	assert.True(t, r.FinalBalance.Equal(r.StartingBalance.Add(r.TotalEmployeeContributions).Add(r.TotalEmployerContributions).Add(r.InvestmentGrowth)))

	// balances only rise with non-negative returns and contributions
	prev := r.StartingBalance
	for _, row := range r.Projection {
		assert.True(t, row.Balance.GreaterThanOrEqual(prev), "year %d", row.Year)
		prev = row.Balance
	}
	assert.True(t, r.FinalBalance.Equal(prev))
}

// TestCalculateRetirement_MonthlyCompounding checks a single year against a hand-rolled monthly loop
func TestCalculateRetirement_MonthlyCompounding(t *testing.T) {
	in := baseRetirementInputs()
	in.CurrentBalance = dec("10000")
	in.ExpectedReturn = dec("12")
	in.RetirementAge = 31
	in.EmployeeContributionPct = dec("0")

	r := CalculateRetirement(in, limits2024())

	// 1% per month for 12 months, no deposits: 10000 * 1.01^12
	assertMoney(t, "11268.25", r.FinalBalance)
	assertMoney(t, "1268.25", r.InvestmentGrowth)
	assertMoney(t, "0", r.TotalEmployerContributions, "no match without employee deferral")
}

// TestCalculateRetirement_CatchUpFixedAtStartingAge confirms the limit is not re-evaluated as the participant ages
func TestCalculateRetirement_CatchUpFixedAtStartingAge(t *testing.T) {
	in := baseRetirementInputs()
	in.CurrentAge = 49
	in.RetirementAge = 52
	in.CurrentSalary = dec("300000")

	r := CalculateRetirement(in, limits2024())

	assertMoney(t, "23000", r.ContributionLimit)
	for _, row := range r.Projection {
		assertMoney(t, "23000", row.EmployeeContribution, "age %d", row.Age)
	}

	in.CurrentAge = 50
	r = CalculateRetirement(in, limits2024())
	assertMoney(t, "30500", r.ContributionLimit)
	assertMoney(t, "30000", r.Projection[0].EmployeeContribution)
}

func TestCalculateRetirement_ContributionSplit(t *testing.T) {
	tests := []struct {
		name                string
		contributionType    domain.ContributionType
		traditionalPct      string
		expectedTraditional string
		expectedRoth        string
		expectedTaxSavings  string
	}{
		{"traditional", domain.ContributionTraditional, "0", "30500", "0", "6710"},
		{"roth", domain.ContributionRoth, "100", "0", "30500", "0"},
		// base 23000 split 40/60, the 7500 catch-up range is traditional
		{"both", domain.ContributionBoth, "40", "16700", "13800", "3674"},
		{"unknown type defaults to traditional", "", "0", "30500", "0", "6710"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := baseRetirementInputs()
			in.CurrentAge = 55
			in.RetirementAge = 56
			in.CurrentSalary = dec("400000")
			in.ContributionType = tt.contributionType
			in.TraditionalPct = dec(tt.traditionalPct)

			r := CalculateRetirement(in, limits2024())
			require.Len(t, r.Projection, 1)
			row := r.Projection[0]
			assertMoney(t, "30500", row.EmployeeContribution)
			assertMoney(t, tt.expectedTraditional, row.TraditionalContribution)
			assertMoney(t, tt.expectedRoth, row.RothContribution)
			assertMoney(t, tt.expectedTaxSavings, r.TaxSavings)
			assert.True(t, row.TraditionalContribution.Add(row.RothContribution).Equal(row.EmployeeContribution))
		})
	}
}

func TestCalculateRetirement_Degenerate(t *testing.T) {
	for _, retirementAge := range []int{30, 25} {
		in := baseRetirementInputs()
		in.CurrentBalance = dec("42000")
		in.RetirementAge = retirementAge

		r := CalculateRetirement(in, limits2024())
		assert.Equal(t, 0, r.YearsToRetirement)
		assert.Empty(t, r.Projection)
		assertMoney(t, "42000", r.FinalBalance)
		assertMoney(t, "0", r.MonthlyContribution)
		assertMoney(t, "0", r.InvestmentGrowth)
	}
}

func TestCalculateRetirement_ClampsOutOfRangeInputs(t *testing.T) {
	in := baseRetirementInputs()
	in.CurrentBalance = dec("-1000")
	in.EmployeeContributionPct = dec("150")
	in.EmployerMatchPct = dec("-50")
	in.ExpectedReturn = dec("-250")

	r := CalculateRetirement(in, limits2024())
	assertMoney(t, "0", r.StartingBalance)
	assertMoney(t, "23000", r.Projection[0].EmployeeContribution, "100% of salary is still capped")
	assertMoney(t, "0", r.TotalEmployerContributions)
	assert.False(t, r.FinalBalance.IsNegative())
}

func TestCalculateRetirement_ConcurrentCallsAreIdentical(t *testing.T) {
	in := baseRetirementInputs()
	in.ExpectedReturn = dec("6.5")
	in.SalaryGrowth = dec("2.5")
	in.RetirementAge = 65
	limits := limits2024()

	expected := CalculateRetirement(in, limits)

	var wg sync.WaitGroup
	results := make([]domain.RetirementResults, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = CalculateRetirement(in, limits)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.True(t, expected.FinalBalance.Equal(r.FinalBalance))
		assert.Equal(t, len(expected.Projection), len(r.Projection))
	}
}

func TestCalculateRetirement_LongProjectionStaysCompact(t *testing.T) {
	in := baseRetirementInputs()
	in.CurrentAge = 18
	in.RetirementAge = 100
	in.CurrentBalance = dec("1000")
	in.ExpectedReturn = dec("7")
	in.SalaryGrowth = dec("3")

	r := CalculateRetirement(in, limits2024())
	require.Len(t, r.Projection, 82)

	assert.GreaterOrEqual(t, r.FinalBalance.Exponent(), int32(-projectionScale))
	for _, row := range r.Projection {
		assert.GreaterOrEqual(t, row.Balance.Exponent(), int32(-projectionScale), "year %d balance", row.Year)
		assert.GreaterOrEqual(t, row.Salary.Exponent(), int32(-projectionScale), "year %d salary", row.Year)
	}

	assert.True(t, r.FinalBalance.Equal(r.StartingBalance.Add(r.TotalEmployeeContributions).Add(r.TotalEmployerContributions).Add(r.InvestmentGrowth)))

	data, err := json.Marshal(r.FinalBalance)
	require.NoError(t, err)
	assert.Less(t, len(data), 40, string(data))

	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.Less(t, len(data), 100_000)
}
