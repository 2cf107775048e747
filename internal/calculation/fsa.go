package calculation

import (
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculateFSA models a health FSA election against expected spending, carryover and grace
// period protection, plus an optional dependent-care FSA.
//
// The grace period is approximated as expectedEligibleExpenses/12 of extra spend per grace
// month. Carryover only protects the unused remainder of the election.
func CalculateFSA(in domain.FSAInputs, limits *domain.PlanYearLimits) domain.FSAResults {
	election := money.Clamp(in.HealthElection, decimal.Zero, limits.FSA.HealthElection)

	expected := money.NonNegative(in.ExpectedEligibleExpenses)
	graceMonths := money.NonNegative(in.GracePeriodMonths)
	graceUtilization := money.NonNegative(money.Monthly(expected).Mul(graceMonths))

	expectedUtilization := money.Min(election, money.NonNegative(expected.Add(graceUtilization)))

	unused := money.NonNegative(election.Sub(expectedUtilization))
	carryoverProtected := money.Clamp(in.PlanCarryover, decimal.Zero, unused)

	forfeitureRisk := money.NonNegative(election.Sub(expectedUtilization).Sub(carryoverProtected))

	rate := ResolveRate(in.AnnualIncome, in.FilingStatus, in.TaxBracket, limits)
	taxSavings := money.Percent(election, rate)

	results := domain.FSAResults{
		CappedHealthElection:   election,
		GracePeriodUtilization: graceUtilization,
		ExpectedUtilization:    expectedUtilization,
		CarryoverProtected:     carryoverProtected,
		ForfeitureRisk:         forfeitureRisk,
		MarginalRate:           rate,
		TaxSavings:             taxSavings,
		NetBenefit:             taxSavings.Sub(forfeitureRisk),
	}

	if in.IncludeDependentCare {
		dc := calculateDependentCare(in, rate, limits)
		results.DependentCare = &dc
	}

	return results
}

// calculateDependentCare is reimbursement-only with no carryover or grace protection
func calculateDependentCare(in domain.FSAInputs, rate decimal.Decimal, limits *domain.PlanYearLimits) domain.DependentCareResults {
	election := money.Clamp(in.DependentCareElection, decimal.Zero, limits.FSA.DependentCare)
	utilization := money.Min(election, money.NonNegative(in.DependentCareExpenses))

	return domain.DependentCareResults{
		CappedElection: election,
		Utilization:    utilization,
		ForfeitureRisk: election.Sub(utilization),
		TaxSavings:     money.Percent(election, rate),
	}
}
