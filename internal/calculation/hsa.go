package calculation

import (
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculateHSA computes HSA contribution limits, the employer/employee split of the capped
// contribution pool, tax savings and the overall cashflow advantage of the HDHP.
// Negative inputs are floored at zero; nothing is rejected.
func CalculateHSA(in domain.HSAInputs, limits *domain.PlanYearLimits) domain.HSAResults {
	baseLimit := limits.HSA.Individual
	if in.Coverage == domain.CoverageFamily {
		baseLimit = limits.HSA.Family
	}

	catchUpAllowance := decimal.Zero
	if in.Age >= limits.HSA.CatchUpAge {
		catchUpAllowance = limits.HSA.CatchUp
	}
	annualLimit := baseLimit.Add(catchUpAllowance)

	// Employer money counts against the same limit; the combined pool is capped
	employerSeed := money.NonNegative(in.EmployerSeed)
	plannedFunding := money.NonNegative(in.EmployeeContribution).Add(employerSeed)
	totalContribution := money.Min(plannedFunding, annualLimit)

	employerContribution := money.Min(employerSeed, totalContribution)
	employeeContribution := totalContribution.Sub(employerContribution)

	catchUpContribution := money.Clamp(totalContribution.Sub(baseLimit), decimal.Zero, catchUpAllowance)

	rate := ResolveRate(in.AnnualIncome, in.FilingStatus, in.TaxBracket, limits)
	taxSavings := money.Percent(employeeContribution, rate)

	// Not clamped: a cheaper alternative plan yields negative savings
	premiumDelta := money.NonNegative(in.AltPlanMonthlyPremium).Sub(money.NonNegative(in.HDHPMonthlyPremium))
	annualPremiumSavings := money.Annual(premiumDelta)

	projectedReserve := employerContribution.Add(employeeContribution)
	reserveShortfall := money.NonNegative(money.NonNegative(in.TargetReserve).Sub(projectedReserve))

	netCashflow := annualPremiumSavings.Add(employerContribution).Add(taxSavings).Sub(employeeContribution)

	return domain.HSAResults{
		BaseLimit:               baseLimit,
		CatchUpAllowance:        catchUpAllowance,
		AnnualContributionLimit: annualLimit,
		TotalContribution:       totalContribution,
		EmployerContribution:    employerContribution,
		EmployeeContribution:    employeeContribution,
		CatchUpContribution:     catchUpContribution,
		MarginalRate:            rate,
		TaxSavings:              taxSavings,
		AnnualPremiumSavings:    annualPremiumSavings,
		ProjectedReserve:        projectedReserve,
		ReserveShortfall:        reserveShortfall,
		NetCashflowAdvantage:    netCashflow,
	}
}
