package calculation

import (
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
)

var (
	minusHundred   = decimal.NewFromInt(-100)
	monthsPerYear  = decimal.NewFromInt(12)
	compoundPeriod = 12
)

// projectionScale bounds the fractional digits carried between projection steps
const projectionScale = 10

// retirementParams are the sanitized inputs shared by every projection year
type retirementParams struct {
	limit            decimal.Decimal // annual employee deferral cap, fixed at the starting age
	baseDeferral     decimal.Decimal
	employeePct      decimal.Decimal
	matchPct         decimal.Decimal
	matchCapPct      decimal.Decimal
	monthlyReturn    decimal.Decimal
	salaryGrowth     decimal.Decimal
	contributionType domain.ContributionType
	traditionalPct   decimal.Decimal
	taxBracket       decimal.Decimal
}

// yearState is what carries from one projection year into the next
type yearState struct {
	balance decimal.Decimal
	salary  decimal.Decimal
}

// CalculateRetirement projects an employer retirement account from the current age to
// retirement with annual salary growth and monthly compounding.
//
// Catch-up eligibility is evaluated once at the current age, so a participant who turns 50
// during the projection keeps the base deferral limit.
func CalculateRetirement(in domain.RetirementInputs, limits *domain.PlanYearLimits) domain.RetirementResults {
	limit := limits.Retirement.ElectiveDeferral
	if in.CurrentAge >= limits.Retirement.CatchUpAge {
		limit = limit.Add(limits.Retirement.CatchUp)
	}

	p := retirementParams{
		limit:            limit,
		baseDeferral:     limits.Retirement.ElectiveDeferral,
		employeePct:      money.ClampPercent(in.EmployeeContributionPct),
		matchPct:         money.NonNegative(in.EmployerMatchPct),
		matchCapPct:      money.NonNegative(in.EmployerMatchCapPct),
		monthlyReturn:    money.Rate(decimal.Max(in.ExpectedReturn, minusHundred)).Div(monthsPerYear),
		salaryGrowth:     decimal.Max(in.SalaryGrowth, minusHundred),
		contributionType: in.ContributionType,
		traditionalPct:   money.ClampPercent(in.TraditionalPct),
		taxBracket:       money.ClampPercent(in.TaxBracket),
	}

	startingBalance := money.NonNegative(in.CurrentBalance)
	years := in.RetirementAge - in.CurrentAge

	results := domain.RetirementResults{
		YearsToRetirement: max(years, 0),
		StartingBalance:   startingBalance,
		FinalBalance:      startingBalance,
		ContributionLimit: limit,
		Projection:        []domain.RetirementYear{},
	}

	state := yearState{balance: startingBalance, salary: money.NonNegative(in.CurrentSalary)}
	for year := 1; year <= years; year++ {
		var row domain.RetirementYear
		state, row = projectYear(state, p)
		row.Year = year
		row.Age = in.CurrentAge + year
		results.Projection = append(results.Projection, row)

		results.TotalEmployeeContributions = results.TotalEmployeeContributions.Add(row.EmployeeContribution)
		results.TotalEmployerContributions = results.TotalEmployerContributions.Add(row.EmployerContribution)
		results.TotalTraditionalContribution = results.TotalTraditionalContribution.Add(row.TraditionalContribution)
		results.TotalRothContribution = results.TotalRothContribution.Add(row.RothContribution)
		results.TaxSavings = results.TaxSavings.Add(row.TaxSavings)
	}

	results.FinalBalance = state.balance
	results.InvestmentGrowth = state.balance.
		Sub(startingBalance).
		Sub(results.TotalEmployeeContributions).
		Sub(results.TotalEmployerContributions)

	if years > 0 {
		results.MonthlyContribution = money.Monthly(results.TotalEmployeeContributions).Div(decimal.NewFromInt(int64(years)))
	}

	return results
}

// projectYear advances one year from prev and returns the new state with its snapshot row.
// The row's Year and Age are filled in by the caller.
func projectYear(prev yearState, p retirementParams) (yearState, domain.RetirementYear) {
	salary := prev.salary.Mul(decimal.NewFromInt(1).Add(money.Rate(p.salaryGrowth))).Round(projectionScale)

	employee := money.Min(money.Percent(salary, p.employeePct), p.limit)
	traditional, roth := splitContribution(employee, p)

	// Match applies only up to the capped share of salary the employee defers
	matchedPct := money.Min(p.employeePct, p.matchCapPct)
	employer := money.Percent(money.Percent(salary, matchedPct), p.matchPct)

	monthlyDeposit := employee.Add(employer).Div(monthsPerYear)
	growthFactor := decimal.NewFromInt(1).Add(p.monthlyReturn)
	balance := prev.balance
	for m := 0; m < compoundPeriod; m++ {
		balance = balance.Mul(growthFactor).Add(monthlyDeposit).Round(projectionScale)
	}

	row := domain.RetirementYear{
		Salary:                  salary,
		EmployeeContribution:    employee,
		EmployerContribution:    employer,
		TraditionalContribution: traditional,
		RothContribution:        roth,
		Balance:                 balance,
		TaxSavings:              money.Percent(traditional, p.taxBracket),
	}
	return yearState{balance: balance, salary: salary}, row
}

// splitContribution divides the employee deferral between traditional and Roth.
// In "both" mode the split percentage applies to the base deferral only; anything above it
// (the catch-up range) is traditional.
func splitContribution(employee decimal.Decimal, p retirementParams) (traditional, roth decimal.Decimal) {
	switch p.contributionType {
	case domain.ContributionRoth:
		return decimal.Zero, employee
	case domain.ContributionBoth:
		base := money.Min(employee, p.baseDeferral)
		traditional = money.Percent(base, p.traditionalPct).Add(employee.Sub(base))
		return traditional, employee.Sub(traditional)
	default:
		return employee, decimal.Zero
	}
}
