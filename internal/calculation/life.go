package calculation

import (
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
)

// CalculateLifeInsurance applies the DIME method (Debt, Income replacement, Mortgage,
// Education) and nets the total against existing coverage. Inputs are used as given.
func CalculateLifeInsurance(in domain.LifeInsuranceInputs) domain.LifeInsuranceResults {
	incomeReplacement := in.Income.Mul(in.IncomeYears)
	dime := in.TotalDebt.Add(incomeReplacement).Add(in.MortgageBalance).Add(in.EducationCosts)

	return domain.LifeInsuranceResults{
		Debt:              in.TotalDebt,
		IncomeReplacement: incomeReplacement,
		Mortgage:          in.MortgageBalance,
		Education:         in.EducationCosts,
		DIMETotal:         dime,
		CurrentCoverage:   in.CurrentInsurance,
		AdditionalNeeded:  money.NonNegative(dime.Sub(in.CurrentInsurance)),
	}
}
