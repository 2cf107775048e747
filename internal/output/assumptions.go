package output

import (
	"fmt"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// GenerateAssumptions lists the plan-year limits and modeling rules a calculator's figures depend on
func GenerateAssumptions(calcType domain.CalculatorType, limits *domain.PlanYearLimits) []string {
	year := limits.Year
	switch calcType {
	case domain.CalculatorHSA:
		return []string{
			fmt.Sprintf("%d HSA contribution limit: %s individual, %s family", year, FormatCurrency(limits.HSA.Individual), FormatCurrency(limits.HSA.Family)),
			fmt.Sprintf("Catch-up contribution of %s from age %d", FormatCurrency(limits.HSA.CatchUp), limits.HSA.CatchUpAge),
			"Employer seed money counts toward the annual limit first",
			"Tax savings apply the marginal federal rate to employee contributions only",
		}
	case domain.CalculatorFSA:
		return []string{
			fmt.Sprintf("%d health FSA election limit: %s", year, FormatCurrency(limits.FSA.HealthElection)),
			fmt.Sprintf("Carryover limit: %s", FormatCurrency(limits.FSA.CarryoverMax)),
			fmt.Sprintf("Dependent care FSA limit: %s per household", FormatCurrency(limits.FSA.DependentCare)),
			"Grace period spending is estimated at the monthly expense rate",
		}
	case domain.CalculatorCommuter:
		return []string{
			fmt.Sprintf("%d transit benefit limit: %s per month", year, FormatCurrency(limits.Commuter.TransitMonthly)),
			fmt.Sprintf("%d parking benefit limit: %s per month", year, FormatCurrency(limits.Commuter.ParkingMonthly)),
			"Costs above the monthly limits are paid with after-tax dollars",
		}
	case domain.CalculatorLifeInsurance:
		return []string{
			"Coverage need follows the DIME method: debt, income replacement, mortgage, education",
			"Income replacement is not discounted for inflation or investment return",
		}
	case domain.CalculatorRetirement:
		return []string{
			fmt.Sprintf("%d elective deferral limit: %s", year, FormatCurrency(limits.Retirement.ElectiveDeferral)),
			fmt.Sprintf("Catch-up contribution of %s from age %d, based on age at the start of the projection", FormatCurrency(limits.Retirement.CatchUp), limits.Retirement.CatchUpAge),
			"Contribution limits are held at plan-year levels for the whole projection",
			"Returns compound monthly; salary grows once per year",
		}
	default:
		return nil
	}
}
