package calculation

import (
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
)

// CalculateCommuter caps transit and parking spend at their separate monthly limits,
// annualizes them and applies the marginal rate.
func CalculateCommuter(in domain.CommuterInputs, limits *domain.PlanYearLimits) domain.CommuterResults {
	transitCost := money.NonNegative(in.MonthlyTransitCost)
	parkingCost := money.NonNegative(in.MonthlyParkingCost)

	transitUsed := money.Min(transitCost, limits.Commuter.TransitMonthly)
	parkingUsed := money.Min(parkingCost, limits.Commuter.ParkingMonthly)

	annualTransit := money.Annual(transitUsed)
	annualParking := money.Annual(parkingUsed)

	rate := ResolveRate(in.AnnualIncome, in.FilingStatus, in.TaxBracket, limits)
	transitSavings := money.Percent(annualTransit, rate)
	parkingSavings := money.Percent(annualParking, rate)

	excess := transitCost.Sub(transitUsed).Add(parkingCost.Sub(parkingUsed))

	return domain.CommuterResults{
		MonthlyTransitUsed: transitUsed,
		MonthlyParkingUsed: parkingUsed,
		AnnualTransit:      annualTransit,
		AnnualParking:      annualParking,
		TransitSavings:     transitSavings,
		ParkingSavings:     parkingSavings,
		TotalAnnual:        annualTransit.Add(annualParking),
		TotalSavings:       transitSavings.Add(parkingSavings),
		AnnualExcessCost:   money.Annual(excess),
		MarginalRate:       rate,
	}
}
