package calculation

import (
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX RATE ASSUMPTIONS:
//
// 1. Marginal rates come from the plan year's federal bracket table for the filing status.
//    Income is compared against bracket upper bounds directly (no standard deduction).
// 2. A missing or empty filing status uses the single table.
// 3. When no income is supplied, calculators fall back to the caller's flat tax bracket.
// 4. State, local and FICA taxes are not modeled.

var hundred = decimal.NewFromInt(100)

// MarginalRate returns the marginal rate (percentage) for income under the given brackets.
// Income at or below zero has no bracket and returns zero.
func MarginalRate(income decimal.Decimal, brackets []domain.TaxBracketThreshold) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	for _, b := range brackets {
		if b.UpperBound == nil || b.UpperBound.GreaterThanOrEqual(income) {
			return b.Rate
		}
	}
	// Only reachable for a malformed table without an unbounded top bracket
	if len(brackets) > 0 {
		return brackets[len(brackets)-1].Rate
	}
	return decimal.Zero
}

// MarginalRateForStatus looks up the marginal rate using the plan year's table for status
func MarginalRateForStatus(income decimal.Decimal, status domain.FilingStatus, limits *domain.PlanYearLimits) decimal.Decimal {
	return MarginalRate(income, limits.Brackets(status))
}

// ResolveRate picks the rate a calculator applies: the bracket lookup when income is present
// and positive, otherwise the flat bracket bounded to [0, 100].
func ResolveRate(income *decimal.Decimal, status domain.FilingStatus, flatBracket decimal.Decimal, limits *domain.PlanYearLimits) decimal.Decimal {
	if income != nil && income.IsPositive() {
		return MarginalRateForStatus(*income, status, limits)
	}
	return decimal.Min(decimal.Max(flatBracket, decimal.Zero), hundred)
}
