package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals; negatives render as -$1.00.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatValue renders a summary line according to its kind
func FormatValue(line domain.SummaryLine) string {
	switch line.Kind {
	case domain.KindPercent:
		return FormatPercentage(line.Value)
	case domain.KindCount:
		return line.Value.String()
	default:
		return FormatCurrency(line.Value)
	}
}

// rawValue renders a summary line for machine-readable output (no symbols)
func rawValue(line domain.SummaryLine) string {
	if line.Kind == domain.KindCount {
		return line.Value.String()
	}
	return line.Value.StringFixed(2)
}

func intToString(i int) string { return strconv.Itoa(i) }

// calculatorTitle is the display name used in report headings
func calculatorTitle(t domain.CalculatorType) string {
	switch t {
	case domain.CalculatorHSA:
		return "Health Savings Account"
	case domain.CalculatorFSA:
		return "Flexible Spending Account"
	case domain.CalculatorCommuter:
		return "Commuter Benefits"
	case domain.CalculatorLifeInsurance:
		return "Life Insurance Needs (DIME)"
	case domain.CalculatorRetirement:
		return "401(k) Retirement Projection"
	default:
		return string(t)
	}
}
