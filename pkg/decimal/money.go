package decimal

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// String returns the amount with two decimal places
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format formats the money amount with a dollar sign
func (m Money) Format() string {
	if m.Decimal.IsNegative() {
		return "-$" + m.Decimal.Abs().StringFixed(2)
	}
	return "$" + m.String()
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Monthly converts an annual amount to monthly
func Monthly(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}

// Percent returns pct percent of amount (pct is expressed as 0-100)
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Rate converts a percentage to a fraction
func Rate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// NonNegative floors d at zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Clamp bounds d to [lo, hi]. If hi < lo the result is lo.
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.GreaterThan(hi) {
		d = hi
	}
	if d.LessThan(lo) {
		d = lo
	}
	return d
}

// ClampPercent bounds a percentage to [0, 100]
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	return Clamp(pct, decimal.Zero, hundred)
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Ptr returns a pointer to d (handy for optional input fields)
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
