package calculation

import (
	"fmt"
	"testing"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	money "github.com/bernstein1/touchcarecalc-sub000/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertMoney compares amounts at cent precision
func assertMoney(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	if !dec(expected).Equal(actual.Round(2)) {
		assert.Fail(t, fmt.Sprintf("expected %s, got %s", expected, actual.StringFixed(2)), msgAndArgs...)
	}
}

func limits2024() *domain.PlanYearLimits {
	l := config.Limits2024()
	return &l
}

// TestMarginalRate tests bracket lookups against the 2024 federal tables
func TestMarginalRate(t *testing.T) {
	limits := limits2024()

	tests := []struct {
		name        string
		income      decimal.Decimal
		status      domain.FilingStatus
		expected    string
		description string
	}{
		{"zero income", decimal.Zero, domain.FilingSingle, "0", "No bracket applies at zero income"},
		{"negative income", dec("-5000"), domain.FilingSingle, "0", "Negative income is treated as no income"},
		{"first bracket", dec("10000"), domain.FilingSingle, "10", "Income inside the 10% bracket"},
		{"upper bound inclusive", dec("47150"), domain.FilingSingle, "12", "Income equal to an upper bound stays in that bracket"},
		{"just above bound", dec("47150.01"), domain.FilingSingle, "22", "One cent above the bound moves up a bracket"},
		{"middle income single", dec("50000"), domain.FilingSingle, "22", "Typical single filer"},
		{"top bracket", dec("1000000"), domain.FilingSingle, "37", "Unbounded top bracket"},
		{"married joint", dec("50000"), domain.FilingMarriedJoint, "12", "Joint filers have wider brackets"},
		{"married separate top", dec("400000"), domain.FilingMarriedSeparate, "37", "Separate filers reach 37% earlier"},
		{"head of household", dec("16550"), domain.FilingHeadOfHousehold, "10", "Head of household first bracket bound"},
		{"empty status", dec("50000"), "", "22", "Empty status uses single"},
		{"unknown status", dec("50000"), "widowed", "22", "Unknown status uses single"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := MarginalRateForStatus(tt.income, tt.status, limits)
			assert.True(t, dec(tt.expected).Equal(rate), "%s: expected %s, got %s", tt.description, tt.expected, rate)
		})
	}
}

// TestMarginalRateAlwaysPublished verifies every lookup returns one of the published rates
func TestMarginalRateAlwaysPublished(t *testing.T) {
	limits := limits2024()
	published := map[string]bool{"0": true, "10": true, "12": true, "22": true, "24": true, "32": true, "35": true, "37": true}

	for _, status := range domain.FilingStatuses {
		for income := int64(0); income <= 800000; income += 12345 {
			rate := MarginalRateForStatus(decimal.NewFromInt(income), status, limits)
			assert.True(t, published[rate.String()], "status %s income %d gave %s", status, income, rate)
		}
	}
}

func TestMarginalRateEmptyTable(t *testing.T) {
	assert.True(t, MarginalRate(dec("50000"), nil).IsZero())
}

// TestResolveRate tests the choice between bracket lookup and the flat fallback bracket
func TestResolveRate(t *testing.T) {
	limits := limits2024()

	tests := []struct {
		name     string
		income   *decimal.Decimal
		flat     decimal.Decimal
		expected string
	}{
		{"no income uses flat bracket", nil, dec("24"), "24"},
		{"zero income uses flat bracket", money.Ptr(decimal.Zero), dec("22"), "22"},
		{"income overrides flat bracket", money.Ptr(dec("50000")), dec("10"), "22"},
		{"flat bracket capped at 100", nil, dec("150"), "100"},
		{"negative flat bracket floored", nil, dec("-5"), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := ResolveRate(tt.income, domain.FilingSingle, tt.flat, limits)
			assert.True(t, dec(tt.expected).Equal(rate), "expected %s, got %s", tt.expected, rate)
		})
	}
}
