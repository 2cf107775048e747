package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlines(t *testing.T) {
	tests := []struct {
		name          string
		results       CalculatorResults
		label         string
		lowerIsBetter bool
	}{
		{"hsa", HSAResults{NetCashflowAdvantage: decimal.NewFromInt(10)}, "Net Cashflow Advantage", false},
		{"fsa", FSAResults{NetBenefit: decimal.NewFromInt(10)}, "Net Benefit", false},
		{"commuter", CommuterResults{TotalSavings: decimal.NewFromInt(10)}, "Total Savings", false},
		{"life", LifeInsuranceResults{AdditionalNeeded: decimal.NewFromInt(10)}, "Additional Coverage Needed", true},
		{"retirement", RetirementResults{FinalBalance: decimal.NewFromInt(10)}, "Final Balance", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.results.Headline()
			assert.Equal(t, tt.label, h.Label)
			assert.Equal(t, tt.lowerIsBetter, h.LowerIsBetter)
			assert.True(t, decimal.NewFromInt(10).Equal(h.Value))

			// the headline figure also appears in the summary
			found := false
			for _, line := range tt.results.Summary() {
				if line.Label == h.Label {
					found = true
				}
			}
			assert.True(t, found)
		})
	}
}

func TestFSASummaryIncludesDependentCare(t *testing.T) {
	without := FSAResults{}.Summary()
	with := FSAResults{DependentCare: &DependentCareResults{}}.Summary()
	assert.Len(t, with, len(without)+4)
}

func TestNewSession(t *testing.T) {
	report := &Report{
		CalculatorType: CalculatorLifeInsurance,
		Inputs:         LifeInsuranceInputs{Income: decimal.NewFromInt(50000), IncomeYears: decimal.NewFromInt(2)},
		Results:        LifeInsuranceResults{DIMETotal: decimal.NewFromInt(100000)},
	}

	session, err := NewSession(report)
	require.NoError(t, err)
	assert.Equal(t, CalculatorLifeInsurance, session.CalculatorType)
	assert.Empty(t, session.ID)

	var inputs LifeInsuranceInputs
	require.NoError(t, json.Unmarshal([]byte(session.InputData), &inputs))
	assert.True(t, decimal.NewFromInt(2).Equal(inputs.IncomeYears))

	var results map[string]any
	require.NoError(t, json.Unmarshal([]byte(session.Results), &results))
	assert.Equal(t, "100000", results["dime_total"])
}
