package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHSAInputsLegacyContribution(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		yaml     string
		expected string
	}{
		{
			name:     "canonical field",
			json:     `{"coverage":"family","employee_contribution":4000}`,
			yaml:     "coverage: family\nemployee_contribution: 4000\n",
			expected: "4000",
		},
		{
			name:     "legacy field",
			json:     `{"coverage":"family","contribution":"2500.50"}`,
			yaml:     "coverage: family\ncontribution: 2500.50\n",
			expected: "2500.5",
		},
		{
			name:     "canonical wins over legacy",
			json:     `{"coverage":"family","employee_contribution":3000,"contribution":2000}`,
			yaml:     "coverage: family\nemployee_contribution: 3000\ncontribution: 2000\n",
			expected: "3000",
		},
		{
			name:     "neither field",
			json:     `{"coverage":"family"}`,
			yaml:     "coverage: family\n",
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromJSON HSAInputs
			require.NoError(t, json.Unmarshal([]byte(tt.json), &fromJSON))
			assert.Equal(t, CoverageFamily, fromJSON.Coverage)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(fromJSON.EmployeeContribution), "json got %s", fromJSON.EmployeeContribution)

			var fromYAML HSAInputs
			require.NoError(t, yaml.Unmarshal([]byte(tt.yaml), &fromYAML))
			assert.Equal(t, CoverageFamily, fromYAML.Coverage)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(fromYAML.EmployeeContribution), "yaml got %s", fromYAML.EmployeeContribution)
		})
	}
}

func TestHSAInputsRejectsMalformed(t *testing.T) {
	var in HSAInputs
	assert.Error(t, json.Unmarshal([]byte(`{"contribution":"lots"}`), &in))
	assert.Error(t, yaml.Unmarshal([]byte("age: [1, 2]\n"), &in))
}

func TestParseCalculatorType(t *testing.T) {
	tests := []struct {
		in       string
		expected CalculatorType
	}{
		{"hsa", CalculatorHSA},
		{" FSA ", CalculatorFSA},
		{"commuter", CalculatorCommuter},
		{"life-insurance", CalculatorLifeInsurance},
		{"life", CalculatorLifeInsurance},
		{"401k", CalculatorRetirement},
		{"retirement", CalculatorRetirement},
	}
	for _, tt := range tests {
		got, err := ParseCalculatorType(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, got)
	}

	_, err := ParseCalculatorType("pension")
	assert.True(t, errors.Is(err, ErrUnknownCalculator))
}

func TestDecodeInputs(t *testing.T) {
	doc := []byte(`{"monthly_transit_cost": 120, "monthly_parking_cost": 80, "tax_bracket": 22}`)

	in, err := DecodeInputs(CalculatorCommuter, func(v any) error { return json.Unmarshal(doc, v) })
	require.NoError(t, err)
	commuter, ok := in.(CommuterInputs)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(120).Equal(commuter.MonthlyTransitCost))
	assert.Equal(t, CalculatorCommuter, in.CalculatorType())

	_, err = DecodeInputs("pension", func(v any) error { return nil })
	assert.True(t, errors.Is(err, ErrUnknownCalculator))

	_, err = DecodeInputs(CalculatorHSA, func(v any) error { return json.Unmarshal([]byte(`{"age":"old"}`), v) })
	assert.Error(t, err)
}

func TestFilingStatusDefaults(t *testing.T) {
	assert.Equal(t, FilingSingle, FilingStatus("").OrDefault())
	assert.Equal(t, FilingSingle, FilingStatus("widowed").OrDefault())
	assert.Equal(t, FilingHeadOfHousehold, FilingHeadOfHousehold.OrDefault())
	assert.False(t, FilingStatus("widowed").Valid())
}
