package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ValueKind tells formatters how to render a summary value
type ValueKind string

const (
	KindCurrency ValueKind = "currency"
	KindPercent  ValueKind = "percent"
	KindCount    ValueKind = "count"
)

// SummaryLine is one labeled figure of a calculator result
type SummaryLine struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Kind  ValueKind       `json:"kind"`
}

// Headline is the single figure used to rank scenarios of the same calculator
type Headline struct {
	Label         string          `json:"label"`
	Value         decimal.Decimal `json:"value"`
	LowerIsBetter bool            `json:"lower_is_better,omitempty"`
}

// CalculatorResults is implemented by every calculator's result record
type CalculatorResults interface {
	Summary() []SummaryLine
	Headline() Headline
}

func currency(label string, v decimal.Decimal) SummaryLine {
	return SummaryLine{Label: label, Value: v, Kind: KindCurrency}
}

func percent(label string, v decimal.Decimal) SummaryLine {
	return SummaryLine{Label: label, Value: v, Kind: KindPercent}
}

func (r HSAResults) Summary() []SummaryLine {
	return []SummaryLine{
		currency("Annual Contribution Limit", r.AnnualContributionLimit),
		currency("Total Contribution", r.TotalContribution),
		currency("Employer Contribution", r.EmployerContribution),
		currency("Employee Contribution", r.EmployeeContribution),
		currency("Catch-Up Contribution", r.CatchUpContribution),
		percent("Marginal Rate", r.MarginalRate),
		currency("Tax Savings", r.TaxSavings),
		currency("Annual Premium Savings", r.AnnualPremiumSavings),
		currency("Projected Reserve", r.ProjectedReserve),
		currency("Reserve Shortfall", r.ReserveShortfall),
		currency("Net Cashflow Advantage", r.NetCashflowAdvantage),
	}
}

func (r HSAResults) Headline() Headline {
	return Headline{Label: "Net Cashflow Advantage", Value: r.NetCashflowAdvantage}
}

func (r FSAResults) Summary() []SummaryLine {
	lines := []SummaryLine{
		currency("Health Election", r.CappedHealthElection),
		currency("Grace Period Utilization", r.GracePeriodUtilization),
		currency("Expected Utilization", r.ExpectedUtilization),
		currency("Carryover Protected", r.CarryoverProtected),
		currency("Forfeiture Risk", r.ForfeitureRisk),
		percent("Marginal Rate", r.MarginalRate),
		currency("Tax Savings", r.TaxSavings),
		currency("Net Benefit", r.NetBenefit),
	}
	if r.DependentCare != nil {
		lines = append(lines,
			currency("Dependent Care Election", r.DependentCare.CappedElection),
			currency("Dependent Care Utilization", r.DependentCare.Utilization),
			currency("Dependent Care Forfeiture Risk", r.DependentCare.ForfeitureRisk),
			currency("Dependent Care Tax Savings", r.DependentCare.TaxSavings),
		)
	}
	return lines
}

func (r FSAResults) Headline() Headline {
	return Headline{Label: "Net Benefit", Value: r.NetBenefit}
}

func (r CommuterResults) Summary() []SummaryLine {
	return []SummaryLine{
		currency("Monthly Transit Used", r.MonthlyTransitUsed),
		currency("Monthly Parking Used", r.MonthlyParkingUsed),
		currency("Annual Transit", r.AnnualTransit),
		currency("Annual Parking", r.AnnualParking),
		percent("Marginal Rate", r.MarginalRate),
		currency("Transit Savings", r.TransitSavings),
		currency("Parking Savings", r.ParkingSavings),
		currency("Total Annual Benefit", r.TotalAnnual),
		currency("Total Savings", r.TotalSavings),
		currency("Annual Cost Above Caps", r.AnnualExcessCost),
	}
}

func (r CommuterResults) Headline() Headline {
	return Headline{Label: "Total Savings", Value: r.TotalSavings}
}

func (r LifeInsuranceResults) Summary() []SummaryLine {
	return []SummaryLine{
		currency("Debt", r.Debt),
		currency("Income Replacement", r.IncomeReplacement),
		currency("Mortgage", r.Mortgage),
		currency("Education", r.Education),
		currency("DIME Total", r.DIMETotal),
		currency("Current Coverage", r.CurrentCoverage),
		currency("Additional Coverage Needed", r.AdditionalNeeded),
	}
}

func (r LifeInsuranceResults) Headline() Headline {
	return Headline{Label: "Additional Coverage Needed", Value: r.AdditionalNeeded, LowerIsBetter: true}
}

func (r RetirementResults) Summary() []SummaryLine {
	return []SummaryLine{
		{Label: "Years to Retirement", Value: decimal.NewFromInt(int64(r.YearsToRetirement)), Kind: KindCount},
		currency("Starting Balance", r.StartingBalance),
		currency("Final Balance", r.FinalBalance),
		currency("Annual Contribution Limit", r.ContributionLimit),
		currency("Employee Contributions", r.TotalEmployeeContributions),
		currency("Employer Contributions", r.TotalEmployerContributions),
		currency("Traditional Contributions", r.TotalTraditionalContribution),
		currency("Roth Contributions", r.TotalRothContribution),
		currency("Investment Growth", r.InvestmentGrowth),
		currency("Average Monthly Contribution", r.MonthlyContribution),
		currency("Tax Savings", r.TaxSavings),
	}
}

func (r RetirementResults) Headline() Headline {
	return Headline{Label: "Final Balance", Value: r.FinalBalance}
}

// Report is the outcome of one calculator run against one plan year
type Report struct {
	CalculatorType CalculatorType    `json:"calculator_type"`
	PlanYear       int               `json:"plan_year"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Inputs         CalculatorInputs  `json:"inputs"`
	Results        CalculatorResults `json:"results"`
}

// NamedInputs is one scenario to run in a comparison
type NamedInputs struct {
	Name   string
	Inputs CalculatorInputs
}

// ScenarioResult is a named report inside a comparison
type ScenarioResult struct {
	Name   string `json:"name"`
	Report Report `json:"report"`
}

// Recommendation identifies the best-ranked scenario and how it compares with the baseline (first) scenario
type Recommendation struct {
	ScenarioName     string          `json:"scenario_name"`
	HeadlineLabel    string          `json:"headline_label"`
	Value            decimal.Decimal `json:"value"`
	BaselineName     string          `json:"baseline_name"`
	Change           decimal.Decimal `json:"change"`
	PercentageChange decimal.Decimal `json:"percentage_change"`
}

// ScenarioComparison groups one or more scenarios of the same calculator and plan year
type ScenarioComparison struct {
	CalculatorType CalculatorType   `json:"calculator_type"`
	PlanYear       int              `json:"plan_year"`
	GeneratedAt    time.Time        `json:"generated_at"`
	Limits         PlanYearLimits   `json:"limits"`
	Scenarios      []ScenarioResult `json:"scenarios"`
	Recommendation *Recommendation  `json:"recommendation,omitempty"`
}

// Session is a persisted calculation. InputData and Results hold JSON documents.
type Session struct {
	ID             string         `json:"id"`
	CalculatorType CalculatorType `json:"calculator_type"`
	InputData      string         `json:"input_data"`
	Results        string         `json:"results"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSession serializes a report's inputs and results into an unsaved session
func NewSession(r *Report) (*Session, error) {
	in, err := json.Marshal(r.Inputs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inputs: %w", err)
	}
	out, err := json.Marshal(r.Results)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	return &Session{
		CalculatorType: r.CalculatorType,
		InputData:      string(in),
		Results:        string(out),
	}, nil
}
