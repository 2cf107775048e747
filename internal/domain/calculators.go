package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CalculatorType identifies one of the benefit calculators
type CalculatorType string

const (
	CalculatorHSA           CalculatorType = "hsa"
	CalculatorFSA           CalculatorType = "fsa"
	CalculatorCommuter      CalculatorType = "commuter"
	CalculatorLifeInsurance CalculatorType = "life_insurance"
	CalculatorRetirement    CalculatorType = "retirement"
)

// CalculatorTypes lists all calculators in display order
var CalculatorTypes = []CalculatorType{CalculatorHSA, CalculatorFSA, CalculatorCommuter, CalculatorLifeInsurance, CalculatorRetirement}

// Coverage is the HDHP coverage tier
type Coverage string

const (
	CoverageIndividual Coverage = "individual"
	CoverageFamily     Coverage = "family"
)

// ContributionType selects how retirement deferrals are taxed
type ContributionType string

const (
	ContributionTraditional ContributionType = "traditional"
	ContributionRoth        ContributionType = "roth"
	ContributionBoth        ContributionType = "both"
)

// HSAInputs are the user-entered parameters for the HSA calculator.
// The legacy "contribution" field is resolved into EmployeeContribution when decoding (see inputs_codec.go).
type HSAInputs struct {
	Coverage              Coverage         `yaml:"coverage" json:"coverage"`
	Age                   int              `yaml:"age" json:"age"`
	EmployeeContribution  decimal.Decimal  `yaml:"employee_contribution" json:"employee_contribution"`
	EmployerSeed          decimal.Decimal  `yaml:"employer_seed" json:"employer_seed"`
	HDHPMonthlyPremium    decimal.Decimal  `yaml:"hdhp_monthly_premium" json:"hdhp_monthly_premium"`
	AltPlanMonthlyPremium decimal.Decimal  `yaml:"alt_plan_monthly_premium" json:"alt_plan_monthly_premium"`
	TargetReserve         decimal.Decimal  `yaml:"target_reserve" json:"target_reserve"`
	AnnualIncome          *decimal.Decimal `yaml:"annual_income,omitempty" json:"annual_income,omitempty"`
	FilingStatus          FilingStatus     `yaml:"filing_status,omitempty" json:"filing_status,omitempty"`
	TaxBracket            decimal.Decimal  `yaml:"tax_bracket" json:"tax_bracket"` // flat percentage used when no income is given
}

// HSAResults are the derived HSA figures
type HSAResults struct {
	BaseLimit               decimal.Decimal `json:"base_limit"`
	CatchUpAllowance        decimal.Decimal `json:"catch_up_allowance"`
	AnnualContributionLimit decimal.Decimal `json:"annual_contribution_limit"`
	TotalContribution       decimal.Decimal `json:"total_contribution"`
	EmployerContribution    decimal.Decimal `json:"employer_contribution"`
	EmployeeContribution    decimal.Decimal `json:"employee_contribution"` // employee share of the capped total
	CatchUpContribution     decimal.Decimal `json:"catch_up_contribution"`
	MarginalRate            decimal.Decimal `json:"marginal_rate"`
	TaxSavings              decimal.Decimal `json:"tax_savings"`
	AnnualPremiumSavings    decimal.Decimal `json:"annual_premium_savings"`
	ProjectedReserve        decimal.Decimal `json:"projected_reserve"`
	ReserveShortfall        decimal.Decimal `json:"reserve_shortfall"`
	NetCashflowAdvantage    decimal.Decimal `json:"net_cashflow_advantage"`
}

// FSAInputs are the user-entered parameters for the FSA calculator
type FSAInputs struct {
	HealthElection           decimal.Decimal  `yaml:"health_election" json:"health_election"`
	ExpectedEligibleExpenses decimal.Decimal  `yaml:"expected_eligible_expenses" json:"expected_eligible_expenses"`
	PlanCarryover            decimal.Decimal  `yaml:"plan_carryover" json:"plan_carryover"`
	GracePeriodMonths        decimal.Decimal  `yaml:"grace_period_months" json:"grace_period_months"`
	IncludeDependentCare     bool             `yaml:"include_dependent_care" json:"include_dependent_care"`
	DependentCareElection    decimal.Decimal  `yaml:"dependent_care_election" json:"dependent_care_election"`
	DependentCareExpenses    decimal.Decimal  `yaml:"dependent_care_expenses" json:"dependent_care_expenses"`
	AnnualIncome             *decimal.Decimal `yaml:"annual_income,omitempty" json:"annual_income,omitempty"`
	FilingStatus             FilingStatus     `yaml:"filing_status,omitempty" json:"filing_status,omitempty"`
	TaxBracket               decimal.Decimal  `yaml:"tax_bracket" json:"tax_bracket"`
}

// DependentCareResults is the dependent-care sub-calculation. Dependent care has no carryover
// or grace period; anything elected and not spent is forfeited.
type DependentCareResults struct {
	CappedElection decimal.Decimal `json:"capped_election"`
	Utilization    decimal.Decimal `json:"utilization"`
	ForfeitureRisk decimal.Decimal `json:"forfeiture_risk"`
	TaxSavings     decimal.Decimal `json:"tax_savings"`
}

// FSAResults are the derived FSA figures
type FSAResults struct {
	CappedHealthElection   decimal.Decimal       `json:"capped_health_election"`
	GracePeriodUtilization decimal.Decimal       `json:"grace_period_utilization"`
	ExpectedUtilization    decimal.Decimal       `json:"expected_utilization"`
	CarryoverProtected     decimal.Decimal       `json:"carryover_protected"`
	ForfeitureRisk         decimal.Decimal       `json:"forfeiture_risk"`
	MarginalRate           decimal.Decimal       `json:"marginal_rate"`
	TaxSavings             decimal.Decimal       `json:"tax_savings"`
	NetBenefit             decimal.Decimal       `json:"net_benefit"`
	DependentCare          *DependentCareResults `json:"dependent_care,omitempty"`
}

// CommuterInputs are the user-entered parameters for the commuter benefit calculator
type CommuterInputs struct {
	MonthlyTransitCost decimal.Decimal  `yaml:"monthly_transit_cost" json:"monthly_transit_cost"`
	MonthlyParkingCost decimal.Decimal  `yaml:"monthly_parking_cost" json:"monthly_parking_cost"`
	AnnualIncome       *decimal.Decimal `yaml:"annual_income,omitempty" json:"annual_income,omitempty"`
	FilingStatus       FilingStatus     `yaml:"filing_status,omitempty" json:"filing_status,omitempty"`
	TaxBracket         decimal.Decimal  `yaml:"tax_bracket" json:"tax_bracket"`
}

// CommuterResults are the derived commuter figures
type CommuterResults struct {
	MonthlyTransitUsed decimal.Decimal `json:"monthly_transit_used"`
	MonthlyParkingUsed decimal.Decimal `json:"monthly_parking_used"`
	AnnualTransit      decimal.Decimal `json:"annual_transit"`
	AnnualParking      decimal.Decimal `json:"annual_parking"`
	TransitSavings     decimal.Decimal `json:"transit_savings"`
	ParkingSavings     decimal.Decimal `json:"parking_savings"`
	TotalAnnual        decimal.Decimal `json:"total_annual"`
	TotalSavings       decimal.Decimal `json:"total_savings"`
	AnnualExcessCost   decimal.Decimal `json:"annual_excess_cost"` // spend above the caps, paid post-tax
	MarginalRate       decimal.Decimal `json:"marginal_rate"`
}

// LifeInsuranceInputs are the DIME method inputs
type LifeInsuranceInputs struct {
	TotalDebt        decimal.Decimal `yaml:"total_debt" json:"total_debt"`
	Income           decimal.Decimal `yaml:"income" json:"income"`
	MortgageBalance  decimal.Decimal `yaml:"mortgage_balance" json:"mortgage_balance"`
	EducationCosts   decimal.Decimal `yaml:"education_costs" json:"education_costs"`
	IncomeYears      decimal.Decimal `yaml:"income_years" json:"income_years"` // may be fractional
	CurrentInsurance decimal.Decimal `yaml:"current_insurance" json:"current_insurance"`
}

// LifeInsuranceResults are the DIME components and the coverage gap
type LifeInsuranceResults struct {
	Debt              decimal.Decimal `json:"debt"`
	IncomeReplacement decimal.Decimal `json:"income_replacement"`
	Mortgage          decimal.Decimal `json:"mortgage"`
	Education         decimal.Decimal `json:"education"`
	DIMETotal         decimal.Decimal `json:"dime_total"`
	CurrentCoverage   decimal.Decimal `json:"current_coverage"`
	AdditionalNeeded  decimal.Decimal `json:"additional_needed"`
}

// RetirementInputs are the parameters for the retirement projection. All rates are percentages.
type RetirementInputs struct {
	CurrentAge              int              `yaml:"current_age" json:"current_age"`
	RetirementAge           int              `yaml:"retirement_age" json:"retirement_age"`
	CurrentSalary           decimal.Decimal  `yaml:"current_salary" json:"current_salary"`
	CurrentBalance          decimal.Decimal  `yaml:"current_balance" json:"current_balance"`
	EmployeeContributionPct decimal.Decimal  `yaml:"employee_contribution_pct" json:"employee_contribution_pct"`
	EmployerMatchPct        decimal.Decimal  `yaml:"employer_match_pct" json:"employer_match_pct"`
	EmployerMatchCapPct     decimal.Decimal  `yaml:"employer_match_cap_pct" json:"employer_match_cap_pct"`
	ExpectedReturn          decimal.Decimal  `yaml:"expected_return" json:"expected_return"`
	SalaryGrowth            decimal.Decimal  `yaml:"salary_growth" json:"salary_growth"`
	ContributionType        ContributionType `yaml:"contribution_type" json:"contribution_type"`
	TraditionalPct          decimal.Decimal  `yaml:"traditional_pct" json:"traditional_pct"` // share of base deferral sent to traditional when type is both
	TaxBracket              decimal.Decimal  `yaml:"tax_bracket" json:"tax_bracket"`
}

// RetirementYear is one immutable row of the year-by-year projection
type RetirementYear struct {
	Year                    int             `json:"year"`
	Age                     int             `json:"age"`
	Salary                  decimal.Decimal `json:"salary"`
	EmployeeContribution    decimal.Decimal `json:"employee_contribution"`
	EmployerContribution    decimal.Decimal `json:"employer_contribution"`
	TraditionalContribution decimal.Decimal `json:"traditional_contribution"`
	RothContribution        decimal.Decimal `json:"roth_contribution"`
	Balance                 decimal.Decimal `json:"balance"`
	TaxSavings              decimal.Decimal `json:"tax_savings"`
}

// RetirementResults summarizes the projection
type RetirementResults struct {
	YearsToRetirement            int              `json:"years_to_retirement"`
	StartingBalance              decimal.Decimal  `json:"starting_balance"`
	FinalBalance                 decimal.Decimal  `json:"final_balance"`
	ContributionLimit            decimal.Decimal  `json:"contribution_limit"`
	TotalEmployeeContributions   decimal.Decimal  `json:"total_employee_contributions"`
	TotalEmployerContributions   decimal.Decimal  `json:"total_employer_contributions"`
	TotalTraditionalContribution decimal.Decimal  `json:"total_traditional_contributions"`
	TotalRothContribution        decimal.Decimal  `json:"total_roth_contributions"`
	InvestmentGrowth             decimal.Decimal  `json:"investment_growth"`
	MonthlyContribution          decimal.Decimal  `json:"monthly_contribution"`
	TaxSavings                   decimal.Decimal  `json:"tax_savings"`
	Projection                   []RetirementYear `json:"projection"`
}

// CalculatorInputs is implemented by every calculator's input record
type CalculatorInputs interface {
	CalculatorType() CalculatorType
}

func (HSAInputs) CalculatorType() CalculatorType           { return CalculatorHSA }
func (FSAInputs) CalculatorType() CalculatorType           { return CalculatorFSA }
func (CommuterInputs) CalculatorType() CalculatorType      { return CalculatorCommuter }
func (LifeInsuranceInputs) CalculatorType() CalculatorType { return CalculatorLifeInsurance }
func (RetirementInputs) CalculatorType() CalculatorType    { return CalculatorRetirement }

// ErrUnknownCalculator is returned for a calculator type that does not exist
var ErrUnknownCalculator = errors.New("unknown calculator type")

// ParseCalculatorType normalizes a user-supplied calculator name ("life-insurance", "HSA", ...)
func ParseCalculatorType(s string) (CalculatorType, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	switch n {
	case "life", "dime":
		n = string(CalculatorLifeInsurance)
	case "401k":
		n = string(CalculatorRetirement)
	}
	for _, t := range CalculatorTypes {
		if string(t) == n {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCalculator, s)
}

// DecodeInputs builds the input record for t using decode to fill it.
// decode is typically yaml.Node.Decode or a json.Unmarshal closure.
func DecodeInputs(t CalculatorType, decode func(target any) error) (CalculatorInputs, error) {
	switch t {
	case CalculatorHSA:
		var in HSAInputs
		err := decode(&in)
		return in, err
	case CalculatorFSA:
		var in FSAInputs
		err := decode(&in)
		return in, err
	case CalculatorCommuter:
		var in CommuterInputs
		err := decode(&in)
		return in, err
	case CalculatorLifeInsurance:
		var in LifeInsuranceInputs
		err := decode(&in)
		return in, err
	case CalculatorRetirement:
		var in RetirementInputs
		err := decode(&in)
		return in, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, t)
	}
}
