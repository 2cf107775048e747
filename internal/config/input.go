package config

import (
	"fmt"
	"os"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CalculationRequest is a parsed input file: one calculator, one or more scenarios
type CalculationRequest struct {
	CalculatorType domain.CalculatorType
	PlanYear       int // zero means the configured default
	Scenarios      []domain.NamedInputs
}

// inputFile is the on-disk shape of an input file. A file carries either a single
// inputs block or a list of named scenarios.
type inputFile struct {
	Calculator string          `yaml:"calculator"`
	PlanYear   int             `yaml:"plan_year"`
	Name       string          `yaml:"name"`
	Inputs     yaml.Node       `yaml:"inputs"`
	Scenarios  []scenarioEntry `yaml:"scenarios"`
}

type scenarioEntry struct {
	Name   string    `yaml:"name"`
	Inputs yaml.Node `yaml:"inputs"`
}

// exampleFile mirrors inputFile for writing
type exampleFile struct {
	Calculator domain.CalculatorType `yaml:"calculator"`
	PlanYear   int                   `yaml:"plan_year,omitempty"`
	Scenarios  []exampleScenario     `yaml:"scenarios"`
}

type exampleScenario struct {
	Name   string                  `yaml:"name"`
	Inputs domain.CalculatorInputs `yaml:"inputs"`
}

// InputParser handles parsing of calculator input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a calculation request from a YAML or JSON file. calcType may be empty,
// in which case the file's calculator key decides; otherwise the two must agree.
func (ip *InputParser) LoadFromFile(filename string, calcType domain.CalculatorType) (*CalculationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, calcType)
}

// Parse decodes and validates a calculation request
func (ip *InputParser) Parse(data []byte, calcType domain.CalculatorType) (*CalculationRequest, error) {
	var f inputFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if f.Calculator != "" {
		declared, err := domain.ParseCalculatorType(f.Calculator)
		if err != nil {
			return nil, err
		}
		if calcType != "" && declared != calcType {
			return nil, fmt.Errorf("file declares calculator %s but %s was requested", declared, calcType)
		}
		calcType = declared
	}
	if calcType == "" {
		return nil, fmt.Errorf("%w: no calculator specified", domain.ErrUnknownCalculator)
	}

	req := &CalculationRequest{CalculatorType: calcType, PlanYear: f.PlanYear}

	entries := f.Scenarios
	if f.Inputs.Kind != 0 {
		if len(entries) > 0 {
			return nil, fmt.Errorf("file must contain either inputs or scenarios, not both")
		}
		entries = []scenarioEntry{{Name: f.Name, Inputs: f.Inputs}}
	}

	for i, e := range entries {
		node := e.Inputs
		in, err := domain.DecodeInputs(calcType, func(v any) error { return node.Decode(v) })
		if err != nil {
			return nil, fmt.Errorf("scenario %d: failed to decode %s inputs: %w", i, calcType, err)
		}
		name := e.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		req.Scenarios = append(req.Scenarios, domain.NamedInputs{Name: name, Inputs: in})
	}

	if err := ip.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return req, nil
}

// ValidateRequest checks the request's shape. Numeric inputs are never range-checked here:
// the calculators clamp out-of-range amounts, ages and periods.
func (ip *InputParser) ValidateRequest(req *CalculationRequest) error {
	if len(req.Scenarios) == 0 {
		return fmt.Errorf("no inputs or scenarios provided")
	}
	if req.PlanYear < 0 {
		return fmt.Errorf("plan year cannot be negative")
	}

	seen := make(map[string]bool, len(req.Scenarios))
	for i, sc := range req.Scenarios {
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true

		if err := ValidateInputs(sc.Inputs); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, sc.Name, err)
		}
	}
	return nil
}

// ValidateInputs checks a single calculator input record for values outside its enumerations
func ValidateInputs(inputs domain.CalculatorInputs) error {
	switch in := inputs.(type) {
	case domain.HSAInputs:
		if in.Coverage != "" && in.Coverage != domain.CoverageIndividual && in.Coverage != domain.CoverageFamily {
			return fmt.Errorf("coverage must be 'individual' or 'family'")
		}
		return validateFilingStatus(in.FilingStatus)
	case domain.FSAInputs:
		return validateFilingStatus(in.FilingStatus)
	case domain.CommuterInputs:
		return validateFilingStatus(in.FilingStatus)
	case domain.LifeInsuranceInputs:
		return nil
	case domain.RetirementInputs:
		switch in.ContributionType {
		case "", domain.ContributionTraditional, domain.ContributionRoth, domain.ContributionBoth:
			return nil
		default:
			return fmt.Errorf("contribution type must be 'traditional', 'roth', or 'both'")
		}
	case nil:
		return fmt.Errorf("inputs are required")
	default:
		return fmt.Errorf("%w: inputs of type %T", domain.ErrUnknownCalculator, inputs)
	}
}

// validateFilingStatus rejects a filing status the bracket tables do not know
func validateFilingStatus(status domain.FilingStatus) error {
	if status != "" && !status.Valid() {
		return fmt.Errorf("unknown filing status %q", status)
	}
	return nil
}

// CreateExampleRequest builds a two-scenario example for a calculator
func (ip *InputParser) CreateExampleRequest(calcType domain.CalculatorType) (*CalculationRequest, error) {
	var a, b domain.CalculatorInputs
	switch calcType {
	case domain.CalculatorHSA:
		base := domain.HSAInputs{
			Coverage:              domain.CoverageFamily,
			Age:                   45,
			EmployeeContribution:  decimal.NewFromInt(6000),
			EmployerSeed:          decimal.NewFromInt(1000),
			HDHPMonthlyPremium:    decimal.NewFromInt(300),
			AltPlanMonthlyPremium: decimal.NewFromInt(500),
			TargetReserve:         decimal.NewFromInt(6000),
			TaxBracket:            decimal.NewFromInt(22),
		}
		maxed := base
		maxed.EmployeeContribution = decimal.NewFromInt(7300)
		a, b = base, maxed
	case domain.CalculatorFSA:
		base := domain.FSAInputs{
			HealthElection:           decimal.NewFromInt(2500),
			ExpectedEligibleExpenses: decimal.NewFromInt(2200),
			PlanCarryover:            decimal.NewFromInt(640),
			TaxBracket:               decimal.NewFromInt(22),
		}
		withCare := base
		withCare.IncludeDependentCare = true
		withCare.DependentCareElection = decimal.NewFromInt(5000)
		withCare.DependentCareExpenses = decimal.NewFromInt(6500)
		a, b = base, withCare
	case domain.CalculatorCommuter:
		a = domain.CommuterInputs{MonthlyTransitCost: decimal.NewFromInt(150), TaxBracket: decimal.NewFromInt(22)}
		b = domain.CommuterInputs{MonthlyTransitCost: decimal.NewFromInt(250), MonthlyParkingCost: decimal.NewFromInt(200), TaxBracket: decimal.NewFromInt(22)}
	case domain.CalculatorLifeInsurance:
		base := domain.LifeInsuranceInputs{
			TotalDebt:       decimal.NewFromInt(25000),
			Income:          decimal.NewFromInt(85000),
			MortgageBalance: decimal.NewFromInt(240000),
			EducationCosts:  decimal.NewFromInt(100000),
			IncomeYears:     decimal.NewFromInt(10),
		}
		covered := base
		covered.CurrentInsurance = decimal.NewFromInt(500000)
		a, b = base, covered
	case domain.CalculatorRetirement:
		base := domain.RetirementInputs{
			CurrentAge:              35,
			RetirementAge:           65,
			CurrentSalary:           decimal.NewFromInt(90000),
			CurrentBalance:          decimal.NewFromInt(60000),
			EmployeeContributionPct: decimal.NewFromInt(6),
			EmployerMatchPct:        decimal.NewFromInt(50),
			EmployerMatchCapPct:     decimal.NewFromInt(6),
			ExpectedReturn:          decimal.NewFromInt(7),
			SalaryGrowth:            decimal.NewFromInt(3),
			ContributionType:        domain.ContributionTraditional,
			TaxBracket:              decimal.NewFromInt(22),
		}
		split := base
		split.EmployeeContributionPct = decimal.NewFromInt(12)
		split.ContributionType = domain.ContributionBoth
		split.TraditionalPct = decimal.NewFromInt(50)
		a, b = base, split
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCalculator, calcType)
	}

	return &CalculationRequest{
		CalculatorType: calcType,
		Scenarios: []domain.NamedInputs{
			{Name: "Current Plan", Inputs: a},
			{Name: "Alternative", Inputs: b},
		},
	}, nil
}

// MarshalRequest renders a request in the input file format
func MarshalRequest(req *CalculationRequest) ([]byte, error) {
	f := exampleFile{Calculator: req.CalculatorType, PlanYear: req.PlanYear}
	for _, sc := range req.Scenarios {
		f.Scenarios = append(f.Scenarios, exampleScenario{Name: sc.Name, Inputs: sc.Inputs})
	}
	return yaml.Marshal(f)
}
