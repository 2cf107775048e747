package calculation

import (
	"fmt"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// Engine runs the benefit calculators against one plan year's limit table
type Engine struct {
	Limits domain.PlanYearLimits
	Debug  bool // Enable debug output for resolved limits and rates
	Logger Logger
}

// NewEngine creates a calculation engine bound to a plan-year table
func NewEngine(limits domain.PlanYearLimits) *Engine {
	return &Engine{
		Limits: limits,
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Calculate dispatches inputs to the matching calculator and wraps the result in a report
func (e *Engine) Calculate(inputs domain.CalculatorInputs) (*domain.Report, error) {
	if inputs == nil {
		return nil, fmt.Errorf("no inputs provided")
	}

	var results domain.CalculatorResults
	switch in := inputs.(type) {
	case domain.HSAInputs:
		r := CalculateHSA(in, &e.Limits)
		e.debugRate(in.CalculatorType(), r.MarginalRate)
		results = r
	case domain.FSAInputs:
		r := CalculateFSA(in, &e.Limits)
		e.debugRate(in.CalculatorType(), r.MarginalRate)
		results = r
	case domain.CommuterInputs:
		r := CalculateCommuter(in, &e.Limits)
		e.debugRate(in.CalculatorType(), r.MarginalRate)
		results = r
	case domain.LifeInsuranceInputs:
		results = CalculateLifeInsurance(in)
	case domain.RetirementInputs:
		r := CalculateRetirement(in, &e.Limits)
		if e.Debug {
			e.Logger.Debugf("retirement: %d years, contribution limit $%s", r.YearsToRetirement, r.ContributionLimit.StringFixed(2))
		}
		results = r
	default:
		return nil, fmt.Errorf("%w: inputs of type %T", domain.ErrUnknownCalculator, inputs)
	}

	return &domain.Report{
		CalculatorType: inputs.CalculatorType(),
		PlanYear:       e.Limits.Year,
		GeneratedAt:    nowFunc(),
		Inputs:         inputs,
		Results:        results,
	}, nil
}

func (e *Engine) debugRate(t domain.CalculatorType, rate fmt.Stringer) {
	if e.Debug {
		e.Logger.Debugf("%s: plan year %d, marginal rate %s%%", t, e.Limits.Year, rate)
	}
}
