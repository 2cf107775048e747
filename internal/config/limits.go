package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultPlanYear is the plan year used when none is configured
const DefaultPlanYear = 2024

// ErrUnknownPlanYear is returned when no limit table is registered for a year
var ErrUnknownPlanYear = errors.New("unknown plan year")

// bracketTable builds a bracket list from upper bounds and rates; the last rate is the unbounded top bracket.
func bracketTable(bounds []int64, rates []int64) []domain.TaxBracketThreshold {
	out := make([]domain.TaxBracketThreshold, 0, len(rates))
	for i, r := range rates {
		row := domain.TaxBracketThreshold{Rate: decimal.NewFromInt(r)}
		if i < len(bounds) {
			ub := decimal.NewFromInt(bounds[i])
			row.UpperBound = &ub
		}
		out = append(out, row)
	}
	return out
}

var federalRates = []int64{10, 12, 22, 24, 32, 35, 37}

// Limits2024 returns the IRS-published limits for plan year 2024
func Limits2024() domain.PlanYearLimits {
	return domain.PlanYearLimits{
		Year: 2024,
		HSA: domain.HSALimits{
			Individual: decimal.NewFromInt(4150),
			Family:     decimal.NewFromInt(8300),
			CatchUp:    decimal.NewFromInt(1000),
			CatchUpAge: 55,
		},
		FSA: domain.FSALimits{
			HealthElection: decimal.NewFromInt(3200),
			CarryoverMax:   decimal.NewFromInt(640),
			DependentCare:  decimal.NewFromInt(5000),
		},
		Commuter: domain.CommuterLimits{
			TransitMonthly: decimal.NewFromInt(315),
			ParkingMonthly: decimal.NewFromInt(315),
		},
		Retirement: domain.RetirementLimits{
			ElectiveDeferral: decimal.NewFromInt(23000),
			CatchUp:          decimal.NewFromInt(7500),
			CatchUpAge:       50,
		},
		TaxBrackets: map[domain.FilingStatus][]domain.TaxBracketThreshold{
			domain.FilingSingle:          bracketTable([]int64{11600, 47150, 100525, 191950, 243725, 609350}, federalRates),
			domain.FilingMarriedJoint:    bracketTable([]int64{23200, 94300, 201050, 383900, 487450, 731200}, federalRates),
			domain.FilingMarriedSeparate: bracketTable([]int64{11600, 47150, 100525, 191950, 243725, 365600}, federalRates),
			domain.FilingHeadOfHousehold: bracketTable([]int64{16550, 63100, 100500, 191950, 243700, 609350}, federalRates),
		},
	}
}

// Limits2025 returns the IRS-published limits for plan year 2025
func Limits2025() domain.PlanYearLimits {
	return domain.PlanYearLimits{
		Year: 2025,
		HSA: domain.HSALimits{
			Individual: decimal.NewFromInt(4300),
			Family:     decimal.NewFromInt(8550),
			CatchUp:    decimal.NewFromInt(1000),
			CatchUpAge: 55,
		},
		FSA: domain.FSALimits{
			HealthElection: decimal.NewFromInt(3300),
			CarryoverMax:   decimal.NewFromInt(660),
			DependentCare:  decimal.NewFromInt(5000),
		},
		Commuter: domain.CommuterLimits{
			TransitMonthly: decimal.NewFromInt(325),
			ParkingMonthly: decimal.NewFromInt(325),
		},
		Retirement: domain.RetirementLimits{
			ElectiveDeferral: decimal.NewFromInt(23500),
			CatchUp:          decimal.NewFromInt(7500),
			CatchUpAge:       50,
		},
		TaxBrackets: map[domain.FilingStatus][]domain.TaxBracketThreshold{
			domain.FilingSingle:          bracketTable([]int64{11925, 48475, 103350, 197300, 250525, 626350}, federalRates),
			domain.FilingMarriedJoint:    bracketTable([]int64{23850, 96950, 206700, 394600, 501050, 751600}, federalRates),
			domain.FilingMarriedSeparate: bracketTable([]int64{11925, 48475, 103350, 197300, 250525, 375800}, federalRates),
			domain.FilingHeadOfHousehold: bracketTable([]int64{17000, 64850, 103350, 197300, 250500, 626350}, federalRates),
		},
	}
}

// LimitRegistry holds limit tables keyed by plan year
type LimitRegistry struct {
	years map[int]domain.PlanYearLimits
}

// NewLimitRegistry creates a registry preloaded with the built-in plan years
func NewLimitRegistry() *LimitRegistry {
	r := &LimitRegistry{years: make(map[int]domain.PlanYearLimits)}
	r.years[2024] = Limits2024()
	r.years[2025] = Limits2025()
	return r
}

// Register adds or replaces the table for limits.Year after validating it
func (r *LimitRegistry) Register(limits domain.PlanYearLimits) error {
	if err := ValidateLimits(&limits); err != nil {
		return fmt.Errorf("plan year %d: %w", limits.Year, err)
	}
	r.years[limits.Year] = limits
	return nil
}

// Lookup returns the table for a plan year
func (r *LimitRegistry) Lookup(year int) (domain.PlanYearLimits, error) {
	l, ok := r.years[year]
	if !ok {
		return domain.PlanYearLimits{}, fmt.Errorf("%w: %d (available: %v)", ErrUnknownPlanYear, year, r.Years())
	}
	return l, nil
}

// Years returns the registered plan years in ascending order
func (r *LimitRegistry) Years() []int {
	years := make([]int, 0, len(r.years))
	for y := range r.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// limitsFile is the on-disk shape of a limits override file
type limitsFile struct {
	PlanYears []domain.PlanYearLimits `yaml:"plan_years"`
}

// LoadLimitsFromFile reads plan-year tables from a YAML (or JSON) file and registers them
func (r *LimitRegistry) LoadLimitsFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read limits file %s: %w", filename, err)
	}

	var f limitsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse limits YAML: %w", err)
	}
	if len(f.PlanYears) == 0 {
		return fmt.Errorf("limits file %s defines no plan years", filename)
	}

	for _, l := range f.PlanYears {
		if err := r.Register(l); err != nil {
			return err
		}
	}
	return nil
}

// ValidateLimits checks a plan-year table for structural problems
func ValidateLimits(l *domain.PlanYearLimits) error {
	if l.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	amounts := map[string]decimal.Decimal{
		"hsa.individual":               l.HSA.Individual,
		"hsa.family":                   l.HSA.Family,
		"hsa.catch_up":                 l.HSA.CatchUp,
		"fsa.health_election":          l.FSA.HealthElection,
		"fsa.carryover_max":            l.FSA.CarryoverMax,
		"fsa.dependent_care":           l.FSA.DependentCare,
		"commuter.transit_monthly":     l.Commuter.TransitMonthly,
		"commuter.parking_monthly":     l.Commuter.ParkingMonthly,
		"retirement.elective_deferral": l.Retirement.ElectiveDeferral,
		"retirement.catch_up":          l.Retirement.CatchUp,
	}
	for name, v := range amounts {
		if v.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}
	if l.HSA.CatchUpAge <= 0 {
		return fmt.Errorf("hsa.catch_up_age must be positive")
	}
	if l.Retirement.CatchUpAge <= 0 {
		return fmt.Errorf("retirement.catch_up_age must be positive")
	}
	if _, ok := l.TaxBrackets[domain.FilingSingle]; !ok {
		return fmt.Errorf("tax brackets for %q are required", domain.FilingSingle)
	}
	for status, brackets := range l.TaxBrackets {
		if !status.Valid() {
			return fmt.Errorf("unknown filing status %q in tax brackets", status)
		}
		if err := validateBrackets(brackets); err != nil {
			return fmt.Errorf("tax brackets for %s: %w", status, err)
		}
	}
	return nil
}

// validateBrackets enforces strictly increasing bounds with a single unbounded bracket in last position
func validateBrackets(brackets []domain.TaxBracketThreshold) error {
	if len(brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	var prev *decimal.Decimal
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("bracket %d rate must be between 0 and 100", i)
		}
		last := i == len(brackets)-1
		if b.UpperBound == nil {
			if !last {
				return fmt.Errorf("bracket %d is unbounded but not last", i)
			}
			continue
		}
		if last {
			return fmt.Errorf("top bracket must have no upper bound")
		}
		if prev != nil && !b.UpperBound.GreaterThan(*prev) {
			return fmt.Errorf("bracket %d upper bound %s must exceed %s", i, b.UpperBound.String(), prev.String())
		}
		prev = b.UpperBound
	}
	return nil
}
