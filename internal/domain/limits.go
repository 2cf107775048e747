package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus selects the bracket table used for marginal rate lookups
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "married_joint"
	FilingMarriedSeparate FilingStatus = "married_separate"
	FilingHeadOfHousehold FilingStatus = "head_of_household"
)

// FilingStatuses lists every supported status in display order
var FilingStatuses = []FilingStatus{FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold}

// Valid reports whether the status is one of the known filing statuses.
func (fs FilingStatus) Valid() bool {
	for _, s := range FilingStatuses {
		if fs == s {
			return true
		}
	}
	return false
}

// OrDefault returns the status, or single when the status is empty or unknown.
func (fs FilingStatus) OrDefault() FilingStatus {
	if fs.Valid() {
		return fs
	}
	return FilingSingle
}

// TaxBracketThreshold is one row of a progressive bracket table.
// A nil UpperBound marks the unbounded top bracket.
type TaxBracketThreshold struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound" json:"upper_bound"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"` // percentage, e.g. 22 for 22%
}

// HSALimits contains Health Savings Account contribution ceilings
type HSALimits struct {
	Individual decimal.Decimal `yaml:"individual" json:"individual"`
	Family     decimal.Decimal `yaml:"family" json:"family"`
	CatchUp    decimal.Decimal `yaml:"catch_up" json:"catch_up"`
	CatchUpAge int             `yaml:"catch_up_age" json:"catch_up_age"` // Default: 55
}

// FSALimits contains Flexible Spending Account ceilings
type FSALimits struct {
	HealthElection decimal.Decimal `yaml:"health_election" json:"health_election"`
	CarryoverMax   decimal.Decimal `yaml:"carryover_max" json:"carryover_max"`
	DependentCare  decimal.Decimal `yaml:"dependent_care" json:"dependent_care"`
}

// CommuterLimits contains the statutory monthly exclusion caps (each category capped independently)
type CommuterLimits struct {
	TransitMonthly decimal.Decimal `yaml:"transit_monthly" json:"transit_monthly"`
	ParkingMonthly decimal.Decimal `yaml:"parking_monthly" json:"parking_monthly"`
}

// RetirementLimits contains elective deferral limits for employer plans
type RetirementLimits struct {
	ElectiveDeferral decimal.Decimal `yaml:"elective_deferral" json:"elective_deferral"`
	CatchUp          decimal.Decimal `yaml:"catch_up" json:"catch_up"`
	CatchUpAge       int             `yaml:"catch_up_age" json:"catch_up_age"` // Default: 50
}

// PlanYearLimits groups every statutory constant the calculators depend on for one plan year.
// Tables are injected into each calculation so alternate years can be swapped in from configuration.
type PlanYearLimits struct {
	Year        int                                    `yaml:"year" json:"year"`
	HSA         HSALimits                              `yaml:"hsa" json:"hsa"`
	FSA         FSALimits                              `yaml:"fsa" json:"fsa"`
	Commuter    CommuterLimits                         `yaml:"commuter" json:"commuter"`
	Retirement  RetirementLimits                       `yaml:"retirement" json:"retirement"`
	TaxBrackets map[FilingStatus][]TaxBracketThreshold `yaml:"tax_brackets" json:"tax_brackets"`
}

// Brackets returns the bracket list for a filing status, falling back to single.
func (l *PlanYearLimits) Brackets(status FilingStatus) []TaxBracketThreshold {
	if b, ok := l.TaxBrackets[status.OrDefault()]; ok {
		return b
	}
	return l.TaxBrackets[FilingSingle]
}
