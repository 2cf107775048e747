package calculation

import (
	"fmt"
	"sort"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareScenarios runs every scenario independently through the engine and ranks them by
// their headline figure. All scenarios must use the same calculator.
func (e *Engine) CompareScenarios(scenarios []domain.NamedInputs) (*domain.ScenarioComparison, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}
	if scenarios[0].Inputs == nil {
		return nil, fmt.Errorf("scenario 0 (%s) has no inputs", scenarios[0].Name)
	}

	calcType := scenarios[0].Inputs.CalculatorType()
	comparison := &domain.ScenarioComparison{
		CalculatorType: calcType,
		PlanYear:       e.Limits.Year,
		GeneratedAt:    nowFunc(),
		Limits:         e.Limits,
		Scenarios:      make([]domain.ScenarioResult, 0, len(scenarios)),
	}

	for i, sc := range scenarios {
		if sc.Inputs == nil {
			return nil, fmt.Errorf("scenario %d (%s) has no inputs", i, sc.Name)
		}
		if t := sc.Inputs.CalculatorType(); t != calcType {
			return nil, fmt.Errorf("scenario %d (%s) uses calculator %s, expected %s", i, sc.Name, t, calcType)
		}
		report, err := e.Calculate(sc.Inputs)
		if err != nil {
			return nil, fmt.Errorf("scenario %s failed: %w", sc.Name, err)
		}
		name := sc.Name
		if name == "" {
			name = fmt.Sprintf("Scenario %d", i+1)
		}
		comparison.Scenarios = append(comparison.Scenarios, domain.ScenarioResult{Name: name, Report: *report})
	}

	comparison.Recommendation = RankScenarios(comparison.Scenarios)
	if comparison.Recommendation != nil {
		e.Logger.Infof("best %s scenario: %s (%s $%s)", calcType, comparison.Recommendation.ScenarioName,
			comparison.Recommendation.HeadlineLabel, comparison.Recommendation.Value.StringFixed(2))
	}
	return comparison, nil
}

// RankScenarios picks the scenario with the best headline figure and measures it against the
// first scenario. Ties keep the earlier scenario. Returns nil for fewer than two scenarios.
func RankScenarios(scenarios []domain.ScenarioResult) *domain.Recommendation {
	if len(scenarios) < 2 {
		return nil
	}

	type ranked struct {
		name     string
		headline domain.Headline
	}
	ranks := make([]ranked, 0, len(scenarios))
	for _, sc := range scenarios {
		ranks = append(ranks, ranked{sc.Name, sc.Report.Results.Headline()})
	}
	baseline := ranks[0]

	sort.SliceStable(ranks, func(i, j int) bool {
		a, b := ranks[i].headline, ranks[j].headline
		if a.LowerIsBetter {
			return a.Value.LessThan(b.Value)
		}
		return a.Value.GreaterThan(b.Value)
	})
	best := ranks[0]

	delta := best.headline.Value.Sub(baseline.headline.Value)
	pct := decimal.Zero
	if !baseline.headline.Value.IsZero() {
		pct = delta.Div(baseline.headline.Value.Abs()).Mul(hundred)
	}

	return &domain.Recommendation{
		ScenarioName:     best.name,
		HeadlineLabel:    best.headline.Label,
		Value:            best.headline.Value,
		BaselineName:     baseline.name,
		Change:           delta,
		PercentageChange: pct,
	}
}
