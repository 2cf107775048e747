package output

import (
	"encoding/json"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// JSONFormatter serializes the scenario comparison, with its assumptions, as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	*domain.ScenarioComparison
	Assumptions []string `json:"assumptions"`
}

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(jsonReport{
		ScenarioComparison: results,
		Assumptions:        GenerateAssumptions(results.CalculatorType, &results.Limits),
	}, "", "  ")
}
