package output

import (
	"fmt"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// RecommendationText describes the best-ranked scenario in one sentence. It is empty
// when there is nothing to compare.
func RecommendationText(results *domain.ScenarioComparison) string {
	rec := results.Recommendation
	if rec == nil {
		return ""
	}
	if rec.ScenarioName == rec.BaselineName {
		return fmt.Sprintf("%s is already the best option (%s: %s)", rec.ScenarioName, rec.HeadlineLabel, FormatCurrency(rec.Value))
	}
	return fmt.Sprintf("%s: %s %s (%s / %s vs %s)",
		rec.ScenarioName, rec.HeadlineLabel, FormatCurrency(rec.Value),
		signedCurrency(rec), FormatPercentage(rec.PercentageChange), rec.BaselineName)
}

func signedCurrency(rec *domain.Recommendation) string {
	if rec.Change.IsPositive() {
		return "+" + FormatCurrency(rec.Change)
	}
	return FormatCurrency(rec.Change)
}

// summaryLabels returns the union of summary labels across scenarios, in first-seen order.
// Scenarios of one calculator usually share labels; optional sections (FSA dependent care) may not.
func summaryLabels(results *domain.ScenarioComparison) []string {
	var labels []string
	seen := map[string]bool{}
	for _, sc := range results.Scenarios {
		if sc.Report.Results == nil {
			continue
		}
		for _, line := range sc.Report.Results.Summary() {
			if !seen[line.Label] {
				seen[line.Label] = true
				labels = append(labels, line.Label)
			}
		}
	}
	return labels
}

// summaryByLabel indexes a scenario's summary lines by label
func summaryByLabel(sc domain.ScenarioResult) map[string]domain.SummaryLine {
	out := map[string]domain.SummaryLine{}
	if sc.Report.Results == nil {
		return out
	}
	for _, line := range sc.Report.Results.Summary() {
		out[line.Label] = line
	}
	return out
}
