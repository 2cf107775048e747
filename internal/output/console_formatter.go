package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// ConsoleFormatter provides a concise plain-text summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	title := fmt.Sprintf("%s SUMMARY (PLAN YEAR %d)", strings.ToUpper(calculatorTitle(results.CalculatorType)), results.PlanYear)
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))

	for _, sc := range results.Scenarios {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "%s\n", sc.Name)
		if sc.Report.Results == nil {
			continue
		}
		for _, line := range sc.Report.Results.Summary() {
			fmt.Fprintf(&buf, "  %s: %s\n", line.Label, FormatValue(line))
		}
	}

	if text := RecommendationText(results); text != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s\n", text)
	}
	return buf.Bytes(), nil
}
