package output

import (
	"bytes"
	"encoding/csv"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario, one column per summary line).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	labels := summaryLabels(results)
	header := append([]string{"Scenario", "PlanYear"}, labels...)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, sc := range results.Scenarios {
		lines := summaryByLabel(sc)
		row := []string{sc.Name, intToString(sc.Report.PlanYear)}
		for _, label := range labels {
			if line, ok := lines[label]; ok {
				row = append(row, rawValue(line))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
