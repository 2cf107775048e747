package output

import (
	"bytes"
	"encoding/csv"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// CSVDetailedExporter provides raw detail per scenario. Retirement projections are exported
// one row per projected year; other calculators one row per summary line.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	var err error
	if results.CalculatorType == domain.CalculatorRetirement {
		err = writeProjectionRows(w, results)
	} else {
		err = writeSummaryRows(w, results)
	}
	if err != nil {
		return nil, err
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func writeProjectionRows(w *csv.Writer, results *domain.ScenarioComparison) error {
	header := []string{"Scenario", "Year", "Age", "Salary", "EmployeeContribution", "EmployerContribution", "TraditionalContribution", "RothContribution", "TaxSavings", "Balance"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, sc := range results.Scenarios {
		r, ok := sc.Report.Results.(domain.RetirementResults)
		if !ok {
			continue
		}
		for _, yr := range r.Projection {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				intToString(yr.Age),
				yr.Salary.StringFixed(2),
				yr.EmployeeContribution.StringFixed(2),
				yr.EmployerContribution.StringFixed(2),
				yr.TraditionalContribution.StringFixed(2),
				yr.RothContribution.StringFixed(2),
				yr.TaxSavings.StringFixed(2),
				yr.Balance.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSummaryRows(w *csv.Writer, results *domain.ScenarioComparison) error {
	if err := w.Write([]string{"Scenario", "Metric", "Kind", "Value"}); err != nil {
		return err
	}
	for _, sc := range results.Scenarios {
		if sc.Report.Results == nil {
			continue
		}
		for _, line := range sc.Report.Results.Summary() {
			if err := w.Write([]string{sc.Name, line.Label, string(line.Kind), rawValue(line)}); err != nil {
				return err
			}
		}
	}
	return nil
}
