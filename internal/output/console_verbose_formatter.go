package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed, styled console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, TitleStyle.Render("BENEFIT ANALYSIS: "+strings.ToUpper(calculatorTitle(results.CalculatorType))))
	subtitle := fmt.Sprintf("Plan year %d", results.PlanYear)
	if !results.GeneratedAt.IsZero() {
		subtitle += " · generated " + results.GeneratedAt.Format("2006-01-02 15:04")
	}
	fmt.Fprintln(&buf, SubtitleStyle.Render(subtitle))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, SectionStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range GenerateAssumptions(results.CalculatorType, &results.Limits) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Scenarios {
		fmt.Fprintln(&buf, scenarioCard(i, sc))
		if r, ok := sc.Report.Results.(domain.RetirementResults); ok && len(r.Projection) > 0 {
			writeProjectionTable(&buf, r.Projection)
			fmt.Fprintln(&buf)
		}
	}

	if len(results.Scenarios) > 1 {
		writeDetailedComparison(&buf, results)
	}

	if text := RecommendationText(results); text != "" {
		fmt.Fprintln(&buf, RecommendationStyle.Render("SUMMARY & RECOMMENDATION\n"+text))
	}

	return buf.Bytes(), nil
}

// scenarioCard renders one scenario's summary lines, highlighting its headline figure
func scenarioCard(i int, sc domain.ScenarioResult) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)))
	if sc.Report.Results == nil {
		return CardStyle.Render(b.String())
	}

	headline := sc.Report.Results.Headline()
	for _, line := range sc.Report.Results.Summary() {
		isHeadline := line.Label == headline.Label
		negative := line.Kind == domain.KindCurrency && line.Value.IsNegative()
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			MetricLabelStyle.Render(line.Label),
			valueStyle(negative, isHeadline).Render(FormatValue(line)),
		))
	}
	return CardStyle.Render(b.String())
}

func writeProjectionTable(buf *bytes.Buffer, rows []domain.RetirementYear) {
	header := fmt.Sprintf("%-6s %-5s %14s %14s %14s %16s", "YEAR", "AGE", "SALARY", "EMPLOYEE", "EMPLOYER", "BALANCE")
	fmt.Fprintln(buf, TableHeaderStyle.Render(header))
	fmt.Fprintln(buf, strings.Repeat("-", len(header)))
	for _, y := range rows {
		fmt.Fprintf(buf, "%-6d %-5d %14s %14s %14s %16s\n",
			y.Year, y.Age,
			FormatCurrency(y.Salary),
			FormatCurrency(y.EmployeeContribution),
			FormatCurrency(y.EmployerContribution),
			FormatCurrency(y.Balance))
	}
}

// writeDetailedComparison lays scenarios side by side against the first (baseline) scenario
func writeDetailedComparison(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	baseline := results.Scenarios[0]
	base := summaryByLabel(baseline)

	fmt.Fprintln(buf, SectionStyle.Render("SCENARIO COMPARISON (vs "+baseline.Name+")"))
	for _, sc := range results.Scenarios[1:] {
		title := fmt.Sprintf("%s vs %s", sc.Name, baseline.Name)
		fmt.Fprintf(buf, "\n%s\n", title)
		fmt.Fprintln(buf, strings.Repeat("=", len(title)))
		fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", "COMPONENT", "BASELINE", "SCENARIO", "DIFFERENCE")
		fmt.Fprintln(buf, strings.Repeat("-", 83))

		lines := summaryByLabel(sc)
		for _, label := range summaryLabels(results) {
			b, okB := base[label]
			s, okS := lines[label]
			if !okB && !okS {
				continue
			}
			kind := s.Kind
			if !okS {
				kind = b.Kind
			}
			cmpLine(buf, label, kind, b.Value, s.Value)
		}
	}
	fmt.Fprintln(buf)
}

func cmpLine(buf *bytes.Buffer, label string, kind domain.ValueKind, baseline, scenario decimal.Decimal) {
	render := func(v decimal.Decimal) string { return FormatValue(domain.SummaryLine{Value: v, Kind: kind}) }
	diff := scenario.Sub(baseline)
	fmt.Fprintf(buf, "%-35s %15s %15s %15s\n", label, render(baseline), render(scenario), render(diff))
}
