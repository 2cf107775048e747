package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"value": FormatValue,
	"add":   func(i, j int) int { return i + j },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// htmlScenario flattens a scenario for the template
type htmlScenario struct {
	Name       string
	Headline   domain.Headline
	Summary    []domain.SummaryLine
	Projection []domain.RetirementYear
}

// chartSeries feeds the headline bar chart
type chartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	scenarios := make([]htmlScenario, 0, len(results.Scenarios))
	chart := chartSeries{Labels: []string{}, Values: []float64{}}
	for _, sc := range results.Scenarios {
		hs := htmlScenario{Name: sc.Name}
		if sc.Report.Results != nil {
			hs.Headline = sc.Report.Results.Headline()
			hs.Summary = sc.Report.Results.Summary()
			chart.Labels = append(chart.Labels, sc.Name)
			chart.Values = append(chart.Values, hs.Headline.Value.Round(2).InexactFloat64())
		}
		if r, ok := sc.Report.Results.(domain.RetirementResults); ok {
			hs.Projection = r.Projection
		}
		scenarios = append(scenarios, hs)
	}

	data := struct {
		Title          string
		PlanYear       int
		GeneratedAt    string
		Scenarios      []htmlScenario
		Recommendation string
		Assumptions    []string
		Chart          chartSeries
	}{
		Title:          calculatorTitle(results.CalculatorType),
		PlanYear:       results.PlanYear,
		Scenarios:      scenarios,
		Recommendation: RecommendationText(results),
		Assumptions:    GenerateAssumptions(results.CalculatorType, &results.Limits),
		Chart:          chart,
	}
	if !results.GeneratedAt.IsZero() {
		data.GeneratedAt = results.GeneratedAt.Format("January 2, 2006 15:04")
	}

	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
