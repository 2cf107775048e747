package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// Formatter renders a scenario comparison. Formatting is deterministic for a given comparison.
type Formatter interface {
	Format(results *domain.ScenarioComparison) ([]byte, error)
	Name() string
}

// formatters is keyed by canonical name
var formatters = registry(
	ConsoleVerboseFormatter{},
	ConsoleFormatter{},
	CSVSummarizer{},
	CSVDetailedExporter{},
	HTMLFormatter{},
	JSONFormatter{},
)

func registry(fs ...Formatter) map[string]Formatter {
	m := make(map[string]Formatter, len(fs))
	for _, f := range fs {
		m[f.Name()] = f
	}
	return m
}

// formatAliases maps alternative spellings onto canonical formatter names
var formatAliases = map[string]string{
	"console-verbose": "console",
	"verbose":         "console",
	"styled":          "console",
	"lite":            "console-lite",
	"text":            "console-lite",
	"txt":             "console-lite",
	"csv-detailed":    "detailed-csv",
	"csv-summary":     "csv",
	"projection":      "detailed-csv",
	"html-report":     "html",
	"json-pretty":     "json",
}

// NormalizeFormatName lowercases a format name and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[n]; ok {
		return canonical
	}
	return n
}

// GetFormatterByName returns the formatter for a name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[NormalizeFormatName(name)]
}

// AvailableFormatterNames returns the canonical formatter names, sorted.
func AvailableFormatterNames() []string {
	return sortedKeys(formatters)
}

// AvailableFormatAliases returns the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	return sortedKeys(formatAliases)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// reportFilename is <calculator>_report_<timestamp>.<ext>
func reportFilename(results *domain.ScenarioComparison, ext string) string {
	ts := results.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	calc := string(results.CalculatorType)
	if calc == "" {
		calc = "benefit"
	}
	return fmt.Sprintf("%s_report_%s.%s", calc, ts.Format("20060102_150405"), ext)
}

// WriteFormatted renders results with f into a timestamped file under dir and returns its path.
func WriteFormatted(f Formatter, results *domain.ScenarioComparison, dir, ext string) (string, error) {
	data, err := f.Format(results)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, reportFilename(results, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}
