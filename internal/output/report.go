package output

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// allFormats are written by the "all" pseudo-format
var allFormats = []string{"console-lite", "json", "csv", "detailed-csv", "html"}

// extension picks the file extension for a canonical formatter name
func extension(name string) string {
	switch {
	case name == "console" || name == "console-lite":
		return "txt"
	case name == "detailed-csv":
		return "detailed.csv"
	case strings.Contains(name, "csv"):
		return "csv"
	default:
		return name
	}
}

// GenerateReport writes the results in the given format to a timestamped file in dir and
// returns the files written. "all" writes every file-friendly format.
func GenerateReport(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, name := range allFormats {
			written, err := GenerateReport(results, name, dir)
			if err != nil {
				return files, err
			}
			files = append(files, written...)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	filename, err := WriteFormatted(f, results, dir, extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{filename}, nil
}

// SaveRequest writes a calculation request in the input file format, e.g. to seed a new scenarios file.
func SaveRequest(req *config.CalculationRequest, filename string) error {
	b, err := config.MarshalRequest(req)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return os.WriteFile(filename, b, 0644)
}
