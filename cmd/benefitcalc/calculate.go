package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/bernstein1/touchcarecalc-sub000/internal/output"
	"github.com/bernstein1/touchcarecalc-sub000/internal/storage"
)

// runOptions are the flags shared by calculate and compare
type runOptions struct {
	format    string
	outputDir string
	planYear  int
	save      bool
	debug     bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" or all (default from output.format)")
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", "", "write report files to this directory instead of stdout")
	cmd.Flags().IntVar(&o.planYear, "year", 0, "plan year to calculate against (overrides the input file)")
	cmd.Flags().BoolVar(&o.save, "save", false, "persist each scenario as a session in the configured store")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "log resolved limits and marginal rates")
}

func (a *app) calculateCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "calculate <type> <input-file>",
		Short: "Run a calculator against an input file",
		Long: `Run one calculator (hsa, fsa, commuter, life, retirement) against a YAML or JSON
input file. A file with several scenarios is reported as a comparison.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			calcType, err := domain.ParseCalculatorType(args[0])
			if err != nil {
				return err
			}
			req, err := config.NewInputParser().LoadFromFile(args[1], calcType)
			if err != nil {
				return err
			}
			return a.run(cmd, req, &opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (a *app) compareCmd() *cobra.Command {
	var opts runOptions
	var calcName string
	cmd := &cobra.Command{
		Use:   "compare <scenarios-file>",
		Short: "Compare two or more scenarios of one calculator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var calcType domain.CalculatorType
			if calcName != "" {
				t, err := domain.ParseCalculatorType(calcName)
				if err != nil {
					return err
				}
				calcType = t
			}
			req, err := config.NewInputParser().LoadFromFile(args[0], calcType)
			if err != nil {
				return err
			}
			if len(req.Scenarios) < 2 {
				return fmt.Errorf("compare needs at least two scenarios, %s has %d", args[0], len(req.Scenarios))
			}
			return a.run(cmd, req, &opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVarP(&calcName, "type", "t", "", "calculator type (default: the file's calculator key)")
	return cmd
}

// run calculates every scenario of a request, renders the comparison and optionally persists it
func (a *app) run(cmd *cobra.Command, req *config.CalculationRequest, opts *runOptions) error {
	year := opts.planYear
	if year == 0 {
		year = req.PlanYear
	}
	engine, err := a.engine(year, opts.debug)
	if err != nil {
		return err
	}

	a.logger.Info("running calculation",
		zap.String("calculator", string(req.CalculatorType)),
		zap.Int("plan_year", engine.Limits.Year),
		zap.Int("scenarios", len(req.Scenarios)))

	results, err := engine.CompareScenarios(req.Scenarios)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	format := opts.format
	if format == "" {
		format = a.settings.Output.Format
	}

	if opts.outputDir != "" || output.NormalizeFormatName(format) == "all" {
		dir := opts.outputDir
		if dir == "" {
			dir = a.settings.Output.Dir
		}
		files, err := output.GenerateReport(results, format, dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written: %s\n", f)
		}
	} else {
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("%w: %s (available: %s)", output.ErrUnsupportedFormat, format, strings.Join(output.AvailableFormatterNames(), ", "))
		}
		data, err := f.Format(results)
		if err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}
	}

	if opts.save {
		return a.saveSessions(cmd.Context(), cmd, results)
	}
	return nil
}

func (a *app) saveSessions(ctx context.Context, cmd *cobra.Command, results *domain.ScenarioComparison) error {
	store, err := storage.Open(ctx, a.settings.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, sc := range results.Scenarios {
		report := sc.Report
		session, err := storage.SaveReport(ctx, store, &report)
		if err != nil {
			return fmt.Errorf("failed to save scenario %s: %w", sc.Name, err)
		}
		a.logger.Debug("session saved", zap.String("id", session.ID), zap.String("scenario", sc.Name))
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved session %s (%s)\n", session.ID, sc.Name)
	}
	return nil
}
