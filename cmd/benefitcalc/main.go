package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bernstein1/touchcarecalc-sub000/internal/calculation"
	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries state resolved once per invocation by the root command's pre-run hook
type app struct {
	v        *viper.Viper
	cfgFile  string
	envFile  string
	logLevel string

	settings *config.Settings
	limits   *config.LimitRegistry
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "benefitcalc",
		Short: "Employee benefit calculators",
		Long: `benefitcalc estimates the value of employer benefit elections: HSA, health and
dependent care FSA, commuter benefits, life insurance needs (DIME) and 401(k) projections.
Scenarios from the same calculator can be compared side by side.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./config.yaml or $HOME/.config/benefitcalc/config.yaml)")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading configuration")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides configuration")
	pf.String("log-format", "console", "log format (console, json)")
	pf.Int("plan-year", config.DefaultPlanYear, "default plan year for limit tables")
	pf.String("limits-file", "", "YAML file with additional plan-year limit tables")

	_ = a.v.BindPFlag("logging.format", pf.Lookup("log-format"))
	_ = a.v.BindPFlag("plan_year", pf.Lookup("plan-year"))
	_ = a.v.BindPFlag("limits_file", pf.Lookup("limits-file"))

	root.AddCommand(a.calculateCmd())
	root.AddCommand(a.compareCmd())
	root.AddCommand(a.validateCmd())
	root.AddCommand(a.limitsCmd())
	root.AddCommand(a.exampleCmd())
	root.AddCommand(a.serveCmd())
	root.AddCommand(a.sessionsCmd())
	root.AddCommand(versionCmd())
	return root
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFiles(a.envFile); err != nil {
		return err
	}

	settings, err := config.LoadSettings(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := logging.New(settings.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	limits, err := config.BuildLimitRegistry(settings)
	if err != nil {
		return err
	}
	a.limits = limits

	a.logger.Debug("configuration loaded",
		zap.Int("plan_year", settings.PlanYear),
		zap.String("storage_driver", settings.Storage.Driver),
		zap.Ints("plan_years", limits.Years()))
	return nil
}

// engine builds a calculation engine for a plan year; zero selects the configured default
func (a *app) engine(year int, debugMode bool) (*calculation.Engine, error) {
	if year == 0 {
		year = a.settings.PlanYear
	}
	limits, err := a.limits.Lookup(year)
	if err != nil {
		return nil, err
	}
	e := calculation.NewEngine(limits)
	e.SetLogger(a.logger.Sugar())
	e.Debug = debugMode
	return e, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "benefitcalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
