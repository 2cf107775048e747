package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/bernstein1/touchcarecalc-sub000/internal/config"
	"github.com/bernstein1/touchcarecalc-sub000/internal/domain"
	"github.com/bernstein1/touchcarecalc-sub000/internal/output"
	"github.com/bernstein1/touchcarecalc-sub000/internal/server"
	"github.com/bernstein1/touchcarecalc-sub000/internal/storage"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input-file>",
		Short: "Validate an input file without calculating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0], "")
			if err != nil {
				return err
			}
			if req.PlanYear != 0 {
				if _, err := a.limits.Lookup(req.PlanYear); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid: %s calculator, %d scenario(s)\n", args[0], req.CalculatorType, len(req.Scenarios))
			return nil
		},
	}
}

func (a *app) limitsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "limits [year]",
		Short: "Show the plan-year limit tables",
		Long:  "Without a year, lists the known plan years. With a year, prints that year's limits and tax brackets.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				for _, y := range a.limits.Years() {
					marker := ""
					if y == a.settings.PlanYear {
						marker = " (default)"
					}
					fmt.Fprintf(out, "%d%s\n", y, marker)
				}
				return nil
			}

			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid plan year %q", args[0])
			}
			limits, err := a.limits.Lookup(year)
			if err != nil {
				return err
			}

			var data []byte
			if asJSON {
				data, err = json.MarshalIndent(limits, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(limits)
			}
			if err != nil {
				return fmt.Errorf("failed to encode limits: %w", err)
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print limits as JSON instead of YAML")
	return cmd
}

func (a *app) exampleCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "example <type>",
		Short: "Write an example scenarios file for a calculator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calcType, err := domain.ParseCalculatorType(args[0])
			if err != nil {
				return err
			}
			req, err := config.NewInputParser().CreateExampleRequest(calcType)
			if err != nil {
				return err
			}
			if outFile == "" {
				data, err := config.MarshalRequest(req)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := output.SaveRequest(req, outFile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example %s scenarios written to %s\n", calcType, outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "file to write (default: stdout)")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculators over an HTTP JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := storage.Open(ctx, a.settings.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			a.logger.Info("starting API server",
				zap.String("addr", a.settings.Server.Addr),
				zap.String("storage", a.settings.Storage.Driver),
				zap.Int("default_plan_year", a.settings.PlanYear))

			srv := server.New(a.limits, a.settings.PlanYear, store, a.logger)
			return srv.ListenAndServe(ctx, a.settings.Server)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func (a *app) sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect saved calculation sessions",
	}

	var typeFilter string
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := storage.Open(ctx, a.settings.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			var sessions []domain.Session
			if typeFilter != "" {
				calcType, err := domain.ParseCalculatorType(typeFilter)
				if err != nil {
					return err
				}
				sessions, err = store.ListByType(ctx, calcType)
				if err != nil {
					return err
				}
			} else {
				sessions, err = store.List(ctx)
				if err != nil {
					return err
				}
			}

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved sessions.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCALCULATOR\tCREATED")
			for _, s := range sessions {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.CalculatorType, s.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
	list.Flags().StringVarP(&typeFilter, "type", "t", "", "only sessions of this calculator")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Print a saved session as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := storage.Open(ctx, a.settings.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			s, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			doc := struct {
				ID             string                `json:"id"`
				CalculatorType domain.CalculatorType `json:"calculator_type"`
				CreatedAt      string                `json:"created_at"`
				InputData      json.RawMessage       `json:"input_data"`
				Results        json.RawMessage       `json:"results"`
			}{s.ID, s.CalculatorType, s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"), json.RawMessage(s.InputData), json.RawMessage(s.Results)}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}
