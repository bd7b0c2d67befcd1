package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ehr/ward/internal/config"
	"github.com/ehr/ward/internal/console"
	"github.com/ehr/ward/internal/domain/ward"
	"github.com/ehr/ward/internal/platform/census"
	"github.com/ehr/ward/internal/platform/sandbox"
	"github.com/ehr/ward/internal/platform/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "ward",
		Short:        "In-memory patient admission and triage tracker",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(replayCmd())
	rootCmd.AddCommand(sandboxCmd())
	return rootCmd
}

// runtime bundles what every subcommand needs after config is loaded.
type runtime struct {
	cfg     *config.Config
	logger  zerolog.Logger
	tp      *telemetry.TelemetryProvider
	printer *console.Printer
}

func bootstrap(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg, cmd.ErrOrStderr())

	tp, err := telemetry.NewTelemetryProvider(telemetry.TelemetryConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Environment:    cfg.Env,
		TraceFile:      cfg.TraceFile,
	})
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	return &runtime{
		cfg:     cfg,
		logger:  logger,
		tp:      tp,
		printer: console.NewPrinter(cmd.OutOrStdout(), console.NewPalette(cfg.Color)),
	}, nil
}

func (rt *runtime) close() {
	if err := rt.tp.Shutdown(context.Background()); err != nil {
		rt.logger.Error().Err(err).Msg("telemetry shutdown failed")
	}
}

func (rt *runtime) newService(rooms int) (*ward.Service, error) {
	reg, err := ward.NewRegistry(rooms)
	if err != nil {
		return nil, err
	}
	svc := ward.NewService(reg, rt.logger)
	svc.SetTelemetry(rt.tp)
	return svc, nil
}

func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
	}
	return logger.Level(cfg.Level())
}

// resolveRooms picks the room count: an explicit flag wins, then config.
// ask is true when neither gives a positive count.
func resolveRooms(flagRooms, cfgRooms int) (rooms int, ask bool) {
	if flagRooms >= 0 {
		return flagRooms, false
	}
	if cfgRooms > 0 {
		return cfgRooms, false
	}
	return 0, true
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the interactive hospital console",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagRooms, _ := cmd.Flags().GetInt("rooms")

			rt, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer rt.close()

			prompt := console.NewPrompter(cmd.InOrStdin(), rt.printer)
			rooms, ask := resolveRooms(flagRooms, rt.cfg.Rooms)
			if ask {
				rooms, err = console.AskRooms(prompt)
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
			}

			svc, err := rt.newService(rooms)
			if err != nil {
				return err
			}
			rt.logger.Info().Int("rooms", rooms).Msg("ward opened")

			ctx := rt.logger.WithContext(cmd.Context())
			return console.New(svc, prompt, rt.printer).Run(ctx)
		},
	}
	cmd.Flags().Int("rooms", -1, "Total number of rooms (overrides ROOMS; prompts when unset)")
	return cmd
}

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a YAML census plan and print the resulting ward",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				return fmt.Errorf("--file is required")
			}
			flagRooms, _ := cmd.Flags().GetInt("rooms")

			plan, err := census.LoadFile(path)
			if err != nil {
				return err
			}
			if flagRooms >= 0 {
				plan.Rooms = flagRooms
			}

			rt, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer rt.close()
			return rt.replay(cmd, plan)
		},
	}
	cmd.Flags().String("file", "", "Path to the census plan (YAML)")
	cmd.Flags().Int("rooms", -1, "Override the plan's room count")
	return cmd
}

func sandboxCmd() *cobra.Command {
	defaults := sandbox.DefaultSeedConfig()
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Generate a synthetic census plan and replay or print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := defaults
			cfg.Patients, _ = cmd.Flags().GetInt("patients")
			cfg.Rooms, _ = cmd.Flags().GetInt("rooms")
			cfg.Seed, _ = cmd.Flags().GetInt64("seed")
			cfg.CriticalRatio, _ = cmd.Flags().GetFloat64("critical-ratio")
			emit, _ := cmd.Flags().GetBool("emit")

			plan, err := sandbox.NewSeeder(cfg).Generate()
			if err != nil {
				return err
			}

			if emit {
				data, err := census.Marshal(plan)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}

			rt, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			defer rt.close()
			return rt.replay(cmd, plan)
		},
	}
	cmd.Flags().Int("patients", defaults.Patients, "Number of synthetic admissions")
	cmd.Flags().Int("rooms", defaults.Rooms, "Total number of rooms")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = time based)")
	cmd.Flags().Float64("critical-ratio", defaults.CriticalRatio, "Share of admissions that arrive critical")
	cmd.Flags().Bool("emit", false, "Print the generated plan as YAML instead of replaying it")
	return cmd
}

func (rt *runtime) replay(cmd *cobra.Command, plan *census.Plan) error {
	svc, err := rt.newService(plan.Rooms)
	if err != nil {
		return err
	}

	ctx := rt.logger.WithContext(cmd.Context())
	out := cmd.OutOrStdout()
	_, err = census.Apply(ctx, svc, plan, func(o census.Outcome) {
		printOutcome(out, rt.printer, o)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	rt.printer.Records(svc.ListRecords(ctx))
	fmt.Fprintln(out)
	rt.printer.Census(svc.Census(ctx))
	return nil
}

func printOutcome(out io.Writer, p *console.Printer, o census.Outcome) {
	fmt.Fprintf(out, "%3d. ", o.Step)
	switch o.Action {
	case census.ActionAdmit:
		switch {
		case errors.Is(o.Err, ward.ErrNoRoomsAvailable):
			p.NoRooms()
		case o.Err != nil:
			p.Rejected(o.Err)
		default:
			p.Admitted(o.Patient)
		}
	case census.ActionDischarge:
		switch {
		case errors.Is(o.Err, ward.ErrPatientNotFound):
			p.NotFound(o.ID)
		case o.Err != nil:
			p.Rejected(o.Err)
		default:
			p.Discharged(o.Patient)
		}
	case census.ActionTreat:
		if o.Err != nil {
			p.NoCritical()
			return
		}
		p.Treating(o.Patient)
	}
}
