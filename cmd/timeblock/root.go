package main

import (
	"fmt"

	service "github.com/okian/timeblock/internal/app"
	"github.com/okian/timeblock/internal/config"
	"github.com/okian/timeblock/pkg/logger"
	"github.com/okian/timeblock/pkg/metrics"
	"github.com/spf13/cobra"
)

var version = "dev"

// cliEnv is filled in by the root command before any subcommand runs.
type cliEnv struct {
	cfg *config.Config
	log logger.Logger
}

// newService builds a scoring service for the given surface.
func (e *cliEnv) newService(surface string, opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithLogger(e.log),
		service.WithSurface(surface),
		service.WithBenchmarkIterations(e.cfg.BenchmarkIterations),
	}
	return service.New(append(base, opts...)...)
}

func newRootCommand() *cobra.Command {
	env := &cliEnv{}

	cmd := &cobra.Command{
		Use:   "timeblock",
		Short: "Timeblock - productivity scoring for time-block schedules",
		Long: `Timeblock scores a day of scheduled time blocks.

Given how many blocks were scheduled and how many minutes they add up to, it
reports an efficiency ratio (how close the average block is to the 45-90
minute optimal band) and a productivity percentage capped at 100.`,
		Version:      version,
		SilenceUsage: true,
	}

	logLevel := cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	configPath := cmd.PersistentFlags().String("config", "", "Path to a YAML config file (overrides "+config.EnvFile+")")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}

		var (
			cfg *config.Config
			err error
		)
		if *configPath != "" {
			cfg, err = config.LoadFile(cmd.Context(), *configPath)
		} else {
			cfg, err = config.Load(cmd.Context())
		}
		if err != nil {
			return err
		}
		if *logLevel != "" {
			cfg.LogLevel = *logLevel
		}
		if err := logger.SetLevelString(cfg.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
		}
		metrics.SetEnabled(cfg.MetricsEnabled)

		env.cfg = cfg
		env.log = logger.Named("cli")
		return nil
	}

	cmd.AddCommand(newScoreCommand(env))
	cmd.AddCommand(newBenchCommand(env))
	cmd.AddCommand(newSysinfoCommand(env))
	cmd.AddCommand(newServeCommand(env))
	cmd.AddCommand(newLoadtestCommand(env))

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}
