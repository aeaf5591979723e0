package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ZanzyTHEbar/lews/internal/config"
	"github.com/ZanzyTHEbar/lews/internal/lockin"
	"github.com/ZanzyTHEbar/lews/internal/monitoring"
	"github.com/ZanzyTHEbar/lews/internal/trajectory"
)

// app is the state shared by every subcommand once the root has initialised
type app struct {
	cfg    *config.Config
	logger *monitoring.Logger
}

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	cmd := &cobra.Command{
		Use:          "lews",
		Short:        "Lock-in early warning scoring service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file (LEWS_* env vars apply either way)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(a),
		newAssessCmd(a),
		newTrajectoryCmd(a),
		newPresetsCmd(),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	level, err := monitoring.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}

	// stdout is reserved for command output
	a.logger = monitoring.NewLogger(cmd.ErrOrStderr(), level)
	a.cfg = cfg
	slog.SetDefault(a.logger.Logger)
	return nil
}

func (a *app) loadStore() (*trajectory.Store, error) {
	if a.cfg.Trajectories.File == "" {
		return trajectory.LoadDefault()
	}
	return trajectory.Load(a.cfg.Trajectories.File)
}

func (a *app) newEngine(store *trajectory.Store, opts ...lockin.Option) (*lockin.Engine, error) {
	opts = append([]lockin.Option{
		lockin.WithLockinOffset(a.cfg.Engine.LockinOffsetYears),
		lockin.WithWeights(a.cfg.Weights()),
	}, opts...)
	return lockin.NewEngine(store.Baseline(), opts...)
}
