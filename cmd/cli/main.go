package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vallaskolan/careschedule/internal/config"
	"github.com/vallaskolan/careschedule/internal/solver"
)

// App holds the application dependencies
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

var (
	configPath string
	app        *App
)

var solvers = map[string]func() solver.Solver{
	"gophersat": solver.NewGophersatSolver,
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "careschedule",
		Short: "Careschedule CLI - generate weekly care-staff schedules",
		Long:  `A CLI tool for generating and checking weekly care-staff schedules from collaborator snapshots.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (defaults to careschedule.yaml lookup)")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config and logger
func initApp() error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app = &App{cfg: cfg, logger: logger}
	app.logger.Debug("configuration loaded",
		zap.String("solver", cfg.Solver),
		zap.Int("max_solve_seconds", cfg.MaxSolveSeconds))
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	return cfg.Build()
}
