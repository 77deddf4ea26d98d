// Package cli provides the command-line interface for the risk-graph core.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"riskgraph/internal/config"
	"riskgraph/internal/logging"
	"riskgraph/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.CandleStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if candleStore, err := store.NewSQLiteStore(cfg.Store.Path); err != nil {
		logger.Warn().Err(err).Msg("failed to initialize candle store, historical recompute unavailable")
	} else {
		app.Store = candleStore
		logger.Debug().Str("path", cfg.Store.Path).Msg("candle store initialized")
	}

	rootCmd := &cobra.Command{
		Use:   "riskgraph",
		Short: "Options-strategy payoff engine and chart-overlay core",
		Long: `riskgraph computes multi-leg option payoff curves, synchronized
chart-backdrop geometry (volume profile, gamma exposure, structural
levels) and rolling-statistics gravity bands from live tick streams.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/riskgraph)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newPayoffCmd(app))
	rootCmd.AddCommand(newGravityCmd(app))
	rootCmd.AddCommand(newServeCmd(app))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("riskgraph %s\n", Version)
		},
	}
}
