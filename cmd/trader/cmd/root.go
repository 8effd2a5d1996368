package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/relaytrader/config"
	"github.com/rustyeddy/relaytrader/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "trader",
	Short: "Bar-level backtester and manual options simulator",
	Long: `Trader replays historical bars through a simulated broker and reports
how a strategy would have performed.

It provides tools for:
  - Backtesting built-in strategies against OHLCV bar files
  - Simulating hand-annotated option trades over a price series
  - Journaling completed runs to SQLite or CSV
  - Generating and validating run configuration files

Complete documentation is available at https://github.com/rustyeddy/relaytrader`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var (
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string

	cfg *config.Config
	log = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults plus RELAY_* env when empty")
	pf.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "", "log format (console, json)")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envFile, err)
	}

	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if logLevel != "" {
		cfg.Logger.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logger.Format = logFormat
	}

	log, err = logger.New(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	return nil
}
