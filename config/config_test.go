package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/relaytrader/backtest"
	"github.com/rustyeddy/relaytrader/manual"
	"github.com/rustyeddy/relaytrader/strategies"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, "SPY", cfg.Backtest.Symbol)
	assert.Equal(t, backtest.DefaultInitialCash, cfg.Backtest.InitialCash)
	assert.Equal(t, "buy_and_hold", cfg.Backtest.StrategyID)
	assert.Equal(t, manual.DefaultSettings(), cfg.Options)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "missing symbol",
			mutate: func(c *Config) { c.Backtest.Symbol = "" },
			errMsg: "symbol is required",
		},
		{
			name:   "negative cash",
			mutate: func(c *Config) { c.Backtest.InitialCash = -1 },
			errMsg: "initial_cash must be > 0",
		},
		{
			name:   "unknown strategy",
			mutate: func(c *Config) { c.Backtest.StrategyID = "martingale" },
			errMsg: "martingale",
		},
		{
			name: "bad strategy param",
			mutate: func(c *Config) {
				c.Backtest.StrategyID = "sma_cross"
				c.Backtest.StrategyParams = strategies.Params{"fast": -3}
			},
			errMsg: "fast",
		},
		{
			name:   "scenario move out of range",
			mutate: func(c *Config) { c.Options.ScenarioMovePct = 1.5 },
			errMsg: "scenario_move_pct",
		},
		{
			name:   "unknown journal type",
			mutate: func(c *Config) { c.Journal.Type = "postgres" },
			errMsg: "journal.type must be",
		},
		{
			name:   "csv journal without path",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: "csv"} },
			errMsg: "journal.path required for csv journal",
		},
		{
			name:   "no journal",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: "none"} },
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logger.Level = "loud" },
			errMsg: "logger.level",
		},
		{
			name:   "bad log format",
			mutate: func(c *Config) { c.Logger.Format = "xml" },
			errMsg: "logger.format must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Backtest.Symbol = "QQQ"
			cfg.Backtest.StrategyID = "sma_cross"
			cfg.Backtest.StrategyParams = strategies.Params{"fast": 5, "slow": 20}
			cfg.Backtest.CommissionPerTrade = 1.5
			cfg.Options.Scenario = manual.ScenarioBear
			cfg.Data.Bars = "bars.csv"
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, "QQQ", loaded.Backtest.Symbol)
			assert.Equal(t, "sma_cross", loaded.Backtest.StrategyID)
			assert.Equal(t, 5, loaded.Backtest.StrategyParams.Int("fast"))
			assert.Equal(t, 20, loaded.Backtest.StrategyParams.Int("slow"))
			assert.Equal(t, 1.5, loaded.Backtest.CommissionPerTrade)
			assert.Equal(t, manual.ScenarioBear, loaded.Options.Scenario)
			assert.Equal(t, cfg.Options.ImpliedVolatility, loaded.Options.ImpliedVolatility)
			assert.Equal(t, "bars.csv", loaded.Data.Bars)
			assert.Equal(t, cfg.Journal, loaded.Journal)
			assert.Equal(t, cfg.Logger, loaded.Logger)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backtest:\n  symbol: IWM\noptions:\n  scenario: bull\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "IWM", cfg.Backtest.Symbol)
	assert.Equal(t, backtest.DefaultInitialCash, cfg.Backtest.InitialCash)
	assert.Equal(t, manual.ScenarioBull, cfg.Options.Scenario)
	assert.Equal(t, 0.30, cfg.Options.ImpliedVolatility)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RELAY_BACKTEST_INITIAL_CASH", "2500")
	t.Setenv("RELAY_BACKTEST_SYMBOL", "TSLA")
	t.Setenv("RELAY_OPTIONS_USE_BLACK_SCHOLES", "false")
	t.Setenv("RELAY_LOGGER_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2500.0, cfg.Backtest.InitialCash)
	assert.Equal(t, "TSLA", cfg.Backtest.Symbol)
	assert.False(t, cfg.Options.UseBlackScholes)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: postgres\n"), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
