// Package config loads and saves the CLI's run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/relaytrader/backtest"
	"github.com/rustyeddy/relaytrader/manual"
	"github.com/rustyeddy/relaytrader/strategies"
)

// EnvPrefix prefixes environment overrides: RELAY_BACKTEST_INITIAL_CASH
// overrides backtest.initial_cash.
const EnvPrefix = "RELAY"

// Config represents the complete run configuration
type Config struct {
	Backtest backtest.Config `json:"backtest" yaml:"backtest" mapstructure:"backtest"`
	Options  manual.Settings `json:"options" yaml:"options" mapstructure:"options"`
	Data     DataConfig      `json:"data" yaml:"data" mapstructure:"data"`
	Journal  JournalConfig   `json:"journal" yaml:"journal" mapstructure:"journal"`
	Logger   LoggerConfig    `json:"logger" yaml:"logger" mapstructure:"logger"`
}

// DataConfig points at the input files.
type DataConfig struct {
	Bars        string `json:"bars,omitempty" yaml:"bars,omitempty" mapstructure:"bars"`
	Annotations string `json:"annotations,omitempty" yaml:"annotations,omitempty" mapstructure:"annotations"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type string `json:"type" yaml:"type" mapstructure:"type"` // "sqlite", "csv" or "none"
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`
}

type LoggerConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"` // "console" or "json"
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	bt := backtest.DefaultConfig("SPY")
	bt.StrategyID = "buy_and_hold"

	return &Config{
		Backtest: bt,
		Options:  manual.DefaultSettings(),
		Journal: JournalConfig{
			Type: "sqlite",
			Path: "./relaytrader.db",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func setDefaults(v *viper.Viper, d *Config) {
	bt, o := d.Backtest, d.Options

	// Every key is registered so AutomaticEnv can see it.
	defaults := map[string]any{
		"backtest.symbol":               bt.Symbol,
		"backtest.initial_cash":         bt.InitialCash,
		"backtest.commission_per_trade": bt.CommissionPerTrade,
		"backtest.slippage_bps":         bt.SlippageBps,
		"backtest.start_offset":         bt.StartOffset,
		"backtest.max_bars":             bt.MaxBars,
		"backtest.periods_per_year":     bt.PeriodsPerYear,
		"backtest.strategy":             bt.StrategyID,

		"options.implied_volatility":      o.ImpliedVolatility,
		"options.risk_free_rate":          o.RiskFreeRate,
		"options.use_black_scholes":       o.UseBlackScholes,
		"options.scenario":                o.Scenario.String(),
		"options.scenario_move_pct":       o.ScenarioMovePct,
		"options.commission_per_contract": o.CommissionPerContract,

		"data.bars":        d.Data.Bars,
		"data.annotations": d.Data.Annotations,

		"journal.type": d.Journal.Type,
		"journal.path": d.Journal.Path,

		"logger.level":  d.Logger.Level,
		"logger.format": d.Logger.Format,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults with environment overrides applied.
func Load() (*Config, error) {
	cfg, err := decode(newViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file (JSON or YAML based on
// extension), then applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Backtest.Validate(); err != nil {
		return err
	}
	if c.Backtest.StrategyID != "" {
		if _, _, err := strategies.Builtin().Resolve(c.Backtest.StrategyID, c.Backtest.StrategyParams); err != nil {
			return err
		}
	}
	if err := c.Options.Validate(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "none":
	case "sqlite", "csv":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for %s journal", c.Journal.Type)
		}
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv' or 'none', got %q", c.Journal.Type)
	}

	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level: %w", err)
	}
	switch c.Logger.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logger.format must be 'json' or 'console', got %q", c.Logger.Format)
	}
	return nil
}
