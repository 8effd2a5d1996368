// Package backtest drives one strategy over one symbol's bars through the
// simulated broker and collects the statistics of the run.
package backtest

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/relaytrader/stats"
	"github.com/rustyeddy/relaytrader/strategies"
)

const DefaultInitialCash = 100_000.0

// Config is one run's flat configuration.
type Config struct {
	Symbol             string  `json:"symbol" yaml:"symbol" mapstructure:"symbol"`
	InitialCash        float64 `json:"initial_cash" yaml:"initial_cash" mapstructure:"initial_cash"`
	CommissionPerTrade float64 `json:"commission_per_trade" yaml:"commission_per_trade" mapstructure:"commission_per_trade"`
	SlippageBps        float64 `json:"slippage_bps" yaml:"slippage_bps" mapstructure:"slippage_bps"`

	// StartOffset bars are dropped from the front of the feed; MaxBars
	// caps the bars processed after that (0 = no cap).
	StartOffset int `json:"start_offset" yaml:"start_offset" mapstructure:"start_offset"`
	MaxBars     int `json:"max_bars" yaml:"max_bars" mapstructure:"max_bars"`

	PeriodsPerYear int `json:"periods_per_year" yaml:"periods_per_year" mapstructure:"periods_per_year"`

	StrategyID     string            `json:"strategy" yaml:"strategy" mapstructure:"strategy"`
	StrategyParams strategies.Params `json:"strategy_params,omitempty" yaml:"strategy_params,omitempty" mapstructure:"strategy_params"`
}

// DefaultConfig returns a config with the documented defaults filled in.
func DefaultConfig(symbol string) Config {
	return Config{
		Symbol:         symbol,
		InitialCash:    DefaultInitialCash,
		PeriodsPerYear: stats.DefaultPeriodsPerYear,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Symbol) == "" {
		return fmt.Errorf("backtest: symbol is required")
	}
	if !(c.InitialCash > 0) {
		return fmt.Errorf("backtest: initial_cash must be > 0, got %v", c.InitialCash)
	}
	if c.CommissionPerTrade < 0 {
		return fmt.Errorf("backtest: commission_per_trade must be >= 0")
	}
	if c.SlippageBps < 0 {
		return fmt.Errorf("backtest: slippage_bps must be >= 0")
	}
	if c.StartOffset < 0 {
		return fmt.Errorf("backtest: start_offset must be >= 0")
	}
	if c.MaxBars < 0 {
		return fmt.Errorf("backtest: max_bars must be >= 0")
	}
	if c.PeriodsPerYear < 0 {
		return fmt.Errorf("backtest: periods_per_year must be >= 0")
	}
	return nil
}
