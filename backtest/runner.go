package backtest

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/broker/sim"
	"github.com/rustyeddy/relaytrader/internal/id"
	"github.com/rustyeddy/relaytrader/market"
	"github.com/rustyeddy/relaytrader/stats"
	"github.com/rustyeddy/relaytrader/strategies"
)

// ErrStrategyPanic wraps a panic recovered from a strategy callback.
var ErrStrategyPanic = errors.New("backtest: strategy panicked")

// Runner drives one run. Each Run builds its own engine and strategy, so
// a Runner may be reused but not shared between goroutines.
type Runner struct {
	Config Config
	Source BarSource

	// Strategy builds the strategy directly. When nil the strategy is
	// resolved by Config.StrategyID from Registry.
	Strategy strategies.Factory
	Registry *strategies.Registry

	Log   *zap.Logger
	NewID func() string
}

// Run executes the loop:
//  1. read next bar
//  2. engine matches open orders against it
//  3. each fill goes to strategy.OnOrderFill
//  4. strategy.OnBar
//  5. equity is appended to the curve
//
// Any feed or strategy error aborts the run with no Result.
func (r *Runner) Run() (*Result, error) {
	if r.Source == nil {
		return nil, fmt.Errorf("backtest: Source is required")
	}
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}

	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	newID := r.NewID
	if newID == nil {
		newID = id.New
	}

	factory, params, err := r.resolve()
	if err != nil {
		return nil, err
	}

	cfg := r.Config
	cfg.StrategyParams = params
	if cfg.PeriodsPerYear == 0 {
		cfg.PeriodsPerYear = stats.DefaultPeriodsPerYear
	}

	engine := sim.NewEngine(sim.Config{
		Symbol:             cfg.Symbol,
		InitialCash:        cfg.InitialCash,
		CommissionPerTrade: cfg.CommissionPerTrade,
		SlippageBps:        cfg.SlippageBps,
	}, sim.WithLogger(log))

	strat, err := factory(engine, params)
	if err != nil {
		return nil, fmt.Errorf("backtest: build strategy: %w", err)
	}

	feed, err := r.Source.Open()
	if err != nil {
		return nil, fmt.Errorf("backtest: open feed: %w", err)
	}
	defer feed.Close()

	runID := newID()
	log = log.With(zap.String("run_id", runID), zap.String("symbol", cfg.Symbol))
	log.Info("backtest started", zap.String("strategy", cfg.StrategyID))
	began := time.Now()

	if err := guard("OnStart", strat.OnStart); err != nil {
		return nil, err
	}

	var (
		equity     []float64
		timestamps []int64
		seen       int
		lastTS     int64
	)

	for {
		if cfg.MaxBars > 0 && len(equity) >= cfg.MaxBars {
			break
		}
		bar, ok, err := feed.Next()
		if err != nil {
			return nil, fmt.Errorf("backtest: read bar: %w", err)
		}
		if !ok {
			break
		}

		seen++
		if seen <= cfg.StartOffset {
			continue
		}

		if bar.Symbol == "" {
			bar.Symbol = cfg.Symbol
		}
		if bar.Symbol != cfg.Symbol {
			return nil, fmt.Errorf("backtest: bar for %q in a %q run", bar.Symbol, cfg.Symbol)
		}
		if len(timestamps) > 0 && bar.Timestamp < lastTS {
			return nil, fmt.Errorf("backtest: timestamps decreasing at %d (previous %d)", bar.Timestamp, lastTS)
		}
		lastTS = bar.Timestamp

		for _, f := range engine.OnBar(bar) {
			if err := guard("OnOrderFill", func() error { return strat.OnOrderFill(f) }); err != nil {
				return nil, err
			}
		}
		if err := guard("OnBar", func() error { return strat.OnBar(bar) }); err != nil {
			return nil, err
		}

		equity = append(equity, engine.Equity())
		timestamps = append(timestamps, bar.Timestamp)
	}

	if err := guard("OnEnd", strat.OnEnd); err != nil {
		return nil, err
	}

	res := newResult(runID, cfg, engine, equity, timestamps)
	log.Info("backtest finished",
		zap.Int("bars", res.BarsProcessed),
		zap.Int("fills", len(res.TradeRecords)),
		zap.Float64("final_equity", engine.Equity()),
		zap.Float64("net_pnl", res.Trades.NetPnL),
		zap.Duration("elapsed", time.Since(began)))
	return res, nil
}

func (r *Runner) resolve() (strategies.Factory, strategies.Params, error) {
	if r.Strategy != nil {
		return r.Strategy, r.Config.StrategyParams, nil
	}
	reg := r.Registry
	if reg == nil {
		reg = strategies.Builtin()
	}
	def, params, err := reg.Resolve(r.Config.StrategyID, r.Config.StrategyParams)
	if err != nil {
		return nil, nil, err
	}
	return def.New, params, nil
}

// guard runs a strategy callback, turning a panic into ErrStrategyPanic
// and tagging errors with the hook name.
func guard(hook string, fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w in %s: %v\n%s", ErrStrategyPanic, hook, p, debug.Stack())
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("backtest: strategy %s: %w", hook, err)
	}
	return nil
}

var _ broker.Context = (*sim.Engine)(nil)

// BarsFrom collects a source into memory; handy for tests and reports.
func BarsFrom(src BarSource) ([]market.Bar, error) {
	feed, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer feed.Close()

	var out []market.Bar
	for {
		b, ok, err := feed.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, b)
	}
}
