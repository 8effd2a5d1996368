package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/relaytrader/backtest"
	"github.com/rustyeddy/relaytrader/internal/id"
	"github.com/rustyeddy/relaytrader/journal"
	"github.com/rustyeddy/relaytrader/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy over a bar file",
	Long: `Backtest replays OHLCV bars from a CSV file through the simulated broker.
Orders placed on one bar are matched against the next.

The CSV needs a header with timestamp,open,high,low,close,volume and an
optional symbol column. Timestamps may be epoch milliseconds, RFC3339 or
YYYY-MM-DD.

Example:
  trader backtest -d data/spy.csv -y SPY -s sma_cross -p fast=10 -p slow=40`,
	RunE: runBacktest,
}

var (
	btDataPath    string
	btSymbol      string
	btStrategy    string
	btParams      []string
	btCash        float64
	btCommission  float64
	btSlippageBps float64
	btStartOffset int
	btMaxBars     int
	btJSON        bool
	btNoJournal   bool
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	f := backtestCmd.Flags()
	f.StringVarP(&btDataPath, "data", "d", "", "path to bar CSV (defaults to data.bars)")
	f.StringVarP(&btSymbol, "symbol", "y", "", "symbol to trade")
	f.StringVarP(&btStrategy, "strategy", "s", "", "strategy id (see: trader strategies)")
	f.StringArrayVarP(&btParams, "param", "p", nil, "strategy parameter name=value (repeatable)")
	f.Float64Var(&btCash, "cash", 0, "initial cash")
	f.Float64Var(&btCommission, "commission", 0, "commission per fill")
	f.Float64Var(&btSlippageBps, "slippage-bps", 0, "slippage in basis points")
	f.IntVar(&btStartOffset, "start-offset", 0, "bars to skip at the start")
	f.IntVar(&btMaxBars, "max-bars", 0, "maximum bars to process (0 = all)")
	f.BoolVar(&btJSON, "json", false, "print the full result as JSON")
	f.BoolVar(&btNoJournal, "no-journal", false, "do not record the run")
}

func backtestConfig(cmd *cobra.Command) (backtest.Config, error) {
	bc := cfg.Backtest
	f := cmd.Flags()

	if f.Changed("symbol") {
		bc.Symbol = btSymbol
	}
	if f.Changed("strategy") {
		bc.StrategyID = btStrategy
		bc.StrategyParams = nil
	}
	if len(btParams) > 0 {
		params, err := strategies.ParseParams(btParams)
		if err != nil {
			return bc, err
		}
		merged := strategies.Params{}
		for k, v := range bc.StrategyParams {
			merged[k] = v
		}
		for k, v := range params {
			merged[k] = v
		}
		bc.StrategyParams = merged
	}
	if f.Changed("cash") {
		bc.InitialCash = btCash
	}
	if f.Changed("commission") {
		bc.CommissionPerTrade = btCommission
	}
	if f.Changed("slippage-bps") {
		bc.SlippageBps = btSlippageBps
	}
	if f.Changed("start-offset") {
		bc.StartOffset = btStartOffset
	}
	if f.Changed("max-bars") {
		bc.MaxBars = btMaxBars
	}
	return bc, bc.Validate()
}

func runBacktest(cmd *cobra.Command, args []string) error {
	bc, err := backtestConfig(cmd)
	if err != nil {
		return err
	}

	path := btDataPath
	if path == "" {
		path = cfg.Data.Bars
	}
	if path == "" {
		return fmt.Errorf("no bar file: pass --data or set data.bars")
	}

	runner := &backtest.Runner{
		Config: bc,
		Source: backtest.CSVSource{Path: path, Symbol: bc.Symbol},
		Log:    log,
		NewID:  id.New,
	}
	res, err := runner.Run()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if btJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
	} else {
		backtest.PrintResult(out, res)
	}

	if btNoJournal {
		return nil
	}
	return recordRun(cmd.Context(), res)
}

func recordRun(ctx context.Context, res *backtest.Result) error {
	j, err := openJournal()
	if err != nil || j == nil {
		return err
	}
	defer j.Close()

	e, err := journal.FromResult(res, time.Now())
	if err != nil {
		return err
	}
	if err := j.Record(ctx, e); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	log.Info("run recorded",
		zap.String("run_id", res.RunID),
		zap.String("journal", cfg.Journal.Type),
		zap.String("path", cfg.Journal.Path),
	)
	return nil
}

// openJournal returns nil when journaling is disabled.
func openJournal() (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "sqlite":
		j, err := journal.NewSQLite(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		return j, nil
	case "csv":
		j, err := journal.NewCSV(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		return j, nil
	}
	return nil, nil
}
