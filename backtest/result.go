package backtest

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/broker/sim"
	"github.com/rustyeddy/relaytrader/stats"
)

// Result is everything a finished run reports.
type Result struct {
	RunID       string            `json:"run_id"`
	Config      Config            `json:"config"`
	Performance stats.Performance `json:"performance"`
	Trades      stats.TradeStats  `json:"trade_stats"`

	TradeRecords []TradeRecord `json:"trades"`
	OrderRecords []OrderRecord `json:"orders"`

	// Timestamps[i] is the bar behind Performance.EquityCurve[i].
	Timestamps    []int64 `json:"timestamps"`
	BarsProcessed int     `json:"bars_processed"`
	Start         int64   `json:"start"` // ms, first processed bar
	End           int64   `json:"end"`   // ms, last processed bar
	FinalCash     float64 `json:"final_cash"`
	FinalEquity   float64 `json:"final_equity"`
}

// TradeRecord is one fill with the P&L it realized.
type TradeRecord struct {
	OrderID     broker.OrderID `json:"order_id"`
	Timestamp   int64          `json:"timestamp"`
	Symbol      string         `json:"symbol"`
	Side        broker.Side    `json:"side"`
	Quantity    float64        `json:"qty"`
	Price       float64        `json:"price"`
	Commission  float64        `json:"commission"`
	Slippage    float64        `json:"slippage"`
	RealizedPnL float64        `json:"realized_pnl"`
}

// OrderRecord is an order's final state.
type OrderRecord struct {
	ID           broker.OrderID     `json:"id"`
	Symbol       string             `json:"symbol"`
	Side         broker.Side        `json:"side"`
	Quantity     float64            `json:"qty"`
	Type         broker.OrderType   `json:"order_type"`
	TimeInForce  broker.TimeInForce `json:"time_in_force"`
	Status       broker.OrderStatus `json:"status"`
	LimitPrice   *float64           `json:"limit_price"`
	StopPrice    *float64           `json:"stop_price"`
	FilledQty    float64            `json:"filled_qty"`
	AvgFillPrice float64            `json:"avg_fill_price"`
}

func newResult(runID string, cfg Config, e *sim.Engine, equity []float64, ts []int64) *Result {
	fills := e.Fills()
	tradeStats, realized := stats.ComputeTrades(fills, cfg.InitialCash)

	res := &Result{
		RunID:         runID,
		Config:        cfg,
		Performance:   stats.ComputePerformance(equity, cfg.PeriodsPerYear),
		Trades:        tradeStats,
		TradeRecords:  make([]TradeRecord, len(fills)),
		Timestamps:    ts,
		BarsProcessed: len(equity),
		FinalCash:     e.Cash(),
		FinalEquity:   e.Equity(),
	}
	if len(ts) > 0 {
		res.Start, res.End = ts[0], ts[len(ts)-1]
	}

	for i, f := range fills {
		res.TradeRecords[i] = TradeRecord{
			OrderID:     f.OrderID,
			Timestamp:   f.Timestamp,
			Symbol:      f.Symbol,
			Side:        f.Side,
			Quantity:    f.Quantity,
			Price:       f.Price,
			Commission:  f.Commission,
			Slippage:    f.Slippage,
			RealizedPnL: realized[i],
		}
	}

	orders := e.Orders()
	res.OrderRecords = make([]OrderRecord, len(orders))
	for i, o := range orders {
		res.OrderRecords[i] = OrderRecord{
			ID:           o.ID,
			Symbol:       o.Symbol,
			Side:         o.Side,
			Quantity:     o.Quantity,
			Type:         o.Type,
			TimeInForce:  o.TimeInForce,
			Status:       o.Status,
			LimitPrice:   o.LimitPrice,
			StopPrice:    o.StopPrice,
			FilledQty:    o.FilledQty,
			AvgFillPrice: o.AvgFillPrice,
		}
	}
	return res
}

func fmtMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// PrintResult writes a plain-text summary of r.
func PrintResult(w io.Writer, r *Result) {
	p, t := r.Performance, r.Trades

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Backtest Result")
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Strategy:      %s\n", r.Config.StrategyID)
	for _, k := range r.Config.StrategyParams.Keys() {
		fmt.Fprintf(w, "  %-12s %v\n", k+":", r.Config.StrategyParams[k])
	}
	fmt.Fprintf(w, "Symbol:        %s\n", r.Config.Symbol)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start:         %s\n", fmtMillis(r.Start))
	fmt.Fprintf(w, "End:           %s\n", fmtMillis(r.End))
	fmt.Fprintf(w, "Bars:          %d\n", r.BarsProcessed)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Costs")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Commission:    %.2f per trade\n", r.Config.CommissionPerTrade)
	fmt.Fprintf(w, "Slippage:      %.1f bps\n", r.Config.SlippageBps)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Fills:         %d\n", len(r.TradeRecords))
	fmt.Fprintf(w, "Trades:        %d\n", t.NumTrades)
	fmt.Fprintf(w, "Wins:          %d\n", t.NumWinners)
	fmt.Fprintf(w, "Losses:        %d\n", t.NumLosers)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", t.WinRate*100)
	fmt.Fprintf(w, "Avg Win:       %.2f\n", t.AvgWin)
	fmt.Fprintf(w, "Avg Loss:      %.2f\n", t.AvgLoss)
	if t.ProfitFactor > 0 {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", t.ProfitFactor)
	}
	fmt.Fprintf(w, "Turnover:      %.2fx\n", t.Turnover)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Cash:    %.2f\n", r.Config.InitialCash)
	fmt.Fprintf(w, "End Equity:    %.2f\n", r.FinalEquity)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", t.NetPnL)
	fmt.Fprintf(w, "Return:        %.2f%%\n", p.TotalReturn*100)
	fmt.Fprintf(w, "Annualized:    %.2f%%\n", p.AnnualizedReturn*100)
	fmt.Fprintf(w, "Volatility:    %.4f\n", p.Volatility)
	fmt.Fprintf(w, "Sharpe:        %.2f\n", p.Sharpe)
	fmt.Fprintf(w, "Sortino:       %.2f\n", p.Sortino)
	fmt.Fprintf(w, "Calmar:        %.2f\n", p.Calmar)
	fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", p.MaxDrawdown*100)
	fmt.Fprintln(w, "==================================================")
}
