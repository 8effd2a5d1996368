// Package journal persists finished backtest runs: the run summary, the
// fills, the final order states and the equity curve.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/relaytrader/backtest"
)

var ErrRunNotFound = errors.New("journal: run not found")

// Run is the summary row of one backtest.
type Run struct {
	RunID    string
	Created  time.Time
	Strategy string
	Params   string // JSON
	Symbol   string
	Start    int64 // ms
	End      int64 // ms
	Bars     int

	InitialCash      float64
	FinalCash        float64
	FinalEquity      float64
	NetPnL           float64
	TotalReturn      float64
	AnnualizedReturn float64
	Sharpe           float64
	Sortino          float64
	Calmar           float64
	MaxDrawdown      float64
	WinRate          float64
	ProfitFactor     float64
	NumTrades        int

	Config string // JSON of the backtest config
}

type Trade struct {
	RunID       string
	Seq         int
	OrderID     int64
	Timestamp   int64
	Symbol      string
	Side        string
	Quantity    float64
	Price       float64
	Commission  float64
	Slippage    float64
	RealizedPnL float64
}

type Order struct {
	RunID        string
	OrderID      int64
	Symbol       string
	Side         string
	Type         string
	TimeInForce  string
	Status       string
	Quantity     float64
	LimitPrice   *float64
	StopPrice    *float64
	FilledQty    float64
	AvgFillPrice float64
}

type EquityPoint struct {
	RunID     string
	Seq       int
	Timestamp int64
	Equity    float64
	Drawdown  float64
}

// Entry is everything written for one run.
type Entry struct {
	Run    Run
	Trades []Trade
	Orders []Order
	Equity []EquityPoint
}

type Journal interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

// FromResult flattens a backtest result into a journal entry.
func FromResult(res *backtest.Result, created time.Time) (Entry, error) {
	if res == nil {
		return Entry{}, errors.New("journal: nil result")
	}
	if res.RunID == "" {
		return Entry{}, errors.New("journal: result has no run id")
	}

	cfg, err := json.Marshal(res.Config)
	if err != nil {
		return Entry{}, fmt.Errorf("journal: encode config: %w", err)
	}
	params, err := json.Marshal(res.Config.StrategyParams)
	if err != nil {
		return Entry{}, fmt.Errorf("journal: encode params: %w", err)
	}

	p, t := res.Performance, res.Trades
	e := Entry{
		Run: Run{
			RunID:            res.RunID,
			Created:          created.UTC(),
			Strategy:         res.Config.StrategyID,
			Params:           string(params),
			Symbol:           res.Config.Symbol,
			Start:            res.Start,
			End:              res.End,
			Bars:             res.BarsProcessed,
			InitialCash:      res.Config.InitialCash,
			FinalCash:        res.FinalCash,
			FinalEquity:      res.FinalEquity,
			NetPnL:           t.NetPnL,
			TotalReturn:      p.TotalReturn,
			AnnualizedReturn: p.AnnualizedReturn,
			Sharpe:           p.Sharpe,
			Sortino:          p.Sortino,
			Calmar:           p.Calmar,
			MaxDrawdown:      p.MaxDrawdown,
			WinRate:          t.WinRate,
			ProfitFactor:     t.ProfitFactor,
			NumTrades:        t.NumTrades,
			Config:           string(cfg),
		},
		Trades: make([]Trade, len(res.TradeRecords)),
		Orders: make([]Order, len(res.OrderRecords)),
		Equity: make([]EquityPoint, len(p.EquityCurve)),
	}

	for i, tr := range res.TradeRecords {
		e.Trades[i] = Trade{
			RunID:       res.RunID,
			Seq:         i,
			OrderID:     int64(tr.OrderID),
			Timestamp:   tr.Timestamp,
			Symbol:      tr.Symbol,
			Side:        tr.Side.String(),
			Quantity:    tr.Quantity,
			Price:       tr.Price,
			Commission:  tr.Commission,
			Slippage:    tr.Slippage,
			RealizedPnL: tr.RealizedPnL,
		}
	}

	for i, o := range res.OrderRecords {
		e.Orders[i] = Order{
			RunID:        res.RunID,
			OrderID:      int64(o.ID),
			Symbol:       o.Symbol,
			Side:         o.Side.String(),
			Type:         o.Type.String(),
			TimeInForce:  o.TimeInForce.String(),
			Status:       o.Status.String(),
			Quantity:     o.Quantity,
			LimitPrice:   o.LimitPrice,
			StopPrice:    o.StopPrice,
			FilledQty:    o.FilledQty,
			AvgFillPrice: o.AvgFillPrice,
		}
	}

	for i, eq := range p.EquityCurve {
		pt := EquityPoint{RunID: res.RunID, Seq: i, Equity: eq}
		if i < len(res.Timestamps) {
			pt.Timestamp = res.Timestamps[i]
		}
		if i < len(p.DrawdownCurve) {
			pt.Drawdown = p.DrawdownCurve[i]
		}
		e.Equity[i] = pt
	}

	return e, nil
}
