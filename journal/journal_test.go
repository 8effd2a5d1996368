package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/relaytrader/backtest"
	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/stats"
	"github.com/rustyeddy/relaytrader/strategies"
)

const day = int64(24 * time.Hour / time.Millisecond)

var created = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func testResult(runID string) *backtest.Result {
	cfg := backtest.DefaultConfig("AAPL")
	cfg.StrategyID = "sma_cross"
	cfg.StrategyParams = strategies.Params{"fast": 10, "slow": 30}

	limit := 99.5
	t0 := int64(1_700_000_000_000)

	return &backtest.Result{
		RunID:  runID,
		Config: cfg,
		Performance: stats.Performance{
			TotalReturn:   0.00001,
			Sharpe:        1.25,
			MaxDrawdown:   -0.02,
			EquityCurve:   []float64{100000, 100000, 100001},
			DrawdownCurve: []float64{0, 0, 0},
		},
		Trades: stats.TradeStats{NetPnL: 1, NumTrades: 1, NumWinners: 1, WinRate: 1},
		TradeRecords: []backtest.TradeRecord{
			{OrderID: 1, Timestamp: t0 + day, Symbol: "AAPL", Side: broker.Buy, Quantity: 1, Price: 103},
			{OrderID: 2, Timestamp: t0 + 2*day, Symbol: "AAPL", Side: broker.Sell, Quantity: 1, Price: 104, RealizedPnL: 1},
		},
		OrderRecords: []backtest.OrderRecord{
			{ID: 1, Symbol: "AAPL", Side: broker.Buy, Quantity: 1, Type: broker.Market, TimeInForce: broker.GTC, Status: broker.StatusFilled, FilledQty: 1, AvgFillPrice: 103},
			{ID: 2, Symbol: "AAPL", Side: broker.Sell, Quantity: 1, Type: broker.Market, TimeInForce: broker.GTC, Status: broker.StatusFilled, FilledQty: 1, AvgFillPrice: 104},
			{ID: 3, Symbol: "AAPL", Side: broker.Buy, Quantity: 2, Type: broker.Limit, TimeInForce: broker.Day, Status: broker.StatusNew, LimitPrice: &limit},
		},
		Timestamps:    []int64{t0, t0 + day, t0 + 2*day},
		BarsProcessed: 3,
		Start:         t0,
		End:           t0 + 2*day,
		FinalCash:     100001,
		FinalEquity:   100001,
	}
}

func testEntry(t *testing.T, runID string, at time.Time) Entry {
	t.Helper()
	e, err := FromResult(testResult(runID), at)
	require.NoError(t, err)
	return e
}

func TestFromResult(t *testing.T) {
	t.Parallel()

	e := testEntry(t, "run-1", created)

	assert.Equal(t, "run-1", e.Run.RunID)
	assert.Equal(t, "sma_cross", e.Run.Strategy)
	assert.Equal(t, "AAPL", e.Run.Symbol)
	assert.JSONEq(t, `{"fast":10,"slow":30}`, e.Run.Params)
	assert.Contains(t, e.Run.Config, `"strategy":"sma_cross"`)
	assert.Equal(t, 3, e.Run.Bars)
	assert.Equal(t, 1, e.Run.NumTrades)
	assert.Equal(t, 1.0, e.Run.NetPnL)
	assert.Equal(t, backtest.DefaultInitialCash, e.Run.InitialCash)

	require.Len(t, e.Trades, 2)
	assert.Equal(t, "BUY", e.Trades[0].Side)
	assert.Equal(t, 1, e.Trades[1].Seq)
	assert.Equal(t, 1.0, e.Trades[1].RealizedPnL)

	require.Len(t, e.Orders, 3)
	assert.Equal(t, "LIMIT", e.Orders[2].Type)
	assert.Equal(t, "DAY", e.Orders[2].TimeInForce)
	assert.Equal(t, "NEW", e.Orders[2].Status)
	require.NotNil(t, e.Orders[2].LimitPrice)
	assert.Nil(t, e.Orders[2].StopPrice)

	require.Len(t, e.Equity, 3)
	assert.Equal(t, 100001.0, e.Equity[2].Equity)
	assert.Equal(t, e.Run.End, e.Equity[2].Timestamp)
}

func TestFromResultErrors(t *testing.T) {
	t.Parallel()

	_, err := FromResult(nil, created)
	assert.Error(t, err)

	_, err = FromResult(testResult(""), created)
	assert.Error(t, err)
}
