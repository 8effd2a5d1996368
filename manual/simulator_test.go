package manual

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rustyeddy/relaytrader/options"
)

func day(d int) int64 {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC).UnixMilli()
}

func series() ([]int64, []float64) {
	return []int64{day(1), day(2), day(3), day(4), day(5)},
		[]float64{100, 101, 102, 103, 104}
}

func premium(v float64) *float64 { return &v }

func intrinsicSettings() Settings {
	s := DefaultSettings()
	s.UseBlackScholes = false
	return s
}

func TestSimulatorIntrinsic(t *testing.T) {
	ts, px := series()
	anns := []Annotation{
		{ID: "short-put", Timestamp: day(2), Type: options.Put, Action: ActionSell, Strike: 105, Expiry: "2024-12-31", Contracts: 1},
		{ID: "long-call", Timestamp: day(1), Type: options.Call, Action: ActionBuy, Strike: 100, Expiry: "2024-03-03", Contracts: 1, Premium: premium(1)},
	}

	sim, err := NewSimulator(intrinsicSettings())
	require.NoError(t, err)

	res, err := sim.Run(anns, ts, px)
	require.NoError(t, err)
	require.Len(t, res.Trades, 2)
	assert.Empty(t, res.Skipped)

	call := res.Trades[0]
	assert.Equal(t, "long-call", call.AnnotationID)
	assert.Equal(t, day(1), call.EntryTimestamp)
	assert.Equal(t, day(3), call.ExitTimestamp)
	assert.Equal(t, 1.0, call.EntryPremium)
	assert.Equal(t, 2.0, call.ExitPremium)
	assert.InDelta(t, 99.35, call.Payoff, 1e-9)
	assert.Equal(t, StatusExpired, call.Status)

	put := res.Trades[1]
	assert.Equal(t, day(2), put.EntryTimestamp)
	assert.Equal(t, day(5), put.ExitTimestamp)
	assert.Equal(t, 4.0, put.EntryPremium)
	assert.Equal(t, 1.0, put.ExitPremium)
	assert.InDelta(t, 299.35, put.Payoff, 1e-9)
	assert.Equal(t, StatusClosed, put.Status)

	st := res.Stats
	assert.Equal(t, 2, st.NumTrades)
	assert.InDelta(t, 100.0, st.TotalPremiumSpent, 1e-9)
	assert.InDelta(t, 400.0, st.TotalPremiumReceived, 1e-9)
	assert.InDelta(t, 300.0, st.NetPremium, 1e-9)
	assert.InDelta(t, 1.3, st.TotalCommission, 1e-9)
	assert.InDelta(t, 398.7, st.NetPnL, 1e-9)
	assert.Equal(t, 1.0, st.WinRate)
	assert.InDelta(t, 299.35, st.MaxPayoff, 1e-9)
	assert.InDelta(t, 99.35, st.MinPayoff, 1e-9)
	assert.InDelta(t, 398.7/100, st.ReturnOnCapital, 1e-9)
	assert.Zero(t, st.AvgLoss)
}

func TestSimulatorSkipsAnnotationPastSeries(t *testing.T) {
	ts, px := series()
	core, logs := observer.New(zapcore.WarnLevel)

	sim, err := NewSimulator(intrinsicSettings(), WithLogger(zap.New(core)))
	require.NoError(t, err)

	res, err := sim.Run([]Annotation{
		{ID: "late", Timestamp: day(20), Type: options.Call, Action: ActionBuy, Strike: 100, Expiry: "2024-12-31", Contracts: 2},
	}, ts, px)

	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, []string{"late"}, res.Skipped)
	assert.Equal(t, Stats{}, res.Stats)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "late", logs.All()[0].ContextMap()["annotation"])
}

func TestSimulatorBlackScholesEntry(t *testing.T) {
	ts, px := series()
	sim, err := NewSimulator(DefaultSettings())
	require.NoError(t, err)

	res, err := sim.Run([]Annotation{
		{ID: "a", Timestamp: day(1), Type: options.Call, Action: ActionBuy, Strike: 100, Expiry: "2024-06-21", Contracts: 3},
	}, ts, px)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	tr := res.Trades[0]
	exp, _ := options.ParseExpiry("2024-06-21")
	years := options.YearsToExpiry(day(1), exp)
	assert.InDelta(t, options.Price(options.Call, 100, 100, years, 0.30, 0.05), tr.EntryPremium, 1e-12)
	assert.Greater(t, tr.Greeks.Delta, 0.0)
	assert.Greater(t, tr.Greeks.Vega, 0.0)
	assert.Equal(t, StatusClosed, tr.Status)
	assert.InDelta(t, (tr.ExitPremium-tr.EntryPremium)*300-3*0.65, tr.Payoff, 1e-9)
	assert.InDelta(t, tr.EntryPremium*300, res.Stats.TotalPremiumSpent, 1e-9)
}

func TestSimulatorScenario(t *testing.T) {
	ts, px := series()
	s := intrinsicSettings()
	s.Scenario = ScenarioBull

	sim, err := NewSimulator(s)
	require.NoError(t, err)

	res, err := sim.Run([]Annotation{
		{ID: "a", Timestamp: day(1), Type: options.Call, Action: ActionBuy, Strike: 100, Expiry: "2024-12-31", Contracts: 1},
	}, ts, px)
	require.NoError(t, err)
	assert.InDelta(t, 110.0, res.Trades[0].EntryPrice, 1e-9)
	assert.InDelta(t, 114.4, res.Trades[0].ExitPrice, 1e-9)

	assert.Equal(t, []float64{90, 180}, Settings{Scenario: ScenarioBear, ScenarioMovePct: 0.1}.Adjust([]float64{100, 200}))
	assert.Equal(t, []float64{100, 200}, DefaultSettings().Adjust([]float64{100, 200}))
}

func TestSimulatorErrors(t *testing.T) {
	ts, px := series()
	sim, err := NewSimulator(DefaultSettings())
	require.NoError(t, err)

	_, err = sim.Run(nil, ts, px[:3])
	assert.ErrorIs(t, err, ErrSeriesMismatch)

	_, err = sim.Run([]Annotation{{ID: "x", Type: options.Call, Action: ActionBuy, Strike: 100, Expiry: "soon", Contracts: 1}}, ts, px)
	assert.ErrorIs(t, err, ErrInvalidAnnotation)

	_, err = sim.Run([]Annotation{{ID: "x", Type: options.Call, Action: ActionBuy, Strike: 100, Expiry: "2024-12-31"}}, ts, px)
	assert.ErrorIs(t, err, ErrInvalidAnnotation)

	_, err = NewSimulator(Settings{ScenarioMovePct: 2})
	assert.Error(t, err)
}

func TestSimulatorLosingShort(t *testing.T) {
	ts, px := series()
	sim, err := NewSimulator(intrinsicSettings())
	require.NoError(t, err)

	res, err := sim.Run([]Annotation{
		{ID: "short-call", Timestamp: day(1), Type: options.Call, Action: ActionSell, Strike: 100, Expiry: "2024-12-31", Contracts: 1, Premium: premium(1)},
	}, ts, px)
	require.NoError(t, err)

	// sold for 1, bought back at intrinsic 4
	assert.InDelta(t, -300.65, res.Trades[0].Payoff, 1e-9)
	assert.Equal(t, 0.0, res.Stats.WinRate)
	assert.Equal(t, 1, res.Stats.NumLosers)
	assert.InDelta(t, -300.65, res.Stats.MaxLoss, 1e-9)
	assert.Zero(t, res.Stats.ReturnOnCapital)
}
