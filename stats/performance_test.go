package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePerformanceShortCurve(t *testing.T) {
	for _, curve := range [][]float64{nil, {100}} {
		p := ComputePerformance(curve, 252)
		assert.Zero(t, p.TotalReturn)
		assert.Zero(t, p.Sharpe)
		assert.Zero(t, p.MaxDrawdown)
		assert.Len(t, p.EquityCurve, len(curve))
		assert.Len(t, p.DrawdownCurve, len(curve))
	}
}

func TestComputePerformanceFlatReturns(t *testing.T) {
	// Constant growth: every period return identical, zero variance.
	curve := []float64{100, 150, 225, 337.5}
	p := ComputePerformance(curve, 252)

	assert.InDelta(t, 2.375, p.TotalReturn, 1e-12)
	assert.Zero(t, p.Volatility)
	assert.Zero(t, p.Sharpe)
	assert.Zero(t, p.Sortino)
	assert.Zero(t, p.MaxDrawdown)
	assert.Zero(t, p.Calmar)
	assert.InEpsilon(t, math.Pow(1.5, 252)-1, p.AnnualizedReturn, 1e-9)
}

func TestComputePerformanceDrawdown(t *testing.T) {
	curve := []float64{100, 120, 90, 100, 130}
	p := ComputePerformance(curve, 252)

	require.Len(t, p.DrawdownCurve, len(curve))
	assert.InDelta(t, 0.0, p.DrawdownCurve[0], 1e-12)
	assert.InDelta(t, 0.0, p.DrawdownCurve[1], 1e-12)
	assert.InDelta(t, -0.25, p.DrawdownCurve[2], 1e-12)
	assert.InDelta(t, -1.0/6.0, p.DrawdownCurve[3], 1e-12)
	assert.InDelta(t, 0.0, p.DrawdownCurve[4], 1e-12)
	assert.InDelta(t, -0.25, p.MaxDrawdown, 1e-12)
	for _, dd := range p.DrawdownCurve {
		assert.LessOrEqual(t, dd, 0.0)
	}

	rets := Returns(curve)
	mean := Mean(rets)
	vol := StdDev(rets)
	assert.InDelta(t, vol, p.Volatility, 1e-12)
	assert.InDelta(t, (mean*252)/(vol*math.Sqrt(252)), p.Sharpe, 1e-9)
	assert.InDelta(t, p.AnnualizedReturn/0.25, p.Calmar, 1e-9)
	assert.InDelta(t, 0.3, p.TotalReturn, 1e-12)
}

func TestSortinoSingleLossIsZero(t *testing.T) {
	// One negative return: downside std is 0 so Sortino is 0.
	p := ComputePerformance([]float64{100, 110, 100, 105}, 252)
	assert.Zero(t, p.Sortino)
	assert.NotZero(t, p.Sharpe)
}

func TestSortinoUsesDownsideDeviation(t *testing.T) {
	curve := []float64{100, 95, 100, 90, 110}
	p := ComputePerformance(curve, 12)

	rets := Returns(curve)
	var down []float64
	for _, r := range rets {
		if r < 0 {
			down = append(down, r)
		}
	}
	want := (Mean(rets) * 12) / (StdDev(down) * math.Sqrt(12))
	assert.InDelta(t, want, p.Sortino, 1e-9)
}

func TestDefaultPeriodsPerYear(t *testing.T) {
	curve := []float64{100, 101, 99, 102}
	assert.Equal(t, ComputePerformance(curve, 252), ComputePerformance(curve, 0))
}

func TestStdDevIsPopulation(t *testing.T) {
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, Mean(nil))
}
