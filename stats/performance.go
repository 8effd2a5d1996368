// Package stats derives performance and trade statistics from the equity
// curve and fill list of a finished run. Every function is pure.
package stats

import "math"

// DefaultPeriodsPerYear annualizes daily bars.
const DefaultPeriodsPerYear = 252

// Performance summarizes an equity curve.
type Performance struct {
	TotalReturn      float64   `json:"total_return"`
	AnnualizedReturn float64   `json:"annualized_return"`
	Volatility       float64   `json:"volatility"`
	Sharpe           float64   `json:"sharpe"`
	Sortino          float64   `json:"sortino"`
	Calmar           float64   `json:"calmar"`
	MaxDrawdown      float64   `json:"max_drawdown"`
	EquityCurve      []float64 `json:"equity_curve"`
	DrawdownCurve    []float64 `json:"drawdown_curve"`
}

// ComputePerformance returns risk and return figures for equity. Curves
// shorter than two points yield zero stats. periodsPerYear <= 0 uses
// DefaultPeriodsPerYear.
func ComputePerformance(equity []float64, periodsPerYear int) Performance {
	if periodsPerYear <= 0 {
		periodsPerYear = DefaultPeriodsPerYear
	}

	curve := make([]float64, len(equity))
	copy(curve, equity)

	if len(curve) < 2 {
		return Performance{
			EquityCurve:   curve,
			DrawdownCurve: make([]float64, len(curve)),
		}
	}

	rets := Returns(curve)
	mean := Mean(rets)
	vol := StdDev(rets)

	var downside []float64
	for _, r := range rets {
		if r < 0 {
			downside = append(downside, r)
		}
	}
	downVol := StdDev(downside)

	ppy := float64(periodsPerYear)
	sqrtPPY := math.Sqrt(ppy)

	p := Performance{
		TotalReturn:      curve[len(curve)-1]/curve[0] - 1,
		AnnualizedReturn: math.Pow(1+mean, ppy) - 1,
		Volatility:       vol,
		EquityCurve:      curve,
	}
	if vol != 0 {
		p.Sharpe = (mean * ppy) / (vol * sqrtPPY)
	}
	if downVol != 0 {
		p.Sortino = (mean * ppy) / (downVol * sqrtPPY)
	}

	p.DrawdownCurve = Drawdowns(curve)
	for _, dd := range p.DrawdownCurve {
		if dd < p.MaxDrawdown {
			p.MaxDrawdown = dd
		}
	}
	if p.MaxDrawdown != 0 {
		p.Calmar = p.AnnualizedReturn / math.Abs(p.MaxDrawdown)
	}
	return p
}

// Returns are simple per-step returns: e[i]/e[i-1] - 1.
func Returns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		out[i-1] = (equity[i] - equity[i-1]) / equity[i-1]
	}
	return out
}

// Drawdowns returns (equity - running max) / running max, element-wise.
func Drawdowns(equity []float64) []float64 {
	out := make([]float64, len(equity))
	peak := math.Inf(-1)
	for i, v := range equity {
		if v > peak {
			peak = v
		}
		if peak != 0 {
			out[i] = (v - peak) / peak
		}
	}
	return out
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the population standard deviation (divides by n).
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}
