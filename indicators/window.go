package indicators

import "math"

// Window functions operate on the trailing values of a series, oldest
// first, as returned by broker.Context.History. Each returns ok=false when
// the series is shorter than the window it needs.

// SMA is the mean of the last period values.
func SMA(xs []float64, period int) (float64, bool) {
	if period <= 0 || len(xs) < period {
		return 0, false
	}
	return Mean(xs[len(xs)-period:]), true
}

// Mean of xs; 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the population standard deviation of xs.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// ZScore of the last value against the last period values. ok is false
// when the window is short or has zero deviation.
func ZScore(xs []float64, period int) (float64, bool) {
	if period <= 0 || len(xs) < period {
		return 0, false
	}
	w := xs[len(xs)-period:]
	sd := StdDev(w)
	if sd == 0 {
		return 0, false
	}
	return (w[len(w)-1] - Mean(w)) / sd, true
}

// RSI over period changes using simple averages of gains and losses.
// Needs period+1 values. No losses gives 100.
func RSI(xs []float64, period int) (float64, bool) {
	if period <= 0 || len(xs) < period+1 {
		return 0, false
	}
	w := xs[len(xs)-period-1:]
	var gain, loss float64
	for i := 1; i < len(w); i++ {
		ch := w[i] - w[i-1]
		if ch > 0 {
			gain += ch
		} else {
			loss -= ch
		}
	}
	if loss == 0 {
		return 100, true
	}
	rs := (gain / float64(period)) / (loss / float64(period))
	return 100 - 100/(1+rs), true
}

// Bands is a Bollinger envelope.
type Bands struct {
	Lower, Middle, Upper float64
}

// Bollinger bands of width k population deviations around the SMA.
func Bollinger(xs []float64, period int, k float64) (Bands, bool) {
	if period <= 0 || len(xs) < period {
		return Bands{}, false
	}
	m, _ := SMA(xs, period)
	sd := StdDev(xs[len(xs)-period:])
	return Bands{Lower: m - k*sd, Middle: m, Upper: m + k*sd}, true
}

// Donchian returns the highest high and lowest low of the period values
// before the last one. highs and lows need period+1 values each.
func Donchian(highs, lows []float64, period int) (upper, lower float64, ok bool) {
	if period <= 0 || len(highs) < period+1 || len(lows) < period+1 {
		return 0, 0, false
	}
	hs := highs[len(highs)-period-1 : len(highs)-1]
	ls := lows[len(lows)-period-1 : len(lows)-1]
	upper, lower = hs[0], ls[0]
	for i := 1; i < period; i++ {
		upper = math.Max(upper, hs[i])
		lower = math.Min(lower, ls[i])
	}
	return upper, lower, true
}

// PctChange is last/first - 1 over the last period+1 values.
func PctChange(xs []float64, period int) (float64, bool) {
	if period <= 0 || len(xs) < period+1 {
		return 0, false
	}
	first := xs[len(xs)-period-1]
	if first == 0 {
		return 0, false
	}
	return xs[len(xs)-1]/first - 1, true
}
