// Package options prices European calls and puts with Black-Scholes and
// provides the intrinsic/payoff helpers used by the manual simulator.
package options

import (
	"fmt"
	"math"
	"strings"
)

// Type is call or put.
type Type int8

const (
	Call Type = iota + 1
	Put
)

func (t Type) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return "unknown"
	}
}

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c":
		return Call, nil
	case "put", "p":
		return Put, nil
	}
	return 0, fmt.Errorf("options: unknown option type %q", s)
}

func (t Type) MarshalText() ([]byte, error) {
	if t != Call && t != Put {
		return nil, fmt.Errorf("options: invalid option type %d", int8(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Greeks are sensitivities of the option price. Theta is per calendar day,
// vega per one volatility point.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// Intrinsic is max(0, spot-strike) for calls and max(0, strike-spot) for puts.
func Intrinsic(t Type, spot, strike float64) float64 {
	if t == Put {
		return math.Max(0, strike-spot)
	}
	return math.Max(0, spot-strike)
}

// SimplePayoff is intrinsic value minus the premium paid.
func SimplePayoff(t Type, spot, strike, premium float64) float64 {
	return Intrinsic(t, spot, strike) - premium
}

// Price returns the Black-Scholes premium. years <= 0 collapses to intrinsic
// value; non-positive vol, spot or strike return 0.
func Price(t Type, spot, strike, years, vol, rate float64) float64 {
	if years <= 0 {
		return Intrinsic(t, spot, strike)
	}
	if degenerate(spot, strike, vol) {
		return 0
	}

	d1, d2 := d1d2(spot, strike, years, vol, rate)
	disc := strike * math.Exp(-rate*years)

	var p float64
	if t == Put {
		p = disc*normCDF(-d2) - spot*normCDF(-d1)
	} else {
		p = spot*normCDF(d1) - disc*normCDF(d2)
	}
	return math.Max(0, p)
}

// ComputeGreeks returns zero Greeks at or past expiry and for degenerate
// inputs.
func ComputeGreeks(t Type, spot, strike, years, vol, rate float64) Greeks {
	if years <= 0 || degenerate(spot, strike, vol) {
		return Greeks{}
	}

	d1, d2 := d1d2(spot, strike, years, vol, rate)
	sqrtT := math.Sqrt(years)
	pdf := normPDF(d1)
	disc := strike * math.Exp(-rate*years)

	g := Greeks{
		Gamma: pdf / (spot * vol * sqrtT),
		Vega:  spot * pdf * sqrtT / 100,
	}

	decay := -(spot * pdf * vol) / (2 * sqrtT)
	if t == Put {
		g.Delta = normCDF(d1) - 1
		g.Theta = (decay + rate*disc*normCDF(-d2)) / 365
	} else {
		g.Delta = normCDF(d1)
		g.Theta = (decay - rate*disc*normCDF(d2)) / 365
	}
	return g
}

func degenerate(spot, strike, vol float64) bool {
	return vol <= 0 || spot <= 0 || strike <= 0
}

func d1d2(spot, strike, years, vol, rate float64) (float64, float64) {
	volT := vol * math.Sqrt(years)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*years) / volT
	return d1, d1 - volT
}

func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}
