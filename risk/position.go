// Package risk sizes positions so a stop-out costs a fixed fraction of
// equity.
package risk

import "math"

type Inputs struct {
	Equity     float64
	RiskPct    float64 // 0.01 = 1% of equity
	EntryPrice float64
	StopPrice  float64
}

type Result struct {
	Qty         float64 // whole units, floored
	RiskPerUnit float64
	RiskAmount  float64 // what the stop would actually lose at Qty
}

// Calculate sizes the position. A zero stop distance, non-positive equity
// or non-positive risk gives a zero quantity.
func Calculate(in Inputs) Result {
	perUnit := math.Abs(in.EntryPrice - in.StopPrice)
	if perUnit == 0 || in.Equity <= 0 || in.RiskPct <= 0 {
		return Result{RiskPerUnit: perUnit}
	}

	qty := math.Floor(in.Equity * in.RiskPct / perUnit)
	return Result{
		Qty:         qty,
		RiskPerUnit: perUnit,
		RiskAmount:  qty * perUnit,
	}
}

// RiskPct is the share of equity a planned loss represents.
func RiskPct(plannedRisk, equity float64) float64 {
	if equity <= 0 {
		return math.Inf(1)
	}
	return plannedRisk / equity
}
