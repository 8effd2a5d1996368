package sim

import (
	"math"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/market"
)

// matchPrice decides whether o executes against bar and at what price.
func matchPrice(o *broker.Order, bar market.Bar) (float64, bool) {
	switch o.Type {
	case broker.Market:
		return bar.Close, true

	case broker.Limit:
		return limitFill(o.Side, *o.LimitPrice, bar)

	case broker.Stop:
		if !stopTriggered(o.Side, *o.StopPrice, bar) {
			return 0, false
		}
		// A triggered stop behaves as a market order.
		return bar.Close, true

	case broker.StopLimit:
		if !stopTriggered(o.Side, *o.StopPrice, bar) {
			return 0, false
		}
		return limitFill(o.Side, *o.LimitPrice, bar)
	}
	return 0, false
}

// limitFill: buys fill when low <= limit at min(limit, close); sells fill
// when high >= limit at max(limit, close).
func limitFill(side broker.Side, limit float64, bar market.Bar) (float64, bool) {
	if side == broker.Buy {
		if bar.Low <= limit {
			return math.Min(limit, bar.Close), true
		}
		return 0, false
	}
	if bar.High >= limit {
		return math.Max(limit, bar.Close), true
	}
	return 0, false
}

func stopTriggered(side broker.Side, stop float64, bar market.Bar) bool {
	if side == broker.Buy {
		return bar.High >= stop
	}
	return bar.Low <= stop
}
