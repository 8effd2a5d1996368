// Package indicators provides technical analysis indicators for strategies.
//
// Two flavors exist: window functions over a float series (SMA, RSI,
// Bollinger...) that pair with broker.Context.History, and streaming
// indicators that consume one closed bar at a time.
package indicators

import "github.com/rustyeddy/relaytrader/market"

// Indicator computes a single streaming value from bars.
// It is deterministic and safe to reuse across runs after Reset.
type Indicator interface {
	// Name returns a stable identifier like "EMA(20)" or "ATR(14)".
	Name() string

	// Warmup returns how many updates are needed before Ready() can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed bar.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful.
	Ready() bool

	// Value returns the current value, 0 until Ready.
	Value() float64
}
