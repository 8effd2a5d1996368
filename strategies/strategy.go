// Package strategies holds the strategy interface, the parameter registry
// and the built-in strategy catalogue.
package strategies

import (
	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
)

// Strategy receives the run's events in order. Returning an error aborts
// the run.
type Strategy interface {
	OnStart() error
	OnBar(bar market.Bar) error
	OnTick(tick market.Tick) error
	OnOrderFill(fill broker.Fill) error
	OnEnd() error
}

// Factory builds a strategy bound to ctx. params have already been
// resolved against the strategy's Definition.
type Factory func(ctx broker.Context, params Params) (Strategy, error)

// Base gives no-op hooks and order helpers. Embed it and override what
// you need.
type Base struct {
	Ctx    broker.Context
	Params Params
}

func (Base) OnStart() error                { return nil }
func (Base) OnBar(market.Bar) error        { return nil }
func (Base) OnTick(market.Tick) error      { return nil }
func (Base) OnOrderFill(broker.Fill) error { return nil }
func (Base) OnEnd() error                  { return nil }

func (b Base) Buy(symbol string, qty float64, opts ...broker.OrderOption) (broker.Order, error) {
	return broker.BuyOrder(b.Ctx, symbol, qty, opts...)
}

func (b Base) Sell(symbol string, qty float64, opts ...broker.OrderOption) (broker.Order, error) {
	return broker.SellOrder(b.Ctx, symbol, qty, opts...)
}

// GoLong covers any short with one market order, then buys qty with a
// second one. No-op when already long.
func (b Base) GoLong(symbol string, qty float64) error {
	pos := b.Ctx.PositionQty(symbol)
	if pos > 0 {
		return nil
	}
	if pos < 0 {
		if _, err := b.Buy(symbol, -pos); err != nil {
			return err
		}
	}
	_, err := b.Buy(symbol, qty)
	return err
}

// GoShort is GoLong mirrored.
func (b Base) GoShort(symbol string, qty float64) error {
	pos := b.Ctx.PositionQty(symbol)
	if pos < 0 {
		return nil
	}
	if pos > 0 {
		if _, err := b.Sell(symbol, pos); err != nil {
			return err
		}
	}
	_, err := b.Sell(symbol, qty)
	return err
}

// Flatten closes any open position with a market order.
func (b Base) Flatten(symbol string) error {
	pos := b.Ctx.PositionQty(symbol)
	var err error
	switch {
	case pos > 0:
		_, err = b.Sell(symbol, pos)
	case pos < 0:
		_, err = b.Buy(symbol, -pos)
	}
	return err
}

// ZScore of the latest value of field over lookback values.
func (b Base) ZScore(symbol string, field market.Field, lookback int) (float64, bool) {
	hist := b.Ctx.History(symbol, field, lookback)
	if len(hist) < lookback {
		return 0, false
	}
	return indicators.ZScore(hist, lookback)
}
