package strategies

import (
	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/market"
)

// BuyAndHold buys qty on the first bar and never trades again.
type BuyAndHold struct {
	Base
	qty  float64
	done bool
}

func newBuyAndHold(ctx broker.Context, params Params) (Strategy, error) {
	return &BuyAndHold{Base: Base{Ctx: ctx, Params: params}, qty: params.Float("qty")}, nil
}

func (s *BuyAndHold) OnBar(bar market.Bar) error {
	if s.done {
		return nil
	}
	s.done = true
	_, err := s.Buy(bar.Symbol, s.qty)
	return err
}
