package strategies

import (
	"fmt"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
)

// SMACross holds one unit long while the fast SMA is above the slow one
// and one unit short while it is below.
type SMACross struct {
	Base
	fast *indicators.SimpleMA
	slow *indicators.SimpleMA
}

func newSMACross(ctx broker.Context, params Params) (Strategy, error) {
	fast, slow := params.Int("fast"), params.Int("slow")
	if fast >= slow {
		return nil, fmt.Errorf("%w: fast (%d) must be below slow (%d)", ErrInvalidParam, fast, slow)
	}
	return &SMACross{
		Base: Base{Ctx: ctx, Params: params},
		fast: indicators.NewMA(fast),
		slow: indicators.NewMA(slow),
	}, nil
}

func (s *SMACross) OnBar(bar market.Bar) error {
	s.fast.Update(bar)
	s.slow.Update(bar)
	if !s.slow.Ready() {
		return nil
	}
	fastMA, slowMA := s.fast.Value(), s.slow.Value()

	switch {
	case fastMA > slowMA:
		return s.GoLong(bar.Symbol, 1)
	case fastMA < slowMA:
		return s.GoShort(bar.Symbol, 1)
	}
	return nil
}
