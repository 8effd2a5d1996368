package strategies

import (
	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
)

// DonchianBreakout goes long on a break above the prior channel high and
// short on a break below the prior channel low.
type DonchianBreakout struct {
	Base
	lookback int
	qty      float64
}

func newDonchianBreakout(ctx broker.Context, params Params) (Strategy, error) {
	return &DonchianBreakout{
		Base:     Base{Ctx: ctx, Params: params},
		lookback: params.Int("lookback"),
		qty:      params.Float("qty"),
	}, nil
}

func (s *DonchianBreakout) OnBar(bar market.Bar) error {
	highs := s.Ctx.History(bar.Symbol, market.FieldHigh, s.lookback+1)
	lows := s.Ctx.History(bar.Symbol, market.FieldLow, s.lookback+1)
	upper, lower, ok := indicators.Donchian(highs, lows, s.lookback)
	if !ok {
		return nil
	}

	switch {
	case bar.High > upper:
		return s.GoLong(bar.Symbol, s.qty)
	case bar.Low < lower:
		return s.GoShort(bar.Symbol, s.qty)
	}
	return nil
}
