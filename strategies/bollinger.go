package strategies

import (
	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
)

// BollingerReversion fades closes outside the bands and exits once price
// crosses back to the middle band.
type BollingerReversion struct {
	Base
	lookback int
	numStd   float64
	qty      float64
}

func newBollingerReversion(ctx broker.Context, params Params) (Strategy, error) {
	return &BollingerReversion{
		Base:     Base{Ctx: ctx, Params: params},
		lookback: params.Int("lookback"),
		numStd:   params.Float("num_std"),
		qty:      params.Float("qty"),
	}, nil
}

func (s *BollingerReversion) OnBar(bar market.Bar) error {
	closes := s.Ctx.History(bar.Symbol, market.FieldClose, s.lookback)
	bands, ok := indicators.Bollinger(closes, s.lookback, s.numStd)
	if !ok {
		return nil
	}

	pos := s.Ctx.PositionQty(bar.Symbol)
	px := bar.Close
	switch {
	case px < bands.Lower:
		return s.GoLong(bar.Symbol, s.qty)
	case px > bands.Upper:
		return s.GoShort(bar.Symbol, s.qty)
	case pos > 0 && px >= bands.Middle:
		return s.Flatten(bar.Symbol)
	case pos < 0 && px <= bands.Middle:
		return s.Flatten(bar.Symbol)
	}
	return nil
}
