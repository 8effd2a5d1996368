package strategies

import (
	"math"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
)

// PercentMomentum follows the lookback percentage change beyond
// threshold and flattens when the move fades below half of it.
type PercentMomentum struct {
	Base
	lookback  int
	threshold float64
	qty       float64
}

func newPercentMomentum(ctx broker.Context, params Params) (Strategy, error) {
	return &PercentMomentum{
		Base:      Base{Ctx: ctx, Params: params},
		lookback:  params.Int("lookback"),
		threshold: params.Float("threshold"),
		qty:       params.Float("qty"),
	}, nil
}

func (s *PercentMomentum) OnBar(bar market.Bar) error {
	closes := s.Ctx.History(bar.Symbol, market.FieldClose, s.lookback+1)
	chg, ok := indicators.PctChange(closes, s.lookback)
	if !ok {
		return nil
	}

	pos := s.Ctx.PositionQty(bar.Symbol)
	switch {
	case chg > s.threshold:
		return s.GoLong(bar.Symbol, s.qty)
	case chg < -s.threshold:
		return s.GoShort(bar.Symbol, s.qty)
	case math.Abs(chg) < s.threshold/2 && pos != 0:
		return s.Flatten(bar.Symbol)
	}
	return nil
}
