package strategies

import (
	"fmt"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
)

// RSIReversion buys oversold, shorts overbought and flattens in between.
type RSIReversion struct {
	Base
	length     int
	oversold   float64
	overbought float64
	qty        float64
}

func newRSIReversion(ctx broker.Context, params Params) (Strategy, error) {
	s := &RSIReversion{
		Base:       Base{Ctx: ctx, Params: params},
		length:     params.Int("length"),
		oversold:   params.Float("oversold"),
		overbought: params.Float("overbought"),
		qty:        params.Float("qty"),
	}
	if s.oversold >= s.overbought {
		return nil, fmt.Errorf("%w: oversold must be below overbought", ErrInvalidParam)
	}
	return s, nil
}

func (s *RSIReversion) OnBar(bar market.Bar) error {
	closes := s.Ctx.History(bar.Symbol, market.FieldClose, s.length+1)
	rsi, ok := indicators.RSI(closes, s.length)
	if !ok {
		return nil
	}

	pos := s.Ctx.PositionQty(bar.Symbol)
	switch {
	case rsi < s.oversold:
		return s.GoLong(bar.Symbol, s.qty)
	case rsi > s.overbought:
		return s.GoShort(bar.Symbol, s.qty)
	case rsi > s.oversold && rsi < s.overbought && pos != 0:
		return s.Flatten(bar.Symbol)
	}
	return nil
}
