package strategies

import (
	"math"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/market"
)

// MeanReversion trades the close z-score: buy one unit below -entry_z,
// sell out above +entry_z, flatten once |z| < exit_z.
type MeanReversion struct {
	Base
	lookback int
	entry    float64
	exit     float64
}

func newMeanReversion(ctx broker.Context, params Params) (Strategy, error) {
	return &MeanReversion{
		Base:     Base{Ctx: ctx, Params: params},
		lookback: params.Int("lookback"),
		entry:    params.Float("entry_z"),
		exit:     params.Float("exit_z"),
	}, nil
}

func (s *MeanReversion) OnBar(bar market.Bar) error {
	z, ok := s.ZScore(bar.Symbol, market.FieldClose, s.lookback)
	if !ok {
		return nil
	}

	pos := s.Ctx.PositionQty(bar.Symbol)
	var err error
	switch {
	case z > s.entry && pos > 0:
		_, err = s.Sell(bar.Symbol, pos)
	case z < -s.entry && pos >= 0:
		_, err = s.Buy(bar.Symbol, 1)
	case math.Abs(z) < s.exit && pos != 0:
		err = s.Flatten(bar.Symbol)
	}
	return err
}
