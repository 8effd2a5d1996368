package strategies

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/indicators"
	"github.com/rustyeddy/relaytrader/market"
	"github.com/rustyeddy/relaytrader/risk"
)

// EMACross trades a fast/slow EMA crossover on closes.
//   - Enters only on a cross, reverses on the opposite cross
//   - adx_min > 0 skips entries while ADX is below it (exits still happen)
//   - atr_stop > 0 rests a protective STOP atr_stop*ATR away from the close
//   - risk_pct > 0 with a stop sizes each entry so the stop loses that
//     share of equity; qty is the size otherwise
//   - the stop's metadata carries the share of equity it puts at risk
type EMACross struct {
	Base

	fast *indicators.ExponentialMA
	slow *indicators.ExponentialMA
	atr  *indicators.ATR
	adx  *indicators.ADX

	qty     float64
	atrStop float64
	adxMin  float64
	riskPct float64

	lastDiff     float64
	haveLastDiff bool

	stopID broker.OrderID
}

func newEMACross(ctx broker.Context, params Params) (Strategy, error) {
	fast, slow := params.Int("fast"), params.Int("slow")
	if fast >= slow {
		return nil, fmt.Errorf("%w: fast (%d) must be below slow (%d)", ErrInvalidParam, fast, slow)
	}
	return &EMACross{
		Base:    Base{Ctx: ctx, Params: params},
		fast:    indicators.NewEMA(fast),
		slow:    indicators.NewEMA(slow),
		atr:     indicators.NewATR(params.Int("atr_period")),
		adx:     indicators.NewADX(params.Int("adx_period")),
		qty:     params.Float("qty"),
		atrStop: params.Float("atr_stop"),
		adxMin:  params.Float("adx_min"),
		riskPct: params.Float("risk_pct"),
	}, nil
}

func (s *EMACross) OnBar(bar market.Bar) error {
	s.fast.Update(bar)
	s.slow.Update(bar)
	s.atr.Update(bar)
	s.adx.Update(bar)

	if !s.fast.Ready() || !s.slow.Ready() {
		return nil
	}

	diff := s.fast.Value() - s.slow.Value()
	if !s.haveLastDiff {
		s.lastDiff = diff
		s.haveLastDiff = true
		return nil
	}

	bullCross := diff > 0 && s.lastDiff <= 0
	bearCross := diff < 0 && s.lastDiff >= 0
	s.lastDiff = diff

	switch {
	case bullCross:
		return s.onSignal(bar, broker.Buy)
	case bearCross:
		return s.onSignal(bar, broker.Sell)
	}
	return nil
}

// OnOrderFill forgets the protective stop once it has executed.
func (s *EMACross) OnOrderFill(f broker.Fill) error {
	if s.stopID != 0 && f.OrderID == s.stopID {
		s.stopID = 0
	}
	return nil
}

func (s *EMACross) onSignal(bar market.Bar, side broker.Side) error {
	if err := s.cancelStop(); err != nil {
		return err
	}

	if s.adxMin > 0 && (!s.adx.Ready() || s.adx.Value() < s.adxMin) {
		return s.Flatten(bar.Symbol)
	}

	withStop := s.atrStop > 0 && s.atr.Ready()
	var stopSide broker.Side
	var stopPx, dist float64
	if withStop {
		dist = s.atrStop * s.atr.Value()
		stopSide, stopPx = broker.Sell, bar.Close-dist
		if side == broker.Sell {
			stopSide, stopPx = broker.Buy, bar.Close+dist
		}
	}

	qty := s.qty
	if withStop && s.riskPct > 0 {
		qty = risk.Calculate(risk.Inputs{
			Equity:     s.Ctx.Equity(),
			RiskPct:    s.riskPct,
			EntryPrice: bar.Close,
			StopPrice:  stopPx,
		}).Qty
		if qty <= 0 {
			return s.Flatten(bar.Symbol)
		}
	}

	var err error
	if side == broker.Buy {
		err = s.GoLong(bar.Symbol, qty)
	} else {
		err = s.GoShort(bar.Symbol, qty)
	}
	if err != nil {
		return err
	}

	if !withStop {
		return nil
	}
	o, err := s.Ctx.Submit(broker.NewRequest(bar.Symbol, stopSide, qty,
		broker.WithStop(stopPx),
		broker.WithTIF(broker.GTC),
		broker.WithMetadata(map[string]string{
			"reason":   "protective_stop",
			"risk_pct": cast.ToString(risk.RiskPct(qty*dist, s.Ctx.Equity())),
		})))
	if err != nil {
		return err
	}
	s.stopID = o.ID
	return nil
}

func (s *EMACross) cancelStop() error {
	if s.stopID == 0 {
		return nil
	}
	id := s.stopID
	s.stopID = 0
	if err := s.Ctx.Cancel(id); err != nil && !errors.Is(err, broker.ErrOrderNotOpen) {
		return err
	}
	return nil
}
