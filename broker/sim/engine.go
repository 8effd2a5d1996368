package sim

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/market"
)

// Config sets the cost model and starting cash of one engine.
type Config struct {
	Symbol             string
	InitialCash        float64
	CommissionPerTrade float64
	SlippageBps        float64
}

// Engine owns the order book and portfolio of a single run. It is not safe
// for concurrent use; every run builds its own engine.
type Engine struct {
	cfg       Config
	log       *zap.Logger
	portfolio *Portfolio

	orders []*broker.Order // submission order, orders[i].ID == i+1
	fills  []broker.Fill

	history map[string]*series
	bars    int
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:       cfg,
		log:       zap.NewNop(),
		portfolio: NewPortfolio(cfg.InitialCash),
		history:   make(map[string]*series),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ broker.Context = (*Engine)(nil)

// Submit records a new order. Requests that fail validation are kept with
// status REJECTED and returned alongside an error wrapping broker.ErrRejected.
func (e *Engine) Submit(req broker.OrderRequest) (broker.Order, error) {
	o := &broker.Order{
		ID:          broker.OrderID(len(e.orders) + 1),
		Symbol:      req.Symbol,
		Side:        req.Side,
		Quantity:    req.Quantity,
		Type:        req.Type,
		TimeInForce: req.TimeInForce,
		LimitPrice:  copyPrice(req.LimitPrice),
		StopPrice:   copyPrice(req.StopPrice),
		Status:      broker.StatusNew,
		Metadata:    req.Metadata,
	}
	e.orders = append(e.orders, o)

	err := req.Validate()
	if err == nil && e.cfg.Symbol != "" && req.Symbol != e.cfg.Symbol {
		err = fmt.Errorf("%w: symbol %q is not traded in this run (%q)", broker.ErrRejected, req.Symbol, e.cfg.Symbol)
	}
	if err != nil {
		o.Status = broker.StatusRejected
		e.log.Debug("order rejected", zap.Int64("order_id", int64(o.ID)), zap.Error(err))
		return *o, err
	}

	e.log.Debug("order submitted",
		zap.Int64("order_id", int64(o.ID)),
		zap.Stringer("side", o.Side),
		zap.Stringer("type", o.Type),
		zap.Float64("qty", o.Quantity),
	)
	return *o, nil
}

// Cancel moves an open order to CANCELLED.
func (e *Engine) Cancel(id broker.OrderID) error {
	o := e.order(id)
	if o == nil {
		return fmt.Errorf("cancel %d: %w", id, broker.ErrOrderNotFound)
	}
	if !o.Status.Open() {
		return fmt.Errorf("cancel %d (%s): %w", id, o.Status, broker.ErrOrderNotOpen)
	}
	o.Status = broker.StatusCancelled
	return nil
}

func (e *Engine) PositionQty(symbol string) float64 {
	return e.portfolio.Position(symbol).Quantity
}

func (e *Engine) Cash() float64   { return e.portfolio.Cash }
func (e *Engine) Equity() float64 { return e.portfolio.Equity }

func (e *Engine) History(symbol string, field market.Field, lookback int) []float64 {
	s, ok := e.history[symbol]
	if !ok {
		return []float64{}
	}
	return s.window(field, lookback)
}

// OnBar appends the bar to history, matches every open order against it in
// submission order, and marks the portfolio to the bar's close.
func (e *Engine) OnBar(bar market.Bar) []broker.Fill {
	e.bars++
	s, ok := e.history[bar.Symbol]
	if !ok {
		s = &series{}
		e.history[bar.Symbol] = s
	}
	s.append(bar)

	var fills []broker.Fill
	for _, o := range e.orders {
		if !o.Status.Open() || o.Symbol != bar.Symbol {
			continue
		}
		px, ok := matchPrice(o, bar)
		if !ok {
			continue
		}

		qty := o.Remaining()
		f := broker.Fill{
			OrderID:    o.ID,
			Timestamp:  bar.Timestamp,
			Symbol:     o.Symbol,
			Side:       o.Side,
			Quantity:   qty,
			Price:      px,
			Commission: e.cfg.CommissionPerTrade,
			Slippage:   Slippage(px, qty, e.cfg.SlippageBps),
		}
		e.portfolio.ApplyFill(f)

		// One matching event executes the whole remainder.
		o.FilledQty += qty
		o.AvgFillPrice = px
		o.Status = broker.StatusFilled

		e.fills = append(e.fills, f)
		fills = append(fills, f)

		e.log.Debug("order filled",
			zap.Int64("order_id", int64(o.ID)),
			zap.Int64("ts", bar.Timestamp),
			zap.Float64("price", px),
			zap.Float64("qty", qty),
		)
	}

	e.portfolio.Mark(bar.Symbol, bar.Close)
	return fills
}

// Orders returns copies of every order in ascending id order.
func (e *Engine) Orders() []broker.Order {
	out := make([]broker.Order, len(e.orders))
	for i, o := range e.orders {
		out[i] = *o
	}
	return out
}

// Order returns a copy of a single order.
func (e *Engine) Order(id broker.OrderID) (broker.Order, bool) {
	o := e.order(id)
	if o == nil {
		return broker.Order{}, false
	}
	return *o, true
}

// Fills returns every fill produced so far, oldest first.
func (e *Engine) Fills() []broker.Fill {
	out := make([]broker.Fill, len(e.fills))
	copy(out, e.fills)
	return out
}

func (e *Engine) Position(symbol string) broker.Position {
	return e.portfolio.Position(symbol)
}

// Portfolio returns a snapshot of cash, positions and equity.
func (e *Engine) Portfolio() Portfolio {
	return e.portfolio.Snapshot()
}

// BarsProcessed is the number of OnBar calls.
func (e *Engine) BarsProcessed() int { return e.bars }

func (e *Engine) order(id broker.OrderID) *broker.Order {
	i := int(id) - 1
	if i < 0 || i >= len(e.orders) {
		return nil
	}
	return e.orders[i]
}

// Slippage is the modeled execution cost of trading qty at price.
func Slippage(price, qty, bps float64) float64 {
	return price * qty * (bps / 10_000)
}

func copyPrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
