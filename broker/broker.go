package broker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rustyeddy/relaytrader/market"
)

var (
	// ErrRejected is wrapped by every error returned for an order that failed
	// submission checks. The order is still recorded with status Rejected.
	ErrRejected      = errors.New("order rejected")
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderNotOpen  = errors.New("order is not open")
)

// Context is everything a strategy may do to the simulation. Strategies
// never see the matching engine itself.
type Context interface {
	Submit(req OrderRequest) (Order, error)
	Cancel(id OrderID) error

	PositionQty(symbol string) float64
	Cash() float64
	Equity() float64

	// History returns the last lookback values of field for symbol,
	// oldest first. lookback <= 0 returns the whole series.
	History(symbol string, field market.Field, lookback int) []float64
}

// OrderID is an opaque order handle, unique within one engine.
type OrderID int64

type Side int8

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	}
	return fmt.Sprintf("Side(%d)", int8(s))
}

// Sign is +1 for Buy and -1 for Sell.
func (s Side) Sign() float64 {
	if s == Sell {
		return -1
	}
	return 1
}

func ParseSide(s string) (Side, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type OrderType int8

const (
	Market OrderType = iota
	Limit
	Stop
	StopLimit
)

func (t OrderType) String() string {
	switch t {
	case Market:
		return "MARKET"
	case Limit:
		return "LIMIT"
	case Stop:
		return "STOP"
	case StopLimit:
		return "STOP_LIMIT"
	}
	return fmt.Sprintf("OrderType(%d)", int8(t))
}

func ParseOrderType(s string) (OrderType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MARKET":
		return Market, nil
	case "LIMIT":
		return Limit, nil
	case "STOP":
		return Stop, nil
	case "STOP_LIMIT", "STOPLIMIT":
		return StopLimit, nil
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

func (t OrderType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *OrderType) UnmarshalText(b []byte) error {
	v, err := ParseOrderType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TimeInForce is carried on the order for reporting. Matching treats DAY
// and GTC the same way: an order stays open until filled or cancelled.
type TimeInForce int8

const (
	Day TimeInForce = iota
	GTC
)

func (t TimeInForce) String() string {
	switch t {
	case Day:
		return "DAY"
	case GTC:
		return "GTC"
	}
	return fmt.Sprintf("TimeInForce(%d)", int8(t))
}

func ParseTimeInForce(s string) (TimeInForce, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAY", "":
		return Day, nil
	case "GTC":
		return GTC, nil
	}
	return 0, fmt.Errorf("unknown time in force %q", s)
}

func (t TimeInForce) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TimeInForce) UnmarshalText(b []byte) error {
	v, err := ParseTimeInForce(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type OrderStatus int8

const (
	StatusNew OrderStatus = iota
	StatusPartiallyFilled
	StatusFilled
	StatusCancelled
	StatusRejected
)

func (s OrderStatus) String() string {
	switch s {
	case StatusNew:
		return "NEW"
	case StatusPartiallyFilled:
		return "PARTIALLY_FILLED"
	case StatusFilled:
		return "FILLED"
	case StatusCancelled:
		return "CANCELLED"
	case StatusRejected:
		return "REJECTED"
	}
	return fmt.Sprintf("OrderStatus(%d)", int8(s))
}

// Open reports whether the order can still be matched or cancelled.
func (s OrderStatus) Open() bool {
	return s == StatusNew || s == StatusPartiallyFilled
}

func (s OrderStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// OrderRequest is what a strategy hands to Context.Submit.
type OrderRequest struct {
	Symbol      string
	Side        Side
	Quantity    float64
	Type        OrderType
	TimeInForce TimeInForce
	LimitPrice  *float64
	StopPrice   *float64
	Metadata    map[string]string
}

// Validate checks the request against the order type's price requirements.
func (r OrderRequest) Validate() error {
	if r.Side != Buy && r.Side != Sell {
		return fmt.Errorf("%w: invalid side %v", ErrRejected, r.Side)
	}
	if !(r.Quantity > 0) {
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrRejected, r.Quantity)
	}
	switch r.Type {
	case Market:
	case Limit:
		if r.LimitPrice == nil {
			return fmt.Errorf("%w: LIMIT order requires a limit price", ErrRejected)
		}
	case Stop:
		if r.StopPrice == nil {
			return fmt.Errorf("%w: STOP order requires a stop price", ErrRejected)
		}
	case StopLimit:
		if r.StopPrice == nil || r.LimitPrice == nil {
			return fmt.Errorf("%w: STOP_LIMIT order requires stop and limit prices", ErrRejected)
		}
	default:
		return fmt.Errorf("%w: invalid order type %v", ErrRejected, r.Type)
	}
	return nil
}

// Order carries mutable execution state; everything else in this package
// is immutable once built.
type Order struct {
	ID           OrderID
	Symbol       string
	Side         Side
	Quantity     float64
	Type         OrderType
	TimeInForce  TimeInForce
	LimitPrice   *float64
	StopPrice    *float64
	Status       OrderStatus
	FilledQty    float64
	AvgFillPrice float64
	Metadata     map[string]string
}

// Remaining is the quantity still to be executed.
func (o Order) Remaining() float64 {
	return o.Quantity - o.FilledQty
}

// Fill is one executed order-bar match.
type Fill struct {
	OrderID    OrderID
	Timestamp  int64
	Symbol     string
	Side       Side
	Quantity   float64
	Price      float64
	Commission float64
	Slippage   float64
}

// SignedQty is +Quantity for buys and -Quantity for sells.
func (f Fill) SignedQty() float64 {
	return f.Side.Sign() * f.Quantity
}

// Notional is the absolute traded value.
func (f Fill) Notional() float64 {
	n := f.Quantity * f.Price
	if n < 0 {
		return -n
	}
	return n
}

// OrderOption tweaks a request built by Buy or Sell.
type OrderOption func(*OrderRequest)

// WithLimit sets the limit price. A market request becomes LIMIT and a
// STOP request becomes STOP_LIMIT.
func WithLimit(px float64) OrderOption {
	return func(r *OrderRequest) {
		r.LimitPrice = &px
		switch r.Type {
		case Market:
			r.Type = Limit
		case Stop:
			r.Type = StopLimit
		}
	}
}

// WithStop sets the stop price. A market request becomes STOP and a LIMIT
// request becomes STOP_LIMIT.
func WithStop(px float64) OrderOption {
	return func(r *OrderRequest) {
		r.StopPrice = &px
		switch r.Type {
		case Market:
			r.Type = Stop
		case Limit:
			r.Type = StopLimit
		}
	}
}

func WithType(t OrderType) OrderOption {
	return func(r *OrderRequest) { r.Type = t }
}

func WithTIF(tif TimeInForce) OrderOption {
	return func(r *OrderRequest) { r.TimeInForce = tif }
}

func WithMetadata(md map[string]string) OrderOption {
	return func(r *OrderRequest) { r.Metadata = md }
}

// BuyOrder submits a buy order, MARKET unless options say otherwise.
func BuyOrder(c Context, symbol string, qty float64, opts ...OrderOption) (Order, error) {
	return c.Submit(NewRequest(symbol, Buy, qty, opts...))
}

// SellOrder submits a sell order, MARKET unless options say otherwise.
func SellOrder(c Context, symbol string, qty float64, opts ...OrderOption) (Order, error) {
	return c.Submit(NewRequest(symbol, Sell, qty, opts...))
}

func NewRequest(symbol string, side Side, qty float64, opts ...OrderOption) OrderRequest {
	req := OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Quantity: qty,
		Type:     Market,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}
