package strategies

import (
	"github.com/rustyeddy/relaytrader/broker"
	"github.com/rustyeddy/relaytrader/market"
)

// fakeContext records submissions without filling them.
type fakeContext struct {
	pos       map[string]float64
	hist      map[market.Field][]float64
	submitted []broker.OrderRequest
	cancelled []broker.OrderID
	cancelErr error
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		pos:  map[string]float64{},
		hist: map[market.Field][]float64{},
	}
}

func (f *fakeContext) Submit(req broker.OrderRequest) (broker.Order, error) {
	if err := req.Validate(); err != nil {
		return broker.Order{}, err
	}
	f.submitted = append(f.submitted, req)
	return broker.Order{
		ID:       broker.OrderID(len(f.submitted)),
		Symbol:   req.Symbol,
		Side:     req.Side,
		Quantity: req.Quantity,
		Type:     req.Type,
		Status:   broker.StatusNew,
	}, nil
}

func (f *fakeContext) Cancel(id broker.OrderID) error {
	f.cancelled = append(f.cancelled, id)
	return f.cancelErr
}

func (f *fakeContext) PositionQty(symbol string) float64 { return f.pos[symbol] }
func (f *fakeContext) Cash() float64                     { return 100_000 }
func (f *fakeContext) Equity() float64                   { return 100_000 }

func (f *fakeContext) History(_ string, field market.Field, lookback int) []float64 {
	h := f.hist[field]
	if lookback > 0 && len(h) > lookback {
		h = h[len(h)-lookback:]
	}
	out := make([]float64, len(h))
	copy(out, h)
	return out
}

type sideQty struct {
	Side broker.Side
	Qty  float64
}

func (f *fakeContext) orders() []sideQty {
	out := make([]sideQty, len(f.submitted))
	for i, r := range f.submitted {
		out[i] = sideQty{r.Side, r.Quantity}
	}
	return out
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
