package sim

import (
	"sort"

	"github.com/rustyeddy/relaytrader/broker"
)

// Portfolio tracks cash, positions and the last mark of every symbol.
// Equity = Cash + sum(position qty * last mark).
type Portfolio struct {
	Cash      float64
	Equity    float64
	Positions map[string]broker.Position
	marks     map[string]float64
}

func NewPortfolio(cash float64) *Portfolio {
	return &Portfolio{
		Cash:      cash,
		Equity:    cash,
		Positions: make(map[string]broker.Position),
		marks:     make(map[string]float64),
	}
}

func (p *Portfolio) Position(symbol string) broker.Position {
	if pos, ok := p.Positions[symbol]; ok {
		return pos
	}
	return broker.Position{Symbol: symbol}
}

// ApplyFill updates the position and cash. Buys pay price*qty plus costs;
// sells receive price*qty minus costs.
func (p *Portfolio) ApplyFill(f broker.Fill) {
	pos := p.Position(f.Symbol)
	pos.ApplyFill(f)
	p.Positions[f.Symbol] = pos

	notional := f.Quantity * f.Price
	if f.Side == broker.Buy {
		p.Cash -= notional
	} else {
		p.Cash += notional
	}
	p.Cash -= f.Commission + f.Slippage
}

// Mark records the latest price of symbol and recomputes equity.
func (p *Portfolio) Mark(symbol string, price float64) {
	p.marks[symbol] = price
	p.revalue()
}

func (p *Portfolio) revalue() {
	equity := p.Cash
	for _, sym := range p.symbols() {
		px, ok := p.marks[sym]
		if !ok {
			continue
		}
		equity += p.Positions[sym].Quantity * px
	}
	p.Equity = equity
}

// symbols returns position keys sorted so equity sums in a fixed order.
func (p *Portfolio) symbols() []string {
	out := make([]string, 0, len(p.Positions))
	for s := range p.Positions {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func (p *Portfolio) Snapshot() Portfolio {
	cp := Portfolio{
		Cash:      p.Cash,
		Equity:    p.Equity,
		Positions: make(map[string]broker.Position, len(p.Positions)),
		marks:     make(map[string]float64, len(p.marks)),
	}
	for k, v := range p.Positions {
		cp.Positions[k] = v
	}
	for k, v := range p.marks {
		cp.marks[k] = v
	}
	return cp
}
