package broker

// Position is the signed holding in one symbol. It changes only through
// ApplyFill.
type Position struct {
	Symbol   string
	Quantity float64 // +long, -short
	AvgPrice float64
}

// ApplyFill folds one fill into the position:
//   - opening or adding on the same side re-weights the average price
//   - a partial reduction keeps the average price
//   - returning to flat zeroes the average price
//   - crossing through zero resets the average price to the fill price
func (p *Position) ApplyFill(f Fill) {
	signed := f.SignedQty()

	if p.Quantity == 0 {
		p.Quantity = signed
		p.AvgPrice = f.Price
		return
	}

	newQty := p.Quantity + signed

	if p.Quantity*signed > 0 {
		cost := p.AvgPrice*abs(p.Quantity) + f.Price*abs(signed)
		p.Quantity = newQty
		p.AvgPrice = cost / abs(newQty)
		return
	}

	switch {
	case p.Quantity*newQty > 0:
		p.Quantity = newQty
	case newQty == 0:
		p.Quantity = 0
		p.AvgPrice = 0
	default:
		p.Quantity = newQty
		p.AvgPrice = f.Price
	}
}

// Flat reports whether nothing is held.
func (p Position) Flat() bool {
	return p.Quantity == 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
