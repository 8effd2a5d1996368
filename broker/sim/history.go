package sim

import "github.com/rustyeddy/relaytrader/market"

// series holds one column per bar field.
type series struct {
	cols [5][]float64
}

func (s *series) append(b market.Bar) {
	for _, f := range market.Fields {
		s.cols[f] = append(s.cols[f], b.Value(f))
	}
}

func (s *series) window(f market.Field, lookback int) []float64 {
	if f < 0 || int(f) >= len(s.cols) {
		return []float64{}
	}
	col := s.cols[f]
	if lookback > 0 && lookback < len(col) {
		col = col[len(col)-lookback:]
	}
	out := make([]float64, len(col))
	copy(out, col)
	return out
}
