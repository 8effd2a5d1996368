package market

// Tick is a single trade print. Bar-driven runs never produce ticks; the
// type exists so strategies written for tick feeds share one interface.
type Tick struct {
	Timestamp int64   `json:"timestamp"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Size      float64 `json:"size"`
}
