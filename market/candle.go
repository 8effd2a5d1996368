package market

import (
	"fmt"
	"strings"
)

// Bar represents one OHLCV sample for a symbol. Timestamp is any
// monotonically increasing integer, typically epoch milliseconds.
type Bar struct {
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
	Symbol    string  `json:"symbol" yaml:"symbol"`
	Open      float64 `json:"open" yaml:"open"`
	High      float64 `json:"high" yaml:"high"`
	Low       float64 `json:"low" yaml:"low"`
	Close     float64 `json:"close" yaml:"close"`
	Volume    float64 `json:"volume" yaml:"volume"`
}

// Value returns the bar value for field f.
func (b Bar) Value(f Field) float64 {
	switch f {
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldClose:
		return b.Close
	case FieldVolume:
		return b.Volume
	}
	return 0
}

// Field names one OHLCV column of a bar series.
type Field int8

const (
	FieldOpen Field = iota
	FieldHigh
	FieldLow
	FieldClose
	FieldVolume
)

// Fields lists every field in column order.
var Fields = []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

func (f Field) String() string {
	switch f {
	case FieldOpen:
		return "open"
	case FieldHigh:
		return "high"
	case FieldLow:
		return "low"
	case FieldClose:
		return "close"
	case FieldVolume:
		return "volume"
	}
	return fmt.Sprintf("Field(%d)", int8(f))
}

// ParseField maps "open", "high", "low", "close" or "volume" to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "o":
		return FieldOpen, nil
	case "high", "h":
		return FieldHigh, nil
	case "low", "l":
		return FieldLow, nil
	case "close", "c":
		return FieldClose, nil
	case "volume", "v":
		return FieldVolume, nil
	}
	return 0, fmt.Errorf("unknown bar field %q", s)
}
