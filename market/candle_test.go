package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{"open", FieldOpen},
		{"HIGH", FieldHigh},
		{" low ", FieldLow},
		{"close", FieldClose},
		{"c", FieldClose},
		{"volume", FieldVolume},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseField(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
			assert.NotEmpty(t, f.String())
		})
	}

	_, err := ParseField("vwap")
	assert.Error(t, err)
}

func TestBarValue(t *testing.T) {
	b := Bar{Timestamp: 1, Symbol: "AAPL", Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100}

	assert.Equal(t, 1.0, b.Value(FieldOpen))
	assert.Equal(t, 2.0, b.Value(FieldHigh))
	assert.Equal(t, 0.5, b.Value(FieldLow))
	assert.Equal(t, 1.5, b.Value(FieldClose))
	assert.Equal(t, 100.0, b.Value(FieldVolume))
}
