package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMA(t *testing.T) {
	xs := closes(testBars())

	v, ok := SMA(xs, 5)
	assert.True(t, ok)
	// last 5 closes: 111,113,114,116,118
	assert.InDelta(t, 114.4, v, 1e-9)

	_, ok = SMA(xs, 11)
	assert.False(t, ok)
	_, ok = SMA(xs, 0)
	assert.False(t, ok)
}

func TestZScore(t *testing.T) {
	z, ok := ZScore([]float64{1, 2, 3, 4, 5}, 5)
	assert.True(t, ok)
	assert.InDelta(t, 2/math.Sqrt(2), z, 1e-9)

	_, ok = ZScore([]float64{3, 3, 3}, 3)
	assert.False(t, ok, "zero deviation")

	_, ok = ZScore([]float64{1, 2}, 3)
	assert.False(t, ok)
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name string
		xs   []float64
		want float64
	}{
		{"all gains", []float64{1, 2, 3, 4}, 100},
		{"all losses", []float64{4, 3, 2, 1}, 0},
		{"balanced", []float64{10, 11, 10, 11, 10}, 50},
		{"weighted", []float64{10, 13, 12}, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := RSI(tt.xs, len(tt.xs)-1)
			assert.True(t, ok)
			assert.InDelta(t, tt.want, v, 1e-9)
		})
	}

	_, ok := RSI([]float64{1, 2, 3}, 3)
	assert.False(t, ok)
}

func TestBollinger(t *testing.T) {
	b, ok := Bollinger([]float64{2, 4, 4, 4, 5, 5, 7, 9}, 8, 2)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, b.Middle, 1e-9)
	assert.InDelta(t, 1.0, b.Lower, 1e-9)
	assert.InDelta(t, 9.0, b.Upper, 1e-9)

	_, ok = Bollinger([]float64{1}, 2, 2)
	assert.False(t, ok)
}

func TestDonchianExcludesCurrentBar(t *testing.T) {
	highs := []float64{10, 12, 11, 20}
	lows := []float64{5, 4, 6, 1}

	upper, lower, ok := Donchian(highs, lows, 3)
	assert.True(t, ok)
	assert.Equal(t, 12.0, upper)
	assert.Equal(t, 4.0, lower)

	_, _, ok = Donchian(highs, lows, 4)
	assert.False(t, ok)
}

func TestPctChange(t *testing.T) {
	v, ok := PctChange([]float64{50, 100, 90, 110}, 2)
	assert.True(t, ok)
	assert.InDelta(t, 0.1, v, 1e-9)

	_, ok = PctChange([]float64{0, 1}, 1)
	assert.False(t, ok)
	_, ok = PctChange([]float64{1}, 1)
	assert.False(t, ok)
}

func TestMeanStdDev(t *testing.T) {
	assert.Zero(t, Mean(nil))
	assert.Zero(t, StdDev(nil))
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
}
