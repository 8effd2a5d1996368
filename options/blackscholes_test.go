package options

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceKnownValues(t *testing.T) {
	call := Price(Call, 100, 100, 1, 0.2, 0.05)
	put := Price(Put, 100, 100, 1, 0.2, 0.05)

	assert.InDelta(t, 10.4506, call, 1e-4)
	assert.InDelta(t, 5.5735, put, 1e-4)

	// put-call parity: C - P = S - K e^{-rT}
	assert.InDelta(t, 100-100*math.Exp(-0.05), call-put, 1e-9)
}

func TestPriceAtExpiryIsIntrinsic(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		spot   float64
		strike float64
		want   float64
	}{
		{"call itm", Call, 110, 100, 10},
		{"call otm", Call, 90, 100, 0},
		{"put itm", Put, 90, 100, 10},
		{"put otm", Put, 110, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.typ, tt.spot, tt.strike, 0, 0.3, 0.05))
			assert.Equal(t, tt.want, Price(tt.typ, tt.spot, tt.strike, -1, 0.3, 0.05))
			assert.InDelta(t, tt.want, Price(tt.typ, tt.spot, tt.strike, 1e-9, 0.3, 0.05), 1e-3)
			assert.Equal(t, Greeks{}, ComputeGreeks(tt.typ, tt.spot, tt.strike, 0, 0.3, 0.05))
		})
	}
}

func TestDegenerateInputs(t *testing.T) {
	assert.Zero(t, Price(Call, 100, 100, 1, 0, 0.05))
	assert.Zero(t, Price(Call, 0, 100, 1, 0.2, 0.05))
	assert.Zero(t, Price(Put, 100, -1, 1, 0.2, 0.05))
	assert.Equal(t, Greeks{}, ComputeGreeks(Call, 100, 100, 1, -0.1, 0.05))
}

func TestComputeGreeks(t *testing.T) {
	c := ComputeGreeks(Call, 100, 100, 1, 0.2, 0.05)
	p := ComputeGreeks(Put, 100, 100, 1, 0.2, 0.05)

	assert.InDelta(t, 0.6368, c.Delta, 1e-4)
	assert.InDelta(t, c.Delta-1, p.Delta, 1e-12)
	assert.InDelta(t, c.Gamma, p.Gamma, 1e-12)
	assert.InDelta(t, c.Vega, p.Vega, 1e-12)
	assert.InDelta(t, 0.018762, c.Gamma, 1e-5)
	assert.InDelta(t, 0.37524, c.Vega, 1e-4)
	assert.Less(t, c.Theta, 0.0)
	assert.InDelta(t, -6.414/365, c.Theta, 1e-4)
}

func TestSimplePayoff(t *testing.T) {
	assert.Equal(t, 7.0, SimplePayoff(Call, 110, 100, 3))
	assert.Equal(t, -3.0, SimplePayoff(Put, 110, 100, 3))
}

func TestParseType(t *testing.T) {
	got, err := ParseType("PUT")
	require.NoError(t, err)
	assert.Equal(t, Put, got)

	_, err = ParseType("straddle")
	assert.Error(t, err)

	var typ Type
	require.NoError(t, typ.UnmarshalText([]byte("call")))
	assert.Equal(t, Call, typ)
	b, err := typ.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "call", string(b))
}

func TestYearsToExpiry(t *testing.T) {
	exp, err := ParseExpiry("2024-03-15")
	require.NoError(t, err)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.InDelta(t, 14.0/365, YearsToExpiry(start, exp), 1e-12)

	// partial days floor
	mid := time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC).UnixMilli()
	assert.Zero(t, YearsToExpiry(mid, exp))

	after := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Zero(t, YearsToExpiry(after, exp))

	_, err = ParseExpiry("03/15/2024")
	assert.Error(t, err)
}
