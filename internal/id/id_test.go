package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorMonotonic(t *testing.T) {
	g := NewGenerator()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = g.New()
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)

	ts, err := Time(ids[0])
	require.NoError(t, err)
	assert.True(t, ts.Equal(fixed))
}

func TestNewUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := New()
		assert.False(t, seen[s])
		seen[s] = true
	}

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}
