package journal

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournalHeaders(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(dir)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	assert.Equal(t, [][]string{runsHeader}, readCSV(t, filepath.Join(dir, "runs.csv")))
	assert.Equal(t, [][]string{tradesHeader}, readCSV(t, filepath.Join(dir, "trades.csv")))
	assert.Equal(t, [][]string{ordersHeader}, readCSV(t, filepath.Join(dir, "orders.csv")))
	assert.Equal(t, [][]string{equityHeader}, readCSV(t, filepath.Join(dir, "equity.csv")))
}

func TestCSVJournalRecord(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	j, err := NewCSV(dir)
	require.NoError(t, err)

	require.NoError(t, j.Record(context.Background(), testEntry(t, "run-1", created)))
	require.NoError(t, j.Close())

	runs := readCSV(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, runs, 2)
	assert.Equal(t, "run-1", runs[1][0])
	assert.Equal(t, "2024-03-15T10:30:00.000Z", runs[1][1])
	assert.Equal(t, "sma_cross", runs[1][2])

	trades := readCSV(t, filepath.Join(dir, "trades.csv"))
	require.Len(t, trades, 3)
	assert.Equal(t, []string{"run-1", "1", "2"}, trades[2][:3])
	assert.Equal(t, "SELL", trades[2][5])
	assert.Equal(t, "104.000000", trades[2][7])
	assert.Equal(t, "1.000000", trades[2][10])

	orders := readCSV(t, filepath.Join(dir, "orders.csv"))
	require.Len(t, orders, 4)
	assert.Equal(t, "99.500000", orders[3][8])
	assert.Equal(t, "", orders[3][9])

	equity := readCSV(t, filepath.Join(dir, "equity.csv"))
	require.Len(t, equity, 4)
	assert.Equal(t, "100001.000000", equity[3][3])
}

func TestCSVJournalAppends(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	for _, id := range []string{"run-1", "run-2"} {
		j, err := NewCSV(dir)
		require.NoError(t, err)
		require.NoError(t, j.Record(ctx, testEntry(t, id, created)))
		require.NoError(t, j.Close())
	}

	runs := readCSV(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, runs, 3)
	assert.Equal(t, runsHeader, runs[0])
	assert.Equal(t, "run-2", runs[2][0])

	assert.Len(t, readCSV(t, filepath.Join(dir, "trades.csv")), 5)
}

func TestCSVJournalCancelledContext(t *testing.T) {
	t.Parallel()

	j, err := NewCSV(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, j.Record(ctx, testEntry(t, "run-1", created)), context.Canceled)
}
