package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const barsCSV = `timestamp,open,high,low,close,volume
2024-01-02,100,101,99,100,1000
2024-01-03,100,102,99,101,1000
2024-01-04,101,104,100,103,1000
2024-01-05,103,105,102,104,1000
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return buf.String(), err
}

func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestStrategiesCommand(t *testing.T) {
	out, err := execute(t, "strategies")
	require.NoError(t, err)

	assert.Contains(t, out, "buy_and_hold")
	assert.Contains(t, out, "sma_cross")
	assert.Contains(t, out, "fast")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")

	out, err := execute(t, "config", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created default configuration")

	out, err = execute(t, "config", "validate", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "buy_and_hold")
}

func TestBacktestJournalRoundTrip(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")
	t.Setenv("RELAY_JOURNAL_PATH", db)
	bars := writeTemp(t, "bars.csv", barsCSV)

	out, err := execute(t, "backtest", "-d", bars, "-y", "SPY", "-s", "buy_and_hold")
	require.NoError(t, err)
	assert.Contains(t, out, "Backtest Result")
	assert.Contains(t, out, "buy_and_hold")

	out, err = execute(t, "journal", "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "buy_and_hold")
	assert.Contains(t, out, "SPY")
}

func TestBacktestUnknownStrategy(t *testing.T) {
	bars := writeTemp(t, "bars.csv", barsCSV)

	_, err := execute(t, "backtest", "-d", bars, "-y", "SPY", "-s", "martingale", "--no-journal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "martingale")
}

func TestManualCommand(t *testing.T) {
	bars := writeTemp(t, "bars.csv", barsCSV)
	anns := writeTemp(t, "anns.json", `[
		{"id":"a1","timestamp":1704153600000,"type":"call","action":"buy","strike":100,"expiry":"2024-01-05","contracts":1}
	]`)

	out, err := execute(t, "manual", "-a", anns, "-d", bars, "--intrinsic")
	require.NoError(t, err)
	assert.Contains(t, out, "Manual Options Simulation")
	assert.Contains(t, out, "intrinsic")
	assert.Contains(t, out, "a1")
}
