package backtest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/relaytrader/market"
)

// BarFeed yields bars one at a time, ascending by timestamp.
// Implementations return (ok=false, err=nil) at EOF.
type BarFeed interface {
	Next() (bar market.Bar, ok bool, err error)
	Close() error
}

// BarSource opens a fresh feed for each run.
type BarSource interface {
	Open() (BarFeed, error)
}

// SliceSource replays an in-memory slice.
type SliceSource []market.Bar

func (s SliceSource) Open() (BarFeed, error) {
	return &sliceFeed{bars: s}, nil
}

type sliceFeed struct {
	bars []market.Bar
	i    int
}

func (f *sliceFeed) Next() (market.Bar, bool, error) {
	if f.i >= len(f.bars) {
		return market.Bar{}, false, nil
	}
	b := f.bars[f.i]
	f.i++
	return b, true, nil
}

func (f *sliceFeed) Close() error { return nil }

// CSVSource reads OHLCV rows from a file with a header naming at least
// timestamp, open, high, low, close and volume (any order, any case;
// extra columns are ignored). timestamp is epoch milliseconds or RFC3339.
// A symbol column, when present, overrides Symbol.
type CSVSource struct {
	Path   string
	Symbol string
}

func (s CSVSource) Open() (BarFeed, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		f.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("backtest: %s: empty file", s.Path)
		}
		return nil, err
	}

	cols, err := headerIndex(header)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("backtest: %s: %w", s.Path, err)
	}

	return &csvFeed{f: f, r: r, cols: cols, symbol: s.Symbol, path: s.Path}, nil
}

var csvColumns = []string{"timestamp", "open", "high", "low", "close", "volume"}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("missing %q column", c)
		}
	}
	return idx, nil
}

type csvFeed struct {
	f      *os.File
	r      *csv.Reader
	cols   map[string]int
	symbol string
	path   string
	line   int
}

func (f *csvFeed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

func (f *csvFeed) Next() (market.Bar, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return market.Bar{}, false, nil
		}
		if err != nil {
			return market.Bar{}, false, err
		}
		f.line++
		if blank(row) {
			continue
		}

		b, err := f.parse(row)
		if err != nil {
			return market.Bar{}, false, fmt.Errorf("backtest: %s row %d: %w", f.path, f.line, err)
		}
		return b, true, nil
	}
}

func (f *csvFeed) parse(row []string) (market.Bar, error) {
	get := func(name string) (string, error) {
		i := f.cols[name]
		if i >= len(row) {
			return "", fmt.Errorf("missing %s", name)
		}
		return strings.TrimSpace(row[i]), nil
	}

	ts, err := get("timestamp")
	if err != nil {
		return market.Bar{}, err
	}
	b := market.Bar{Symbol: f.symbol}
	if b.Timestamp, err = parseTimestamp(ts); err != nil {
		return market.Bar{}, err
	}

	if i, ok := f.cols["symbol"]; ok && i < len(row) && strings.TrimSpace(row[i]) != "" {
		b.Symbol = strings.TrimSpace(row[i])
	}

	for _, fld := range []struct {
		name string
		dst  *float64
	}{
		{"open", &b.Open}, {"high", &b.High}, {"low", &b.Low}, {"close", &b.Close}, {"volume", &b.Volume},
	} {
		s, err := get(fld.name)
		if err != nil {
			return market.Bar{}, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("bad %s %q: %w", fld.name, s, err)
		}
		*fld.dst = v
	}
	return b, nil
}

// parseTimestamp accepts epoch milliseconds, RFC3339 or RFC3339Nano, or a
// bare YYYY-MM-DD date (UTC).
func parseTimestamp(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), nil
		}
	}
	return 0, fmt.Errorf("bad timestamp %q", s)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
