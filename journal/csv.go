package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

var (
	runsHeader   = []string{"run_id", "created", "strategy", "params", "symbol", "start_ms", "end_ms", "bars", "initial_cash", "final_cash", "final_equity", "net_pnl", "total_return", "annualized_return", "sharpe", "sortino", "calmar", "max_drawdown", "win_rate", "profit_factor", "num_trades"}
	tradesHeader = []string{"run_id", "seq", "order_id", "ts_ms", "symbol", "side", "qty", "price", "commission", "slippage", "realized_pnl"}
	ordersHeader = []string{"run_id", "order_id", "symbol", "side", "order_type", "time_in_force", "status", "qty", "limit_price", "stop_price", "filled_qty", "avg_fill_price"}
	equityHeader = []string{"run_id", "seq", "ts_ms", "equity", "drawdown"}
)

// CSVJournal appends runs to runs.csv, trades.csv, orders.csv and
// equity.csv inside one directory. Every row carries its run_id.
type CSVJournal struct {
	runs, trades, orders, equity *csvFile
}

type csvFile struct {
	f *os.File
	w *csv.Writer
}

func openCSV(path string, header []string) (*csvFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	c := &csvFile{f: f, w: csv.NewWriter(f)}
	if st.Size() == 0 {
		if err := c.write(header); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *csvFile) write(rows ...[]string) error {
	if err := c.w.WriteAll(rows); err != nil {
		return err
	}
	return c.w.Error()
}

func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	j := &CSVJournal{}
	var err error
	if j.runs, err = openCSV(filepath.Join(dir, "runs.csv"), runsHeader); err != nil {
		return nil, err
	}
	if j.trades, err = openCSV(filepath.Join(dir, "trades.csv"), tradesHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if j.orders, err = openCSV(filepath.Join(dir, "orders.csv"), ordersHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if j.equity, err = openCSV(filepath.Join(dir, "equity.csv"), equityHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) Record(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r := e.Run
	err := j.runs.write([]string{
		r.RunID,
		r.Created.Format("2006-01-02T15:04:05.000Z07:00"),
		r.Strategy,
		r.Params,
		r.Symbol,
		i64(r.Start),
		i64(r.End),
		strconv.Itoa(r.Bars),
		f(r.InitialCash),
		f(r.FinalCash),
		f(r.FinalEquity),
		f(r.NetPnL),
		f(r.TotalReturn),
		f(r.AnnualizedReturn),
		f(r.Sharpe),
		f(r.Sortino),
		f(r.Calmar),
		f(r.MaxDrawdown),
		f(r.WinRate),
		f(r.ProfitFactor),
		strconv.Itoa(r.NumTrades),
	})
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(e.Trades))
	for _, t := range e.Trades {
		rows = append(rows, []string{
			r.RunID, strconv.Itoa(t.Seq), i64(t.OrderID), i64(t.Timestamp), t.Symbol, t.Side,
			f(t.Quantity), f(t.Price), f(t.Commission), f(t.Slippage), f(t.RealizedPnL),
		})
	}
	if err := j.trades.write(rows...); err != nil {
		return err
	}

	rows = make([][]string, 0, len(e.Orders))
	for _, o := range e.Orders {
		rows = append(rows, []string{
			r.RunID, i64(o.OrderID), o.Symbol, o.Side, o.Type, o.TimeInForce, o.Status,
			f(o.Quantity), fp(o.LimitPrice), fp(o.StopPrice), f(o.FilledQty), f(o.AvgFillPrice),
		})
	}
	if err := j.orders.write(rows...); err != nil {
		return err
	}

	rows = make([][]string, 0, len(e.Equity))
	for _, p := range e.Equity {
		rows = append(rows, []string{
			r.RunID, strconv.Itoa(p.Seq), i64(p.Timestamp), f(p.Equity), f(p.Drawdown),
		})
	}
	return j.equity.write(rows...)
}

func (j *CSVJournal) Close() error {
	var errs []error
	for _, c := range []*csvFile{j.runs, j.trades, j.orders, j.equity} {
		if c == nil {
			continue
		}
		c.w.Flush()
		errs = append(errs, c.w.Error(), c.f.Close())
	}
	return errors.Join(errs...)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func fp(x *float64) string {
	if x == nil {
		return ""
	}
	return f(*x)
}

func i64(x int64) string {
	return strconv.FormatInt(x, 10)
}
