package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Record writes the whole entry in one transaction.
func (j *SQLite) Record(ctx context.Context, e Entry) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	r := e.Run
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(run_id, created_ms, strategy, params, symbol, start_ms, end_ms, bars,
		 initial_cash, final_cash, final_equity, net_pnl, total_return, annualized_return,
		 sharpe, sortino, calmar, max_drawdown, win_rate, profit_factor, num_trades, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created.UnixMilli(), r.Strategy, r.Params, r.Symbol, r.Start, r.End, r.Bars,
		r.InitialCash, r.FinalCash, r.FinalEquity, r.NetPnL, r.TotalReturn, r.AnnualizedReturn,
		r.Sharpe, r.Sortino, r.Calmar, r.MaxDrawdown, r.WinRate, r.ProfitFactor, r.NumTrades, r.Config,
	)
	if err != nil {
		return fmt.Errorf("journal: insert run %s: %w", r.RunID, err)
	}

	for _, t := range e.Trades {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO trades
			(run_id, seq, order_id, ts_ms, symbol, side, qty, price, commission, slippage, realized_pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, t.Seq, t.OrderID, t.Timestamp, t.Symbol, t.Side,
			t.Quantity, t.Price, t.Commission, t.Slippage, t.RealizedPnL,
		)
		if err != nil {
			return fmt.Errorf("journal: insert trade %d: %w", t.Seq, err)
		}
	}

	for _, o := range e.Orders {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders
			(run_id, order_id, symbol, side, order_type, time_in_force, status, qty,
			 limit_price, stop_price, filled_qty, avg_fill_price)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, o.OrderID, o.Symbol, o.Side, o.Type, o.TimeInForce, o.Status, o.Quantity,
			o.LimitPrice, o.StopPrice, o.FilledQty, o.AvgFillPrice,
		)
		if err != nil {
			return fmt.Errorf("journal: insert order %d: %w", o.OrderID, err)
		}
	}

	for _, p := range e.Equity {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO equity (run_id, seq, ts_ms, equity, drawdown)
			VALUES (?, ?, ?, ?, ?)`,
			r.RunID, p.Seq, p.Timestamp, p.Equity, p.Drawdown,
		)
		if err != nil {
			return fmt.Errorf("journal: insert equity %d: %w", p.Seq, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
