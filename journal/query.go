package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const runColumns = `run_id, created_ms, strategy, params, symbol, start_ms, end_ms, bars,
	initial_cash, final_cash, final_equity, net_pnl, total_return, annualized_return,
	sharpe, sortino, calmar, max_drawdown, win_rate, profit_factor, num_trades, config`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r       Run
		created int64
	)
	err := s.Scan(
		&r.RunID, &created, &r.Strategy, &r.Params, &r.Symbol, &r.Start, &r.End, &r.Bars,
		&r.InitialCash, &r.FinalCash, &r.FinalEquity, &r.NetPnL, &r.TotalReturn, &r.AnnualizedReturn,
		&r.Sharpe, &r.Sortino, &r.Calmar, &r.MaxDrawdown, &r.WinRate, &r.ProfitFactor, &r.NumTrades, &r.Config,
	)
	if err != nil {
		return Run{}, err
	}
	r.Created = time.UnixMilli(created).UTC()
	return r, nil
}

// GetRun returns the summary of one run.
func (j *SQLite) GetRun(ctx context.Context, runID string) (Run, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("%w: %q", ErrRunNotFound, runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns the newest runs first. limit <= 0 returns all of them.
func (j *SQLite) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY created_ms DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (j *SQLite) ListTradesByRunID(ctx context.Context, runID string) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, seq, order_id, ts_ms, symbol, side, qty, price, commission, slippage, realized_pnl
		FROM trades
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		var t Trade
		if err := rows.Scan(
			&t.RunID, &t.Seq, &t.OrderID, &t.Timestamp, &t.Symbol, &t.Side,
			&t.Quantity, &t.Price, &t.Commission, &t.Slippage, &t.RealizedPnL,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (j *SQLite) ListOrdersByRunID(ctx context.Context, runID string) ([]Order, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, order_id, symbol, side, order_type, time_in_force, status, qty,
		       limit_price, stop_price, filled_qty, avg_fill_price
		FROM orders
		WHERE run_id = ?
		ORDER BY order_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var (
			o           Order
			limit, stop sql.NullFloat64
		)
		if err := rows.Scan(
			&o.RunID, &o.OrderID, &o.Symbol, &o.Side, &o.Type, &o.TimeInForce, &o.Status, &o.Quantity,
			&limit, &stop, &o.FilledQty, &o.AvgFillPrice,
		); err != nil {
			return nil, err
		}
		if limit.Valid {
			o.LimitPrice = &limit.Float64
		}
		if stop.Valid {
			o.StopPrice = &stop.Float64
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (j *SQLite) ListEquityByRunID(ctx context.Context, runID string) ([]EquityPoint, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, seq, ts_ms, equity, drawdown
		FROM equity
		WHERE run_id = ?
		ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var p EquityPoint
		if err := rows.Scan(&p.RunID, &p.Seq, &p.Timestamp, &p.Equity, &p.Drawdown); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Load reads a full entry back.
func (j *SQLite) Load(ctx context.Context, runID string) (Entry, error) {
	var (
		e   Entry
		err error
	)
	if e.Run, err = j.GetRun(ctx, runID); err != nil {
		return Entry{}, err
	}
	if e.Trades, err = j.ListTradesByRunID(ctx, runID); err != nil {
		return Entry{}, err
	}
	if e.Orders, err = j.ListOrdersByRunID(ctx, runID); err != nil {
		return Entry{}, err
	}
	if e.Equity, err = j.ListEquityByRunID(ctx, runID); err != nil {
		return Entry{}, err
	}
	return e, nil
}
