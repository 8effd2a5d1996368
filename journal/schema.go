package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created_ms INTEGER NOT NULL,
	strategy TEXT NOT NULL,
	params TEXT NOT NULL,
	symbol TEXT NOT NULL,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER NOT NULL,
	bars INTEGER NOT NULL,
	initial_cash REAL NOT NULL,
	final_cash REAL NOT NULL,
	final_equity REAL NOT NULL,
	net_pnl REAL NOT NULL,
	total_return REAL NOT NULL,
	annualized_return REAL NOT NULL,
	sharpe REAL NOT NULL,
	sortino REAL NOT NULL,
	calmar REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	win_rate REAL NOT NULL,
	profit_factor REAL NOT NULL,
	num_trades INTEGER NOT NULL,
	config TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	seq INTEGER NOT NULL,
	order_id INTEGER NOT NULL,
	ts_ms INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	qty REAL NOT NULL,
	price REAL NOT NULL,
	commission REAL NOT NULL,
	slippage REAL NOT NULL,
	realized_pnl REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE TABLE IF NOT EXISTS orders (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	order_id INTEGER NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	order_type TEXT NOT NULL,
	time_in_force TEXT NOT NULL,
	status TEXT NOT NULL,
	qty REAL NOT NULL,
	limit_price REAL,
	stop_price REAL,
	filled_qty REAL NOT NULL,
	avg_fill_price REAL NOT NULL,
	PRIMARY KEY (run_id, order_id)
);

CREATE TABLE IF NOT EXISTS equity (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	seq INTEGER NOT NULL,
	ts_ms INTEGER NOT NULL,
	equity REAL NOT NULL,
	drawdown REAL NOT NULL,
	PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_ms);
`
