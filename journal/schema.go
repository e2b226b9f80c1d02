package journal

const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	account_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	broker TEXT NOT NULL DEFAULT '',
	initial_balance REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	trade_date TEXT NOT NULL,
	trade_time TEXT NOT NULL DEFAULT '',
	instrument TEXT NOT NULL,
	session TEXT NOT NULL DEFAULT '',
	direction TEXT NOT NULL CHECK (direction IN ('long', 'short')),
	pnl REAL NOT NULL,
	risk_reward REAL,
	account_id TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	take_profit REAL,
	exit_price REAL,
	notes TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_trades_created ON trades(created_at);
CREATE INDEX IF NOT EXISTS idx_trades_account ON trades(account_id);
CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(trade_date);
`
