package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradejournal/trade"
)

const tradeColumns = `
	trade_id, trade_date, trade_time, instrument, session, direction, pnl,
	risk_reward, account_id, created_at, take_profit, exit_price, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (trade.Trade, error) {
	var (
		rec       trade.Trade
		direction string
		rr        sql.NullFloat64
		tp        sql.NullFloat64
		exit      sql.NullFloat64
	)
	err := row.Scan(
		&rec.ID,
		&rec.Date,
		&rec.Time,
		&rec.Instrument,
		&rec.Session,
		&direction,
		&rec.PnL,
		&rr,
		&rec.AccountID,
		&rec.CreatedAt,
		&tp,
		&exit,
		&rec.Notes,
	)
	if err != nil {
		return trade.Trade{}, err
	}
	rec.Direction = trade.Direction(direction)
	rec.RiskReward = floatPtr(rr)
	rec.TakeProfit = floatPtr(tp)
	rec.ExitPrice = floatPtr(exit)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return rec, nil
}

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (trade.Trade, error) {
	row := j.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE trade_id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trade.Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return trade.Trade{}, err
	}
	return rec, nil
}

func (j *SQLite) ListTrades(ctx context.Context) ([]trade.Trade, error) {
	return j.queryTrades(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY created_at ASC, trade_id ASC`)
}

func (j *SQLite) ListTradesByAccount(ctx context.Context, accountID string) ([]trade.Trade, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE account_id = ?
		ORDER BY created_at ASC, trade_id ASC`, accountID)
}

// ListTradesBetween returns trades whose date is within [startDate, endDate],
// both inclusive, as YYYY-MM-DD strings. An empty bound is open.
func (j *SQLite) ListTradesBetween(ctx context.Context, startDate, endDate string) ([]trade.Trade, error) {
	if startDate == "" {
		startDate = "0000-00-00"
	}
	if endDate == "" {
		endDate = "9999-99-99"
	}
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE trade_date >= ? AND trade_date <= ?
		ORDER BY created_at ASC, trade_id ASC`, startDate, endDate)
}

func (j *SQLite) queryTrades(ctx context.Context, query string, args ...any) ([]trade.Trade, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.Trade
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) GetAccount(ctx context.Context, accountID string) (Account, error) {
	var a Account
	err := j.db.QueryRowContext(ctx, `
		SELECT account_id, name, broker, initial_balance, created_at
		FROM accounts WHERE account_id = ?`, accountID).Scan(
		&a.ID, &a.Name, &a.Broker, &a.InitialBalance, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Account{}, fmt.Errorf("account %q: %w", accountID, ErrNotFound)
		}
		return Account{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

func (j *SQLite) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT account_id, name, broker, initial_balance, created_at
		FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Broker, &a.InitialBalance, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.CreatedAt = a.CreatedAt.UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
