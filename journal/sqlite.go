package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/trade"
)

// SQLite is a Store backed by a single SQLite file.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// AddTrade stores t, filling in ID and CreatedAt when empty, and returns the
// stored record.
func (j *SQLite) AddTrade(ctx context.Context, t trade.Trade) (trade.Trade, error) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = j.now().UTC()
	}
	if t.ID == "" {
		t.ID = id.NewAt(t.CreatedAt)
	}
	if err := t.Validate(); err != nil {
		return trade.Trade{}, err
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO trades
		(trade_id, trade_date, trade_time, instrument, session, direction, pnl,
		 risk_reward, account_id, created_at, take_profit, exit_price, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Time, t.Instrument, t.Session, string(t.Direction), t.PnL,
		nullFloat(t.RiskReward), t.AccountID, t.CreatedAt.UTC(),
		nullFloat(t.TakeProfit), nullFloat(t.ExitPrice), t.Notes,
	)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("insert trade %s: %w", t.ID, err)
	}
	return t, nil
}

func (j *SQLite) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := j.db.ExecContext(ctx, `DELETE FROM trades WHERE trade_id = ?`, tradeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
	}
	return nil
}

func (j *SQLite) AddAccount(ctx context.Context, a Account) (Account, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = j.now().UTC()
	}
	if a.ID == "" {
		a.ID = id.NewAt(a.CreatedAt)
	}
	if a.Name == "" {
		return Account{}, errors.New("account name is required")
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO accounts (account_id, name, broker, initial_balance, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Broker, a.InitialBalance, a.CreatedAt.UTC(),
	)
	if err != nil {
		return Account{}, fmt.Errorf("insert account %s: %w", a.ID, err)
	}
	return a, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
