// Package journal persists trades and accounts and hands plain trade lists
// to the analytics engines.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// ErrNotFound is returned when a trade or account id does not exist.
var ErrNotFound = errors.New("not found")

// Account groups trades for per-account metrics.
type Account struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Broker         string    `json:"broker,omitempty" yaml:"broker,omitempty"`
	InitialBalance float64   `json:"initialBalance" yaml:"initial_balance"`
	CreatedAt      time.Time `json:"createdAt" yaml:"created_at"`
}

// Store is the trade repository.
type Store interface {
	AddTrade(ctx context.Context, t trade.Trade) (trade.Trade, error)
	GetTrade(ctx context.Context, id string) (trade.Trade, error)
	DeleteTrade(ctx context.Context, id string) error

	// List methods return trades ordered by created_at ascending.
	ListTrades(ctx context.Context) ([]trade.Trade, error)
	ListTradesByAccount(ctx context.Context, accountID string) ([]trade.Trade, error)
	ListTradesBetween(ctx context.Context, startDate, endDate string) ([]trade.Trade, error)

	AddAccount(ctx context.Context, a Account) (Account, error)
	GetAccount(ctx context.Context, id string) (Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)

	Close() error
}
