// Package trade defines the journal's trade record, the sole data contract
// between the trade store and the analytics engines.
package trade

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-day format of Trade.Date.
const DateLayout = "2006-01-02"

type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// ParseDirection accepts "long"/"short" in any case, plus the "buy"/"sell"
// aliases common in broker exports.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long, nil
	case "short", "sell":
		return Short, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Trade is one closed trade as recorded in the journal. Analytics treat it as
// immutable input.
type Trade struct {
	ID         string    `json:"id" yaml:"id" validate:"required"`
	Date       string    `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"`
	Time       string    `json:"time,omitempty" yaml:"time,omitempty"`
	Instrument string    `json:"instrument" yaml:"instrument" validate:"required"`
	Session    string    `json:"session,omitempty" yaml:"session,omitempty"`
	Direction  Direction `json:"direction" yaml:"direction" validate:"required,oneof=long short"`
	PnL        float64   `json:"pnl" yaml:"pnl"`

	// RiskReward is the realized R-multiple, nil when not recorded.
	RiskReward *float64 `json:"riskReward,omitempty" yaml:"risk_reward,omitempty"`
	AccountID  string   `json:"accountId,omitempty" yaml:"account_id,omitempty"`

	// CreatedAt is the canonical chronological sort key. Date only has
	// day granularity.
	CreatedAt time.Time `json:"createdAt" yaml:"created_at" validate:"required"`

	TakeProfit *float64 `json:"takeProfit,omitempty" yaml:"take_profit,omitempty"`
	ExitPrice  *float64 `json:"exitPrice,omitempty" yaml:"exit_price,omitempty"`

	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (t Trade) IsWin() bool       { return t.PnL > 0 }
func (t Trade) IsLoss() bool      { return t.PnL < 0 }
func (t Trade) IsBreakEven() bool { return t.PnL == 0 }

// HitTakeProfit reports whether the exit reached or passed the take-profit
// level in the trade's direction. ok is false when either price is missing.
func (t Trade) HitTakeProfit() (hit bool, ok bool) {
	if t.TakeProfit == nil || t.ExitPrice == nil {
		return false, false
	}
	switch t.Direction {
	case Long:
		return *t.ExitPrice >= *t.TakeProfit, true
	case Short:
		return *t.ExitPrice <= *t.TakeProfit, true
	}
	return false, false
}

// Day parses Date. Analytics group on the literal string and never call this.
func (t Trade) Day() (time.Time, error) {
	return time.Parse(DateLayout, t.Date)
}

// Float returns a pointer to v, for populating the optional price fields.
func Float(v float64) *float64 {
	return &v
}

// SortedByCreatedAt returns a copy of trades ordered by CreatedAt ascending.
// Equal timestamps keep their input order. The input slice is not modified.
func SortedByCreatedAt(trades []Trade) []Trade {
	out := make([]Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// FilterByAccount returns the trades recorded against accountID.
func FilterByAccount(trades []Trade, accountID string) []Trade {
	var out []Trade
	for _, t := range trades {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}
