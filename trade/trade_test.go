package trade

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTrade() Trade {
	return Trade{
		ID:         "T1",
		Date:       "2024-03-15",
		Time:       "10:30",
		Instrument: "EUR_USD",
		Session:    "London",
		Direction:  Long,
		PnL:        125.5,
		CreatedAt:  time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"long", Long, false},
		{"LONG", Long, false},
		{" buy ", Long, false},
		{"short", Short, false},
		{"Sell", Short, false},
		{"sideways", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOutcomePartitions(t *testing.T) {
	t.Parallel()

	win := Trade{PnL: 10}
	loss := Trade{PnL: -10}
	flat := Trade{PnL: 0}

	assert.True(t, win.IsWin())
	assert.False(t, win.IsLoss())
	assert.True(t, loss.IsLoss())
	assert.False(t, loss.IsBreakEven())
	assert.True(t, flat.IsBreakEven())
	assert.False(t, flat.IsWin())
	assert.False(t, flat.IsLoss())
}

func TestHitTakeProfit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     Direction
		tp      *float64
		exit    *float64
		wantHit bool
		wantOK  bool
	}{
		{"long above target", Long, Float(1.10), Float(1.11), true, true},
		{"long exactly at target", Long, Float(1.10), Float(1.10), true, true},
		{"long short of target", Long, Float(1.10), Float(1.09), false, true},
		{"short below target", Short, Float(1.10), Float(1.09), true, true},
		{"short exactly at target", Short, Float(1.10), Float(1.10), true, true},
		{"short above target", Short, Float(1.10), Float(1.11), false, true},
		{"missing take profit", Long, nil, Float(1.11), false, false},
		{"missing exit", Short, Float(1.10), nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Trade{Direction: tt.dir, TakeProfit: tt.tp, ExitPrice: tt.exit}
			hit, ok := tr.HitTakeProfit()
			assert.Equal(t, tt.wantHit, hit)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestSortedByCreatedAtDoesNotMutate(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	in := []Trade{
		{ID: "c", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "a", CreatedAt: base},
		{ID: "b1", CreatedAt: base.Add(time.Hour)},
		{ID: "b2", CreatedAt: base.Add(time.Hour)},
	}

	out := SortedByCreatedAt(in)

	ids := make([]string, len(out))
	for i, tr := range out {
		ids[i] = tr.ID
	}
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids)
	assert.Equal(t, "c", in[0].ID, "input order must be preserved")
}

func TestFilterByAccount(t *testing.T) {
	t.Parallel()

	in := []Trade{
		{ID: "1", AccountID: "A"},
		{ID: "2", AccountID: "B"},
		{ID: "3", AccountID: "A"},
		{ID: "4"},
	}

	got := FilterByAccount(in, "A")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
	assert.Empty(t, FilterByAccount(in, "missing"))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Trade)
		errMsg string
	}{
		{"valid", func(*Trade) {}, ""},
		{"missing id", func(tr *Trade) { tr.ID = "" }, "ID is required"},
		{"missing instrument", func(tr *Trade) { tr.Instrument = "" }, "Instrument is required"},
		{"bad direction", func(tr *Trade) { tr.Direction = "flat" }, "Direction must be one of"},
		{"bad date", func(tr *Trade) { tr.Date = "15/03/2024" }, "Date must be formatted"},
		{"missing created at", func(tr *Trade) { tr.CreatedAt = time.Time{} }, "CreatedAt is required"},
		{"nan pnl", func(tr *Trade) { tr.PnL = math.NaN() }, "pnl=NaN"},
		{"inf exit", func(tr *Trade) { tr.ExitPrice = Float(math.Inf(1)) }, "exitPrice=+Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrade()
			tt.mutate(&tr)
			err := tr.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCheckAllFinite(t *testing.T) {
	t.Parallel()

	ok := []Trade{validTrade(), validTrade()}
	assert.NoError(t, CheckAllFinite(ok))
	assert.NoError(t, CheckAllFinite(nil))

	bad := append(ok, Trade{ID: "X", RiskReward: Float(math.Inf(-1))})
	err := CheckAllFinite(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonFinite))
	assert.Contains(t, err.Error(), "trade X")
}

func TestDay(t *testing.T) {
	t.Parallel()

	d, err := validTrade().Day()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)
}
