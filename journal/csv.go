package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/trade"
)

// CSVHeader is the column layout used by WriteTradesCSV and ReadTradesCSV.
var CSVHeader = []string{
	"id", "date", "time", "instrument", "session", "direction", "pnl",
	"risk_reward", "account_id", "created_at", "take_profit", "exit_price", "notes",
}

// WriteTradesCSV writes trades with a header row.
func WriteTradesCSV(w io.Writer, trades []trade.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date,
			t.Time,
			t.Instrument,
			t.Session,
			string(t.Direction),
			f(t.PnL),
			optional(t.RiskReward),
			t.AccountID,
			t.CreatedAt.UTC().Format(time.RFC3339Nano),
			optional(t.TakeProfit),
			optional(t.ExitPrice),
			t.Notes,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadTradesCSV parses trades written by WriteTradesCSV. Columns are matched
// by header name, so exports with reordered or missing optional columns are
// accepted. Required: date, instrument, direction, pnl.
func ReadTradesCSV(r io.Reader) ([]trade.Trade, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: missing header row")
		}
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, req := range []string{"date", "instrument", "direction", "pnl"} {
		if _, ok := col[req]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", req)
		}
	}

	var out []trade.Trade
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		get := func(name string) string {
			if i, ok := col[name]; ok && i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		t, err := parseRow(get)
		if err != nil {
			return nil, fmt.Errorf("csv line %d: %w", line, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseRow(get func(string) string) (trade.Trade, error) {
	t := trade.Trade{
		ID:         get("id"),
		Date:       get("date"),
		Time:       get("time"),
		Instrument: get("instrument"),
		Session:    get("session"),
		AccountID:  get("account_id"),
		Notes:      get("notes"),
	}

	dir, err := trade.ParseDirection(get("direction"))
	if err != nil {
		return t, err
	}
	t.Direction = dir

	// Parse money through decimal so values like "12.345" land on cents.
	pnl, err := decimal.NewFromString(get("pnl"))
	if err != nil {
		return t, fmt.Errorf("pnl: %w", err)
	}
	t.PnL = pnl.Round(2).InexactFloat64()

	if t.RiskReward, err = parseOptional(get("risk_reward")); err != nil {
		return t, fmt.Errorf("risk_reward: %w", err)
	}
	if t.TakeProfit, err = parseOptional(get("take_profit")); err != nil {
		return t, fmt.Errorf("take_profit: %w", err)
	}
	if t.ExitPrice, err = parseOptional(get("exit_price")); err != nil {
		return t, fmt.Errorf("exit_price: %w", err)
	}

	if s := get("created_at"); s != "" {
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, s); err != nil {
			return t, fmt.Errorf("created_at: %w", err)
		}
	} else {
		// Fall back to date + time of day when the export has no timestamp.
		t.CreatedAt, err = combineDateTime(t.Date, t.Time)
		if err != nil {
			return t, err
		}
	}
	return t, nil
}

func combineDateTime(date, clock string) (time.Time, error) {
	if clock == "" {
		return time.Parse(trade.DateLayout, date)
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if ts, err := time.Parse(trade.DateLayout+" "+layout, date+" "+clock); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot combine date %q and time %q", date, clock)
}

func parseOptional(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optional(p *float64) string {
	if p == nil {
		return ""
	}
	return f(*p)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
