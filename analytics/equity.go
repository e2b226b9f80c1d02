package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// EquityPoint is the state of cumulative realized pnl after one trade.
type EquityPoint struct {
	TradeID    string    `json:"tradeId"`
	Time       time.Time `json:"time"`
	PnL        float64   `json:"pnl"`
	Cumulative float64   `json:"cumulative"`
	Peak       float64   `json:"peak"`
	Drawdown   float64   `json:"drawdown"`
}

// EquityCurve is a chronological series of EquityPoint.
type EquityCurve []EquityPoint

// NewEquityCurve walks trades in CreatedAt order. The curve starts from zero;
// no starting balance is assumed.
func NewEquityCurve(trades []trade.Trade) EquityCurve {
	ordered := trade.SortedByCreatedAt(trades)
	curve := make(EquityCurve, 0, len(ordered))

	cumulative, peak := 0.0, 0.0
	for _, t := range ordered {
		cumulative += t.PnL
		if cumulative > peak {
			peak = cumulative
		}
		curve = append(curve, EquityPoint{
			TradeID:    t.ID,
			Time:       t.CreatedAt,
			PnL:        t.PnL,
			Cumulative: cumulative,
			Peak:       peak,
			Drawdown:   peak - cumulative,
		})
	}
	return curve
}

// MaxDrawdown returns the largest drawdown on the curve.
func (e EquityCurve) MaxDrawdown() float64 {
	maxDD := 0.0
	for _, p := range e {
		if p.Drawdown > maxDD {
			maxDD = p.Drawdown
		}
	}
	return maxDD
}

// ToCSV exports the curve with a header row.
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("trade_id,time,pnl,cumulative,peak,drawdown\n")
	for _, p := range e {
		buf.WriteString(p.TradeID)
		buf.WriteString(",")
		buf.WriteString(p.Time.UTC().Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.PnL))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.Cumulative))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.Peak))
		buf.WriteString(",")
		buf.WriteString(formatFloat(p.Drawdown))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the curve as a JSON array. Non-finite values cannot be
// encoded and return an error.
func (e EquityCurve) ToJSON() (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode equity curve: %w", err)
	}
	return string(data), nil
}

// DailySeries is the output of DailyPnL with exporters.
type DailySeries []DayPnL

func (d DailySeries) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,pnl\n")
	for _, day := range d {
		buf.WriteString(day.Date)
		buf.WriteString(",")
		buf.WriteString(formatFloat(day.PnL))
		buf.WriteString("\n")
	}
	return buf.String()
}

func (d DailySeries) ToJSON() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode daily series: %w", err)
	}
	return string(data), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
