package analytics

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

var t0 = time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

// seq builds trades one hour apart, one per day starting 2024-05-06, with the
// given pnls in chronological order.
func seq(pnls ...float64) []trade.Trade {
	out := make([]trade.Trade, len(pnls))
	for i, p := range pnls {
		at := t0.Add(time.Duration(i) * 25 * time.Hour)
		out[i] = trade.Trade{
			ID:         fmt.Sprintf("T%d", i+1),
			Date:       at.Format(trade.DateLayout),
			Time:       at.Format("15:04"),
			Instrument: "EUR_USD",
			Direction:  trade.Long,
			PnL:        p,
			CreatedAt:  at,
		}
	}
	return out
}

// sameDay builds trades on one date with explicit clock times.
func sameDay(clockAndPnL ...any) []trade.Trade {
	var out []trade.Trade
	for i := 0; i+1 < len(clockAndPnL); i += 2 {
		clock := clockAndPnL[i].(string)
		pnl := clockAndPnL[i+1].(float64)
		at, err := time.Parse("2006-01-02 15:04:05", "2024-05-06 "+clock)
		if err != nil {
			panic(err)
		}
		out = append(out, trade.Trade{
			ID:         fmt.Sprintf("T%d", len(out)+1),
			Date:       "2024-05-06",
			Time:       clock,
			Instrument: "NQ",
			Direction:  trade.Short,
			PnL:        pnl,
			CreatedAt:  at,
		})
	}
	return out
}

func reversed(in []trade.Trade) []trade.Trade {
	out := make([]trade.Trade, len(in))
	for i, t := range in {
		out[len(in)-1-i] = t
	}
	return out
}
