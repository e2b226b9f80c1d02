package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer for search, followed by narrative
// placeholders (Thesis/Execution/Review).
func FormatTradeOrg(t trade.Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Instrument, t.Direction, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date))
	if t.Time != "" {
		b.WriteString(fmt.Sprintf(":TIME: %s\n", t.Time))
	}
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", t.Instrument))
	if t.Session != "" {
		b.WriteString(fmt.Sprintf(":SESSION: %s\n", t.Session))
	}
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":PNL: %.2f\n", t.PnL))
	if t.RiskReward != nil {
		b.WriteString(fmt.Sprintf(":R_MULTIPLE: %.2f\n", *t.RiskReward))
	}
	if t.TakeProfit != nil {
		b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", *t.TakeProfit))
	}
	if t.ExitPrice != nil {
		b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", *t.ExitPrice))
	}
	if t.AccountID != "" {
		b.WriteString(fmt.Sprintf(":ACCOUNT: %s\n", t.AccountID))
	}
	// Use RFC3339 for copy/paste friendliness.
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", t.CreatedAt.UTC().Format(time.RFC3339)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n")
	if t.Notes != "" {
		b.WriteString("- " + t.Notes + "\n")
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
