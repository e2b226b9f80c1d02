// Package report renders analytics results for the terminal and for
// Org-mode journals.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/analytics"
)

const rule = "--------------------------------------------------"

func PrintStats(w io.Writer, title string, s analytics.Stats) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")

	if s.TotalTrades == 0 {
		fmt.Fprintln(w, "No trades.")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Best Trade:    %s\n", money(s.BestTrade))
	fmt.Fprintf(w, "Worst Trade:   %s\n", money(s.WorstTrade))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Net P/L:       %s\n", money(s.TotalPnL))
	fmt.Fprintf(w, "Profit Factor: %.2f\n", s.ProfitFactor)
	fmt.Fprintf(w, "Avg Win:       %s\n", money(s.AvgWin))
	fmt.Fprintf(w, "Avg Loss:      %s\n", money(s.AvgLoss))
	fmt.Fprintf(w, "Expectancy:    %s\n", money(s.Expectancy))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", money(s.MaxDrawdown))
	fmt.Fprintf(w, "Sharpe Ratio:  %.2f\n", s.SharpeRatio)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Streaks")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Current:       %s\n", streak(s.CurrentStreak))
	fmt.Fprintf(w, "Longest Win:   %d\n", s.LongestWinStreak)
	fmt.Fprintf(w, "Longest Loss:  %d\n", s.LongestLoseStreak)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Daily")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Trading Days:  %d\n", s.TradingDays)
	fmt.Fprintf(w, "Best Day:      %s (%s)\n", money(s.BestDay.PnL), s.BestDay.Date)
	fmt.Fprintf(w, "Worst Day:     %s (%s)\n", money(s.WorstDay.PnL), s.WorstDay.Date)
	fmt.Fprintf(w, "Daily Average: %s\n", money(s.DailyAverage))
	fmt.Fprintln(w)
}

func PrintAccountMetrics(w io.Writer, m analytics.AccountMetrics) {
	PrintStats(w, "Account "+m.AccountID, m.Stats)
	if m.TotalTrades == 0 {
		return
	}

	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Break-even:    %.2f%% (%d)\n", m.BreakEvenRate, m.BreakEvens)
	if m.RTrades > 0 {
		fmt.Fprintf(w, "Avg R:         %.2fR over %d trades\n", m.AvgRMultiple, m.RTrades)
	}
	fmt.Fprintf(w, "Sortino:       %.2f\n", m.SortinoRatio)
	fmt.Fprintf(w, "MAR:           %.2f\n", m.MARRatio)
	fmt.Fprintf(w, "Calmar:        %.2f\n", m.CalmarRatio)
	if m.TPTracked > 0 {
		fmt.Fprintf(w, "Hit TP:        %d of %d\n", m.TradesHitTP, m.TPTracked)
	}
	fmt.Fprintln(w)
}

func PrintDemons(w io.Writer, demons []analytics.BehavioralDemon, level analytics.PsychLevel) {
	fmt.Fprintf(w, "Psych Level:   %s\n", level)
	fmt.Fprintln(w, rule)
	if len(demons) == 0 {
		fmt.Fprintln(w, "No behavioural patterns detected.")
		return
	}
	for _, d := range demons {
		fmt.Fprintf(w, "%-16s %-8s %3d trades  %6.2f%%  impact %s\n",
			d.Name, strings.ToUpper(string(d.Severity)), d.DetectedCount, d.Frequency, money(d.Impact))
		fmt.Fprintf(w, "  %s\n", d.Description)
	}
}

func streak(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("%d win(s)", n)
	case n < 0:
		return fmt.Sprintf("%d loss(es)", -n)
	}
	return "-"
}

// money formats a currency amount to cents.
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
