// Package analytics turns a list of journal trades into performance
// statistics and behavioural pattern detections. Every function here is pure:
// inputs are never modified and nothing is cached between calls.
package analytics

import (
	"math"
	"sort"

	"github.com/rustyeddy/tradejournal/trade"
)

// DayPnL is the summed pnl of all trades sharing a Date.
type DayPnL struct {
	Date string  `json:"date"`
	PnL  float64 `json:"pnl"`
}

// Stats is the aggregate view over a trade set. All fields are zero for an
// empty set.
type Stats struct {
	TotalTrades int     `json:"totalTrades"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"winRate"`

	TotalPnL     float64 `json:"totalPnL"`
	GrossProfit  float64 `json:"grossProfit"`
	GrossLoss    float64 `json:"grossLoss"`
	ProfitFactor float64 `json:"profitFactor"`
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"`
	Expectancy   float64 `json:"expectancy"`

	BestTrade  float64 `json:"bestTrade"`
	WorstTrade float64 `json:"worstTrade"`

	// CurrentStreak is positive for a run of wins and negative for a run of
	// non-wins, ending at the most recent trade.
	CurrentStreak     int `json:"currentStreak"`
	LongestWinStreak  int `json:"longestWinStreak"`
	LongestLoseStreak int `json:"longestLoseStreak"`

	TradingDays  int     `json:"tradingDays"`
	BestDay      DayPnL  `json:"bestDay"`
	WorstDay     DayPnL  `json:"worstDay"`
	DailyAverage float64 `json:"dailyAverage"`

	// MaxDrawdown is measured on cumulative realized pnl, not on a balance.
	MaxDrawdown float64 `json:"maxDrawdown"`
	SharpeRatio float64 `json:"sharpeRatio"`
}

// ComputeStats aggregates trades. Breakeven trades count as losses in the
// win/loss split and in streaks.
func ComputeStats(trades []trade.Trade) Stats {
	var s Stats
	if len(trades) == 0 {
		return s
	}

	s.TotalTrades = len(trades)
	s.BestTrade = math.Inf(-1)
	s.WorstTrade = math.Inf(1)
	for _, t := range trades {
		s.TotalPnL += t.PnL
		if t.PnL > 0 {
			s.Wins++
			s.GrossProfit += t.PnL
		} else {
			s.Losses++
			s.GrossLoss += math.Abs(t.PnL)
		}
		s.BestTrade = math.Max(s.BestTrade, t.PnL)
		s.WorstTrade = math.Min(s.WorstTrade, t.PnL)
	}

	s.WinRate = percent(s.Wins, s.TotalTrades)
	s.ProfitFactor = profitFactor(s.GrossProfit, s.GrossLoss)
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.Expectancy = s.WinRate/100*s.AvgWin - float64(s.Losses)/float64(s.TotalTrades)*s.AvgLoss

	ordered := trade.SortedByCreatedAt(trades)
	s.CurrentStreak, s.LongestWinStreak, s.LongestLoseStreak = streaks(ordered)
	s.MaxDrawdown = maxDrawdown(ordered)

	days := DailyPnL(trades)
	s.TradingDays = len(days)
	s.BestDay, s.WorstDay = days[0], days[0]
	for _, d := range days[1:] {
		if d.PnL > s.BestDay.PnL {
			s.BestDay = d
		}
		if d.PnL < s.WorstDay.PnL {
			s.WorstDay = d
		}
	}
	s.DailyAverage = s.TotalPnL / float64(len(days))
	s.SharpeRatio = sharpeRatio(days)

	return s
}

// profitFactor falls back to gross profit when there is no gross loss, so an
// unbeaten record reports its winnings rather than +Inf.
func profitFactor(grossProfit, grossLoss float64) float64 {
	if grossLoss == 0 {
		return grossProfit
	}
	return grossProfit / grossLoss
}

// streaks walks trades in chronological order. A trade with pnl <= 0 extends
// a losing run.
func streaks(ordered []trade.Trade) (current, longestWin, longestLose int) {
	for _, t := range ordered {
		if t.PnL > 0 {
			if current > 0 {
				current++
			} else {
				current = 1
			}
			longestWin = max(longestWin, current)
		} else {
			if current < 0 {
				current--
			} else {
				current = -1
			}
			longestLose = max(longestLose, -current)
		}
	}
	return current, longestWin, longestLose
}

func maxDrawdown(ordered []trade.Trade) float64 {
	cumulative, peak, maxDD := 0.0, 0.0, 0.0
	for _, t := range ordered {
		cumulative += t.PnL
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func sharpeRatio(days []DayPnL) float64 {
	if len(days) < 2 {
		return 0
	}
	returns := make([]float64, len(days))
	for i, d := range days {
		returns[i] = d.PnL
	}
	std := stddev(returns)
	if std == 0 {
		return 0
	}
	return average(returns) / std * math.Sqrt(tradingDaysPerYear)
}

// DailyPnL groups trades on the literal Date string and returns one entry per
// day, sorted by date.
func DailyPnL(trades []trade.Trade) []DayPnL {
	byDay := make(map[string]float64)
	for _, t := range trades {
		byDay[t.Date] += t.PnL
	}
	out := make([]DayPnL, 0, len(byDay))
	for date, pnl := range byDay {
		out = append(out, DayPnL{Date: date, PnL: pnl})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
