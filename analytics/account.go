package analytics

import (
	"math"

	"github.com/rustyeddy/tradejournal/trade"
)

// ratioSentinel is reported by the Sortino and MAR ratios when their
// denominator is zero but the return is positive.
const ratioSentinel = 2

// AccountMetrics extends Stats with risk ratios for a single account.
type AccountMetrics struct {
	AccountID string `json:"accountId"`
	Stats

	BreakEvens    int     `json:"breakEvens"`
	BreakEvenRate float64 `json:"breakEvenRate"`

	// AvgRMultiple averages only the trades that recorded a risk/reward.
	AvgRMultiple float64 `json:"avgRMultiple"`
	RTrades      int     `json:"rTrades"`

	TotalReturn  float64 `json:"totalReturn"`
	SortinoRatio float64 `json:"sortinoRatio"`
	MARRatio     float64 `json:"marRatio"`

	// CalmarRatio is reported equal to MARRatio.
	CalmarRatio float64 `json:"calmarRatio"`

	TradesHitTP int `json:"tradesHitTP"`
	// TPTracked counts trades carrying both a take profit and an exit price.
	TPTracked int `json:"tpTracked"`
}

// ComputeAccountMetrics filters trades to accountID and computes the account
// view. An account with no trades yields a zero record carrying accountID.
func ComputeAccountMetrics(accountID string, trades []trade.Trade) AccountMetrics {
	m := AccountMetrics{AccountID: accountID}

	own := trade.FilterByAccount(trades, accountID)
	if len(own) == 0 {
		return m
	}

	m.Stats = ComputeStats(own)
	m.TotalReturn = m.TotalPnL

	pnls := make([]float64, len(own))
	rSum := 0.0
	for i, t := range own {
		pnls[i] = t.PnL
		if t.IsBreakEven() {
			m.BreakEvens++
		}
		if t.RiskReward != nil {
			rSum += *t.RiskReward
			m.RTrades++
		}
		if hit, ok := t.HitTakeProfit(); ok {
			m.TPTracked++
			if hit {
				m.TradesHitTP++
			}
		}
	}

	m.BreakEvenRate = percent(m.BreakEvens, len(own))
	if m.RTrades > 0 {
		m.AvgRMultiple = rSum / float64(m.RTrades)
	}

	m.SortinoRatio = sortinoRatio(pnls)
	m.MARRatio = marRatio(m.TotalReturn, m.MaxDrawdown)
	m.CalmarRatio = m.MARRatio

	return m
}

// sortinoRatio uses per-trade returns, unlike the daily Sharpe ratio.
func sortinoRatio(pnls []float64) float64 {
	mean := average(pnls)
	downside := downsideStddev(pnls)
	if downside == 0 {
		return sentinel(mean)
	}
	return mean / downside * math.Sqrt(tradingDaysPerYear)
}

func marRatio(totalReturn, maxDrawdown float64) float64 {
	if maxDrawdown == 0 {
		return sentinel(totalReturn)
	}
	return totalReturn / maxDrawdown
}

func sentinel(v float64) float64 {
	if v > 0 {
		return ratioSentinel
	}
	return 0
}
