package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradejournal/trade"
)

// Engine wraps the pure analytics functions with input validation, logging
// and optional memoization. Results are identical to calling the functions
// directly.
type Engine struct {
	log    logrus.FieldLogger
	strict bool
	cache  *cache.Cache
}

type EngineOption func(*Engine)

// WithLenientInput lets non-finite numbers through to the calculations
// instead of rejecting them. NaN then propagates into the results.
func WithLenientInput() EngineOption {
	return func(e *Engine) { e.strict = false }
}

// WithCache memoizes results by trade-list content for ttl. A ttl of zero
// disables caching.
func WithCache(ttl time.Duration) EngineOption {
	return func(e *Engine) {
		if ttl > 0 {
			e.cache = cache.New(ttl, ttl*2)
		}
	}
}

func NewEngine(log logrus.FieldLogger, opts ...EngineOption) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	e := &Engine{log: log, strict: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stats is ComputeStats with validation.
func (e *Engine) Stats(trades []trade.Trade) (Stats, error) {
	if err := e.check(trades); err != nil {
		return Stats{}, err
	}
	v := e.memo("stats", "", trades, func() any { return ComputeStats(trades) })
	s := v.(Stats)
	e.log.WithFields(logrus.Fields{
		"trades":   s.TotalTrades,
		"win_rate": s.WinRate,
		"pnl":      s.TotalPnL,
	}).Debug("computed stats")
	return s, nil
}

// AccountMetrics is ComputeAccountMetrics with validation.
func (e *Engine) AccountMetrics(accountID string, trades []trade.Trade) (AccountMetrics, error) {
	if err := e.check(trades); err != nil {
		return AccountMetrics{}, err
	}
	v := e.memo("account", accountID, trades, func() any { return ComputeAccountMetrics(accountID, trades) })
	m := v.(AccountMetrics)
	e.log.WithFields(logrus.Fields{
		"account_id": accountID,
		"trades":     m.TotalTrades,
		"sortino":    m.SortinoRatio,
	}).Debug("computed account metrics")
	return m, nil
}

// Demons is DetectDemons plus ClassifyPsychLevel with validation.
func (e *Engine) Demons(trades []trade.Trade) ([]BehavioralDemon, PsychLevel, error) {
	if err := e.check(trades); err != nil {
		return nil, "", err
	}
	v := e.memo("demons", "", trades, func() any { return DetectDemons(trades) })
	demons := cloneDemons(v.([]BehavioralDemon))
	level := ClassifyPsychLevel(demons)
	e.log.WithFields(logrus.Fields{
		"demons": len(demons),
		"level":  level,
	}).Debug("detected demons")
	return demons, level, nil
}

// cloneDemons deep-copies demons so callers cannot alter a cached result.
func cloneDemons(in []BehavioralDemon) []BehavioralDemon {
	if in == nil {
		return nil
	}
	out := make([]BehavioralDemon, len(in))
	for i, d := range in {
		d.TradeIDs = slices.Clone(d.TradeIDs)
		out[i] = d
	}
	return out
}

// EquityCurve is NewEquityCurve with validation.
func (e *Engine) EquityCurve(trades []trade.Trade) (EquityCurve, error) {
	if err := e.check(trades); err != nil {
		return nil, err
	}
	return NewEquityCurve(trades), nil
}

// DailyPnL is the daily pnl series with validation.
func (e *Engine) DailyPnL(trades []trade.Trade) (DailySeries, error) {
	if err := e.check(trades); err != nil {
		return nil, err
	}
	return DailySeries(DailyPnL(trades)), nil
}

func (e *Engine) check(trades []trade.Trade) error {
	if !e.strict {
		return nil
	}
	if err := trade.CheckAllFinite(trades); err != nil {
		e.log.WithError(err).Warn("rejected trade list")
		return err
	}
	return nil
}

func (e *Engine) memo(op, accountID string, trades []trade.Trade, compute func() any) any {
	if e.cache == nil {
		return compute()
	}
	key, err := cacheKey(op, accountID, trades)
	if err != nil {
		// Unhashable input (NaN in lenient mode); compute uncached.
		return compute()
	}
	if v, found := e.cache.Get(key); found {
		e.log.WithField("cache", "hit").Debug(op)
		return v
	}
	v := compute()
	e.cache.SetDefault(key, v)
	return v
}

// cacheKey hashes the trade list content. Trades are hashed in input order, so
// a reordered list is a cache miss but still yields the same result.
func cacheKey(op, accountID string, trades []trade.Trade) (string, error) {
	data, err := json.Marshal(trades)
	if err != nil {
		return "", fmt.Errorf("hash trades: %w", err)
	}
	sum := sha256.Sum256(data)
	return op + ":" + accountID + ":" + hex.EncodeToString(sum[:]), nil
}
