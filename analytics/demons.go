package analytics

import (
	"math"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

type Severity string

const (
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DemonKind enumerates the behavioural patterns the detector knows about.
type DemonKind int

const (
	Oversizing DemonKind = iota
	Revenge
	Hesitation
	Fomo
)

// Detection thresholds.
const (
	OversizeMultiple = 2.0
	RevengeWindow    = 30 * time.Minute
	CriticalCount    = 3
)

var demonInfo = map[DemonKind]struct {
	id, name, description string
}{
	Oversizing: {"oversizing", "Oversizing", "Losses more than twice the size of your average loss."},
	Revenge:    {"revenge", "Revenge Trading", "Entering a new trade within 30 minutes of a loss."},
	Hesitation: {"hesitation", "Hesitation", "Late or missed entries on valid setups."},
	Fomo:       {"fomo", "FOMO", "Chasing entries after the move has started."},
}

func (k DemonKind) String() string {
	if info, ok := demonInfo[k]; ok {
		return info.id
	}
	return "unknown"
}

// BehavioralDemon is one detected anti-pattern.
type BehavioralDemon struct {
	ID          string    `json:"id"`
	Kind        DemonKind `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	// Frequency is the share of all trades involved, in percent.
	Frequency float64 `json:"frequency"`
	// Impact is the summed pnl attributed to the pattern.
	Impact        float64  `json:"impact"`
	DetectedCount int      `json:"detectedCount"`
	TradeIDs      []string `json:"tradeIds,omitempty"`
}

// evaluator inspects trades already sorted by CreatedAt. ok is false when the
// pattern was not observed.
type evaluator func(ordered []trade.Trade) (d BehavioralDemon, ok bool)

// evaluators holds one rule per kind, in report order. Hesitation and FOMO
// have no detection rule and never report.
var evaluators = []struct {
	kind DemonKind
	eval evaluator
}{
	{Oversizing, detectOversizing},
	{Revenge, detectRevenge},
	{Hesitation, notDetected},
	{Fomo, notDetected},
}

// DetectDemons runs every rule over trades in CreatedAt order.
func DetectDemons(trades []trade.Trade) []BehavioralDemon {
	ordered := trade.SortedByCreatedAt(trades)

	var out []BehavioralDemon
	for _, e := range evaluators {
		if d, ok := run(e.kind, e.eval, ordered); ok {
			out = append(out, d)
		}
	}
	return out
}

// Detect runs the rule for a single kind.
func (k DemonKind) Detect(trades []trade.Trade) (BehavioralDemon, bool) {
	for _, e := range evaluators {
		if e.kind == k {
			return run(k, e.eval, trade.SortedByCreatedAt(trades))
		}
	}
	return BehavioralDemon{}, false
}

func run(kind DemonKind, eval evaluator, ordered []trade.Trade) (BehavioralDemon, bool) {
	d, ok := eval(ordered)
	if !ok {
		return BehavioralDemon{}, false
	}
	info := demonInfo[kind]
	d.ID, d.Kind, d.Name, d.Description = info.id, kind, info.name, info.description
	d.Frequency = percent(d.DetectedCount, len(ordered))
	return d, true
}

// detectOversizing flags losses larger than OversizeMultiple times the
// average loss. Breakeven trades are not losses here.
func detectOversizing(ordered []trade.Trade) (BehavioralDemon, bool) {
	var losses []float64
	for _, t := range ordered {
		if t.IsLoss() {
			losses = append(losses, math.Abs(t.PnL))
		}
	}
	if len(losses) == 0 {
		return BehavioralDemon{}, false
	}
	threshold := OversizeMultiple * average(losses)

	var d BehavioralDemon
	for _, t := range ordered {
		if t.IsLoss() && math.Abs(t.PnL) > threshold {
			d.DetectedCount++
			d.Impact += t.PnL
			d.TradeIDs = append(d.TradeIDs, t.ID)
		}
	}
	if d.DetectedCount == 0 {
		return d, false
	}
	d.Severity = SeverityMedium
	if d.DetectedCount > CriticalCount {
		d.Severity = SeverityCritical
	}
	return d, true
}

// detectRevenge looks only at the trade immediately after each loss. Impact
// is the pnl of that following trade.
func detectRevenge(ordered []trade.Trade) (BehavioralDemon, bool) {
	var d BehavioralDemon
	for i := 0; i+1 < len(ordered); i++ {
		if !ordered[i].IsLoss() {
			continue
		}
		next := ordered[i+1]
		if next.CreatedAt.Sub(ordered[i].CreatedAt) < RevengeWindow {
			d.DetectedCount++
			d.Impact += next.PnL
			d.TradeIDs = append(d.TradeIDs, next.ID)
		}
	}
	if d.DetectedCount == 0 {
		return d, false
	}
	d.Severity = SeverityHigh
	if d.DetectedCount > CriticalCount {
		d.Severity = SeverityCritical
	}
	return d, true
}

func notDetected([]trade.Trade) (BehavioralDemon, bool) {
	return BehavioralDemon{}, false
}

type PsychLevel string

const (
	PsychOptimal  PsychLevel = "OPTIMAL"
	PsychCaution  PsychLevel = "CAUTION"
	PsychUnstable PsychLevel = "UNSTABLE"
	PsychCritical PsychLevel = "CRITICAL"
)

// ClassifyPsychLevel applies an ordered threshold table to the severities of
// the detected demons. The first matching row wins.
func ClassifyPsychLevel(demons []BehavioralDemon) PsychLevel {
	var critical, high, medium int
	for _, d := range demons {
		switch d.Severity {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		}
	}

	switch {
	case critical >= 2:
		return PsychCritical
	case critical >= 1 || high >= 2:
		return PsychUnstable
	case high >= 1 || medium >= 2:
		return PsychCaution
	}
	return PsychOptimal
}
