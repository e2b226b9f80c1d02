package report

import (
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
)

// Review is a periodic performance review written into an Org journal.
type Review struct {
	Title   string
	Created time.Time
	From    string
	To      string

	Stats   analytics.Stats
	Account *analytics.AccountMetrics
	Demons  []analytics.BehavioralDemon
	Level   analytics.PsychLevel

	Notes       []string
	NextActions []string
}

var reviewOrgFuncs = template.FuncMap{
	"money": money,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"upper": func(s analytics.Severity) string {
		switch s {
		case analytics.SeverityCritical:
			return "CRITICAL"
		case analytics.SeverityHigh:
			return "HIGH"
		}
		return "MEDIUM"
	},
}

var reviewOrg = template.Must(template.New("review").Funcs(reviewOrgFuncs).Parse(ReviewOrgTemplate))

// WriteReviewOrg renders r with ReviewOrgTemplate.
func WriteReviewOrg(w io.Writer, r Review) error {
	return reviewOrg.Execute(w, r)
}

const ReviewOrgTemplate = `* REVIEW: {{if .Title}}{{.Title}}{{else}}Trading review{{end}}
:PROPERTIES:
:FROM:        {{if .From}}{{.From}}{{else}}(start){{end}}
:TO:          {{if .To}}{{.To}}{{else}}(end){{end}}
:TRADES:      {{.Stats.TotalTrades}}
:WINS:        {{.Stats.Wins}}
:LOSSES:      {{.Stats.Losses}}
:WIN_RATE:    {{printf "%.2f" .Stats.WinRate}}
:NET_PL:      {{money .Stats.TotalPnL}}
:PROFIT_FAC:  {{printf "%.2f" .Stats.ProfitFactor}}
:MAX_DD:      {{money .Stats.MaxDrawdown}}
:SHARPE:      {{printf "%.2f" .Stats.SharpeRatio}}
{{- if .Level}}
:PSYCH:       {{.Level}}
{{- end}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:        *{{money .Stats.TotalPnL}}*
- Expectancy:     *{{money .Stats.Expectancy}}*
- Avg Win / Loss: *{{money .Stats.AvgWin}} / {{money .Stats.AvgLoss}}*
- Best Day:       *{{money .Stats.BestDay.PnL}}* ({{.Stats.BestDay.Date}})
- Worst Day:      *{{money .Stats.WorstDay.PnL}}* ({{.Stats.WorstDay.Date}})
- Streaks:        longest win {{.Stats.LongestWinStreak}}, longest loss {{.Stats.LongestLoseStreak}}
{{- with .Account}}

** Account {{.AccountID}}
| Metric      | Value |
|-------------+-------|
| Break-even  | {{printf "%.2f" .BreakEvenRate}}% |
| Avg R       | {{printf "%.2f" .AvgRMultiple}} |
| Sortino     | {{printf "%.2f" .SortinoRatio}} |
| MAR         | {{printf "%.2f" .MARRatio}} |
| Calmar      | {{printf "%.2f" .CalmarRatio}} |
| Hit TP      | {{.TradesHitTP}} / {{.TPTracked}} |
{{- end}}

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Stats.Wins}} |
| Losses  | {{.Stats.Losses}} |
| Total   | {{.Stats.TotalTrades}} |
{{- if .Demons}}

** Demons
{{- range .Demons}}
- {{.Name}} [{{upper .Severity}}]: {{.DetectedCount}} trades, impact {{money .Impact}}
{{- end}}
{{- end}}
{{- if .Notes}}

** Observations
{{- range .Notes}}
- {{.}}
{{- end}}
{{- end}}
{{- if .NextActions}}

** Notes / Next Actions
{{- range .NextActions}}
- [ ] {{.}}
{{- end}}
{{- end}}
`
