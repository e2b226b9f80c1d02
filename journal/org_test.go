package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/trade"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)
	rec := sampleTrade("trade-12345678-abcd", created, 250)
	rec.RiskReward = trade.Float(2.5)
	rec.TakeProfit = trade.Float(1.0875)
	rec.ExitPrice = trade.Float(1.0880)
	rec.AccountID = "ACC-1"
	rec.Notes = "clean breakout"

	result := FormatTradeOrg(rec)

	assert.Contains(t, result, "** Trade: EUR_USD long (trade-12)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":TRADE_ID: trade-12345678-abcd")
	assert.Contains(t, result, ":ID: trade-12345678-abcd")
	assert.Contains(t, result, ":DATE: 2024-03-15")
	assert.Contains(t, result, ":TIME: 10:30")
	assert.Contains(t, result, ":SESSION: London")
	assert.Contains(t, result, ":DIRECTION: long")
	assert.Contains(t, result, ":PNL: 250.00")
	assert.Contains(t, result, ":R_MULTIPLE: 2.50")
	assert.Contains(t, result, ":TAKE_PROFIT: 1.08750")
	assert.Contains(t, result, ":EXIT_PRICE: 1.08800")
	assert.Contains(t, result, ":ACCOUNT: ACC-1")
	assert.Contains(t, result, ":CREATED: 2024-03-15T10:30:45Z")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Review\n- clean breakout\n")
}

func TestFormatTradeOrgOmitsMissingOptionals(t *testing.T) {
	t.Parallel()

	rec := sampleTrade("short", time.Now(), -500)
	rec.Session = ""

	result := FormatTradeOrg(rec)
	assert.Contains(t, result, "** Trade: EUR_USD long (short)")
	assert.Contains(t, result, ":PNL: -500.00")
	assert.NotContains(t, result, ":SESSION:")
	assert.NotContains(t, result, ":R_MULTIPLE:")
	assert.NotContains(t, result, ":TAKE_PROFIT:")
	assert.NotContains(t, result, ":ACCOUNT:")
}

func TestFormatTradeOrgStructure(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(sampleTrade("structure-test", time.Now(), 50))

	lines := strings.Split(result, "\n")
	require.Greater(t, len(lines), 10)
	assert.True(t, strings.HasPrefix(lines[0], "** Trade:"))

	propertiesStart, propertiesEnd := -1, -1
	for i, line := range lines {
		if line == ":PROPERTIES:" {
			propertiesStart = i
		}
		if line == ":END:" && propertiesStart >= 0 && propertiesEnd < 0 {
			propertiesEnd = i
			break
		}
	}
	assert.Greater(t, propertiesStart, 0)
	assert.Greater(t, propertiesEnd, propertiesStart)

	thesisIdx, executionIdx, reviewIdx := -1, -1, -1
	for i, line := range lines {
		switch {
		case strings.Contains(line, "*** Thesis"):
			thesisIdx = i
		case strings.Contains(line, "*** Execution"):
			executionIdx = i
		case strings.Contains(line, "*** Review"):
			reviewIdx = i
		}
	}
	assert.Greater(t, thesisIdx, propertiesEnd)
	assert.Greater(t, executionIdx, thesisIdx)
	assert.Greater(t, reviewIdx, executionIdx)
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	trades := []trade.Trade{
		sampleTrade("trade-001", base, 200),
		sampleTrade("trade-002", base.Add(24*time.Hour), -100),
	}

	result := FormatTradesOrg(trades)
	assert.Contains(t, result, "trade-001")
	assert.Contains(t, result, "trade-002")

	parts := strings.Split(result, "\n\n\n")
	assert.Len(t, parts, 2, "Expected two trades separated by blank lines")

	assert.Empty(t, FormatTradesOrg(nil))
	assert.NotContains(t, FormatTradesOrg(trades[:1]), "\n\n\n")
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"long ID gets truncated", "trade-12345678-abcdef-more-chars", "trade-12"},
		{"exactly 8 characters", "12345678", "12345678"},
		{"less than 8 characters", "short", "short"},
		{"empty string", "", ""},
		{"exactly 9 characters gets truncated", "123456789", "12345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shortID(tt.input)
			assert.Equal(t, tt.expected, result)
			assert.LessOrEqual(t, len(result), 8)
		})
	}
}
