package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOversizingExample(t *testing.T) {
	t.Parallel()

	demons := DetectDemons(seq(-50, -50, -250))
	require.Len(t, demons, 1)

	d := demons[0]
	assert.Equal(t, "oversizing", d.ID)
	assert.Equal(t, Oversizing, d.Kind)
	assert.Equal(t, 1, d.DetectedCount)
	assert.Equal(t, []string{"T3"}, d.TradeIDs)
	assert.InDelta(t, -250.0, d.Impact, 1e-9)
	assert.InDelta(t, 100.0/3, d.Frequency, 1e-9)
	assert.Equal(t, SeverityMedium, d.Severity)
}

func TestOversizingIgnoresWinsAndBreakeven(t *testing.T) {
	t.Parallel()

	_, ok := Oversizing.Detect(seq(500, 0, 1000))
	assert.False(t, ok)

	// Equal losses never exceed twice their own mean.
	_, ok = Oversizing.Detect(seq(-40, -40, -40))
	assert.False(t, ok)

	// Breakevens stay out of the average: 20 * 2 = 40 is not exceeded by -30.
	_, ok = Oversizing.Detect(seq(0, 0, 0, -10, -30))
	assert.False(t, ok)
}

func TestOversizingCritical(t *testing.T) {
	t.Parallel()

	pnls := make([]float64, 0, 24)
	for i := 0; i < 20; i++ {
		pnls = append(pnls, -10)
	}
	pnls = append(pnls, -100, -100, -100, -100)

	d, ok := Oversizing.Detect(seq(pnls...))
	require.True(t, ok)
	assert.Equal(t, 4, d.DetectedCount)
	assert.Equal(t, SeverityCritical, d.Severity)
	assert.InDelta(t, -400.0, d.Impact, 1e-9)
}

func TestRevengeExample(t *testing.T) {
	t.Parallel()

	trades := sameDay(
		"10:00:00", -100.0,
		"10:15:00", -40.0,
		"11:00:00", 30.0,
	)

	d, ok := Revenge.Detect(trades)
	require.True(t, ok)
	assert.Equal(t, "revenge", d.ID)
	assert.Equal(t, 1, d.DetectedCount)
	assert.Equal(t, []string{"T2"}, d.TradeIDs)
	assert.InDelta(t, -40.0, d.Impact, 1e-9)
	assert.Equal(t, SeverityHigh, d.Severity)
}

func TestRevengeOnlyChecksNextTrade(t *testing.T) {
	t.Parallel()

	trades := sameDay(
		"10:00:00", -100.0,
		"10:45:00", 20.0,
		"10:50:00", 20.0,
	)
	_, ok := Revenge.Detect(trades)
	assert.False(t, ok)
}

func TestRevengeWindowIsExclusive(t *testing.T) {
	t.Parallel()

	_, ok := Revenge.Detect(sameDay("10:00:00", -10.0, "10:30:00", 5.0))
	assert.False(t, ok)

	_, ok = Revenge.Detect(sameDay("10:00:00", -10.0, "10:29:59", 5.0))
	assert.True(t, ok)
}

func TestRevengeAfterBreakevenIsIgnored(t *testing.T) {
	t.Parallel()

	_, ok := Revenge.Detect(sameDay("10:00:00", 0.0, "10:01:00", -5.0))
	assert.False(t, ok)
}

func TestRevengeCritical(t *testing.T) {
	t.Parallel()

	trades := sameDay(
		"10:00:00", -10.0,
		"10:05:00", -10.0,
		"10:10:00", -10.0,
		"10:15:00", -10.0,
		"10:20:00", -10.0,
	)
	d, ok := Revenge.Detect(trades)
	require.True(t, ok)
	assert.Equal(t, 4, d.DetectedCount)
	assert.Equal(t, SeverityCritical, d.Severity)
	assert.InDelta(t, -40.0, d.Impact, 1e-9)
	assert.InDelta(t, 80.0, d.Frequency, 1e-9)
}

func TestDetectDemonsSortsByCreatedAt(t *testing.T) {
	t.Parallel()

	trades := sameDay(
		"10:00:00", -100.0,
		"10:15:00", -40.0,
		"11:00:00", 30.0,
	)
	assert.Equal(t, DetectDemons(trades), DetectDemons(reversed(trades)))
}

func TestDetectDemonsNone(t *testing.T) {
	t.Parallel()

	assert.Empty(t, DetectDemons(nil))
	assert.Empty(t, DetectDemons(seq(10, 20, 30)))
}

func TestPlaceholderKindsNeverReport(t *testing.T) {
	t.Parallel()

	trades := sameDay("10:00:00", -10.0, "10:01:00", -500.0)
	for _, k := range []DemonKind{Hesitation, Fomo} {
		_, ok := k.Detect(trades)
		assert.False(t, ok, k.String())
	}
	for _, d := range DetectDemons(trades) {
		assert.NotEqual(t, Hesitation, d.Kind)
		assert.NotEqual(t, Fomo, d.Kind)
	}
}

func TestDemonKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "oversizing", Oversizing.String())
	assert.Equal(t, "revenge", Revenge.String())
	assert.Equal(t, "hesitation", Hesitation.String())
	assert.Equal(t, "fomo", Fomo.String())
	assert.Equal(t, "unknown", DemonKind(99).String())
}

func demonsWith(sev ...Severity) []BehavioralDemon {
	out := make([]BehavioralDemon, len(sev))
	for i, s := range sev {
		out[i] = BehavioralDemon{Severity: s}
	}
	return out
}

func TestClassifyPsychLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sev  []Severity
		want PsychLevel
	}{
		{"none", nil, PsychOptimal},
		{"one medium", []Severity{SeverityMedium}, PsychOptimal},
		{"two medium", []Severity{SeverityMedium, SeverityMedium}, PsychCaution},
		{"one high", []Severity{SeverityHigh}, PsychCaution},
		{"two high", []Severity{SeverityHigh, SeverityHigh}, PsychUnstable},
		{"one critical", []Severity{SeverityCritical}, PsychUnstable},
		{"critical and high", []Severity{SeverityCritical, SeverityHigh, SeverityHigh}, PsychUnstable},
		{"two critical", []Severity{SeverityCritical, SeverityCritical}, PsychCritical},
		{"two critical with others", []Severity{SeverityMedium, SeverityCritical, SeverityHigh, SeverityCritical}, PsychCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPsychLevel(demonsWith(tt.sev...)))
		})
	}
}

func TestClassifyPsychLevelOrderIndependent(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	all := []Severity{SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 0; i < 200; i++ {
		n := rng.Intn(6)
		sev := make([]Severity, n)
		for j := range sev {
			sev[j] = all[rng.Intn(len(all))]
		}
		demons := demonsWith(sev...)
		want := ClassifyPsychLevel(demons)

		rng.Shuffle(len(demons), func(a, b int) { demons[a], demons[b] = demons[b], demons[a] })
		assert.Equal(t, want, ClassifyPsychLevel(demons))
	}
}

func TestClassifyDetectedDemons(t *testing.T) {
	t.Parallel()

	// medium oversizing + high revenge
	trades := sameDay(
		"09:00:00", -10.0,
		"09:10:00", -10.0,
		"12:00:00", -10.0,
		"15:00:00", -100.0,
	)
	demons := DetectDemons(trades)
	require.Len(t, demons, 2)
	assert.Equal(t, PsychCaution, ClassifyPsychLevel(demons))
}
