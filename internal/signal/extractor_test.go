package signal

import (
	"math"
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func floatPtr(v float64) *float64 { return &v }

func TestExtractEmptyRecordUsesDefaults(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	sig := e.Extract("probe", ResponseRecord{}, 0.5)

	if sig.Variance != 0.5 {
		t.Fatalf("expected default variance 0.5, got %f", sig.Variance)
	}
	if sig.Coherence != 0.5 {
		t.Fatalf("expected default coherence 0.5, got %f", sig.Coherence)
	}
	if sig.LatencyProxy != 0.5 {
		t.Fatalf("expected default latency 0.5, got %f", sig.LatencyProxy)
	}
	if sig.SelfReportedDelta != 0 {
		t.Fatalf("expected zero delta, got %f", sig.SelfReportedDelta)
	}
	if sig.CatalystKind != "probe" {
		t.Fatalf("expected catalyst kind probe, got %s", sig.CatalystKind)
	}
}

func TestExtractVarianceFromResonanceWeights(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	rec := ResponseRecord{
		ResonanceWeights: map[string]float64{"a": 0.2, "b": 0.8},
	}
	sig := e.Extract("probe", rec, 0.5)

	// Population stddev of {0.2, 0.8} is 0.3.
	if math.Abs(sig.Variance-0.3) > 1e-9 {
		t.Fatalf("expected variance 0.3, got %f", sig.Variance)
	}
}

func TestExtractVarianceClamped(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	rec := ResponseRecord{
		ResonanceWeights: map[string]float64{"a": -100, "b": 100},
	}
	sig := e.Extract("probe", rec, 0.5)

	if sig.Variance != 1 {
		t.Fatalf("expected variance clamped to 1, got %f", sig.Variance)
	}
}

func TestExtractCoherenceField(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	sig := e.Extract("probe", ResponseRecord{Coherence: floatPtr(0.9)}, 0.5)
	if sig.Coherence != 0.9 {
		t.Fatalf("expected coherence 0.9, got %f", sig.Coherence)
	}

	// Out-of-range values are clamped, never rejected.
	sig = e.Extract("probe", ResponseRecord{Coherence: floatPtr(7)}, 0.5)
	if sig.Coherence != 1 {
		t.Fatalf("expected coherence clamped to 1, got %f", sig.Coherence)
	}
}

func TestExtractLatencyFromProcessingTime(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	sig := e.Extract("probe", ResponseRecord{ProcessingTime: floatPtr(2.5)}, 0.5)
	if math.Abs(sig.LatencyProxy-0.25) > 1e-9 {
		t.Fatalf("expected latency 0.25, got %f", sig.LatencyProxy)
	}

	sig = e.Extract("probe", ResponseRecord{ProcessingTime: floatPtr(500)}, 0.5)
	if sig.LatencyProxy != 1 {
		t.Fatalf("expected latency clamped to 1, got %f", sig.LatencyProxy)
	}
}

func TestExtractLatencyFromTextComplexity(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	// 100 chars over a 400-char scale: complexity 0.25, latency 0.75.
	text := make([]byte, 100)
	for i := range text {
		text[i] = 'x'
	}
	sig := e.Extract("probe", ResponseRecord{SymbolicText: string(text)}, 0.5)
	if math.Abs(sig.LatencyProxy-0.75) > 1e-9 {
		t.Fatalf("expected latency 0.75, got %f", sig.LatencyProxy)
	}
}

func TestExtractLatencyFromFieldCount(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	fields := map[string]string{"a": "1", "b": "2", "c": "3", "d": "4", "e": "5"}
	sig := e.Extract("probe", ResponseRecord{SymbolicFields: fields}, 0.5)
	// 5 fields over a 20-field scale: complexity 0.25, latency 0.75.
	if math.Abs(sig.LatencyProxy-0.75) > 1e-9 {
		t.Fatalf("expected latency 0.75, got %f", sig.LatencyProxy)
	}
}

func TestExtractSelfReportedDelta(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	sig := e.Extract("probe", ResponseRecord{SelfReported: floatPtr(0.8)}, 0.5)
	if math.Abs(sig.SelfReportedDelta-0.3) > 1e-9 {
		t.Fatalf("expected delta 0.3, got %f", sig.SelfReportedDelta)
	}
}

func TestExtractLexiconDelta(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	rec := ResponseRecord{
		ResonanceWeights: map[string]float64{
			"uncertain_drift": 0.4,
			"wondering":       0.3,
			"stable_anchor":   0.2,
		},
	}
	sig := e.Extract("probe", rec, 0.5)

	// Two uncertainty hits minus one certainty hit, scaled by 0.1.
	if math.Abs(sig.SelfReportedDelta-0.1) > 1e-9 {
		t.Fatalf("expected delta 0.1, got %f", sig.SelfReportedDelta)
	}
}

func TestExtractLexiconUncertainNotDoubleCounted(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig(), fixedClock())

	// "uncertainty" contains the stem "certain"; it must count once, on the
	// uncertainty side.
	rec := ResponseRecord{
		ResonanceWeights: map[string]float64{"uncertainty": 0.5},
	}
	sig := e.Extract("probe", rec, 0.5)

	if math.Abs(sig.SelfReportedDelta-0.1) > 1e-9 {
		t.Fatalf("expected delta 0.1, got %f", sig.SelfReportedDelta)
	}
}
