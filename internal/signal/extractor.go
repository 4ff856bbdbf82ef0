package signal

import (
	"math"
	"strings"
	"time"
)

// #region lexicon
// Lexicon of uncertainty-signaling vs certainty-signaling stems, matched
// against resonance-weight keys when no direct self-report is present.
var uncertaintyStems = []string{
	"uncertain", "unsure", "maybe", "wonder", "question",
	"ambigu", "confus", "drift", "possib", "doubt",
}

var certaintyStems = []string{
	"certain", "sure", "clear", "definite", "stable",
	"resolve", "anchor", "known", "settled",
}

// #endregion lexicon

// #region extractor

// Extractor turns raw response records into normalized signals.
type Extractor struct {
	config ExtractorConfig
	now    func() time.Time
}

// NewExtractor creates an Extractor. now may be nil (wall clock).
func NewExtractor(config ExtractorConfig, now func() time.Time) *Extractor {
	if now == nil {
		now = time.Now
	}
	return &Extractor{config: config, now: now}
}

// #endregion extractor

// #region extract

// Extract derives a Signal from one observed response. current is the
// engine's present uncertainty value, used to turn a direct self-report into
// a delta. Extract never fails; missing or malformed fields degrade to the
// configured defaults.
func (e *Extractor) Extract(catalystKind string, rec ResponseRecord, current float64) Signal {
	return Signal{
		CatalystKind:      catalystKind,
		Variance:          clamp(e.variance(rec)),
		Coherence:         clamp(e.coherence(rec)),
		LatencyProxy:      clamp(e.latency(rec)),
		SelfReportedDelta: e.selfReportedDelta(rec, current),
		ObservedAt:        e.now(),
	}
}

// #endregion extract

// #region variance

// variance is the population standard deviation of the resonance weights.
func (e *Extractor) variance(rec ResponseRecord) float64 {
	if len(rec.ResonanceWeights) == 0 {
		return e.config.DefaultVariance
	}
	var sum float64
	for _, w := range rec.ResonanceWeights {
		sum += w
	}
	mean := sum / float64(len(rec.ResonanceWeights))
	var variance float64
	for _, w := range rec.ResonanceWeights {
		d := w - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(rec.ResonanceWeights)))
}

// #endregion variance

// #region coherence

func (e *Extractor) coherence(rec ResponseRecord) float64 {
	if rec.Coherence == nil {
		return e.config.DefaultCoherence
	}
	return *rec.Coherence
}

// #endregion coherence

// #region latency

// latency uses measured processing time when present, otherwise falls back
// to inverse content complexity derived from payload size.
func (e *Extractor) latency(rec ResponseRecord) float64 {
	if rec.ProcessingTime != nil {
		if e.config.TimeScale <= 0 {
			return e.config.DefaultLatency
		}
		return *rec.ProcessingTime / e.config.TimeScale
	}
	if rec.SymbolicText == "" && len(rec.SymbolicFields) == 0 {
		return e.config.DefaultLatency
	}
	var complexity float64
	if rec.SymbolicText != "" {
		complexity = math.Min(1, float64(len(rec.SymbolicText))/e.config.TextScale)
	} else {
		complexity = math.Min(1, float64(len(rec.SymbolicFields))/e.config.FieldScale)
	}
	return 1 - complexity
}

// #endregion latency

// #region self-report

// selfReportedDelta prefers an explicit self-report; without one it scans
// the resonance-weight keys for lexicon stems and scales the net count.
func (e *Extractor) selfReportedDelta(rec ResponseRecord, current float64) float64 {
	if rec.SelfReported != nil {
		return clamp(*rec.SelfReported) - current
	}
	net := 0
	for key := range rec.ResonanceWeights {
		lower := strings.ToLower(key)
		// "uncertain" contains "certain"; check the uncertainty stems first
		// and stop so a key never counts on both sides.
		if matchesAny(lower, uncertaintyStems) {
			net++
			continue
		}
		if matchesAny(lower, certaintyStems) {
			net--
		}
	}
	return float64(net) * e.config.LexiconStep
}

func matchesAny(s string, stems []string) bool {
	for _, stem := range stems {
		if strings.Contains(s, stem) {
			return true
		}
	}
	return false
}

// #endregion self-report

// #region helpers

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion helpers
