package component

import (
	"math"
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/pattern"
)

// #region calculator

// Calculator derives the named uncertainty components from recent history.
type Calculator struct {
	config CalcConfig
	now    func() time.Time
}

// NewCalculator creates a Calculator. now may be nil (wall clock).
func NewCalculator(config CalcConfig, now func() time.Time) *Calculator {
	if now == nil {
		now = time.Now
	}
	return &Calculator{config: config, now: now}
}

// #endregion calculator

// #region recompute

// Recompute derives all components from the most recent window of history.
// Returns nil when fewer than MinSignals signals exist; the caller skips
// aggregation for that cycle. Each returned component carries a confidence
// that ramps up with the total number of signals ever observed.
func (c *Calculator) Recompute(h *pattern.History) []Component {
	if h.Len() < c.config.MinSignals {
		return nil
	}

	window := h.Recent(c.config.Window)
	now := c.now()
	confidence := math.Min(1, float64(h.TotalSignals())/c.config.ConfidenceRamp)

	variances := make([]float64, len(window))
	latencies := make([]float64, len(window))
	coherences := make([]float64, len(window))
	for i, s := range window {
		variances[i] = s.Variance
		latencies[i] = s.LatencyProxy
		coherences[i] = s.Coherence
	}

	comps := make([]Component, 0, 5)
	add := func(name Name, value, neutral float64) {
		comps = append(comps, Component{
			Name:       name,
			Value:      value,
			Neutral:    neutral,
			Confidence: confidence,
			RecordedAt: now,
		})
	}

	// Response variance: mean observed variance. Rests at the neutral 0.5
	// an uninformative response defaults to.
	w := c.config.WeightVariance
	add(ResponseVariance, mean(variances)*w, 0.5*w)

	// State volatility: spread of the engine's own recent outputs. Needs a
	// full volatility window of recorded samples, otherwise omitted.
	if h.SampleLen() >= c.config.VolatilityWindow {
		samples := h.RecentSamples(c.config.VolatilityWindow)
		values := make([]float64, len(samples))
		for i, s := range samples {
			values[i] = s.Value
		}
		add(StateVolatility, stddev(values)*c.config.WeightVolatility, 0)
	}

	// Exploration rate: share of high-variance responses. 0.5 marks the
	// indeterminate middle band, which is also its resting point.
	w = c.config.WeightExploration
	add(ExplorationRate, mean(explorationIndicators(variances))*w, 0.5*w)

	// Integration difficulty: mean positive coherence drop between
	// consecutive signals. Rests at 0 when coherence never falls.
	add(IntegrationDifficulty, meanCoherenceDrop(coherences)*c.config.WeightIntegration, 0)

	// Choice ambivalence: spread of the latency proxy. Rests at 0.
	add(ChoiceAmbivalence, stddev(latencies)*c.config.WeightAmbivalence, 0)

	return comps
}

// #endregion recompute

// #region indicators

// explorationIndicators maps each variance to 1.0 above 0.6, 0.0 below 0.3,
// and 0.5 in between.
func explorationIndicators(variances []float64) []float64 {
	out := make([]float64, len(variances))
	for i, v := range variances {
		switch {
		case v > 0.6:
			out[i] = 1.0
		case v < 0.3:
			out[i] = 0.0
		default:
			out[i] = 0.5
		}
	}
	return out
}

// meanCoherenceDrop averages the clamped-positive coherence drops between
// consecutive signals. Returns 0 when no pair dropped.
func meanCoherenceDrop(coherences []float64) float64 {
	if len(coherences) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(coherences); i++ {
		drop := coherences[i-1] - coherences[i]
		if drop > 0 {
			sum += drop
		}
	}
	return sum / float64(len(coherences)-1)
}

// #endregion indicators

// #region stats

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev returns the population standard deviation, 0 for fewer than 2 values.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		d := v - m
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}

// #endregion stats
