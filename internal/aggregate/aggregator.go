package aggregate

import (
	"math"
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/component"
)

// #region aggregator

// Aggregator folds the current component set into the uncertainty scalar.
// All methods are pure: they take a State and return the next one.
type Aggregator struct {
	config Config
}

// NewAggregator creates an Aggregator with the given configuration.
func NewAggregator(config Config) *Aggregator {
	return &Aggregator{config: config}
}

// #endregion aggregator

// #region update

// Update computes the momentum-smoothed next state from the component set.
// Each component contributes its deviation from its resting value, scaled by
// confidence and age decay, so quiet input pulls the target below baseline
// and erratic input pushes it above. With no components the state is
// returned unchanged.
func (a *Aggregator) Update(st State, comps []component.Component, now time.Time) State {
	if len(comps) == 0 {
		return st
	}

	target := st.Baseline
	for _, c := range comps {
		target += (c.Value - c.Neutral) * c.Confidence * a.ageDecay(c, now)
	}

	m := a.config.MomentumFactor
	next := clamp(m*st.Current + (1-m)*target)

	st.Momentum = next - target
	st.Current = next
	st.LastUpdate = now
	return st
}

// Effective returns a component's contribution magnitude as reported to
// callers: value scaled by confidence and age decay, without centering.
func (a *Aggregator) Effective(c component.Component, now time.Time) float64 {
	return c.Value * c.Confidence * a.ageDecay(c, now)
}

// ageDecay discounts a component by its age, bottoming out at the decay
// floor so stale components still contribute minimally, never zero.
func (a *Aggregator) ageDecay(c component.Component, now time.Time) float64 {
	age := now.Sub(c.RecordedAt).Seconds()
	if age < 0 {
		age = 0
	}
	return math.Max(a.config.DecayFloor, 1-age/a.config.DecayHorizon.Seconds())
}

// #endregion update

// #region drift

// Drift relaxes the value toward baseline after a quiet period. The step is
// capped both by DriftCap and by the remaining distance, so the value never
// crosses the baseline. A no-op inside the idle threshold.
func (a *Aggregator) Drift(st State, now time.Time) State {
	elapsed := now.Sub(st.LastUpdate)
	if elapsed <= a.config.IdleThreshold {
		return st
	}

	step := math.Min(a.config.DriftCap, elapsed.Hours()) * a.config.DriftRate
	gap := st.Baseline - st.Current
	if math.Abs(gap) <= step {
		st.Current = st.Baseline
	} else if gap > 0 {
		st.Current += step
	} else {
		st.Current -= step
	}
	st.Current = clamp(st.Current)
	st.LastUpdate = now
	return st
}

// #endregion drift

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
