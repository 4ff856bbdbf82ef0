package aggregate

import "time"

// #region state
// State is the single bounded uncertainty scalar and its update bookkeeping.
// Current is always in [0,1]. Mutated only through Aggregator.
type State struct {
	Current    float64
	Momentum   float64 // smoothed minus target, diagnostics only
	Baseline   float64
	LastUpdate time.Time
}

// NewState returns a State resting at the baseline.
func NewState(baseline float64, now time.Time) State {
	return State{
		Current:    baseline,
		Baseline:   baseline,
		LastUpdate: now,
	}
}

// #endregion state

// #region config
// Config holds the smoothing, decay, and drift parameters.
type Config struct {
	MomentumFactor float64       // weight of the previous value (default 0.8)
	DecayHorizon   time.Duration // component age at which decay bottoms out (default 1h)
	DecayFloor     float64       // minimum age decay, never zero (default 0.1)
	IdleThreshold  time.Duration // quiet period before drift applies (default 60s)
	DriftCap       float64       // cap on the elapsed-hours drift term (default 0.1)
	DriftRate      float64       // fraction of the drift term applied per call (default 0.1)
}

// DefaultConfig returns the standard aggregation parameters.
func DefaultConfig() Config {
	return Config{
		MomentumFactor: 0.8,
		DecayHorizon:   time.Hour,
		DecayFloor:     0.1,
		IdleThreshold:  60 * time.Second,
		DriftCap:       0.1,
		DriftRate:      0.1,
	}
}

// #endregion config
