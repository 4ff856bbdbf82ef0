// Package engine tracks behavioral uncertainty for a single identity. The
// engine ingests (catalyst, response) pairs and derives one bounded scalar
// from statistical properties of the observed responses: variance,
// coherence, timing, and their evolution over time.
package engine

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/aggregate"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/component"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/pattern"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/trend"
)

// #region engine

// Engine is the per-identity facade. Engines for different identities share
// nothing and may run in parallel; within one engine all operations are
// serialized by the internal lock.
type Engine struct {
	mu sync.RWMutex

	id       string
	identity string
	config   Config
	now      func() time.Time

	extractor *signal.Extractor
	calc      *component.Calculator
	agg       *aggregate.Aggregator

	history    *pattern.History
	components []component.Component
	state      aggregate.State

	pendingCatalysts int
}

// New creates an engine for one identity. now may be nil (wall clock);
// injecting a clock makes decay and drift deterministic under test.
func New(identity string, config Config, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		id:        uuid.New().String(),
		identity:  identity,
		config:    config,
		now:       now,
		extractor: signal.NewExtractor(config.Extractor, now),
		calc:      component.NewCalculator(config.Calc, now),
		agg:       aggregate.NewAggregator(config.Aggregate),
		history:   pattern.NewHistory(config.HistoryCapacity),
		state:     aggregate.NewState(0.5, now()),
	}
}

// ID returns the engine's instance ID.
func (e *Engine) ID() string { return e.id }

// Identity returns the tracked identity.
func (e *Engine) Identity() string { return e.identity }

// #endregion engine

// #region receive-catalyst

// ReceiveCatalyst acknowledges a presented catalyst. The catalyst content is
// never inspected and the uncertainty value never moves here.
func (e *Engine) ReceiveCatalyst(catalyst string) Ack {
	e.mu.Lock()
	e.pendingCatalysts++
	e.mu.Unlock()
	return Ack{Received: true, AwaitingResponse: true}
}

// #endregion receive-catalyst

// #region process-response

// ProcessResponse records one observed response and advances the engine.
// The response is reduced to a normalized signal, components are recomputed
// over the recent window, and the scalar is re-aggregated. With fewer than
// the minimum signals the aggregation step is skipped and the value is left
// where it was.
func (e *Engine) ProcessResponse(catalyst string, rec signal.ResponseRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.state = e.agg.Drift(e.state, now)

	sig := e.extractor.Extract(catalyst, rec, e.state.Current)
	e.history.Push(sig)
	if e.pendingCatalysts > 0 {
		e.pendingCatalysts--
	}

	comps := e.calc.Recompute(e.history)
	if len(comps) == 0 {
		return
	}
	e.components = comps
	e.state = e.agg.Update(e.state, comps, now)
	e.history.PushSample(pattern.Sample{
		ObservedAt: now,
		Value:      e.state.Current,
		Components: e.snapshot(comps, now),
	})
}

// #endregion process-response

// #region current

// CurrentUncertainty returns the bounded uncertainty value, applying idle
// drift first.
func (e *Engine) CurrentUncertainty() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = e.agg.Drift(e.state, e.now())
	return e.state.Current
}

// Momentum returns the smoothing residual from the last update.
func (e *Engine) Momentum() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Momentum
}

// #endregion current

// #region components

// Components returns the live component set as effective values: weighted,
// confidence-scaled, and age-decayed.
func (e *Engine) Components() map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot(e.components, e.now())
}

func (e *Engine) snapshot(comps []component.Component, now time.Time) map[string]float64 {
	out := make(map[string]float64, len(comps))
	for _, c := range comps {
		out[string(c.Name)] = e.agg.Effective(c, now)
	}
	return out
}

// #endregion components

// #region analysis

// Analysis reports the current value, its recent linear trend, and the top
// contributing components. Below the minimum signal count the report carries
// an explicit insufficient-data marker instead of computed drivers.
func (e *Engine) Analysis() Analysis {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.state = e.agg.Drift(e.state, now)

	total := e.history.TotalSignals()
	report := Analysis{
		Current:          e.state.Current,
		SampleCount:      total,
		EmergenceQuality: math.Min(1, float64(total)/e.config.QualityRamp),
	}
	if total < e.config.Calc.MinSignals {
		report.InsufficientData = true
		return report
	}

	samples := e.history.RecentSamples(e.config.TrendWindow)
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	report.TrendSlope = trend.Slope(values)

	drivers := make([]Driver, 0, len(e.components))
	for _, c := range e.components {
		drivers = append(drivers, Driver{Name: c.Name, Value: e.agg.Effective(c, now)})
	}
	sort.Slice(drivers, func(i, j int) bool {
		if drivers[i].Value != drivers[j].Value {
			return drivers[i].Value > drivers[j].Value
		}
		return drivers[i].Name < drivers[j].Name
	})
	if len(drivers) > e.config.DriverCount {
		drivers = drivers[:e.config.DriverCount]
	}
	report.PrimaryDrivers = drivers
	return report
}

// #endregion analysis

// #region sovereignty

// SovereigntyStatus reports how the value is derived: from observed behavior
// only, with no prescriptive rules and no external overrides.
func (e *Engine) SovereigntyStatus() SovereigntyStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return SovereigntyStatus{
		Identity:          e.identity,
		EngineID:          e.id,
		Phase:             e.phaseLocked(),
		BehaviorSourced:   true,
		PrescriptiveRules: false,
		ExternalOverrides: false,
		ObservationCount:  e.history.TotalSignals(),
	}
}

// #endregion sovereignty

// #region phase

// Phase returns the engine's observation phase.
func (e *Engine) Phase() Phase {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.phaseLocked()
}

func (e *Engine) phaseLocked() Phase {
	total := e.history.TotalSignals()
	switch {
	case total == 0:
		return PhaseCold
	case total < e.config.Calc.MinSignals:
		return PhaseWarming
	default:
		return PhaseActive
	}
}

// #endregion phase

// #region reset

// Reset returns the engine to its cold state without reconstruction. The
// engine ID and identity are retained; history, components, and the value
// are discarded.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history = pattern.NewHistory(e.config.HistoryCapacity)
	e.components = nil
	e.state = aggregate.NewState(e.state.Baseline, e.now())
	e.pendingCatalysts = 0
}

// #endregion reset
