package engine

import (
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/aggregate"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/component"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
)

// #region phase
// Phase describes how much observed behavior backs the current value.
type Phase string

const (
	PhaseCold    Phase = "cold"    // no signals yet, value rests at baseline
	PhaseWarming Phase = "warming" // some signals, components not yet computable
	PhaseActive  Phase = "active"  // components computed and aggregated each cycle
)

// #endregion phase

// #region ack
// Ack acknowledges a presented catalyst. Pure bookkeeping; receiving a
// catalyst never moves the uncertainty value.
type Ack struct {
	Received         bool `json:"received"`
	AwaitingResponse bool `json:"awaiting_response"`
}

// #endregion ack

// #region driver
// Driver is one component ranked by its effective contribution.
type Driver struct {
	Name  component.Name `json:"name"`
	Value float64        `json:"value"`
}

// #endregion driver

// #region analysis
// Analysis is the diagnostic report over recent engine behavior.
type Analysis struct {
	Current          float64  `json:"current"`
	TrendSlope       float64  `json:"trend_slope"`
	PrimaryDrivers   []Driver `json:"primary_drivers,omitempty"`
	SampleCount      int      `json:"sample_count"`
	EmergenceQuality float64  `json:"emergence_quality"`
	InsufficientData bool     `json:"insufficient_data,omitempty"`
}

// #endregion analysis

// #region sovereignty
// SovereigntyStatus states how the value is derived. BehaviorSourced is
// always true and PrescriptiveRules always false: the engine only measures
// statistics of observed responses, never what a catalyst "should" cause.
type SovereigntyStatus struct {
	Identity          string `json:"identity"`
	EngineID          string `json:"engine_id"`
	Phase             Phase  `json:"phase"`
	BehaviorSourced   bool   `json:"behavior_sourced"`
	PrescriptiveRules bool   `json:"prescriptive_rules"`
	ExternalOverrides bool   `json:"external_overrides"`
	ObservationCount  int    `json:"observation_count"`
}

// #endregion sovereignty

// #region config
// Config bundles the full parameter set for one engine.
type Config struct {
	HistoryCapacity int
	TrendWindow     int // samples considered for the trend slope
	DriverCount     int // components reported as primary drivers
	QualityRamp     float64

	Extractor signal.ExtractorConfig
	Calc      component.CalcConfig
	Aggregate aggregate.Config
}

// DefaultConfig returns the standard engine parameters.
func DefaultConfig() Config {
	return Config{
		HistoryCapacity: 100,
		TrendWindow:     20,
		DriverCount:     3,
		QualityRamp:     50,
		Extractor:       signal.DefaultExtractorConfig(),
		Calc:            component.DefaultCalcConfig(),
		Aggregate:       aggregate.DefaultConfig(),
	}
}

// #endregion config
