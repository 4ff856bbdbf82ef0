package component

import "time"

// #region name
// Name identifies one uncertainty component.
type Name string

const (
	ResponseVariance      Name = "response_variance"
	StateVolatility       Name = "state_volatility"
	ExplorationRate       Name = "exploration_rate"
	IntegrationDifficulty Name = "integration_difficulty"
	ChoiceAmbivalence     Name = "choice_ambivalence"
)

// #endregion name

// #region component
// Component is one named statistical contributor to the aggregate
// uncertainty value. A recompute replaces the previous set wholesale.
type Component struct {
	Name       Name
	Value      float64 // weighted component value
	Neutral    float64 // resting value under quiet input; contributions are measured against it
	Confidence float64 // [0,1], ramps up with history size
	RecordedAt time.Time
}

// #endregion component

// #region calc-config
// CalcConfig holds the windows and weights for component computation.
type CalcConfig struct {
	MinSignals       int     // minimum signals before any computation (default 3)
	Window           int     // signals considered per recompute (default 10)
	VolatilityWindow int     // uncertainty samples for volatility (default 5)
	ConfidenceRamp   float64 // signals needed for full confidence (default 20)

	WeightVariance    float64 // default 1.2
	WeightVolatility  float64 // default 1.1
	WeightExploration float64 // default 1.3
	WeightIntegration float64 // default 1.0
	WeightAmbivalence float64 // default 1.4
}

// DefaultCalcConfig returns the standard component parameters.
func DefaultCalcConfig() CalcConfig {
	return CalcConfig{
		MinSignals:        3,
		Window:            10,
		VolatilityWindow:  5,
		ConfidenceRamp:    20,
		WeightVariance:    1.2,
		WeightVolatility:  1.1,
		WeightExploration: 1.3,
		WeightIntegration: 1.0,
		WeightAmbivalence: 1.4,
	}
}

// #endregion calc-config
