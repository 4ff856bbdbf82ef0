// Package replay runs a recorded interaction sequence through a fresh engine
// under a synthetic clock. Replaying the same fixture twice must produce
// identical trajectories; cmd/replay uses that as an operational
// determinism check.
package replay

import (
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/engine"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
)

// #region types
// Interaction is a single recorded (catalyst, response) turn.
type Interaction struct {
	TurnID        string
	Catalyst      string
	Response      signal.ResponseRecord
	OffsetSeconds float64 // observation time relative to run start
}

// Step captures the engine output after one replayed interaction.
type Step struct {
	TurnID     string
	Value      float64
	Phase      engine.Phase
	Components map[string]float64
}

// Summary aggregates a replay run.
type Summary struct {
	TotalTurns int
	FinalValue float64
	FinalPhase engine.Phase
}

// #endregion types

// #region replay

// Replay feeds the interactions to a fresh engine in order, advancing a
// synthetic clock by each interaction's offset, and returns the per-turn
// trajectory. Operates entirely in-memory.
func Replay(config engine.Config, start time.Time, interactions []Interaction) []Step {
	clock := start
	now := func() time.Time { return clock }
	eng := engine.New("replay", config, now)

	steps := make([]Step, 0, len(interactions))
	for _, inter := range interactions {
		clock = start.Add(time.Duration(inter.OffsetSeconds * float64(time.Second)))
		eng.ReceiveCatalyst(inter.Catalyst)
		eng.ProcessResponse(inter.Catalyst, inter.Response)
		steps = append(steps, Step{
			TurnID:     inter.TurnID,
			Value:      eng.CurrentUncertainty(),
			Phase:      eng.Phase(),
			Components: eng.Components(),
		})
	}
	return steps
}

// Summarize reduces a trajectory to its end state.
func Summarize(steps []Step) Summary {
	s := Summary{TotalTurns: len(steps)}
	if len(steps) > 0 {
		last := steps[len(steps)-1]
		s.FinalValue = last.Value
		s.FinalPhase = last.Phase
	}
	return s
}

// #endregion replay
