package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/engine"
	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description  string               `json:"description"`
	Config       FixtureConfig        `json:"config"`
	Interactions []FixtureInteraction `json:"interactions"`
}

// FixtureConfig overrides engine parameters; zero fields keep the default.
type FixtureConfig struct {
	HistoryCapacity int     `json:"history_capacity"`
	TrendWindow     int     `json:"trend_window"`
	ComponentWindow int     `json:"component_window"`
	MomentumFactor  float64 `json:"momentum_factor"`
}

// FixtureInteraction mirrors Interaction with JSON tags.
type FixtureInteraction struct {
	TurnID        string                `json:"turn_id"`
	Catalyst      string                `json:"catalyst"`
	Response      signal.ResponseRecord `json:"response"`
	OffsetSeconds float64               `json:"offset_seconds"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToEngineConfig applies the fixture overrides to the default engine config.
func (fc *FixtureConfig) ToEngineConfig() engine.Config {
	config := engine.DefaultConfig()
	if fc.HistoryCapacity > 0 {
		config.HistoryCapacity = fc.HistoryCapacity
	}
	if fc.TrendWindow > 0 {
		config.TrendWindow = fc.TrendWindow
	}
	if fc.ComponentWindow > 0 {
		config.Calc.Window = fc.ComponentWindow
	}
	if fc.MomentumFactor > 0 {
		config.Aggregate.MomentumFactor = fc.MomentumFactor
	}
	return config
}

// ToInteractions converts the fixture turns to domain interactions.
func (f *Fixture) ToInteractions() []Interaction {
	out := make([]Interaction, len(f.Interactions))
	for i, fi := range f.Interactions {
		out[i] = Interaction{
			TurnID:        fi.TurnID,
			Catalyst:      fi.Catalyst,
			Response:      fi.Response,
			OffsetSeconds: fi.OffsetSeconds,
		}
	}
	return out
}

// #endregion fixture-loader
