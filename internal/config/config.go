// Package config loads engine configuration from a YAML file, with every
// omitted field falling back to the built-in default.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/engine"
)

// #region file
// File is the YAML shape of an engine configuration. Zero fields keep the
// built-in default.
type File struct {
	HistoryCapacity      int     `yaml:"history_capacity"`
	ComponentWindow      int     `yaml:"component_window"`
	VolatilityWindow     int     `yaml:"volatility_window"`
	ConfidenceRamp       float64 `yaml:"confidence_ramp"`
	MomentumFactor       float64 `yaml:"momentum_factor"`
	IdleThresholdSeconds float64 `yaml:"idle_threshold_seconds"`
	DecayHorizonSeconds  float64 `yaml:"decay_horizon_seconds"`
	TrendWindow          int     `yaml:"trend_window"`

	Weights struct {
		Variance    float64 `yaml:"variance"`
		Volatility  float64 `yaml:"volatility"`
		Exploration float64 `yaml:"exploration"`
		Integration float64 `yaml:"integration"`
		Ambivalence float64 `yaml:"ambivalence"`
	} `yaml:"weights"`
}

// #endregion file

// #region load

// Load reads a YAML config file and merges it over the defaults.
func Load(path string) (engine.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return engine.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f.Merge(engine.DefaultConfig()), nil
}

// FromEnv loads the config file named by envVar, or the defaults when the
// variable is unset.
func FromEnv(envVar string) (engine.Config, error) {
	path := os.Getenv(envVar)
	if path == "" {
		return engine.DefaultConfig(), nil
	}
	return Load(path)
}

// Merge applies the file's non-zero fields over base.
func (f File) Merge(base engine.Config) engine.Config {
	if f.HistoryCapacity > 0 {
		base.HistoryCapacity = f.HistoryCapacity
	}
	if f.ComponentWindow > 0 {
		base.Calc.Window = f.ComponentWindow
	}
	if f.VolatilityWindow > 0 {
		base.Calc.VolatilityWindow = f.VolatilityWindow
	}
	if f.ConfidenceRamp > 0 {
		base.Calc.ConfidenceRamp = f.ConfidenceRamp
	}
	if f.MomentumFactor > 0 {
		base.Aggregate.MomentumFactor = f.MomentumFactor
	}
	if f.IdleThresholdSeconds > 0 {
		base.Aggregate.IdleThreshold = time.Duration(f.IdleThresholdSeconds * float64(time.Second))
	}
	if f.DecayHorizonSeconds > 0 {
		base.Aggregate.DecayHorizon = time.Duration(f.DecayHorizonSeconds * float64(time.Second))
	}
	if f.TrendWindow > 0 {
		base.TrendWindow = f.TrendWindow
	}
	if f.Weights.Variance > 0 {
		base.Calc.WeightVariance = f.Weights.Variance
	}
	if f.Weights.Volatility > 0 {
		base.Calc.WeightVolatility = f.Weights.Volatility
	}
	if f.Weights.Exploration > 0 {
		base.Calc.WeightExploration = f.Weights.Exploration
	}
	if f.Weights.Integration > 0 {
		base.Calc.WeightIntegration = f.Weights.Integration
	}
	if f.Weights.Ambivalence > 0 {
		base.Calc.WeightAmbivalence = f.Weights.Ambivalence
	}
	return base
}

// #endregion load
