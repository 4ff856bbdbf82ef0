package signal

import "time"

// #region response-record
// ResponseRecord is the structured description of how an identity responded
// to a catalyst. Every field is optional; extraction substitutes a neutral
// default for anything absent, so a zero ResponseRecord is always valid input.
type ResponseRecord struct {
	// Coherence is the identity's reported coherence level in [0,1].
	Coherence *float64 `json:"coherence,omitempty"`
	// ResonanceWeights maps named resonance patterns to their weights.
	ResonanceWeights map[string]float64 `json:"resonance_weights,omitempty"`
	// ProcessingTime is the observed response latency in seconds.
	ProcessingTime *float64 `json:"processing_time,omitempty"`
	// SymbolicText is free-form response payload, used only for size.
	SymbolicText string `json:"symbolic_text,omitempty"`
	// SymbolicFields is the structured payload variant, used only for count.
	SymbolicFields map[string]string `json:"symbolic_fields,omitempty"`
	// SelfReported is a direct self-reported uncertainty value in [0,1].
	SelfReported *float64 `json:"self_reported,omitempty"`
}

// #endregion response-record

// #region signal
// Signal is one normalized observation derived from a ResponseRecord.
// Immutable once recorded.
type Signal struct {
	CatalystKind      string
	Variance          float64 // [0,1]
	Coherence         float64 // [0,1]
	LatencyProxy      float64 // [0,1], higher = slower / more complex
	SelfReportedDelta float64 // signed, relative to the engine's current value
	ObservedAt        time.Time
}

// #endregion signal

// #region extractor-config
// ExtractorConfig holds the defaults and normalization scales for extraction.
type ExtractorConfig struct {
	DefaultVariance  float64 // used when no resonance weights are present
	DefaultCoherence float64 // used when no coherence level is present
	DefaultLatency   float64 // used when no latency evidence is present
	TextScale        float64 // payload chars per unit of content complexity
	FieldScale       float64 // payload fields per unit of content complexity
	TimeScale        float64 // processing seconds mapped to latency 1.0
	LexiconStep      float64 // delta per net lexicon hit in weight keys
}

// DefaultExtractorConfig returns the standard extraction parameters.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		DefaultVariance:  0.5,
		DefaultCoherence: 0.5,
		DefaultLatency:   0.5,
		TextScale:        400,
		FieldScale:       20,
		TimeScale:        10,
		LexiconStep:      0.1,
	}
}

// #endregion extractor-config
