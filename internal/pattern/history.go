package pattern

import (
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
)

// DefaultCapacity is the per-buffer retention when none is configured.
const DefaultCapacity = 100

// #region sample
// Sample is one recorded uncertainty output with its component snapshot.
type Sample struct {
	ObservedAt time.Time
	Value      float64
	Components map[string]float64
}

// #endregion sample

// #region history

// History holds the bounded, insertion-ordered observation buffers for one
// identity: raw signals and computed uncertainty samples. Both buffers evict
// the oldest entry once capacity is reached. History holds no locks; the
// owning engine serializes access.
type History struct {
	capacity int

	signals []signal.Signal
	sigHead int
	sigLen  int

	samples []Sample
	samHead int
	samLen  int

	totalSignals int
	totalSamples int
}

// NewHistory creates a History with the given capacity for each buffer.
// Non-positive capacity falls back to DefaultCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		capacity: capacity,
		signals:  make([]signal.Signal, capacity),
		samples:  make([]Sample, capacity),
	}
}

// #endregion history

// #region push

// Push records a signal, evicting the oldest when the buffer is full.
func (h *History) Push(s signal.Signal) {
	idx := (h.sigHead + h.sigLen) % h.capacity
	h.signals[idx] = s
	if h.sigLen < h.capacity {
		h.sigLen++
	} else {
		h.sigHead = (h.sigHead + 1) % h.capacity
	}
	h.totalSignals++
}

// PushSample records a computed uncertainty sample, evicting the oldest when
// the buffer is full.
func (h *History) PushSample(s Sample) {
	idx := (h.samHead + h.samLen) % h.capacity
	h.samples[idx] = s
	if h.samLen < h.capacity {
		h.samLen++
	} else {
		h.samHead = (h.samHead + 1) % h.capacity
	}
	h.totalSamples++
}

// #endregion push

// #region recent

// Recent returns up to k signals ordered oldest to newest.
func (h *History) Recent(k int) []signal.Signal {
	if k > h.sigLen {
		k = h.sigLen
	}
	if k <= 0 {
		return nil
	}
	out := make([]signal.Signal, k)
	start := h.sigLen - k
	for i := 0; i < k; i++ {
		out[i] = h.signals[(h.sigHead+start+i)%h.capacity]
	}
	return out
}

// RecentSamples returns up to k uncertainty samples ordered oldest to newest.
func (h *History) RecentSamples(k int) []Sample {
	if k > h.samLen {
		k = h.samLen
	}
	if k <= 0 {
		return nil
	}
	out := make([]Sample, k)
	start := h.samLen - k
	for i := 0; i < k; i++ {
		out[i] = h.samples[(h.samHead+start+i)%h.capacity]
	}
	return out
}

// #endregion recent

// #region counters

// Len returns the number of signals currently retained.
func (h *History) Len() int { return h.sigLen }

// SampleLen returns the number of uncertainty samples currently retained.
func (h *History) SampleLen() int { return h.samLen }

// Capacity returns the configured per-buffer capacity.
func (h *History) Capacity() int { return h.capacity }

// TotalSignals counts every signal ever pushed, surviving eviction.
func (h *History) TotalSignals() int { return h.totalSignals }

// TotalSamples counts every sample ever pushed, surviving eviction.
func (h *History) TotalSamples() int { return h.totalSamples }

// #endregion counters
