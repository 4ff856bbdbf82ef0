package pattern

import (
	"testing"
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/signal"
)

func makeSignal(variance float64) signal.Signal {
	return signal.Signal{
		Variance:   variance,
		Coherence:  0.5,
		ObservedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPushAndRecentOrder(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 5; i++ {
		h.Push(makeSignal(float64(i) / 10))
	}

	if h.Len() != 5 {
		t.Fatalf("expected len 5, got %d", h.Len())
	}

	recent := h.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("expected 3 signals, got %d", len(recent))
	}
	// Oldest to newest: variances 0.2, 0.3, 0.4.
	for i, want := range []float64{0.2, 0.3, 0.4} {
		if recent[i].Variance != want {
			t.Fatalf("wrong order at %d: expected %f, got %f", i, want, recent[i].Variance)
		}
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	capacity := 10
	h := NewHistory(capacity)
	for i := 0; i < capacity+50; i++ {
		h.Push(makeSignal(float64(i)))
	}

	if h.Len() != capacity {
		t.Fatalf("expected len %d after overflow, got %d", capacity, h.Len())
	}
	if h.TotalSignals() != capacity+50 {
		t.Fatalf("expected total %d, got %d", capacity+50, h.TotalSignals())
	}

	// The earliest 50 signals must no longer be visible.
	recent := h.Recent(capacity)
	if recent[0].Variance != 50 {
		t.Fatalf("expected oldest retained variance 50, got %f", recent[0].Variance)
	}
	if recent[capacity-1].Variance != float64(capacity+49) {
		t.Fatalf("expected newest variance %d, got %f", capacity+49, recent[capacity-1].Variance)
	}
}

func TestRecentMoreThanLen(t *testing.T) {
	h := NewHistory(10)
	h.Push(makeSignal(0.1))
	h.Push(makeSignal(0.2))

	recent := h.Recent(100)
	if len(recent) != 2 {
		t.Fatalf("expected 2 signals, got %d", len(recent))
	}
}

func TestSampleBufferIndependent(t *testing.T) {
	h := NewHistory(3)
	h.Push(makeSignal(0.1))

	for i := 0; i < 5; i++ {
		h.PushSample(Sample{Value: float64(i) / 10})
	}

	if h.Len() != 1 {
		t.Fatalf("signal buffer affected by samples: len %d", h.Len())
	}
	if h.SampleLen() != 3 {
		t.Fatalf("expected sample len 3, got %d", h.SampleLen())
	}

	samples := h.RecentSamples(3)
	for i, want := range []float64{0.2, 0.3, 0.4} {
		if samples[i].Value != want {
			t.Fatalf("wrong sample at %d: expected %f, got %f", i, want, samples[i].Value)
		}
	}
}

func TestNonPositiveCapacityFallsBack(t *testing.T) {
	h := NewHistory(0)
	if h.Capacity() != DefaultCapacity {
		t.Fatalf("expected default capacity %d, got %d", DefaultCapacity, h.Capacity())
	}
}
