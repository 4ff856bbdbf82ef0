package aggregate

import (
	"math"
	"testing"
	"time"

	"github.com/danielpatrickdp/emergence-field/go-engine/internal/component"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func comp(name component.Name, value, neutral, confidence float64, at time.Time) component.Component {
	return component.Component{
		Name:       name,
		Value:      value,
		Neutral:    neutral,
		Confidence: confidence,
		RecordedAt: at,
	}
}

func TestUpdateNoComponentsLeavesStateUnchanged(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)

	next := a.Update(st, nil, t0.Add(time.Second))
	if next != st {
		t.Fatalf("expected unchanged state, got %+v", next)
	}
}

func TestUpdateMomentumSmoothing(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)

	// Single fresh component contributing 0.9 over baseline:
	// target = 0.5 + 0.9 = 1.4, smoothed = 0.8*0.5 + 0.2*1.4 = 0.68.
	comps := []component.Component{comp(component.StateVolatility, 0.9, 0, 1, t0)}
	next := a.Update(st, comps, t0)

	if math.Abs(next.Current-0.68) > 1e-9 {
		t.Fatalf("expected 0.68, got %f", next.Current)
	}
	if math.Abs(next.Momentum-(0.68-1.4)) > 1e-9 {
		t.Fatalf("expected momentum %f, got %f", 0.68-1.4, next.Momentum)
	}
	if !next.LastUpdate.Equal(t0) {
		t.Fatalf("expected last update at t0, got %v", next.LastUpdate)
	}
}

func TestUpdateNeutralComponentHoldsBaseline(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)

	// A component resting at its neutral point contributes nothing.
	comps := []component.Component{comp(component.ResponseVariance, 0.6, 0.6, 1, t0)}
	next := a.Update(st, comps, t0)

	if next.Current != 0.5 {
		t.Fatalf("expected baseline hold, got %f", next.Current)
	}
}

func TestUpdateClampsToUnitRange(t *testing.T) {
	a := NewAggregator(DefaultConfig())

	st := NewState(0.5, t0)
	st.Current = 0.95
	comps := []component.Component{comp(component.StateVolatility, 50, 0, 1, t0)}
	next := a.Update(st, comps, t0)
	if next.Current != 1 {
		t.Fatalf("expected clamp to 1, got %f", next.Current)
	}

	st.Current = 0.05
	comps = []component.Component{comp(component.ResponseVariance, 0, 50, 1, t0)}
	next = a.Update(st, comps, t0)
	if next.Current != 0 {
		t.Fatalf("expected clamp to 0, got %f", next.Current)
	}
}

func TestConfidenceDampensContribution(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)

	full := a.Update(st, []component.Component{comp(component.StateVolatility, 0.5, 0, 1, t0)}, t0)
	half := a.Update(st, []component.Component{comp(component.StateVolatility, 0.5, 0, 0.5, t0)}, t0)

	if half.Current >= full.Current {
		t.Fatalf("half confidence should contribute less: %f >= %f", half.Current, full.Current)
	}
}

func TestAgeDecayFloorsAtMinimum(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)

	// A two-hour-old component still contributes at the 0.1 floor.
	old := comp(component.StateVolatility, 1, 0, 1, t0)
	now := t0.Add(2 * time.Hour)
	next := a.Update(st, []component.Component{old}, now)

	// target = 0.5 + 1*1*0.1 = 0.6, smoothed = 0.8*0.5 + 0.2*0.6 = 0.52.
	if math.Abs(next.Current-0.52) > 1e-9 {
		t.Fatalf("expected 0.52 at decay floor, got %f", next.Current)
	}
}

func TestEffectiveValueUsesAgeDecay(t *testing.T) {
	a := NewAggregator(DefaultConfig())

	c := comp(component.ResponseVariance, 0.8, 0.6, 0.5, t0)
	// 30 minutes old: decay 0.5. Effective = 0.8 * 0.5 * 0.5.
	got := a.Effective(c, t0.Add(30*time.Minute))
	if math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("expected 0.2, got %f", got)
	}
}

func TestDriftNoOpInsideIdleThreshold(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)
	st.Current = 0.9

	next := a.Drift(st, t0.Add(30*time.Second))
	if next.Current != 0.9 {
		t.Fatalf("expected no drift inside threshold, got %f", next.Current)
	}
	if !next.LastUpdate.Equal(t0) {
		t.Fatal("drift no-op must not touch last update")
	}
}

func TestDriftPullsTowardBaseline(t *testing.T) {
	a := NewAggregator(DefaultConfig())

	st := NewState(0.5, t0)
	st.Current = 0.9
	next := a.Drift(st, t0.Add(2*time.Hour))
	// Step = min(0.1, 2.0) * 0.1 = 0.01 toward baseline.
	if math.Abs(next.Current-0.89) > 1e-9 {
		t.Fatalf("expected 0.89, got %f", next.Current)
	}

	st.Current = 0.2
	next = a.Drift(st, t0.Add(2*time.Hour))
	if math.Abs(next.Current-0.21) > 1e-9 {
		t.Fatalf("expected 0.21, got %f", next.Current)
	}
}

func TestDriftNeverOvershootsBaseline(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)
	st.Current = 0.505

	next := a.Drift(st, t0.Add(2*time.Hour))
	if next.Current != 0.5 {
		t.Fatalf("expected snap to baseline, got %f", next.Current)
	}
}

func TestDriftScalesWithShortIdleGaps(t *testing.T) {
	a := NewAggregator(DefaultConfig())
	st := NewState(0.5, t0)
	st.Current = 0.9

	// 6 minutes idle: step = 0.1h * 0.1 = 0.01... min(0.1, 0.1)=0.1 -> 0.01.
	// 90 seconds idle: step = 0.025h * 0.1 = 0.0025.
	next := a.Drift(st, t0.Add(90*time.Second))
	if math.Abs(next.Current-0.8975) > 1e-9 {
		t.Fatalf("expected 0.8975, got %f", next.Current)
	}
}
