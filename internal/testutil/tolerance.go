package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/signal"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if !core.IsFinite(v) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireNoFaults fails t if any sample of seq was degraded to 0.
func RequireNoFaults(t *testing.T, seq signal.Sequence) {
	t.Helper()
	if len(seq.Faults) > 0 {
		f := seq.Faults[0]
		t.Fatalf("%d of %d samples faulted, first at t=%v: %v", len(seq.Faults), seq.Len(), f.Position, f.Err)
	}
}
