package testutil

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-signals/dsp/signal"
)

func TestDeterministicSineMatchesSampler(t *testing.T) {
	sig := signal.New("tone", "0.5*sin(2*pi*4*t)", signal.Continuous, 64, 0, 1)
	seq := signal.Sample(sig, signal.ModeAnalysis)
	want := DeterministicSine(4, 64, 0.5, 64)
	RequireSliceNearlyEqual(t, seq.Values, want, 1e-12)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(7, 0.25, 500)
	b := DeterministicNoise(7, 0.25, 500)
	c := DeterministicNoise(8, 0.25, 500)
	RequireSliceNearlyEqual(t, a, b, 0)

	differs := false
	for i, v := range a {
		if math.Abs(v) > 0.25 {
			t.Fatalf("a[%d] = %v exceeds amplitude", i, v)
		}
		if v != c[i] {
			differs = true
		}
	}
	if !differs {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDC(t *testing.T) {
	RequireSliceNearlyEqual(t, DC(-1.5, 3), []float64{-1.5, -1.5, -1.5}, 0)
	if len(DC(1, 0)) != 0 {
		t.Fatal("DC(_, 0) should be empty")
	}
}
