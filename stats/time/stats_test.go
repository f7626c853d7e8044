package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-signals/internal/testutil"
)

func TestCalculateEmpty(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Fatalf("Calculate(nil) = %+v, want zero", s)
	}
}

func TestCalculateSine(t *testing.T) {
	sine := testutil.DeterministicSine(10, 1000, 2, 1000)
	s := Calculate(sine)
	if s.Length != 1000 {
		t.Fatalf("Length = %d", s.Length)
	}
	if math.Abs(s.RMS-2/math.Sqrt2) > 1e-9 {
		t.Fatalf("RMS = %v, want %v", s.RMS, 2/math.Sqrt2)
	}
	if math.Abs(s.Peak-2) > 1e-9 {
		t.Fatalf("Peak = %v, want 2", s.Peak)
	}
	if math.Abs(s.Energy-2000) > 1e-6 {
		t.Fatalf("Energy = %v, want 2000", s.Energy)
	}
	if math.Abs(s.Power-2) > 1e-9 {
		t.Fatalf("Power = %v, want 2", s.Power)
	}
	if math.Abs(s.DC) > 1e-9 {
		t.Fatalf("DC = %v, want 0", s.DC)
	}
	if s.ZeroCrossings < 18 || s.ZeroCrossings > 20 {
		t.Fatalf("ZeroCrossings = %d, want ~19", s.ZeroCrossings)
	}
	if math.Abs(s.CrestFactor-math.Sqrt2) > 1e-6 {
		t.Fatalf("CrestFactor = %v, want sqrt2", s.CrestFactor)
	}
}

func TestSumSquares(t *testing.T) {
	if got := SumSquares([]float64{1, -2, 3}); got != 14 {
		t.Fatalf("SumSquares = %v, want 14", got)
	}
	if got := SumSquares(nil); got != 0 {
		t.Fatalf("SumSquares(nil) = %v, want 0", got)
	}
	if got := RMS(testutil.DC(-3, 8)); got != 3 {
		t.Fatalf("RMS = %v, want 3", got)
	}
}

func TestHalfPeriodic(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   bool
	}{
		{name: "empty", values: nil, want: true},
		{name: "single", values: []float64{5}, want: true},
		{name: "repeated halves", values: []float64{1, 2, 3, 1, 2, 3}, want: true},
		{name: "within eps", values: []float64{1, 2, 1.005, 2.005}, want: true},
		{name: "at eps", values: []float64{0, 0.01}, want: false},
		{name: "odd length ignores last", values: []float64{1, 2, 1, 2, 99}, want: true},
		{name: "shifted", values: []float64{1, 2, 2, 1}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HalfPeriodic(tt.values, 0.01); got != tt.want {
				t.Fatalf("HalfPeriodic(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSymmetry(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		even, odd bool
	}{
		{name: "zeros are both", values: []float64{0, 0, 0, 0}, even: true, odd: true},
		{name: "palindrome", values: []float64{1, 2, 3, 2, 1}, even: true},
		{name: "antisymmetric", values: []float64{-2, -1, 0, 1, 2}, odd: true},
		{name: "neither", values: []float64{1, 2, 3}},
		{name: "odd needs zero centre", values: []float64{-1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Even(tt.values, 0.01); got != tt.even {
				t.Fatalf("Even(%v) = %v, want %v", tt.values, got, tt.even)
			}
			if got := Odd(tt.values, 0.01); got != tt.odd {
				t.Fatalf("Odd(%v) = %v, want %v", tt.values, got, tt.odd)
			}
		})
	}
}

func TestNaNNeverMatches(t *testing.T) {
	v := []float64{math.NaN(), math.NaN()}
	if HalfPeriodic(v, 1) || Even(v, 1) || Odd(v, 1) {
		t.Fatal("NaN samples must not satisfy tolerance checks")
	}
}
