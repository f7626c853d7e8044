package signal

import (
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/expr"
)

func continuous(expression string, rate, start, end float64) Signal {
	return Signal{ID: "c", Name: "c", Expression: expression, Type: Continuous, SamplingRate: rate, StartTime: start, EndTime: end}
}

func discrete(expression string, rate, start, end float64) Signal {
	return Signal{ID: "d", Name: "d", Expression: expression, Type: Discrete, SamplingRate: rate, StartTime: start, EndTime: end}
}

func TestContinuousGridLengthAndSpacing(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		start, end float64
		mode       Mode
		want       int
	}{
		{name: "unit interval", rate: 100, start: 0, end: 1, mode: ModeAnalysis, want: 100},
		{name: "fractional floor", rate: 10, start: 0, end: 1.25, mode: ModeAnalysis, want: 12},
		{name: "symmetric", rate: 1000, start: -10, end: 10, mode: ModeAnalysis, want: 20000},
		{name: "display cap", rate: 1000, start: -10, end: 10, mode: ModeDisplay, want: 10000},
		{name: "below cap", rate: 50, start: 0, end: 2, mode: ModeDisplay, want: 100},
	}
	s := NewSampler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := s.Sample(continuous("t", tt.rate, tt.start, tt.end), tt.mode)
			if seq.Len() != tt.want {
				t.Fatalf("len = %d, want %d", seq.Len(), tt.want)
			}
			wantStep := (tt.end - tt.start) / float64(tt.want)
			if math.Abs(seq.Step-wantStep) > 1e-15 {
				t.Fatalf("step = %v, want %v", seq.Step, wantStep)
			}
			if seq.Positions[0] != tt.start {
				t.Fatalf("first position = %v, want %v", seq.Positions[0], tt.start)
			}
			for i := 1; i < seq.Len(); i++ {
				d := seq.Positions[i] - seq.Positions[i-1]
				if math.Abs(d-wantStep) > 1e-9 {
					t.Fatalf("spacing at %d = %v, want %v", i, d, wantStep)
				}
			}
			for i, v := range seq.Values {
				if v != seq.Positions[i] {
					t.Fatalf("value %d = %v, want position %v", i, v, seq.Positions[i])
				}
			}
		})
	}
}

func TestEmptyRanges(t *testing.T) {
	s := NewSampler()
	tests := []struct {
		name string
		sig  Signal
	}{
		{name: "inverted continuous", sig: continuous("t", 100, 1, 0)},
		{name: "degenerate continuous", sig: continuous("t", 100, 1, 1)},
		{name: "too short for one sample", sig: continuous("t", 1, 0, 0.5)},
		{name: "zero rate", sig: continuous("t", 0, 0, 1)},
		{name: "nan bound", sig: continuous("t", 10, math.NaN(), 1)},
		{name: "infinite span", sig: continuous("t", 10, 0, math.Inf(1))},
		{name: "inverted discrete", sig: discrete("t", 10, 1, 0)},
		{name: "discrete zero rate", sig: discrete("t", 0, 0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []Mode{ModeDisplay, ModeAnalysis} {
				seq := s.Sample(tt.sig, mode)
				if !seq.Empty() {
					t.Fatalf("%v: len = %d, want 0", mode, seq.Len())
				}
				if seq.Err() != nil {
					t.Fatalf("%v: unexpected error %v", mode, seq.Err())
				}
			}
		})
	}
}

func TestDiscreteGeneratedPositions(t *testing.T) {
	s := NewSampler()
	seq := s.Sample(discrete("t*t", 10, 0, 1), ModeAnalysis)
	if seq.Len() != 11 {
		t.Fatalf("len = %d, want 11", seq.Len())
	}
	if seq.Type != Discrete || seq.Step != 0 {
		t.Fatalf("type/step = %v/%v", seq.Type, seq.Step)
	}
	if math.Abs(seq.Positions[10]-1) > 1e-12 {
		t.Fatalf("last position = %v, want 1", seq.Positions[10])
	}
	if math.Abs(seq.Values[5]-0.25) > 1e-12 {
		t.Fatalf("value at 0.5 = %v, want 0.25", seq.Values[5])
	}
}

func TestDiscreteMinStep(t *testing.T) {
	s := NewSampler(core.WithMinStep(0.5))
	seq := s.Sample(discrete("1", 1000, 0, 2), ModeAnalysis)
	if seq.Len() != 5 {
		t.Fatalf("len = %d, want 5 (step clamped to 0.5)", seq.Len())
	}
}

func TestDiscreteDisplayCapBypassedForAnalysis(t *testing.T) {
	s := NewSampler()
	sig := discrete("1", 10, 0, 50)
	if got := s.Sample(sig, ModeDisplay).Len(); got != core.DefaultMaxDiscreteDisplayPoints {
		t.Fatalf("display len = %d, want %d", got, core.DefaultMaxDiscreteDisplayPoints)
	}
	if got := s.Sample(sig, ModeAnalysis).Len(); got != 501 {
		t.Fatalf("analysis len = %d, want 501", got)
	}
}

func TestGridsBeyondAnalysisBudgetAreEmpty(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	s := NewSamplerWithOptions([]core.Option{core.WithMaxAnalysisPoints(10)}, WithLogger(zap.New(observed)))

	if seq := s.Sample(continuous("sin(t)", 1000, 0, 1), ModeAnalysis); !seq.Empty() {
		t.Fatalf("continuous len = %d, want empty", seq.Len())
	}
	if seq := s.Sample(discrete("1", 100, 0, 1), ModeAnalysis); !seq.Empty() {
		t.Fatalf("discrete len = %d, want empty", seq.Len())
	}
	if got := logs.FilterMessage("sampling grid exceeds analysis budget, sampling as empty").Len(); got != 2 {
		t.Fatalf("budget warnings = %d, want 2", got)
	}

	// Grids at the limit are still sampled.
	if seq := s.Sample(continuous("t", 10, 0, 1), ModeAnalysis); seq.Len() != 10 {
		t.Fatalf("len = %d, want 10", seq.Len())
	}
}

func TestDefaultAnalysisBudgetRejectsHugeGrid(t *testing.T) {
	seq := NewSampler().Sample(continuous("t", 1000, 0, 1e6), ModeAnalysis)
	if !seq.Empty() {
		t.Fatalf("len = %d, want empty", seq.Len())
	}
}

func TestExplicitPoints(t *testing.T) {
	s := NewSampler(core.WithMaxDisplayPoints(3))
	sig := discrete("2*t", 1, 0, 0).WithPoints(5, 1, 3, 7)
	display := s.Sample(sig, ModeDisplay)
	if display.Len() != 3 {
		t.Fatalf("display len = %d, want 3", display.Len())
	}
	analysis := s.Sample(sig, ModeAnalysis)
	want := []float64{10, 2, 6, 14}
	if analysis.Len() != len(want) {
		t.Fatalf("analysis len = %d, want %d", analysis.Len(), len(want))
	}
	for i := range want {
		if analysis.Values[i] != want[i] {
			t.Fatalf("value %d = %v, want %v", i, analysis.Values[i], want[i])
		}
	}
	analysis.Positions[0] = -1
	if sig.Points[0] != 5 {
		t.Fatal("sequence aliases the signal points")
	}
}

func TestPointsIgnoredForContinuous(t *testing.T) {
	sig := continuous("t", 4, 0, 1).WithPoints(9, 9)
	seq := NewSampler().Sample(sig, ModeAnalysis)
	if seq.Len() != 4 {
		t.Fatalf("len = %d, want 4", seq.Len())
	}
}

func TestEvaluationFaultsDegradeToZero(t *testing.T) {
	seq := NewSampler().Sample(discrete("1/t", 1, -2, 2), ModeAnalysis)
	if seq.Len() != 5 {
		t.Fatalf("len = %d, want 5", seq.Len())
	}
	if len(seq.Faults) != 1 {
		t.Fatalf("faults = %d, want 1", len(seq.Faults))
	}
	f := seq.Faults[0]
	if f.Index != 2 || f.Position != 0 {
		t.Fatalf("fault = %+v, want index 2 at t=0", f)
	}
	if !errors.Is(f.Err, expr.ErrDivisionByZero) {
		t.Fatalf("fault err = %v, want division by zero", f.Err)
	}
	if seq.Values[2] != 0 || seq.Values[0] != -0.5 || seq.Values[4] != 0.5 {
		t.Fatalf("values = %v", seq.Values)
	}
}

func TestCompileErrorFlatZero(t *testing.T) {
	observed, logs := observer.New(zap.DebugLevel)
	s := NewSamplerWithOptions(nil, WithLogger(zap.New(observed)))
	seq := s.Sample(continuous("sin(", 10, 0, 1), ModeAnalysis)
	if seq.Len() != 10 || len(seq.Faults) != 10 {
		t.Fatalf("len/faults = %d/%d, want 10/10", seq.Len(), len(seq.Faults))
	}
	for _, v := range seq.Values {
		if v != 0 {
			t.Fatalf("value = %v, want 0", v)
		}
	}
	if !errors.Is(seq.Err(), expr.ErrSyntax) {
		t.Fatalf("Err() = %v, want syntax error", seq.Err())
	}
	if logs.Len() != 1 || logs.All()[0].Level != zap.WarnLevel {
		t.Fatalf("expected one warning, got %d entries", logs.Len())
	}
}

func TestSampleContinuousForcesGrid(t *testing.T) {
	sig := discrete("t", 4, 0, 2).WithPoints(0, 1)
	seq := NewSampler().SampleContinuous(sig, ModeAnalysis)
	if seq.Type != Continuous || seq.Len() != 8 || seq.Step != 0.25 {
		t.Fatalf("type/len/step = %v/%d/%v", seq.Type, seq.Len(), seq.Step)
	}
}

func TestModeString(t *testing.T) {
	if ModeDisplay.String() != "display" || ModeAnalysis.String() != "analysis" {
		t.Fatal("unexpected mode names")
	}
}

func TestSampleAt(t *testing.T) {
	sig := discrete("t*t", 1, -3, 3)
	positions := []float64{0.5, -2}
	seq := NewSampler().SampleAt(sig, positions)
	positions[0] = 99

	if seq.Len() != 2 || seq.Values[0] != 0.25 || seq.Values[1] != 4 {
		t.Fatalf("values = %v", seq.Values)
	}
	if seq.Positions[0] != 0.5 {
		t.Fatal("SampleAt must copy positions")
	}
	if seq.Step != 0 || seq.Duration() != 6 {
		t.Fatalf("step/duration = %v/%v", seq.Step, seq.Duration())
	}
}
