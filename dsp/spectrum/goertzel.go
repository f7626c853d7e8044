package spectrum

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-signals/dsp/signal"
)

// ErrProbeFrequency is returned when a probe frequency is outside [0, rate/2].
var ErrProbeFrequency = errors.New("spectrum: probe frequency out of range")

// Goertzel evaluates a single DFT term with the second-order Goertzel
// recurrence. It is stateful: Power and Magnitude cover every sample fed
// since the last Reset.
type Goertzel struct {
	coeff  float64
	s0, s1 float64
	n      int
}

// NewGoertzel creates an evaluator for frequency at rate.
func NewGoertzel(frequency, rate float64) (*Goertzel, error) {
	if !(rate > 0) || math.IsInf(rate, 0) {
		return nil, fmt.Errorf("%w: sampling rate %v", ErrProbeFrequency, rate)
	}
	if !(frequency >= 0 && frequency <= rate/2) {
		return nil, fmt.Errorf("%w: %v not in [0, %v]", ErrProbeFrequency, frequency, rate/2)
	}
	return &Goertzel{coeff: 2 * math.Cos(2*math.Pi*frequency/rate)}, nil
}

// Reset clears the recurrence state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X(f)|^2 over the samples fed so far.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns |X(f)|/N, on the same scale as Spectrum magnitudes.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 || g.n == 0 {
		return 0
	}
	return math.Sqrt(p) / float64(g.n)
}

// Probe returns the normalized magnitude of sig at one frequency without
// computing the full spectrum. On a bin frequency it matches that bin of
// Compute.
func (e *Engine) Probe(sig signal.Signal, frequency float64) (float64, error) {
	g, err := NewGoertzel(frequency, sig.SamplingRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(e.sampler.SampleContinuous(sig, signal.ModeAnalysis).Values)
	return g.Magnitude(), nil
}
