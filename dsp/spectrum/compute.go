package spectrum

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/signal"
	"github.com/cwbudde/algo-signals/dsp/window"
)

// Spectrum is the magnitude and phase spectrum of a sampled signal.
//
// Bin k has frequency k*rate/N, magnitude |X[k]|/N and phase arg(X[k]) in
// radians. All N bins are kept, so the upper half mirrors the lower half for
// real input.
type Spectrum struct {
	Frequencies []float64
	Magnitudes  []float64
	Phases      []float64
	SampleRate  float64
	Backend     Backend
	Window      window.Type
}

// Len returns the number of bins.
func (s Spectrum) Len() int { return len(s.Magnitudes) }

// Peak returns the frequency and magnitude of the largest bin with
// k <= N/2 and frequency >= minFreq. ok is false if no bin qualifies.
func (s Spectrum) Peak(minFreq float64) (freq, mag float64, ok bool) {
	k, ok := s.PeakIndex(minFreq)
	if !ok {
		return 0, 0, false
	}
	return s.Frequencies[k], s.Magnitudes[k], true
}

// PeakIndex returns the bin index Peak reports.
func (s Spectrum) PeakIndex(minFreq float64) (int, bool) {
	n := s.Len()
	if n == 0 {
		return 0, false
	}

	lo := 0
	for lo < n && s.Frequencies[lo] < minFreq {
		lo++
	}
	hi := n/2 + 1
	if hi > n {
		hi = n
	}
	if lo >= hi {
		return 0, false
	}
	return lo + floats.MaxIdx(s.Magnitudes[lo:hi]), true
}

// Engine computes spectra with a fixed sampler configuration.
type Engine struct {
	sampler *signal.Sampler
	window  window.Type
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWindow tapers the samples before the transform. Magnitudes are
// divided by the window's coherent gain so a bin-centred tone keeps its
// amplitude.
func WithWindow(t window.Type) EngineOption {
	return func(e *Engine) {
		e.window = t
	}
}

// NewEngine creates an engine around sampler. A nil sampler uses the
// default configuration.
func NewEngine(sampler *signal.Sampler, opts ...EngineOption) *Engine {
	if sampler == nil {
		sampler = signal.NewSampler()
	}
	e := &Engine{sampler: sampler, window: window.Rectangular}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute samples sig on its uniform grid in analysis mode, whatever its
// type, and returns the magnitude spectrum. An empty grid yields an empty
// spectrum and no error.
func (e *Engine) Compute(sig signal.Signal) (Spectrum, error) {
	seq := e.sampler.SampleContinuous(sig, signal.ModeAnalysis)
	limit := e.sampler.Config().DirectDFTLimit
	if e.window == window.Rectangular || seq.Empty() {
		return FromValues(seq.Values, sig.SamplingRate, limit)
	}

	gain := window.Apply(e.window, seq.Values)
	s, err := FromValues(seq.Values, sig.SamplingRate, limit)
	if err != nil {
		return Spectrum{}, err
	}
	if gain > 0 {
		floats.Scale(1/gain, s.Magnitudes)
	}
	s.Window = e.window
	return s, nil
}

// Compute is a one-shot spectrum with a sampler built from opts.
func Compute(sig signal.Signal, opts ...core.Option) (Spectrum, error) {
	return NewEngine(signal.NewSampler(opts...)).Compute(sig)
}

// FromValues transforms uniformly spaced samples taken at rate.
func FromValues(values []float64, rate float64, directLimit int) (Spectrum, error) {
	n := len(values)
	if n == 0 {
		return Spectrum{SampleRate: rate, Window: window.Rectangular}, nil
	}

	bins, backend, err := Transform(values, directLimit)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum of %d samples: %w", n, err)
	}

	freqs := make([]float64, n)
	for k := range freqs {
		freqs[k] = float64(k) * rate / float64(n)
	}

	return Spectrum{
		Frequencies: freqs,
		Magnitudes:  ScaledMagnitude(bins, 1/float64(n)),
		Phases:      Phase(bins),
		SampleRate:  rate,
		Backend:     backend,
		Window:      window.Rectangular,
	}, nil
}
