package analysis

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/signal"
	sigtime "github.com/cwbudde/algo-signals/stats/time"
)

// Class is the energy/power classification of a signal.
type Class int

const (
	// Neither means the signal has neither finite non-zero power nor
	// finite non-zero energy below the ceiling.
	Neither Class = iota
	// EnergySignal has finite, non-zero energy below the ceiling.
	EnergySignal
	// PowerSignal is periodic with finite, non-zero power below the ceiling.
	PowerSignal
)

func (c Class) String() string {
	switch c {
	case EnergySignal:
		return "energy"
	case PowerSignal:
		return "power"
	default:
		return "neither"
	}
}

// Properties holds the derived properties of one signal.
type Properties struct {
	IsPeriodic bool
	IsEven     bool
	IsOdd      bool
	Energy     float64
	Power      float64
	Class      Class
	// Samples is the number of analysed samples.
	Samples int
	// Faults counts samples whose evaluation failed and entered as 0.
	Faults int
}

// Summary returns a single human-readable line.
func (p Properties) Summary() string {
	sym := "none"
	switch {
	case p.IsEven && p.IsOdd:
		sym = "even+odd"
	case p.IsEven:
		sym = "even"
	case p.IsOdd:
		sym = "odd"
	}
	s := fmt.Sprintf("%s signal: energy=%.6g power=%.6g periodic=%t symmetry=%s samples=%d",
		p.Class, p.Energy, p.Power, p.IsPeriodic, sym, p.Samples)
	if p.Faults > 0 {
		s += fmt.Sprintf(" faults=%d", p.Faults)
	}
	return s
}

// Analyzer computes Properties with a fixed sampler configuration.
type Analyzer struct {
	sampler *signal.Sampler
}

// NewAnalyzer creates an analyzer around sampler. A nil sampler uses the
// default configuration.
func NewAnalyzer(sampler *signal.Sampler) *Analyzer {
	if sampler == nil {
		sampler = signal.NewSampler()
	}
	return &Analyzer{sampler: sampler}
}

// Analyze samples sig in analysis mode and derives its properties.
func (a *Analyzer) Analyze(sig signal.Signal) Properties {
	seq := a.sampler.Sample(sig, signal.ModeAnalysis)
	return AnalyzeSequence(seq, a.sampler.Config())
}

// Analyze is a one-shot analysis with a sampler built from opts.
func Analyze(sig signal.Signal, opts ...core.Option) Properties {
	return NewAnalyzer(signal.NewSampler(opts...)).Analyze(sig)
}

// AnalyzeSequence derives properties from an already sampled sequence.
// Continuous sequences integrate with their grid step; discrete sequences
// sum directly.
func AnalyzeSequence(seq signal.Sequence, cfg core.Config) Properties {
	n := seq.Len()
	if n == 0 {
		return Properties{Class: Neither}
	}

	v := seq.Values
	p := Properties{
		IsPeriodic: sigtime.HalfPeriodic(v, cfg.Epsilon),
		IsEven:     sigtime.Even(v, cfg.Epsilon),
		IsOdd:      sigtime.Odd(v, cfg.Epsilon),
		Samples:    n,
		Faults:     len(seq.Faults),
	}

	sumSq := sigtime.SumSquares(v)
	if seq.Type == signal.Continuous {
		p.Energy = sumSq * seq.Step
		if d := seq.Duration(); d > 0 {
			p.Power = p.Energy / d
		}
	} else {
		p.Energy = sumSq
		p.Power = sumSq / float64(n)
	}

	p.Class = Classify(p.IsPeriodic, p.Energy, p.Power, cfg.EnergyCeiling)
	return p
}

// Classify applies the power-first classification rule.
func Classify(periodic bool, energy, power, ceiling float64) Class {
	switch {
	case periodic && bounded(power, ceiling):
		return PowerSignal
	case bounded(energy, ceiling):
		return EnergySignal
	default:
		return Neither
	}
}

func bounded(x, ceiling float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && x > 0 && x < ceiling
}
