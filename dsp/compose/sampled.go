package compose

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-signals/dsp/conv"
	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/signal"
)

// Engine computes sample-domain operations with a fixed sampler.
type Engine struct {
	sampler *signal.Sampler
}

// NewEngine creates an engine around sampler. A nil sampler uses the default
// configuration.
func NewEngine(sampler *signal.Sampler) *Engine {
	if sampler == nil {
		sampler = signal.NewSampler()
	}
	return &Engine{sampler: sampler}
}

// grid is an operand sampled on the common uniform step.
type grid struct {
	seq   signal.Sequence
	start float64
}

// Convolve computes (a * b)(t) on a common uniform grid.
//
// Both operands are sampled from their start time with the same step: 1/rate
// for continuous results and max(1/rate, MinStep) for discrete ones, where
// rate is the larger of the two sampling rates. Explicit points are ignored.
// Discrete results are the plain sum; continuous results are scaled by the
// step, approximating the integral. Output position k is
// startA + startB + k*step. An empty operand yields an empty sequence.
//
// Operand samples that fail to evaluate enter as 0 and are reported in the
// result's Faults, indexed on their operand grid.
func (e *Engine) Convolve(a, b signal.Signal) (signal.Sequence, error) {
	return e.run(a, b, Convolve)
}

// Correlate computes r(tau) = sum a(t+tau)*b(t) on the same common grid as
// Convolve. Output position k is the lag startA - startB + (k - (nb-1))*step.
func (e *Engine) Correlate(a, b signal.Signal) (signal.Sequence, error) {
	return e.run(a, b, Correlate)
}

func (e *Engine) run(a, b signal.Signal, op Operation) (signal.Sequence, error) {
	typ := signal.Discrete
	if a.Type == signal.Continuous || b.Type == signal.Continuous {
		typ = signal.Continuous
	}
	step := e.commonStep(typ, max(a.SamplingRate, b.SamplingRate))
	out := signal.Sequence{Type: typ, Step: step}
	if step == 0 {
		return out, nil
	}

	ga := e.sampleOn(a, typ, step)
	gb := e.sampleOn(b, typ, step)
	out.Faults = append(append(out.Faults, ga.seq.Faults...), gb.seq.Faults...)
	na, nb := ga.seq.Len(), gb.seq.Len()
	if na == 0 || nb == 0 {
		return out, nil
	}

	var (
		values []float64
		err    error
		origin float64
	)
	if op == Correlate {
		values, err = conv.Correlate(ga.seq.Values, gb.seq.Values)
		origin = ga.start - gb.start - float64(nb-1)*step
	} else {
		values, err = conv.Convolve(ga.seq.Values, gb.seq.Values)
		origin = ga.start + gb.start
	}
	if err != nil {
		return signal.Sequence{}, fmt.Errorf("compose: %s %q with %q: %w", op, a.Name, b.Name, err)
	}

	if typ == signal.Continuous {
		for i := range values {
			values[i] *= step
		}
	}

	out.Values = values
	out.Positions = make([]float64, len(values))
	for k := range out.Positions {
		out.Positions[k] = origin + float64(k)*step
	}
	out.Start = out.Positions[0]
	out.End = out.Positions[len(values)-1]

	e.sampler.Logger().Debug("sampled composition",
		zap.String("operation", string(op)),
		zap.String("a", a.ID),
		zap.String("b", b.ID),
		zap.Int("samples", len(values)),
		zap.Int("faults", len(out.Faults)),
	)
	return out, nil
}

func (e *Engine) commonStep(typ signal.Type, rate float64) float64 {
	if !(rate > 0) || !core.IsFinite(rate) {
		return 0
	}
	step := 1 / rate
	if typ == signal.Discrete {
		step = max(step, e.sampler.Config().MinStep)
	}
	return step
}

// sampleOn evaluates sig at start + i*step. Continuous operands cover
// [start, end); discrete operands include end within a small tolerance.
func (e *Engine) sampleOn(sig signal.Signal, typ signal.Type, step float64) grid {
	span := sig.EndTime - sig.StartTime
	if !core.IsFinite(span) || span < 0 {
		return grid{start: sig.StartTime}
	}

	nf := math.Floor(span/step + 1e-9)
	if typ != signal.Continuous {
		nf++
	}
	// Operands share the sampler's analysis budget; larger grids sample as empty.
	if !(nf <= float64(e.sampler.Config().MaxAnalysisPoints)) {
		e.sampler.Logger().Warn("operand grid exceeds analysis budget, sampling as empty",
			zap.String("signal", sig.ID),
			zap.Float64("points", nf),
			zap.Int("limit", e.sampler.Config().MaxAnalysisPoints))
		return grid{start: sig.StartTime}
	}

	positions := make([]float64, int(nf))
	for i := range positions {
		positions[i] = sig.StartTime + float64(i)*step
	}
	op := sig.Clone()
	op.Points = nil
	return grid{seq: e.sampler.SampleAt(op, positions), start: sig.StartTime}
}

// ConvolveSignals is a one-shot Convolve with a sampler built from opts.
func ConvolveSignals(a, b signal.Signal, opts ...core.Option) (signal.Sequence, error) {
	return NewEngine(signal.NewSampler(opts...)).Convolve(a, b)
}

// CorrelateSignals is a one-shot Correlate with a sampler built from opts.
func CorrelateSignals(a, b signal.Signal, opts ...core.Option) (signal.Sequence, error) {
	return NewEngine(signal.NewSampler(opts...)).Correlate(a, b)
}
