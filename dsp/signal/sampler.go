package signal

import (
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/expr"
)

// Mode selects the point budget used for sampling.
type Mode int

const (
	// ModeDisplay bounds point counts for interactive plotting.
	ModeDisplay Mode = iota
	// ModeAnalysis only limits point counts by the time range.
	ModeAnalysis
)

func (m Mode) String() string {
	if m == ModeAnalysis {
		return "analysis"
	}
	return "display"
}

// Fault records a sample whose formula evaluation failed and was replaced by 0.
type Fault struct {
	Index    int
	Position float64
	Err      error
}

// Sequence is an ordered list of (position, value) samples.
type Sequence struct {
	Type      Type
	Positions []float64
	Values    []float64
	// Step is the uniform spacing of a continuous grid and 0 otherwise.
	Step float64
	// Start and End are the bounds of the signal that was sampled.
	Start, End float64
	Faults     []Fault
}

// Len returns the number of samples.
func (s Sequence) Len() int { return len(s.Values) }

// Duration returns End - Start.
func (s Sequence) Duration() float64 { return s.End - s.Start }

// Empty reports whether the sequence holds no samples.
func (s Sequence) Empty() bool { return len(s.Values) == 0 }

// Err returns the first evaluation error, or nil if every sample evaluated.
func (s Sequence) Err() error {
	if len(s.Faults) == 0 {
		return nil
	}
	return s.Faults[0].Err
}

// Sampler turns signals into sample sequences.
type Sampler struct {
	cfg    core.Config
	logger *zap.Logger
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithLogger sets the logger that receives degraded-sample diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sampler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSampler creates a sampler from engine options.
func NewSampler(opts ...core.Option) *Sampler {
	return &Sampler{
		cfg:    core.ApplyOptions(opts...),
		logger: zap.NewNop(),
	}
}

// NewSamplerWithOptions creates a sampler with engine and sampler-specific options.
func NewSamplerWithOptions(coreOpts []core.Option, opts ...Option) *Sampler {
	s := NewSampler(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Config returns the engine configuration.
func (s *Sampler) Config() core.Config {
	return s.cfg
}

// Logger returns the diagnostics logger.
func (s *Sampler) Logger() *zap.Logger {
	return s.logger
}

// Sample evaluates sig at the positions implied by its type and mode.
func (s *Sampler) Sample(sig Signal, mode Mode) Sequence {
	var (
		positions []float64
		step      float64
	)
	switch {
	case sig.Type != Discrete:
		positions, step = s.ContinuousGrid(sig, mode)
	case len(sig.Points) > 0:
		positions = s.explicitPositions(sig.Points, mode)
	default:
		positions = s.DiscreteGrid(sig, mode)
	}
	typ := sig.Type
	if typ != Discrete {
		typ = Continuous
	}
	return s.evaluate(sig, typ, positions, step)
}

// SampleContinuous evaluates sig on the uniform continuous grid regardless
// of its type.
func (s *Sampler) SampleContinuous(sig Signal, mode Mode) Sequence {
	positions, step := s.ContinuousGrid(sig, mode)
	return s.evaluate(sig, Continuous, positions, step)
}

// ContinuousGrid returns positions start + i*dt for i in [0, n) with
// n = floor((end-start)*rate), capped in display mode, and the spacing dt.
// It returns no positions when n is not a positive finite count.
func (s *Sampler) ContinuousGrid(sig Signal, mode Mode) ([]float64, float64) {
	span := sig.EndTime - sig.StartTime
	nf := math.Floor(span * sig.SamplingRate)
	if math.IsNaN(nf) || math.IsInf(nf, 0) || nf <= 0 {
		return nil, 0
	}
	if mode == ModeDisplay && nf > float64(s.cfg.MaxDisplayPoints) {
		nf = float64(s.cfg.MaxDisplayPoints)
	}
	if !s.withinBudget(sig, mode, nf) {
		return nil, 0
	}
	n := int(nf)
	dt := span / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = sig.StartTime + float64(i)*dt
	}
	return out, dt
}

// DiscreteGrid returns positions start, start+step, ... up to end with
// step = max(1/rate, MinStep). Display mode caps the count at
// MaxDiscreteDisplayPoints; analysis mode does not.
func (s *Sampler) DiscreteGrid(sig Signal, mode Mode) []float64 {
	if !(sig.SamplingRate > 0) || !(sig.EndTime >= sig.StartTime) ||
		math.IsInf(sig.StartTime, 0) || math.IsInf(sig.EndTime, 0) {
		return nil
	}
	step := math.Max(1/sig.SamplingRate, s.cfg.MinStep)
	// Positions within a tiny fraction of a step of the end are kept so
	// that rounding in (end-start)/step does not drop the last point.
	nf := math.Floor((sig.EndTime-sig.StartTime)/step+1e-9) + 1
	if mode == ModeDisplay && nf > float64(s.cfg.MaxDiscreteDisplayPoints) {
		nf = float64(s.cfg.MaxDiscreteDisplayPoints)
	}
	if !s.withinBudget(sig, mode, nf) {
		return nil
	}
	out := make([]float64, int(nf))
	for i := range out {
		out[i] = sig.StartTime + float64(i)*step
	}
	return out
}

// withinBudget reports whether a grid of n points fits MaxAnalysisPoints.
// Oversized grids are logged and treated like an empty range.
func (s *Sampler) withinBudget(sig Signal, mode Mode, n float64) bool {
	if n <= float64(s.cfg.MaxAnalysisPoints) {
		return true
	}
	s.logger.Warn("sampling grid exceeds analysis budget, sampling as empty",
		zap.String("signal", sig.ID),
		zap.Stringer("mode", mode),
		zap.Float64("points", n),
		zap.Int("limit", s.cfg.MaxAnalysisPoints))
	return false
}

func (s *Sampler) explicitPositions(points []float64, mode Mode) []float64 {
	n := len(points)
	if mode == ModeDisplay && n > s.cfg.MaxDisplayPoints {
		n = s.cfg.MaxDisplayPoints
	}
	return append([]float64(nil), points[:n]...)
}

// SampleAt evaluates sig at caller-chosen positions. The sequence keeps
// sig's type and bounds and has Step 0.
func (s *Sampler) SampleAt(sig Signal, positions []float64) Sequence {
	return s.evaluate(sig, sig.Type, append([]float64(nil), positions...), 0)
}

func (s *Sampler) evaluate(sig Signal, typ Type, positions []float64, step float64) Sequence {
	seq := Sequence{
		Type:      typ,
		Positions: positions,
		Values:    make([]float64, len(positions)),
		Step:      step,
		Start:     sig.StartTime,
		End:       sig.EndTime,
	}
	if len(positions) == 0 {
		return seq
	}

	prog, err := expr.Compile(sig.Expression)
	if err != nil {
		seq.Faults = make([]Fault, len(positions))
		for i, t := range positions {
			seq.Faults[i] = Fault{Index: i, Position: t, Err: err}
		}
		s.logger.Warn("signal expression does not compile, sampling as zero",
			zap.String("signal", sig.ID),
			zap.String("name", sig.Name),
			zap.Int("samples", len(positions)),
			zap.Error(err),
		)
		return seq
	}

	for i, t := range positions {
		v, err := prog.Eval(t)
		if err != nil {
			seq.Faults = append(seq.Faults, Fault{Index: i, Position: t, Err: err})
			continue
		}
		seq.Values[i] = v
	}
	if len(seq.Faults) > 0 {
		s.logger.Debug("degraded samples replaced by zero",
			zap.String("signal", sig.ID),
			zap.String("name", sig.Name),
			zap.Int("faults", len(seq.Faults)),
			zap.Int("samples", len(positions)),
			zap.Error(seq.Faults[0].Err),
		)
	}
	return seq
}

// Sample evaluates sig with a sampler built from opts.
func Sample(sig Signal, mode Mode, opts ...core.Option) Sequence {
	return NewSampler(opts...).Sample(sig, mode)
}
