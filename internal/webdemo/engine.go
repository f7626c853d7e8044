// Package webdemo is the browser-independent core of the signal workbench
// served by web/wasm. Results are plain structs with JSON tags so the wasm
// glue only has to marshal them.
package webdemo

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-signals/collection"
	"github.com/cwbudde/algo-signals/dsp/compose"
	"github.com/cwbudde/algo-signals/dsp/signal"
	"github.com/cwbudde/algo-signals/dsp/spectrum"
	"github.com/cwbudde/algo-signals/dsp/window"
	"github.com/cwbudde/algo-signals/measure/analysis"
	"github.com/cwbudde/algo-signals/stats/frequency"
)

const maxPendingStatuses = 32

// SignalParams is the editable part of a signal as entered in the form.
type SignalParams struct {
	Name         string    `json:"name"`
	Expression   string    `json:"expression"`
	Type         string    `json:"type"`
	SamplingRate float64   `json:"samplingRate"`
	StartTime    float64   `json:"startTime"`
	EndTime      float64   `json:"endTime"`
	Points       []float64 `json:"points,omitempty"`
}

// PropertiesView is the analysis panel content.
type PropertiesView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Periodic bool    `json:"periodic"`
	Even     bool    `json:"even"`
	Odd      bool    `json:"odd"`
	Energy   float64 `json:"energy"`
	Power    float64 `json:"power"`
	Class    string  `json:"class"`
	Samples  int     `json:"samples"`
	Faults   int     `json:"faults"`
}

// SpectrumView is the frequency-domain plot content.
type SpectrumView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Frequencies []float64 `json:"frequencies"`
	Magnitudes  []float64 `json:"magnitudes"`
	Phases      []float64 `json:"phases"`
	Backend     string    `json:"backend"`
	Window      string    `json:"window"`
	PeakHz      float64   `json:"peakHz"`
	PeakMag     float64   `json:"peakMag"`
	PeakPhase   float64   `json:"peakPhase"`
	Centroid    float64   `json:"centroid"`
	Rolloff     float64   `json:"rolloff"`
	Flatness    float64   `json:"flatness"`
	Bandwidth   float64   `json:"bandwidth"`
}

// Engine owns the signal collection and the analysis engines.
type Engine struct {
	logger   *zap.Logger
	sampler  *signal.Sampler
	coll     *collection.Collection
	spectrum *spectrum.Engine
	compose  *compose.Engine
	analyzer *analysis.Analyzer
	statuses []collection.Status
}

// NewEngine creates an engine with an empty collection.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{logger: logger}
	e.sampler = signal.NewSamplerWithOptions(nil, signal.WithLogger(logger))
	e.coll = collection.New(
		collection.WithLogger(logger),
		collection.WithNotifier(e.notify),
	)
	e.spectrum = spectrum.NewEngine(e.sampler)
	e.compose = compose.NewEngine(e.sampler)
	e.analyzer = analysis.NewAnalyzer(e.sampler)
	return e
}

func (e *Engine) notify(s collection.Status) {
	if len(e.statuses) == maxPendingStatuses {
		e.statuses = e.statuses[1:]
	}
	e.statuses = append(e.statuses, s)
}

// Statuses returns and clears the notifications raised since the last call.
func (e *Engine) Statuses() []collection.Status {
	out := e.statuses
	e.statuses = nil
	return out
}

func (p SignalParams) apply(sig *signal.Signal, typ signal.Type) {
	sig.Name = p.Name
	sig.Expression = p.Expression
	sig.Type = typ
	sig.SamplingRate = p.SamplingRate
	sig.StartTime = p.StartTime
	sig.EndTime = p.EndTime
	sig.Points = nil
	if len(p.Points) > 0 {
		sig.Points = append([]float64(nil), p.Points...)
	}
}

// AddSignal creates a signal from p and returns its ID.
func (e *Engine) AddSignal(p SignalParams) (string, error) {
	typ, err := signal.ParseType(strings.ToLower(p.Type))
	if err != nil {
		return "", err
	}
	sig := signal.Signal{ID: signal.NewID()}
	p.apply(&sig, typ)
	if err := e.coll.Add(sig); err != nil {
		return "", err
	}
	return sig.ID, nil
}

// UpdateSignal replaces the editable fields of the signal with id.
func (e *Engine) UpdateSignal(id string, p SignalParams) error {
	typ, err := signal.ParseType(strings.ToLower(p.Type))
	if err != nil {
		return err
	}
	return e.coll.Update(id, func(s *signal.Signal) { p.apply(s, typ) })
}

// RemoveSignal deletes the signal with id.
func (e *Engine) RemoveSignal(id string) error { return e.coll.Remove(id) }

// Select marks the signal with id as selected.
func (e *Engine) Select(id string) error { return e.coll.Select(id) }

// Undo reverts the last collection change.
func (e *Engine) Undo() bool { return e.coll.Undo() }

// Redo reapplies the last undone change.
func (e *Engine) Redo() bool { return e.coll.Redo() }

// Signals returns the collection in order.
func (e *Engine) Signals() []signal.Signal { return e.coll.Signals() }

// SelectedID returns the selected signal ID, or "" if there is none.
func (e *Engine) SelectedID() string {
	s, err := e.coll.Selected()
	if err != nil {
		return ""
	}
	return s.ID
}

// Traces returns display traces for every signal, or for ids if given.
func (e *Engine) Traces(ids ...string) ([]collection.Trace, error) {
	signals, err := e.pick(ids)
	if err != nil {
		return nil, err
	}
	return collection.TracesWith(e.sampler, signals), nil
}

func (e *Engine) pick(ids []string) ([]signal.Signal, error) {
	if len(ids) == 0 {
		return e.coll.Signals(), nil
	}
	out := make([]signal.Signal, 0, len(ids))
	for _, id := range ids {
		s, err := e.coll.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Analyze returns the properties of the signal with id.
func (e *Engine) Analyze(id string) (PropertiesView, error) {
	sig, err := e.coll.Get(id)
	if err != nil {
		return PropertiesView{}, err
	}
	p := e.analyzer.Analyze(sig)
	return PropertiesView{
		ID:       sig.ID,
		Name:     sig.Name,
		Periodic: p.IsPeriodic,
		Even:     p.IsEven,
		Odd:      p.IsOdd,
		Energy:   p.Energy,
		Power:    p.Power,
		Class:    p.Class.String(),
		Samples:  p.Samples,
		Faults:   p.Faults,
	}, nil
}

// Spectrum returns the magnitude spectrum of the signal with id, tapered
// by the named window ("" for none).
func (e *Engine) Spectrum(id, win string) (SpectrumView, error) {
	sig, err := e.coll.Get(id)
	if err != nil {
		return SpectrumView{}, err
	}
	wt, err := window.ParseType(win)
	if err != nil {
		return SpectrumView{}, err
	}
	engine := e.spectrum
	if wt != window.Rectangular {
		engine = spectrum.NewEngine(e.sampler, spectrum.WithWindow(wt))
	}
	s, err := engine.Compute(sig)
	if err != nil {
		return SpectrumView{}, err
	}
	v := SpectrumView{
		ID:          sig.ID,
		Name:        sig.Name,
		Frequencies: s.Frequencies,
		Magnitudes:  s.Magnitudes,
		Phases:      s.Phases,
		Backend:     s.Backend.String(),
		Window:      string(s.Window),
	}
	if k, ok := s.PeakIndex(0); ok {
		v.PeakHz, v.PeakMag, v.PeakPhase = s.Frequencies[k], s.Magnitudes[k], s.Phases[k]
	}
	d := frequency.Describe(s)
	v.Centroid, v.Rolloff, v.Flatness, v.Bandwidth = d.Centroid, d.Rolloff, d.Flatness, d.Bandwidth
	return v, nil
}

// Combine adds the formula combination of a and b and returns its ID.
func (e *Engine) Combine(a, b, op string) (string, error) {
	operation, err := compose.ParseOperation(op)
	if err != nil {
		return "", err
	}
	sa, sb, err := e.pair(a, b)
	if err != nil {
		return "", err
	}
	out, err := compose.Combine(sa, sb, operation)
	if err != nil {
		return "", err
	}
	if err := e.coll.Add(out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Sampled returns the sampled convolution or correlation of a and b as a
// single trace. The result is not added to the collection.
func (e *Engine) Sampled(a, b, op string) (collection.Trace, error) {
	operation, err := compose.ParseOperation(op)
	if err != nil {
		return collection.Trace{}, err
	}
	sa, sb, err := e.pair(a, b)
	if err != nil {
		return collection.Trace{}, err
	}

	var seq signal.Sequence
	switch operation {
	case compose.Convolve:
		seq, err = e.compose.Convolve(sa, sb)
	case compose.Correlate:
		seq, err = e.compose.Correlate(sa, sb)
	default:
		return collection.Trace{}, fmt.Errorf("%w: %s is a formula operation", compose.ErrUnknownOperation, operation)
	}
	if err != nil {
		return collection.Trace{}, err
	}

	mode := collection.ModeMarkers
	if seq.Type == signal.Continuous {
		mode = collection.ModeLines
	}
	return collection.Trace{
		Name:    sa.Name + " " + operation.Symbol() + " " + sb.Name,
		Mode:    mode,
		Color:   collection.Palette[e.coll.Len()%len(collection.Palette)],
		Opacity: 0.8,
		X:       seq.Positions,
		Y:       seq.Values,
		Faults:  len(seq.Faults),
	}, nil
}

func (e *Engine) pair(a, b string) (signal.Signal, signal.Signal, error) {
	sa, err := e.coll.Get(a)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}
	sb, err := e.coll.Get(b)
	if err != nil {
		return signal.Signal{}, signal.Signal{}, err
	}
	return sa, sb, nil
}

// Transform adds the transformed copy of the signal with id and returns
// its ID.
func (e *Engine) Transform(id, kind string, factor float64) (string, error) {
	k, err := compose.ParseTransformation(kind)
	if err != nil {
		return "", err
	}
	if err := compose.ValidateFactor(k, factor); err != nil {
		return "", err
	}
	sig, err := e.coll.Get(id)
	if err != nil {
		return "", err
	}
	out, err := compose.Transform(sig, k, factor)
	if err != nil {
		return "", err
	}
	if err := e.coll.Add(out); err != nil {
		return "", err
	}
	return out.ID, nil
}

// Export serializes the collection in the signal file format.
func (e *Engine) Export() (string, error) {
	var buf bytes.Buffer
	signals := e.coll.Signals()
	if err := collection.Save(&buf, signals); err != nil {
		e.notify(collection.Failed("save", err))
		return "", err
	}
	e.notify(collection.Saved(len(signals)))
	return buf.String(), nil
}

// Import replaces the collection with the signals in data.
func (e *Engine) Import(data string) error {
	signals, err := collection.Load(strings.NewReader(data))
	if err == nil {
		err = e.coll.Replace(signals)
	}
	if err != nil {
		e.notify(collection.Failed("load", err))
		var le *collection.LoadError
		if errors.As(err, &le) {
			e.logger.Debug("import rejected", zap.Int("index", le.Index), zap.String("field", le.Field))
		}
		return err
	}
	e.notify(collection.Loaded(len(signals)))
	return nil
}
