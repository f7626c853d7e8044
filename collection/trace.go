package collection

import (
	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/signal"
)

// Palette is the fixed series colour cycle; signal i uses Palette[i%10].
var Palette = [...]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Trace rendering modes.
const (
	ModeLines   = "lines"
	ModeMarkers = "markers"
)

// Trace is one plotted series in display resolution.
type Trace struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Mode    string    `json:"mode"`
	Color   string    `json:"color"`
	Opacity float64   `json:"opacity"`
	X       []float64 `json:"x"`
	Y       []float64 `json:"y"`
	// Faults counts samples plotted as 0 because evaluation failed.
	Faults int `json:"faults,omitempty"`
}

// Traces samples every signal in display mode with a sampler built from
// opts.
func Traces(signals []signal.Signal, opts ...core.Option) []Trace {
	return TracesWith(signal.NewSampler(opts...), signals)
}

// TracesWith samples every signal in display mode with sampler.
func TracesWith(sampler *signal.Sampler, signals []signal.Signal) []Trace {
	out := make([]Trace, len(signals))
	for i, sig := range signals {
		seq := sampler.Sample(sig, signal.ModeDisplay)
		tr := Trace{
			ID:      sig.ID,
			Name:    sig.Name,
			Mode:    ModeLines,
			Color:   Palette[i%len(Palette)],
			Opacity: 0.8,
			X:       seq.Positions,
			Y:       seq.Values,
			Faults:  len(seq.Faults),
		}
		if sig.Type == signal.Discrete {
			tr.Mode = ModeMarkers
			tr.Opacity = 0.9
		}
		out[i] = tr
	}
	return out
}
