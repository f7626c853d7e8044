package testutil

import "github.com/cwbudde/algo-signals/dsp/signal"

// Continuous returns a continuous signal with a fixed ID.
func Continuous(id, expression string, rate, start, end float64) signal.Signal {
	return signal.Signal{
		ID:           id,
		Name:         id,
		Expression:   expression,
		Type:         signal.Continuous,
		SamplingRate: rate,
		StartTime:    start,
		EndTime:      end,
	}
}

// Discrete returns a discrete signal with a fixed ID and optional explicit
// sample positions.
func Discrete(id, expression string, rate, start, end float64, points ...float64) signal.Signal {
	s := Continuous(id, expression, rate, start, end)
	s.Type = signal.Discrete
	if len(points) > 0 {
		s.Points = append([]float64(nil), points...)
	}
	return s
}

// Library returns a small, fixed set of signals covering both types,
// explicit points and a formula that fails at one position.
func Library() []signal.Signal {
	return []signal.Signal{
		Continuous("sine", "sin(2*pi*t)", 1000, 0, 2),
		Continuous("cosine", "cos(2*pi*t)", 1000, -1, 1),
		Discrete("ramp", "t", 10, -1, 1),
		Discrete("picked", "t^2", 1, 0, 4, 0, 1.5, 4),
		Continuous("reciprocal", "1/t", 10, -1, 1),
	}
}
