package compose

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-signals/dsp/signal"
)

// Errors returned by composition functions.
var (
	ErrUnknownOperation      = errors.New("compose: unknown operation")
	ErrUnknownTransformation = errors.New("compose: unknown transformation")
	ErrNotFormula            = errors.New("compose: operation has no formula form")
	ErrInvalidFactor         = errors.New("compose: invalid factor")
)

// Operation combines two signals.
type Operation string

// Supported operations.
const (
	Add       Operation = "add"
	Subtract  Operation = "subtract"
	Multiply  Operation = "multiply"
	Divide    Operation = "divide"
	Convolve  Operation = "convolve"
	Correlate Operation = "correlate"
)

// Operations lists every operation in display order.
var Operations = []Operation{Add, Subtract, Multiply, Divide, Convolve, Correlate}

// Symbol returns the operator used in expressions and names.
func (o Operation) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	case Convolve:
		return "convolved with"
	case Correlate:
		return "correlated with"
	default:
		return string(o)
	}
}

// Formula reports whether the operation can be written as an expression.
func (o Operation) Formula() bool {
	switch o {
	case Add, Subtract, Multiply, Divide:
		return true
	default:
		return false
	}
}

// ParseOperation maps a name to an Operation. Matching is case-insensitive.
func ParseOperation(s string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Operations {
		if op == known {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, s)
}

// Combine returns a new signal whose expression is (a) op (b).
//
// The result is continuous if either input is, takes the larger sampling
// rate and spans both time ranges. Explicit points are not carried over.
// Convolve and Correlate return ErrNotFormula; see the Convolve and
// Correlate functions for their sampled forms.
func Combine(a, b signal.Signal, op Operation) (signal.Signal, error) {
	if !op.Formula() {
		if op == Convolve || op == Correlate {
			return signal.Signal{}, fmt.Errorf("%w: %s", ErrNotFormula, op)
		}
		return signal.Signal{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}

	typ := signal.Discrete
	if a.Type == signal.Continuous || b.Type == signal.Continuous {
		typ = signal.Continuous
	}

	return signal.New(
		a.Name+" "+op.Symbol()+" "+b.Name,
		"("+a.Expression+") "+op.Symbol()+" ("+b.Expression+")",
		typ,
		max(a.SamplingRate, b.SamplingRate),
		min(a.StartTime, b.StartTime),
		max(a.EndTime, b.EndTime),
	), nil
}
