package compose

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-signals/dsp/core"
	"github.com/cwbudde/algo-signals/dsp/expr"
	"github.com/cwbudde/algo-signals/dsp/signal"
)

// Transformation rewrites a single signal by a factor.
type Transformation string

// Supported transformations.
const (
	Amplify   Transformation = "amplify"
	Attenuate Transformation = "attenuate"
	Shift     Transformation = "shift"
	Compress  Transformation = "compress"
	Expand    Transformation = "expand"
)

// Transformations lists every transformation in display order.
var Transformations = []Transformation{Amplify, Attenuate, Shift, Compress, Expand}

// ParseTransformation maps a name to a Transformation. Matching is
// case-insensitive.
func ParseTransformation(s string) (Transformation, error) {
	k := Transformation(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Transformations {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTransformation, s)
}

// Label returns the suffix appended to a transformed signal's name.
func (k Transformation) Label(factor float64) string {
	f := formatFactor(factor)
	switch k {
	case Amplify:
		return f + "× Amplified"
	case Attenuate:
		return f + "× Attenuated"
	case Shift:
		return "Shifted by " + f + "s"
	case Compress:
		return f + "× Compressed"
	case Expand:
		return f + "× Expanded"
	default:
		return string(k)
	}
}

// ValidateFactor applies the checks an interactive caller runs before
// Transform: the factor must be finite and must not be zero for attenuate
// and expand.
func ValidateFactor(kind Transformation, factor float64) error {
	if !core.IsFinite(factor) {
		return fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}
	if factor == 0 && (kind == Attenuate || kind == Expand) {
		return fmt.Errorf("%w: %s by zero", ErrInvalidFactor, kind)
	}
	return nil
}

// Transform returns a new signal derived from sig.
//
// amplify and attenuate wrap the expression textually. shift, compress and
// expand replace every t with (t - factor), (factor * t) and (t / factor)
// respectively on the parsed tree, so the expression must parse. Type,
// sampling rate, bounds and explicit points are preserved.
//
// Only non-finite factors are rejected; zero checks are left to
// ValidateFactor so callers may build degenerate signals deliberately.
func Transform(sig signal.Signal, kind Transformation, factor float64) (signal.Signal, error) {
	if !core.IsFinite(factor) {
		return signal.Signal{}, fmt.Errorf("%w: %v", ErrInvalidFactor, factor)
	}

	f := formatFactor(factor)
	if factor < 0 {
		f = "(" + f + ")"
	}
	var expression string
	switch kind {
	case Amplify:
		expression = f + " * (" + sig.Expression + ")"
	case Attenuate:
		expression = "(" + sig.Expression + ") / " + f
	case Shift, Compress, Expand:
		root, err := expr.Parse(sig.Expression)
		if err != nil {
			return signal.Signal{}, fmt.Errorf("compose: %s %q: %w", kind, sig.Name, err)
		}
		expression = expr.Substitute(root, timeArgument(kind, factor)).String()
	default:
		return signal.Signal{}, fmt.Errorf("%w: %q", ErrUnknownTransformation, kind)
	}

	out := sig.Clone()
	out.ID = signal.NewID()
	out.Name = sig.Name + " (" + kind.Label(factor) + ")"
	out.Expression = expression
	return out, nil
}

func timeArgument(kind Transformation, factor float64) expr.Node {
	switch kind {
	case Shift:
		if factor < 0 {
			return expr.Op("+", expr.T(), expr.Num(-factor))
		}
		return expr.Op("-", expr.T(), expr.Num(factor))
	case Compress:
		return expr.Op("*", expr.Num(factor), expr.T())
	default:
		return expr.Op("/", expr.T(), expr.Num(factor))
	}
}

func formatFactor(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
