// Package window generates taper windows applied before a spectrum is taken.
//
// Windows are generated in periodic form, the framing used for DFT analysis:
// w[n] = sum_k a_k cos(2*pi*k*n/N). The rectangular window leaves samples
// unchanged and is the default everywhere.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Type identifies a window function.
type Type string

const (
	Rectangular Type = "rectangular"
	Hann        Type = "hann"
	Hamming     Type = "hamming"
	Blackman    Type = "blackman"
	FlatTop     Type = "flattop"
)

// Types lists every supported window in display order.
var Types = []Type{Rectangular, Hann, Hamming, Blackman, FlatTop}

// Cosine-sum coefficients a_0..a_k, signs folded in.
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
	flatTopCoeffs  = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// ParseType maps a window name to a Type. Matching is case-insensitive and
// the empty string selects Rectangular.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return Rectangular, nil
	}
	for _, known := range Types {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("window: unknown type %q", s)
}

func (t Type) coeffs() []float64 {
	switch t {
	case Hann:
		return hannCoeffs
	case Hamming:
		return hammingCoeffs
	case Blackman:
		return blackmanCoeffs
	case FlatTop:
		return flatTopCoeffs
	default:
		return nil
	}
}

// Generate returns the periodic window of the given length.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}
	out := make([]float64, length)
	coeffs := t.coeffs()
	if coeffs == nil {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i := range out {
		out[i] = cosineSum(float64(i)/float64(length), coeffs)
	}
	return out
}

// Apply multiplies buf in place by the window and returns the coherent
// gain of the coefficients used.
func Apply(t Type, buf []float64) float64 {
	if len(buf) == 0 || t.coeffs() == nil {
		return 1
	}
	w := Generate(t, len(buf))
	vecmath.MulBlockInPlace(buf, w)
	return CoherentGain(w)
}

// CoherentGain returns mean(w), the factor by which the window scales the
// amplitude of a bin-centred tone.
func CoherentGain(w []float64) float64 {
	if len(w) == 0 {
		return 0
	}
	return floats.Sum(w) / float64(len(w))
}

func cosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x
	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}
	return sum
}
