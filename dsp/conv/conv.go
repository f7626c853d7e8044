package conv

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// DefaultDirectThreshold is the shorter-input length up to which [Convolve]
// sums directly.
const DefaultDirectThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution into dst, which must have length
// len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	for i := range dst {
		dst[i] = 0
	}

	m := len(b)
	for i, x := range a {
		if x == 0 {
			continue
		}
		// dst[i:i+m] += x * b
		floats.AddScaled(dst[i:i+m], x, b)
	}
}

// Convolve performs linear convolution with automatic algorithm selection:
// direct summation when the shorter input has at most threshold samples,
// overlap-add otherwise. A threshold <= 0 uses [DefaultDirectThreshold].
func Convolve(a, b []float64, threshold ...int) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	// Convolution commutes; keep the longer sequence as the signal.
	if len(b) > len(a) {
		a, b = b, a
	}

	limit := DefaultDirectThreshold
	if len(threshold) > 0 && threshold[0] > 0 {
		limit = threshold[0]
	}
	if len(b) <= limit {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}
