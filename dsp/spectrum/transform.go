package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-signals/dsp/core"
)

// Backend names the algorithm that produced a set of bins.
type Backend int

const (
	// BackendNone is reported for empty input.
	BackendNone Backend = iota
	// BackendDirect is the O(N^2) summation.
	BackendDirect
	// BackendRadix2 is the algo-fft plan used for power-of-two sizes.
	BackendRadix2
	// BackendMixedRadix is the gonum FFT used for every other size.
	BackendMixedRadix
)

func (b Backend) String() string {
	switch b {
	case BackendDirect:
		return "direct"
	case BackendRadix2:
		return "radix-2"
	case BackendMixedRadix:
		return "mixed-radix"
	default:
		return "none"
	}
}

// ErrBackend is returned when an FFT backend rejects its input.
var ErrBackend = errors.New("spectrum: fft backend failed")

// DFT computes X[k] = sum_n v[n] * exp(-2*pi*i*k*n/N) by direct summation.
//
// Twiddles are taken from a table indexed by k*n mod N, which keeps the
// phase exact for large k*n products.
func DFT(values []float64) []complex128 {
	n := len(values)
	if n == 0 {
		return nil
	}

	twiddle := make([]complex128, n)
	for j := range twiddle {
		s, c := math.Sincos(-2 * math.Pi * float64(j) / float64(n))
		twiddle[j] = complex(c, s)
	}

	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		idx := 0
		for _, v := range values {
			sum += complex(v, 0) * twiddle[idx]
			idx += k
			if idx >= n {
				idx %= n
			}
		}
		out[k] = sum
	}
	return out
}

// Transform returns the complex bins of values and the backend used.
//
// Inputs of at most directLimit samples use DFT. Longer inputs use an algo-fft
// plan when N is a power of two and the gonum mixed-radix FFT otherwise.
func Transform(values []float64, directLimit int) ([]complex128, Backend, error) {
	n := len(values)
	switch {
	case n == 0:
		return nil, BackendNone, nil
	case n <= directLimit:
		return DFT(values), BackendDirect, nil
	case core.IsPowerOfTwo(n):
		bins, err := radix2(values)
		return bins, BackendRadix2, err
	default:
		return mixedRadix(values), BackendMixedRadix, nil
	}
}

func radix2(values []float64) ([]complex128, error) {
	plan, err := algofft.NewPlan64(len(values))
	if err != nil {
		return nil, fmt.Errorf("%w: plan size %d: %v", ErrBackend, len(values), err)
	}

	src := toComplex(values)
	dst := make([]complex128, len(values))
	if err := plan.Forward(dst, src); err != nil {
		return nil, fmt.Errorf("%w: forward size %d: %v", ErrBackend, len(values), err)
	}
	return dst, nil
}

func mixedRadix(values []float64) []complex128 {
	fft := fourier.NewCmplxFFT(len(values))
	return fft.Coefficients(nil, toComplex(values))
}

func toComplex(values []float64) []complex128 {
	out := make([]complex128, len(values))
	for i, v := range values {
		out[i] = complex(v, 0)
	}
	return out
}
