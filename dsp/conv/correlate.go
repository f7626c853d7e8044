package conv

import "math"

// Correlate computes the full cross-correlation r[k] = sum_n a[n+lag]*b[n]
// of a and b. The result has length len(a) + len(b) - 1 and index k
// corresponds to lag k - (len(b) - 1); see [LagFromIndex].
//
// It is convolution with b time-reversed, so it shares the algorithm
// selection of [Convolve].
func Correlate(a, b []float64, threshold ...int) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	return Convolve(a, reversed(b), threshold...)
}

// CorrelateDirect computes cross-correlation by direct summation.
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}
	return Direct(a, reversed(b))
}

// FindPeak returns the index and value of the largest |corr[k]|.
func FindPeak(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	best := math.Abs(corr[0])
	for i, v := range corr {
		if a := math.Abs(v); a > best {
			best = a
			index = i
		}
	}
	return index, corr[index]
}

// LagFromIndex converts a correlation output index into a lag in samples.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

func reversed(b []float64) []float64 {
	out := make([]float64, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
