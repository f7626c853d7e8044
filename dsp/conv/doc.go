// Package conv provides linear convolution and cross-correlation of sample
// sequences.
//
// Two strategies share one contract:
//
//   - Direct: O(N*M) time-domain summation, best for short inputs.
//   - Overlap-add: FFT block convolution through algo-fft plans, used for
//     long inputs.
//
// [Convolve] and [Correlate] pick a strategy from the shorter input's
// length; both always return the full result of length len(a)+len(b)-1.
//
//	y, err := conv.Convolve(x, h)
//	r, err := conv.Correlate(x, template)
//	k, _ := conv.FindPeak(r)
//	lag := conv.LagFromIndex(k, len(template))
package conv
