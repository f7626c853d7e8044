// Package compose derives new signals from existing ones.
//
// Arithmetic combinations and amplitude transformations are formula
// rewrites: the result is a new Signal whose expression can be stored,
// edited and sampled like any other. Time transformations (shift, compress,
// expand) substitute t on the parsed expression tree and print the tree back
// to text.
//
// Convolution and correlation have no closed formula form here. Combine
// rejects them with ErrNotFormula; Convolve and Correlate compute them on
// sampled sequences instead.
package compose
