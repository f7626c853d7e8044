// Package spectrum computes the magnitude spectrum of a signal.
//
// A signal is sampled on its uniform continuous grid, transformed with a
// direct DFT for short inputs or an FFT backend for long ones, and reduced to
// magnitudes scaled by 1/N. No padding is added, so every backend yields the
// same bins within floating-point tolerance. By default no window is applied;
// WithWindow tapers the samples and compensates the coherent gain.
//
// The lower-level helpers (Magnitude, Power, Phase, Goertzel) operate on raw
// complex bins or sample blocks and are shared by the other packages.
package spectrum
