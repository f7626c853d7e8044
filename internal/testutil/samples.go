// Package testutil holds numeric tolerance helpers, deterministic sample
// generators and signal fixtures shared by the package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// DeterministicSine returns amplitude*sin(2*pi*freqHz*t) at t = i/sampleRate
// for i in [0, length). On a grid starting at 0 with step 1/sampleRate it
// matches what the sampler yields for the same formula.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Sin(2*math.Pi*freqHz*t)
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) drawn
// from a PCG source seeded with seed.
func DeterministicNoise(seed uint64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
