// Package time provides time-domain statistics over sampled signal values.
package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats holds summary statistics of a sample sequence.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Peak          float64 // max(|max|, |min|)
	CrestFactor   float64 // peak / RMS
	Energy        float64 // sum of squares
	Power         float64 // energy / length
	ZeroCrossings int
}

// Calculate computes summary statistics in a single pass.
func Calculate(values []float64) Stats {
	n := len(values)
	if n == 0 {
		return Stats{}
	}

	var (
		sumSq         float64
		maxVal        = values[0]
		maxPos        int
		minVal        = values[0]
		minPos        int
		zeroCrossings int
	)
	for i, x := range values {
		sumSq += x * x
		if x > maxVal {
			maxVal, maxPos = x, i
		}
		if x < minVal {
			minVal, minPos = x, i
		}
		if i > 0 && values[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))
	var crest float64
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:        n,
		DC:            DC(values),
		RMS:           rms,
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Peak:          peak,
		CrestFactor:   crest,
		Energy:        sumSq,
		Power:         sumSq / nf,
		ZeroCrossings: zeroCrossings,
	}
}

// SumSquares returns sum(v[i]^2).
func SumSquares(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Dot(values, values)
}

// DC returns the mean of the values.
func DC(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	// Kahan summation keeps long grids accurate.
	var sum, c float64
	for _, x := range values {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum / float64(len(values))
}

// RMS returns the root-mean-square of the values.
func RMS(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return math.Sqrt(SumSquares(values) / float64(len(values)))
}

// HalfPeriodic reports whether the second half of values repeats the first
// half within eps: |v[i] - v[i+n/2]| < eps for every i < n/2.
//
// This only detects a period of exactly half the observed window; signals
// whose period does not divide the window that way are reported aperiodic.
// Sequences shorter than two samples are trivially periodic.
func HalfPeriodic(values []float64, eps float64) bool {
	half := len(values) / 2
	for i := 0; i < half; i++ {
		if !(math.Abs(values[i]-values[i+half]) < eps) {
			return false
		}
	}
	return true
}

// Even reports whether |v[i] - v[n-1-i]| < eps for every i.
func Even(values []float64, eps float64) bool {
	n := len(values)
	for i := 0; i < n; i++ {
		if !(math.Abs(values[i]-values[n-1-i]) < eps) {
			return false
		}
	}
	return true
}

// Odd reports whether |v[i] + v[n-1-i]| < eps for every i.
func Odd(values []float64, eps float64) bool {
	n := len(values)
	for i := 0; i < n; i++ {
		if !(math.Abs(values[i]+values[n-1-i]) < eps) {
			return false
		}
	}
	return true
}
