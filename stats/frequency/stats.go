// Package frequency summarises the shape of a magnitude spectrum.
//
// Only the one-sided half of a spectrum (bins 0..N/2) is considered; the
// upper half of a real signal's spectrum mirrors it.
package frequency

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-signals/dsp/spectrum"
)

// DefaultRolloff is the energy fraction used by Describe for Rolloff.
const DefaultRolloff = 0.85

// Descriptors holds spectral shape statistics.
type Descriptors struct {
	Bins      int
	PeakHz    float64
	Centroid  float64 // magnitude-weighted mean frequency (Hz)
	Spread    float64 // magnitude-weighted standard deviation around Centroid (Hz)
	Flatness  float64 // geometric over arithmetic mean, 0..1, DC excluded
	Rolloff   float64 // frequency below which DefaultRolloff of the energy lies (Hz)
	Bandwidth float64 // width of the -3 dB region around the peak (Hz)
}

// OneSided returns the frequencies and magnitudes of bins 0..N/2.
func OneSided(s spectrum.Spectrum) (freqs, mags []float64) {
	n := s.Len()
	if n == 0 {
		return nil, nil
	}
	hi := n/2 + 1
	return s.Frequencies[:hi], s.Magnitudes[:hi]
}

// Describe computes every descriptor for s.
func Describe(s spectrum.Spectrum) Descriptors {
	freqs, mags := OneSided(s)
	d := Descriptors{Bins: len(mags)}
	if len(mags) == 0 {
		return d
	}

	d.PeakHz = freqs[floats.MaxIdx(mags)]
	sum := floats.Sum(mags)
	d.Centroid = centroid(freqs, mags, sum)
	d.Spread = spread(freqs, mags, d.Centroid, sum)
	d.Flatness = Flatness(mags)
	d.Rolloff = Rolloff(freqs, mags, DefaultRolloff)
	d.Bandwidth = Bandwidth(freqs, mags)
	return d
}

// Centroid returns sum(f_i * |X_i|) / sum(|X_i|), or 0 for silence.
func Centroid(freqs, mags []float64) float64 {
	return centroid(freqs, mags, floats.Sum(mags))
}

func centroid(freqs, mags []float64, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	return floats.Dot(freqs, mags) / sum
}

func spread(freqs, mags []float64, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	acc := 0.0
	for i, v := range mags {
		d := freqs[i] - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / sum)
}

// Flatness returns the spectral flatness (Wiener entropy) of mags in 0..1.
// Bin 0 is excluded. Any zero bin makes the geometric mean, and so the
// result, zero.
func Flatness(mags []float64) float64 {
	if len(mags) < 2 {
		return 0
	}
	bins := mags[1:]
	mean := floats.Sum(bins) / float64(len(bins))
	if mean == 0 {
		return 0
	}
	logSum := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		logSum += math.Log(v)
	}
	return math.Exp(logSum/float64(len(bins))) / mean
}

// Rolloff returns the lowest frequency at which the cumulative squared
// magnitude reaches fraction of the total.
func Rolloff(freqs, mags []float64, fraction float64) float64 {
	if len(mags) == 0 {
		return 0
	}
	total := floats.Dot(mags, mags)
	if total == 0 {
		return 0
	}
	threshold := fraction * total
	acc := 0.0
	for i, v := range mags {
		acc += v * v
		if acc >= threshold {
			return freqs[i]
		}
	}
	return freqs[len(freqs)-1]
}

// Bandwidth returns the distance between the -3 dB crossings on either side
// of the largest bin, interpolating linearly between bins. A side without a
// crossing extends to the first or last bin.
func Bandwidth(freqs, mags []float64) float64 {
	n := len(mags)
	if n < 2 {
		return 0
	}
	peak := floats.MaxIdx(mags)
	if mags[peak] == 0 {
		return 0
	}
	threshold := mags[peak] / math.Sqrt2

	lower := freqs[0]
	for i := peak; i >= 1; i-- {
		if mags[i-1] <= threshold && mags[i] > threshold {
			lower = crossing(freqs[i-1], freqs[i], mags[i-1], mags[i], threshold)
			break
		}
	}
	upper := freqs[n-1]
	for i := peak; i < n-1; i++ {
		if mags[i+1] <= threshold && mags[i] > threshold {
			upper = crossing(freqs[i], freqs[i+1], mags[i], mags[i+1], threshold)
			break
		}
	}
	return max(upper-lower, 0)
}

func crossing(f0, f1, m0, m1, threshold float64) float64 {
	if m1 == m0 {
		return (f0 + f1) / 2
	}
	return f0 + (threshold-m0)/(m1-m0)*(f1-f0)
}
