package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the one-sided magnitude spectrum of values sampled
// every dt seconds. The mean is removed first so bin 0 carries no offset.
func Spectrum(values []float64, dt float64) (freqs, mags []float64) {
	n := len(values)
	if n < 2 || dt <= 0 {
		return nil, nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range values {
		centered[i] = v - mean
	}

	coeffs := fft.FFTReal(centered)
	half := n/2 + 1
	freqs = make([]float64, half)
	mags = make([]float64, half)
	span := float64(n) * dt
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / span
		mags[k] = cmplx.Abs(coeffs[k]) / float64(n)
	}
	return freqs, mags
}

// DominantFrequency is the frequency (Hz) of the strongest non-DC bin, or
// zero for a flat or too-short trace.
func DominantFrequency(values []float64, dt float64) float64 {
	freqs, mags := Spectrum(values, dt)
	best, bestMag := 0, 0.0
	for k := 1; k < len(mags); k++ {
		if mags[k] > bestMag {
			best, bestMag = k, mags[k]
		}
	}
	if best == 0 || bestMag < 1e-12 {
		return 0
	}
	return freqs[best]
}
