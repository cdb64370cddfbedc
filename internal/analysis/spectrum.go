package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrTooFewSamples = errors.New("analysis: need at least 4 samples")
	ErrNonUniform    = errors.New("analysis: samples are not uniformly spaced")
)

// PowerSpectrum returns |X_k| for k = 0..n/2 of the mean-subtracted series.
func PowerSpectrum(x []float64) []float64 {
	mean := stat.Mean(x, nil)
	centred := make([]float64, len(x))
	for i, v := range x {
		centred[i] = v - mean
	}
	coeffs := fourier.NewFFT(len(x)).Coefficients(nil, centred)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the frequency, in cycles per unit time, of the
// largest non-zero spectral peak of x sampled every dt.
func DominantFrequency(x []float64, dt float64) (float64, error) {
	if len(x) < 4 {
		return 0, ErrTooFewSamples
	}
	ps := PowerSpectrum(x)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] || best == 0 {
			best = k
		}
	}
	return fourier.NewFFT(len(x)).Freq(best) / dt, nil
}

// uniformStep returns the sample spacing of times, or ErrNonUniform.
func uniformStep(times []float64) (float64, error) {
	if len(times) < 4 {
		return 0, ErrTooFewSamples
	}
	dt := (times[len(times)-1] - times[0]) / float64(len(times)-1)
	for i := 1; i < len(times); i++ {
		if math.Abs(times[i]-times[i-1]-dt) > 1e-9*math.Max(1, math.Abs(dt)) {
			return 0, ErrNonUniform
		}
	}
	return dt, nil
}
