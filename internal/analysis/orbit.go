package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Summary holds the sampled extent and radial frequency of an orbit.
type Summary struct {
	RPeri           float64 `json:"rperi"`
	RAp             float64 `json:"rap"`
	Eccentricity    float64 `json:"e"`
	ZMax            float64 `json:"zmax"`
	RadialFrequency float64 `json:"radial_frequency"`
}

// Summarize reduces cylindrical samples to a Summary. The radial frequency
// is only computed for uniformly spaced times and is NaN otherwise.
func Summarize(times []float64, states [][]float64) (Summary, error) {
	if len(states) == 0 || len(states) != len(times) {
		return Summary{}, fmt.Errorf("%w: %d times, %d states", ErrTooFewSamples, len(times), len(states))
	}

	r := make([]float64, len(states))
	z := make([]float64, len(states))
	for i, s := range states {
		if len(s) < 4 {
			return Summary{}, fmt.Errorf("analysis: state %d has %d components", i, len(s))
		}
		r[i] = math.Hypot(s[0], s[3])
		z[i] = math.Abs(s[3])
	}

	sum := Summary{
		RPeri:           floats.Min(r),
		RAp:             floats.Max(r),
		ZMax:            floats.Max(z),
		RadialFrequency: math.NaN(),
	}
	if sum.RAp+sum.RPeri > 0 {
		sum.Eccentricity = (sum.RAp - sum.RPeri) / (sum.RAp + sum.RPeri)
	}

	if dt, err := uniformStep(times); err == nil {
		if f, err := DominantFrequency(r, dt); err == nil {
			sum.RadialFrequency = f
		}
	}
	return sum, nil
}
