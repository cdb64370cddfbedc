package check

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/scfsim/internal/potential"
)

func TestDefaultGrid(t *testing.T) {
	g := DefaultGrid()
	assert.Len(t, g.R, 3)
	assert.Len(t, g.Z, 5)
	assert.Len(t, g.Phi, 8)
	assert.Equal(t, 120, g.Size())
}

func TestSphericalCoeffs(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *potential.Coeffs)
		want  error
	}{
		{"clean", func(c *potential.Coeffs) {}, nil},
		{"sine", func(c *potential.Coeffs) { c.Sin[1][1][1] = 1e-6 }, ErrNonzeroSine},
		{"harmonic", func(c *potential.Coeffs) { c.Cos[0][1][0] = 1e-6 }, ErrNonzeroHarmonic},
		{"nan", func(c *potential.Coeffs) { c.Cos[2][2][1] = math.NaN() }, ErrNonzeroHarmonic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := potential.NewCoeffs(3, 3, 3)
			c.Cos[0][0][0] = 1
			c.Cos[2][0][0] = 5
			tt.setup(c)
			err := SphericalCoeffs(c, Eps)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCoeffValue(t *testing.T) {
	c := potential.NewCoeffs(2, 1, 1)
	c.Cos[1][0][0] = 1. / 6

	require.NoError(t, CoeffValue(c, 1, 0, 0, 1./6, Eps))
	assert.ErrorIs(t, CoeffValue(c, 1, 0, 0, 0.17, Eps), ErrCoeffValue)
	assert.ErrorIs(t, CoeffValue(c, 2, 0, 0, 0, Eps), ErrCoeffIndex)
	assert.ErrorIs(t, CoeffValue(c, 0, 1, 0, 0, Eps), ErrCoeffIndex)
}

func TestEnergyVariance(t *testing.T) {
	assert.Zero(t, EnergyVariance([]float64{-0.3, -0.3, -0.3}))
	// mean 2, population std 1
	assert.InDelta(t, 0.25, EnergyVariance([]float64{1, 3}), 1e-15)
	assert.NoError(t, EnergyConserved([]float64{-0.5, -0.5}, Eps))
	assert.ErrorIs(t, EnergyConserved([]float64{-0.5}, Eps), ErrTooFewSamples)
	assert.ErrorIs(t, EnergyConserved(nil, Eps), ErrTooFewSamples)
}

func TestCompareFields_EmptyGrid(t *testing.T) {
	one := func(R, z, phi float64) float64 { return 1 }
	two := func(R, z, phi float64) float64 { return 2 }

	tests := []struct {
		name string
		grid Grid
	}{
		{"no R", Grid{Z: []float64{0}, Phi: []float64{0}}},
		{"no Z", Grid{R: []float64{1}, Phi: []float64{0}}},
		{"no phi", Grid{R: []float64{1}, Z: []float64{0}}},
		{"zero", Grid{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, CompareFields(one, two, "density", tt.grid, Eps), ErrEmptyGrid)
		})
	}
}

func TestSuite_EmptyGridFailsFieldChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.R = nil
	cfg.Orbit.Samples = 1

	outcomes := Run(context.Background(), Suite(cfg))
	require.Len(t, outcomes, 9)
	for _, o := range outcomes {
		switch o.Name {
		case "scf_compute_spherical_hernquist", "scf_compute_spherical_zeeuw":
			assert.NoError(t, o.Err, o.Name)
		case "scf_hernquist_energy_conserved":
			assert.ErrorIs(t, o.Err, ErrTooFewSamples)
		default:
			assert.ErrorIs(t, o.Err, ErrEmptyGrid, o.Name)
		}
	}
}

func TestOrbitConfigTimes(t *testing.T) {
	c := OrbitConfig{T0: 1, T1: 2, Samples: 5}
	assert.Equal(t, []float64{1, 1.25, 1.5, 1.75, 2}, c.Times())
	c.Samples = 1
	assert.Equal(t, []float64{1}, c.Times())
}

func TestReferenceChecks(t *testing.T) {
	hernquist := potential.NewHernquist()
	zeeuw := potential.NewZeeuw()

	checks := ReferenceChecks("hernquist", hernquist, hernquist, DefaultGrid(), Eps)
	names := make([]string, len(checks))
	for i, c := range checks {
		names[i] = c.Name
	}
	assert.Equal(t, []string{
		"dens_matches_hernquist", "potential_matches_hernquist", "rforce_matches_hernquist",
		"zforce_matches_hernquist", "phiforce_matches_hernquist",
	}, names)
	assert.Zero(t, Failed(Run(context.Background(), checks)))

	outcomes := Run(context.Background(), ReferenceChecks("zeeuw", zeeuw, hernquist, DefaultGrid(), Eps))
	var mismatch *MismatchError
	require.ErrorAs(t, outcomes[1].Err, &mismatch)
	assert.Equal(t, "potential", mismatch.Label)
	// both potentials are axisymmetric
	assert.NoError(t, outcomes[4].Err)
}
