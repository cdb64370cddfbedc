// Package check compares SCF expansions against closed-form potentials.
//
// It holds the building blocks of the validation suite: grid comparison of
// two fields, the shape test for spherically symmetric coefficients, single
// coefficient oracles and the energy-variance statistic for orbits.
package check

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/scfsim/internal/metrics"
	"github.com/san-kum/scfsim/internal/potential"
)

const (
	// Eps is the absolute tolerance of every comparison.
	Eps = 1e-13

	// Order is the radial expansion order used for computed coefficients.
	Order = 10
)

var (
	ErrNonzeroSine     = errors.New("check: Conforming Asin = 0 fails")
	ErrNonzeroHarmonic = errors.New("check: Non Zero value found at outside (n,l,m) = (n,0,0)")
	ErrCoeffValue      = errors.New("check: coefficient does not match analytic value")
	ErrCoeffIndex      = errors.New("check: coefficient index out of range")
	ErrEnergyVariance  = errors.New("check: energy not conserved")
	ErrEmptyGrid       = errors.New("check: comparison grid has an empty axis")
	ErrTooFewSamples   = errors.New("check: energy series needs at least two samples")
)

// Grid is a set of cylindrical sample coordinates; fields are compared on
// the full product R × Z × Phi.
type Grid struct {
	R   []float64 `yaml:"r"`
	Z   []float64 `yaml:"z"`
	Phi []float64 `yaml:"phi"`
}

// DefaultGrid is the 3 × 5 × 8 comparison grid.
func DefaultGrid() Grid {
	return Grid{
		R:   []float64{0.5, 1, 2},
		Z:   []float64{0, 0.125, -0.125, 0.25, -0.25},
		Phi: []float64{0, 0.5, -0.5, 1, -1, math.Pi, 0.5 + math.Pi, 1 + math.Pi},
	}
}

// Size is the number of grid points.
func (g Grid) Size() int { return len(g.R) * len(g.Z) * len(g.Phi) }

// Field is a scalar function of cylindrical coordinates.
type Field func(R, z, phi float64) float64

// MismatchError reports the first grid point where two fields differ.
type MismatchError struct {
	Label     string
	R, Z, Phi float64
	Want, Got float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("Comparing the %s fails at R=%v, Z=%v, phi=%v", e.Label, e.R, e.Z, e.Phi)
}

// Diff is |Want - Got|.
func (e *MismatchError) Diff() float64 { return math.Abs(e.Want - e.Got) }

// CompareFields walks g in R, Z, Phi order and returns a *MismatchError at
// the first point where |ref - got| is not below eps. An empty grid is an
// error.
func CompareFields(ref, got Field, label string, g Grid, eps float64) error {
	if g.Size() == 0 {
		return fmt.Errorf("%w: %d × %d × %d", ErrEmptyGrid, len(g.R), len(g.Z), len(g.Phi))
	}
	for _, R := range g.R {
		for _, z := range g.Z {
			for _, phi := range g.Phi {
				want, have := ref(R, z, phi), got(R, z, phi)
				if !(math.Abs(want-have) < eps) {
					return &MismatchError{Label: label, R: R, Z: z, Phi: phi, Want: want, Got: have}
				}
			}
		}
	}
	return nil
}

// SphericalCoeffs checks the coefficients of a spherically symmetric
// density: every sine term and every cosine term off the (n, 0, 0) slice
// must be below eps in magnitude.
func SphericalCoeffs(c *potential.Coeffs, eps float64) error {
	N, L, M := c.Shape()
	for n := 0; n < N; n++ {
		for l := 0; l < L; l++ {
			for m := 0; m < M; m++ {
				if c.Sin != nil && !(math.Abs(c.Sin[n][l][m]) < eps) {
					return fmt.Errorf("%w: Asin(n=%d,l=%d,m=%d) = %v", ErrNonzeroSine, n, l, m, c.Sin[n][l][m])
				}
			}
		}
	}
	for n := 0; n < N; n++ {
		for l := 0; l < L; l++ {
			for m := 0; m < M; m++ {
				if l == 0 && m == 0 {
					continue
				}
				if !(math.Abs(c.Cos[n][l][m]) < eps) {
					return fmt.Errorf("%w: Acos(n=%d,l=%d,m=%d) = %v", ErrNonzeroHarmonic, n, l, m, c.Cos[n][l][m])
				}
			}
		}
	}
	return nil
}

// CoeffValue checks Cos[n][l][m] against an analytic value.
func CoeffValue(c *potential.Coeffs, n, l, m int, want, eps float64) error {
	N, L, M := c.Shape()
	if n < 0 || l < 0 || m < 0 || n >= N || l >= L || m >= M {
		return fmt.Errorf("%w: (n,l,m)=(%d,%d,%d) in shape (%d,%d,%d)", ErrCoeffIndex, n, l, m, N, L, M)
	}
	got := c.Cos[n][l][m]
	if !(math.Abs(got-want) < eps) {
		return fmt.Errorf("%w: Acos(n=%d,l=%d,m=%d) = %v fails. Found to be Acos(n=%d,l=%d,m=%d) = %v",
			ErrCoeffValue, n, l, m, want, n, l, m, got)
	}
	return nil
}

// EnergyVariance is (std/mean)² of an energy series.
func EnergyVariance(energies []float64) float64 {
	return metrics.RelativeVariance(energies)
}

// EnergyConserved checks EnergyVariance(energies) < eps over at least two
// samples.
func EnergyConserved(energies []float64, eps float64) error {
	if len(energies) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewSamples, len(energies))
	}
	v := EnergyVariance(energies)
	if !(v < eps) {
		return fmt.Errorf("%w: (std/mean)² = %e over %d samples", ErrEnergyVariance, v, len(energies))
	}
	return nil
}
