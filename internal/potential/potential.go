package potential

import (
	"errors"

	"github.com/san-kum/scfsim/internal/coords"
)

var (
	// ErrInvalidScale indicates a non-positive scale radius.
	ErrInvalidScale = errors.New("potential: scale radius must be positive")

	// ErrCoeffShape indicates cosine and sine coefficients of different
	// or ragged shapes, or an order m > l.
	ErrCoeffShape = errors.New("potential: malformed coefficient arrays")

	// ErrInvalidOrder indicates a non-positive expansion order.
	ErrInvalidOrder = errors.New("potential: expansion order must be positive")
)

// Potential is a static gravitational potential in cylindrical coordinates.
// Forces are -∂Φ/∂R, -∂Φ/∂z and -∂Φ/∂φ.
type Potential interface {
	Evaluate(R, z, phi float64) float64
	Dens(R, z, phi float64) float64
	RForce(R, z, phi float64) float64
	ZForce(R, z, phi float64) float64
	PhiForce(R, z, phi float64) float64
}

// DensityFunc is a density at cylindrical (R, z, phi).
type DensityFunc func(R, z, phi float64) float64

// RadialDensityFunc is a spherically symmetric density.
type RadialDensityFunc func(r float64) float64

// Spherical adapts a radial density to a DensityFunc.
func (f RadialDensityFunc) Spherical() DensityFunc {
	return func(R, z, phi float64) float64 {
		r, _, _ := coords.CylToSpher(R, z, phi)
		return f(r)
	}
}
