package potential

import (
	"math"

	"github.com/san-kum/scfsim/internal/coords"
)

// Hernquist is the Hernquist (1990) profile with total mass Amp/2:
//
//	Φ = -Amp / (2 (r + a)),  ρ = Amp a / (4π r (r + a)³)
type Hernquist struct {
	Amp float64
	A   float64
}

// NewHernquist returns the unit-amplitude, unit-scale profile.
func NewHernquist() *Hernquist {
	return &Hernquist{Amp: 1, A: 1}
}

func (h *Hernquist) Evaluate(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	return -h.Amp / (2 * (r + h.A))
}

func (h *Hernquist) Dens(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	return h.Amp * h.A / (4 * math.Pi * r * math.Pow(r+h.A, 3))
}

// radialForce returns -dΦ/dr divided by r.
func (h *Hernquist) radialForce(r float64) float64 {
	return -h.Amp / (2 * r * (r + h.A) * (r + h.A))
}

func (h *Hernquist) RForce(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	if r == 0 {
		return 0
	}
	return h.radialForce(r) * R
}

func (h *Hernquist) ZForce(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	if r == 0 {
		return 0
	}
	return h.radialForce(r) * z
}

func (h *Hernquist) PhiForce(R, z, phi float64) float64 {
	return 0
}

// SphericalHernquistDensity is the density of the default Hernquist
// profile along the radial line (r, 0, 0).
func SphericalHernquistDensity(r float64) float64 {
	return NewHernquist().Dens(r, 0, 0)
}
