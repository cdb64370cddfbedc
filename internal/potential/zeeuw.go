package potential

import (
	"math"

	"github.com/san-kum/scfsim/internal/coords"
)

// ZeeuwDensity is the density of de Zeeuw's perfect ellipsoid in its
// spherical limit, 3/(4π) · a · (a + r)⁻⁴.
func ZeeuwDensity(R, z, phi, a float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	return 3 / (4 * math.Pi) * math.Pow(a+r, -4) * a
}

// RhoZeeuw is [ZeeuwDensity] with a = 1.
func RhoZeeuw(R, z, phi float64) float64 {
	return ZeeuwDensity(R, z, phi, 1)
}

// SphericalZeeuwDensity is [RhoZeeuw] along the radial line.
func SphericalZeeuwDensity(r float64) float64 {
	return RhoZeeuw(r, 0, 0)
}

// Zeeuw is the potential-density pair of [ZeeuwDensity] with total mass
// Amp:
//
//	Φ = -Amp (2r + a) / (2 (r + a)²),  M(<r) = Amp r³ / (r + a)³
type Zeeuw struct {
	Amp float64
	A   float64
}

func NewZeeuw() *Zeeuw {
	return &Zeeuw{Amp: 1, A: 1}
}

func (p *Zeeuw) Evaluate(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	return -p.Amp * (2*r + p.A) / (2 * (r + p.A) * (r + p.A))
}

func (p *Zeeuw) Dens(R, z, phi float64) float64 {
	return p.Amp * ZeeuwDensity(R, z, phi, p.A)
}

// radialForce is -dΦ/dr divided by r; finite at the centre.
func (p *Zeeuw) radialForce(r float64) float64 {
	return -p.Amp / math.Pow(r+p.A, 3)
}

func (p *Zeeuw) RForce(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	return p.radialForce(r) * R
}

func (p *Zeeuw) ZForce(R, z, phi float64) float64 {
	r, _, _ := coords.CylToSpher(R, z, phi)
	return p.radialForce(r) * z
}

func (p *Zeeuw) PhiForce(R, z, phi float64) float64 {
	return 0
}
