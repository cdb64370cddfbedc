package orbit

import (
	"math"

	"github.com/san-kum/scfsim/internal/coords"
	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/potential"
)

// forcer is implemented by potentials that compute all three force
// components in one pass.
type forcer interface {
	Forces(R, z, phi float64) (fR, fz, fphi float64)
}

// Dynamics is a test particle in a static potential. The state is
// Cartesian (x, y, z, vx, vy, vz).
type Dynamics struct {
	Pot potential.Potential
}

func NewDynamics(pot potential.Potential) *Dynamics {
	return &Dynamics{Pot: pot}
}

func (d *Dynamics) StateDim() int { return 6 }

func (d *Dynamics) forces(R, z, phi float64) (fR, fz, fphi float64) {
	if f, ok := d.Pot.(forcer); ok {
		return f.Forces(R, z, phi)
	}
	return d.Pot.RForce(R, z, phi), d.Pot.ZForce(R, z, phi), d.Pot.PhiForce(R, z, phi)
}

func (d *Dynamics) Derive(x dynamo.State, t float64) dynamo.State {
	R, phi, z := coords.RectToCyl(x[0], x[1], x[2])
	fR, fz, fphi := d.forces(R, z, phi)

	s, c := math.Sincos(phi)
	aT := 0.0
	if R > 0 {
		aT = fphi / R
	}

	return dynamo.State{
		x[3], x[4], x[5],
		fR*c - aT*s,
		fR*s + aT*c,
		fz,
	}
}

// Energy is Φ + v²/2 per unit mass.
func (d *Dynamics) Energy(x dynamo.State) float64 {
	R, phi, z := coords.RectToCyl(x[0], x[1], x[2])
	return d.Pot.Evaluate(R, z, phi) + 0.5*(x[3]*x[3]+x[4]*x[4]+x[5]*x[5])
}
