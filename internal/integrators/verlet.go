package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/scfsim/internal/dynamo"
)

// Verlet and Leapfrog split states as [positions..., velocities...] and
// take the accelerations from the velocity half of Derive.

// kick advances the velocity half of x by h times the acceleration at (x, t).
func kick(dyn dynamo.System, x dynamo.State, t, h float64) {
	half := len(x) / 2
	floats.AddScaled(x[half:], h, dyn.Derive(x, t)[half:])
}

// drift advances the position half of x by h times its velocity half.
func drift(x dynamo.State, h float64) {
	half := len(x) / 2
	floats.AddScaled(x[:half], h, x[half:])
}

// Verlet is position Verlet: drift, kick, drift.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	out := x.Clone()
	drift(out, 0.5*dt)
	kick(dyn, out, t+0.5*dt, dt)
	drift(out, 0.5*dt)
	return out
}

// Leapfrog is kick, drift, kick.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	out := x.Clone()
	kick(dyn, out, t, 0.5*dt)
	drift(out, dt)
	kick(dyn, out, t+dt, 0.5*dt)
	return out
}
