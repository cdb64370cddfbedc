package integrators

import (
	"math"

	"github.com/san-kum/scfsim/internal/dynamo"
)

// RK45 is the Dormand-Prince 5(4) pair with step-size control.
type RK45 struct {
	st stages

	safety   float64
	minScale float64
	maxScale float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
}

// Step takes one fixed step of size dt and discards the error estimate.
func (r *RK45) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return dormandPrince.advance(&r.st, dyn, x, t, dt)
}

// StepAdaptive attempts a step of size dt. The local error is measured
// against tol*(1+|x|) per component. Rejected steps return x unchanged,
// a smaller dt and dynamo.ErrStepRejected.
func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, t, dt, tol float64) (dynamo.State, float64, error) {
	xNew := dormandPrince.advance(&r.st, dyn, x, t, dt)
	ratio := dormandPrince.errorNorm(&r.st, x, xNew, dt) / tol

	switch {
	case ratio > 1:
		return x, dt * math.Max(r.minScale, r.safety*math.Pow(ratio, -0.25)), dynamo.ErrStepRejected
	case ratio == 0:
		return xNew, dt * r.maxScale, nil
	}
	return xNew, dt * math.Min(r.maxScale, r.safety*math.Pow(ratio, -0.2)), nil
}
