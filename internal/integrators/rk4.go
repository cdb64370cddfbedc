package integrators

import "github.com/san-kum/scfsim/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta method.
type RK4 struct {
	st stages
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	return classicRK4.advance(&r.st, dyn, x, t, dt)
}
