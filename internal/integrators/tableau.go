package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/scfsim/internal/dynamo"
)

// tableau is an explicit Runge-Kutta Butcher tableau. errW holds b - b̂ of
// an embedded lower-order solution and is nil for methods without one.
type tableau struct {
	c    []float64
	a    [][]float64
	b    []float64
	errW []float64
}

var classicRK4 = tableau{
	c: []float64{0, 0.5, 0.5, 1},
	a: [][]float64{
		nil,
		{0.5},
		{0, 0.5},
		{0, 0, 1},
	},
	b: []float64{1.0 / 6, 1.0 / 3, 1.0 / 3, 1.0 / 6},
}

// dormandPrince is DOPRI5. The seventh stage is evaluated at the fifth
// order solution and only feeds the error estimate.
var dormandPrince = tableau{
	c: []float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1},
	a: [][]float64{
		nil,
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	},
	b: []float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0},
	errW: []float64{
		35.0/384 - 5179.0/57600,
		0,
		500.0/1113 - 7571.0/16695,
		125.0/192 - 393.0/640,
		-2187.0/6784 + 92097.0/339200,
		11.0/84 - 187.0/2100,
		-1.0 / 40,
	},
}

// stages holds per-stage derivatives, reused across steps of equal size.
type stages struct {
	k     []dynamo.State
	state dynamo.State
}

func (s *stages) ensure(nStages, n int) {
	if len(s.k) == nStages && len(s.state) == n {
		return
	}
	s.k = make([]dynamo.State, nStages)
	for i := range s.k {
		s.k[i] = make(dynamo.State, n)
	}
	s.state = make(dynamo.State, n)
}

// advance evaluates every stage of tb and returns x + dt Σ b_j k_j. The
// stage derivatives stay in s.k.
func (tb *tableau) advance(s *stages, dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	s.ensure(len(tb.c), len(x))
	for i, ci := range tb.c {
		copy(s.state, x)
		for j, aij := range tb.a[i] {
			if aij != 0 {
				floats.AddScaled(s.state, dt*aij, s.k[j])
			}
		}
		copy(s.k[i], dyn.Derive(s.state, t+ci*dt))
	}

	xNew := x.Clone()
	for j, bj := range tb.b {
		if bj != 0 {
			floats.AddScaled(xNew, dt*bj, s.k[j])
		}
	}
	return xNew
}

// errorNorm is the largest component of dt Σ errW_j k_j scaled by
// 1 + max(|x|, |xNew|).
func (tb *tableau) errorNorm(s *stages, x, xNew dynamo.State, dt float64) float64 {
	errMax := 0.0
	for i := range x {
		var e float64
		for j, w := range tb.errW {
			e += w * s.k[j][i]
		}
		scale := 1 + max(abs(x[i]), abs(xNew[i]))
		errMax = max(errMax, abs(dt*e)/scale)
	}
	return errMax
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
