package integrators_test

import (
	"math"
	"testing"

	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/integrators"
	"github.com/san-kum/scfsim/internal/orbit"
	"github.com/san-kum/scfsim/internal/potential"
)

// circularError integrates the R = 1 circular Hernquist orbit to t = 10 in
// n steps and returns the distance from the exact position.
func circularError(integ dynamo.Integrator, n int) float64 {
	h := potential.NewHernquist()
	vc := math.Sqrt(-h.RForce(1, 0, 0))
	dyn := orbit.NewDynamics(h)

	const tEnd = 10.0
	x := dynamo.State{1, 0, 0, 0, vc, 0}
	dt := tEnd / float64(n)
	for i := 0; i < n; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}
	s, c := math.Sincos(vc * tEnd)
	return math.Hypot(x[0]-c, x[1]-s)
}

func TestConvergenceOrder_CircularOrbit(t *testing.T) {
	tests := []struct {
		name  string
		integ dynamo.Integrator
		order float64
	}{
		{"rk4", integrators.NewRK4(), 4},
		{"leapfrog", integrators.NewLeapfrog(), 2},
		{"verlet", integrators.NewVerlet(), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coarse := circularError(tt.integ, 50)
			fine := circularError(tt.integ, 100)
			if !(fine < coarse) {
				t.Fatalf("error did not shrink: %e -> %e", coarse, fine)
			}
			got := math.Log2(coarse / fine)
			if math.Abs(got-tt.order) > 0.5 {
				t.Errorf("observed order %.2f, want %.0f (errors %e, %e)", got, tt.order, coarse, fine)
			}
		})
	}
}
