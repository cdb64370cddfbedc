package orbit

import (
	"context"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/potential"
)

func BenchmarkDynamics_Derive(b *testing.B) {
	pots := []struct {
		name string
		pot  potential.Potential
	}{
		{"hernquist", potential.NewHernquist()},
		{"scf_spherical", testSCF(b, 10, 1)},
		{"scf_n10_l4", testSCF(b, 10, 4)},
	}
	x := dynamo.State{0.6, 0.8, 0.1, -0.2, 0.3, 0.05}
	for _, p := range pots {
		b.Run(p.name, func(b *testing.B) {
			d := NewDynamics(p.pot)
			for i := 0; i < b.N; i++ {
				d.Derive(x, 0)
			}
		})
	}
}

func BenchmarkIntegrate_ODEInt(b *testing.B) {
	scf := testSCF(b, 10, 1)
	times := floats.Span(make([]float64, 101), 0, 28)
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o, _ := New([]float64{1, 0.1, 1.1, 0, 0.1})
		if err := o.Integrate(ctx, times, scf, MethodODEInt); err != nil {
			b.Fatal(err)
		}
	}
}

// testSCF expands the Hernquist density with N radial and L angular orders.
func testSCF(tb testing.TB, N, L int) *potential.SCF {
	tb.Helper()
	var (
		c   *potential.Coeffs
		err error
	)
	if L <= 1 {
		c, err = potential.ComputeCoeffsSpherical(potential.SphericalHernquistDensity, N)
	} else {
		c, err = potential.ComputeCoeffs(potential.RadialDensityFunc(potential.SphericalHernquistDensity).Spherical(), N, L)
	}
	if err != nil {
		tb.Fatal(err)
	}
	scf, err := potential.NewSCF(potential.WithCoeffs(c))
	if err != nil {
		tb.Fatal(err)
	}
	return scf
}
