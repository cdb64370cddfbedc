package check_test

import (
	"context"
	"math"

	g "github.com/onsi/ginkgo/v2"
	o "github.com/onsi/gomega"

	"github.com/san-kum/scfsim/internal/check"
	"github.com/san-kum/scfsim/internal/orbit"
	"github.com/san-kum/scfsim/internal/potential"
)

func mustSCF(opts ...potential.SCFOption) *potential.SCF {
	g.GinkgoHelper()
	scf, err := potential.NewSCF(opts...)
	o.Expect(err).NotTo(o.HaveOccurred())
	return scf
}

var _ = g.Describe("SCF coefficients", func() {
	g.It("computes the Hernquist coefficients", func() {
		c, err := potential.ComputeCoeffsSpherical(potential.SphericalHernquistDensity, check.Order)
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(check.SphericalCoeffs(c, check.Eps)).To(o.Succeed())
		o.Expect(check.CoeffValue(c, 0, 0, 0, 1, check.Eps)).To(o.Succeed())
	})

	g.It("computes the Zeeuw coefficients", func() {
		c, err := potential.ComputeCoeffsSpherical(potential.SphericalZeeuwDensity, check.Order)
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(check.SphericalCoeffs(c, check.Eps)).To(o.Succeed())
		o.Expect(check.CoeffValue(c, 0, 0, 0, 1.5, check.Eps)).To(o.Succeed())
		o.Expect(check.CoeffValue(c, 1, 0, 0, 1./6, check.Eps)).To(o.Succeed())
		for n := 2; n < check.Order; n++ {
			o.Expect(math.Abs(c.Cos[n][0][0])).To(o.BeNumerically("<", check.Eps))
		}
	})

	g.It("keeps the Hernquist projection spherical on the full basis", func() {
		c, err := potential.ComputeCoeffs(potential.NewHernquist().Dens, 6, 4)
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(check.SphericalCoeffs(c, 1e-8)).To(o.Succeed())
		o.Expect(check.CoeffValue(c, 0, 0, 0, 1, 1e-8)).To(o.Succeed())
	})
})

var _ = g.Describe("Field agreement", func() {
	var (
		hernquist *potential.Hernquist
		scf       *potential.SCF
		grid      check.Grid
	)

	g.BeforeEach(func() {
		hernquist = potential.NewHernquist()
		scf = mustSCF()
		grid = check.DefaultGrid()
	})

	g.DescribeTable("default SCF against Hernquist",
		func(label string, field func(potential.Potential) check.Field) {
			o.Expect(check.CompareFields(field(hernquist), field(scf), label, grid, check.Eps)).To(o.Succeed())
		},
		g.Entry("density", "density", func(p potential.Potential) check.Field { return p.Dens }),
		g.Entry("potential", "potential", func(p potential.Potential) check.Field { return p.Evaluate }),
		g.Entry("radial force", "radial force", func(p potential.Potential) check.Field { return p.RForce }),
		g.Entry("vertical force", "vertical force", func(p potential.Potential) check.Field { return p.ZForce }),
		g.Entry("azimuth force", "azimuth force", func(p potential.Potential) check.Field { return p.PhiForce }),
	)

	g.It("matches the Hernquist density with computed coefficients", func() {
		c, err := potential.ComputeCoeffsSpherical(potential.SphericalHernquistDensity, check.Order)
		o.Expect(err).NotTo(o.HaveOccurred())
		computed := mustSCF(potential.WithCoeffs(c))
		o.Expect(check.CompareFields(hernquist.Dens, computed.Dens, "density", grid, check.Eps)).To(o.Succeed())
		o.Expect(check.CompareFields(hernquist.Evaluate, computed.Evaluate, "potential", grid, check.Eps)).To(o.Succeed())
	})

	g.It("matches the Zeeuw density", func() {
		c, err := potential.ComputeCoeffsSpherical(potential.SphericalZeeuwDensity, check.Order)
		o.Expect(err).NotTo(o.HaveOccurred())
		zeeuw := mustSCF(potential.WithCoeffs(c))
		o.Expect(check.CompareFields(potential.RhoZeeuw, zeeuw.Dens, "density", grid, check.Eps)).To(o.Succeed())
	})

	g.It("agrees at R=1, Z=0.125, phi=0.5", func() {
		R, z, phi := 1.0, 0.125, 0.5
		o.Expect(scf.Dens(R, z, phi)).To(o.BeNumerically("~", hernquist.Dens(R, z, phi), check.Eps))
		o.Expect(scf.Evaluate(R, z, phi)).To(o.BeNumerically("~", hernquist.Evaluate(R, z, phi), check.Eps))
		o.Expect(scf.RForce(R, z, phi)).To(o.BeNumerically("~", hernquist.RForce(R, z, phi), check.Eps))
		o.Expect(scf.ZForce(R, z, phi)).To(o.BeNumerically("~", hernquist.ZForce(R, z, phi), check.Eps))
		o.Expect(scf.PhiForce(R, z, phi)).To(o.BeNumerically("~", 0, check.Eps))
	})

	g.It("reports the first mismatching grid point", func() {
		shifted := func(R, z, phi float64) float64 { return hernquist.Evaluate(R, z, phi) + 1e-6 }
		err := check.CompareFields(hernquist.Evaluate, shifted, "potential", grid, check.Eps)
		o.Expect(err).To(o.HaveOccurred())
		o.Expect(err.Error()).To(o.Equal("Comparing the potential fails at R=0.5, Z=0, phi=0"))

		var mismatch *check.MismatchError
		o.Expect(err).To(o.BeAssignableToTypeOf(mismatch))
		o.Expect(err.(*check.MismatchError).Diff()).To(o.BeNumerically("~", 1e-6, 1e-12))
	})

	g.It("treats NaN as a mismatch", func() {
		nan := func(R, z, phi float64) float64 { return math.NaN() }
		err := check.CompareFields(hernquist.Dens, nan, "density", grid, check.Eps)
		o.Expect(err).To(o.MatchError(o.ContainSubstring("Comparing the density fails")))
	})
})

var _ = g.Describe("Energy conservation", func() {
	g.It("conserves the energy of an orbit in the computed Hernquist SCF", func(ctx g.SpecContext) {
		c, err := potential.ComputeCoeffsSpherical(potential.SphericalHernquistDensity, check.Order)
		o.Expect(err).NotTo(o.HaveOccurred())
		scf := mustSCF(potential.WithCoeffs(c))

		cfg := check.DefaultConfig().Orbit
		times := cfg.Times()
		o.Expect(times).To(o.HaveLen(1001))
		o.Expect(times[0]).To(o.Equal(0.0))
		o.Expect(times[1000]).To(o.Equal(280.0))

		orb, err := orbit.New(cfg.VXVV, orbit.WithTolerance(cfg.Tolerance))
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(orb.Integrate(ctx, times, scf, orbit.MethodODEInt)).To(o.Succeed())

		energies, err := orb.E(times)
		o.Expect(err).NotTo(o.HaveOccurred())
		o.Expect(energies).To(o.HaveLen(len(times)))
		o.Expect(check.EnergyVariance(energies)).To(o.BeNumerically("<", check.Eps))
	})

	g.It("flags a drifting energy series", func() {
		err := check.EnergyConserved([]float64{1, 1.1, 0.9}, check.Eps)
		o.Expect(err).To(o.MatchError(check.ErrEnergyVariance))
	})
})

var _ = g.Describe("Suite", func() {
	g.It("lists the checks in canonical order", func() {
		var names []string
		for _, c := range check.Suite(check.DefaultConfig()) {
			names = append(names, c.Name)
		}
		o.Expect(names).To(o.Equal([]string{
			"scf_compute_spherical_hernquist",
			"scf_compute_spherical_zeeuw",
			"dens_matches_hernquist",
			"dens_matches_zeeuw",
			"potential_matches_hernquist",
			"rforce_matches_hernquist",
			"zforce_matches_hernquist",
			"phiforce_matches_hernquist",
			"scf_hernquist_energy_conserved",
		}))
	})

	g.It("passes every field check on the default grid", func() {
		var checks []check.Check
		for _, c := range check.Suite(check.DefaultConfig()) {
			if c.Name != "scf_hernquist_energy_conserved" {
				checks = append(checks, c)
			}
		}
		outcomes := check.Run(context.Background(), checks)
		o.Expect(outcomes).To(o.HaveLen(8))
		for _, out := range outcomes {
			o.Expect(out.Err).NotTo(o.HaveOccurred(), out.Name)
		}
		o.Expect(check.Failed(outcomes)).To(o.BeZero())
	})

	g.It("passes with a non-unit scale radius", func() {
		cfg := check.DefaultConfig()
		cfg.Scale = 2
		for _, c := range check.Suite(cfg)[:4] {
			o.Expect(c.Run(context.Background())).To(o.Succeed(), c.Name)
		}
	})

	g.It("skips checks once the context is done", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		outcomes := check.Run(ctx, check.Suite(check.DefaultConfig()))
		o.Expect(check.Failed(outcomes)).To(o.Equal(len(outcomes)))
		o.Expect(outcomes[0].Err).To(o.MatchError(context.Canceled))
	})
})
