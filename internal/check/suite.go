package check

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/scfsim/internal/orbit"
	"github.com/san-kum/scfsim/internal/potential"
)

// OrbitConfig describes the orbit of the energy-conservation check.
type OrbitConfig struct {
	VXVV      []float64    `yaml:"vxvv"`
	T0        float64      `yaml:"t0"`
	T1        float64      `yaml:"t1"`
	Samples   int          `yaml:"samples"`
	Method    orbit.Method `yaml:"method"`
	Tolerance float64      `yaml:"tolerance"`
}

// Times returns Samples evenly spaced times on [T0, T1].
func (c OrbitConfig) Times() []float64 {
	if c.Samples < 2 {
		return []float64{c.T0}
	}
	return floats.Span(make([]float64, c.Samples), c.T0, c.T1)
}

// Config parametrises the validation suite.
type Config struct {
	Order int         `yaml:"order"`
	Eps   float64     `yaml:"eps"`
	Scale float64     `yaml:"scale"`
	Grid  Grid        `yaml:"grid"`
	Orbit OrbitConfig `yaml:"orbit"`
}

func DefaultConfig() Config {
	return Config{
		Order: Order,
		Eps:   Eps,
		Scale: 1,
		Grid:  DefaultGrid(),
		Orbit: OrbitConfig{
			VXVV:      []float64{1, 0.1, 1.1, 0, 0.1},
			T0:        0,
			T1:        280,
			Samples:   1001,
			Method:    orbit.MethodODEInt,
			Tolerance: 1e-11,
		},
	}
}

// Check is one named validation.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outcome is the result of running a Check.
type Outcome struct {
	Name    string
	Err     error
	Elapsed time.Duration
}

func (o Outcome) Passed() bool { return o.Err == nil }

// Suite returns the validation checks in their canonical order.
func Suite(cfg Config) []Check {
	hernquist := &potential.Hernquist{Amp: 1, A: cfg.Scale}

	defaultSCF := func() (*potential.SCF, error) {
		return potential.NewSCF(potential.WithScale(cfg.Scale))
	}
	computedSCF := func(dens potential.RadialDensityFunc) (*potential.SCF, error) {
		c, err := potential.ComputeCoeffsSpherical(dens, cfg.Order, potential.ScaleRadius(cfg.Scale))
		if err != nil {
			return nil, err
		}
		return potential.NewSCF(potential.WithScale(cfg.Scale), potential.WithCoeffs(c))
	}
	hernquistDens := func(r float64) float64 { return hernquist.Dens(r, 0, 0) }
	zeeuw := func(r float64) float64 {
		return potential.ZeeuwDensity(r, 0, 0, cfg.Scale)
	}

	field := func(name, label string, ref func(potential.Potential) Field, build func() (*potential.SCF, error), want potential.Potential) Check {
		return Check{Name: name, Run: func(ctx context.Context) error {
			scf, err := build()
			if err != nil {
				return err
			}
			return CompareFields(ref(want), ref(scf), label, cfg.Grid, cfg.Eps)
		}}
	}
	dens := func(p potential.Potential) Field { return p.Dens }
	pot := func(p potential.Potential) Field { return p.Evaluate }
	rforce := func(p potential.Potential) Field { return p.RForce }
	zforce := func(p potential.Potential) Field { return p.ZForce }
	phiforce := func(p potential.Potential) Field { return p.PhiForce }

	return []Check{
		{Name: "scf_compute_spherical_hernquist", Run: func(ctx context.Context) error {
			c, err := potential.ComputeCoeffsSpherical(hernquistDens, cfg.Order, potential.ScaleRadius(cfg.Scale))
			if err != nil {
				return err
			}
			if err := SphericalCoeffs(c, cfg.Eps); err != nil {
				return err
			}
			return CoeffValue(c, 0, 0, 0, 1, cfg.Eps)
		}},
		{Name: "scf_compute_spherical_zeeuw", Run: func(ctx context.Context) error {
			c, err := potential.ComputeCoeffsSpherical(zeeuw, cfg.Order, potential.ScaleRadius(cfg.Scale))
			if err != nil {
				return err
			}
			if err := SphericalCoeffs(c, cfg.Eps); err != nil {
				return err
			}
			if err := CoeffValue(c, 0, 0, 0, 1.5, cfg.Eps); err != nil {
				return err
			}
			return CoeffValue(c, 1, 0, 0, 1./6, cfg.Eps)
		}},
		field("dens_matches_hernquist", "density", dens, defaultSCF, hernquist),
		{Name: "dens_matches_zeeuw", Run: func(ctx context.Context) error {
			scf, err := computedSCF(zeeuw)
			if err != nil {
				return err
			}
			ref := func(R, z, phi float64) float64 { return potential.ZeeuwDensity(R, z, phi, cfg.Scale) }
			return CompareFields(ref, scf.Dens, "density", cfg.Grid, cfg.Eps)
		}},
		field("potential_matches_hernquist", "potential", pot, defaultSCF, hernquist),
		field("rforce_matches_hernquist", "radial force", rforce, defaultSCF, hernquist),
		field("zforce_matches_hernquist", "vertical force", zforce, defaultSCF, hernquist),
		field("phiforce_matches_hernquist", "azimuth force", phiforce, defaultSCF, hernquist),
		{Name: "scf_hernquist_energy_conserved", Run: func(ctx context.Context) error {
			scf, err := computedSCF(hernquistDens)
			if err != nil {
				return err
			}
			return OrbitEnergy(ctx, cfg.Orbit, scf, cfg.Eps)
		}},
	}
}

// ReferenceChecks compares every field of got against the closed-form ref
// on g. Check names are prefixed with name.
func ReferenceChecks(name string, ref, got potential.Potential, g Grid, eps float64) []Check {
	fields := []struct {
		suffix, label string
		pick          func(potential.Potential) Field
	}{
		{"dens", "density", func(p potential.Potential) Field { return p.Dens }},
		{"potential", "potential", func(p potential.Potential) Field { return p.Evaluate }},
		{"rforce", "radial force", func(p potential.Potential) Field { return p.RForce }},
		{"zforce", "vertical force", func(p potential.Potential) Field { return p.ZForce }},
		{"phiforce", "azimuth force", func(p potential.Potential) Field { return p.PhiForce }},
	}
	checks := make([]Check, 0, len(fields))
	for _, f := range fields {
		f := f // per-iteration copy; go directive is 1.21
		checks = append(checks, Check{
			Name: fmt.Sprintf("%s_matches_%s", f.suffix, name),
			Run: func(ctx context.Context) error {
				return CompareFields(f.pick(ref), f.pick(got), f.label, g, eps)
			},
		})
	}
	return checks
}

// OrbitEnergy integrates cfg's orbit in pot and checks that its energy
// series has variance below eps.
func OrbitEnergy(ctx context.Context, cfg OrbitConfig, pot potential.Potential, eps float64) error {
	o, err := orbit.New(cfg.VXVV, orbit.WithTolerance(cfg.Tolerance))
	if err != nil {
		return err
	}
	times := cfg.Times()
	if err := o.Integrate(ctx, times, pot, cfg.Method); err != nil {
		return fmt.Errorf("check: integrate orbit: %w", err)
	}
	energies, err := o.E(times)
	if err != nil {
		return err
	}
	return EnergyConserved(energies, eps)
}

// Run executes checks in order. It stops early only when ctx is done; the
// remaining checks are reported with ctx.Err().
func Run(ctx context.Context, checks []Check) []Outcome {
	out := make([]Outcome, 0, len(checks))
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			out = append(out, Outcome{Name: c.Name, Err: err})
			continue
		}
		start := time.Now()
		err := c.Run(ctx)
		out = append(out, Outcome{Name: c.Name, Err: err, Elapsed: time.Since(start)})
	}
	return out
}

// Failed counts failing outcomes.
func Failed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if !o.Passed() {
			n++
		}
	}
	return n
}
