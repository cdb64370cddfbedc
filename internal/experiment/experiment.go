// Package experiment wires a density profile, its SCF expansion and an
// orbit integration into a single run.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/scfsim/internal/check"
	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/orbit"
	"github.com/san-kum/scfsim/internal/potential"
)

type Config struct {
	Profile string
	Order   int
	// Degree is the angular order L. Up to 1 the spherical solver is used;
	// above it the general solver, or the m = 0 solver when Axisymmetric.
	Degree       int
	Axisymmetric bool
	Scale        float64
	Method       string
	VXVV         []float64
	Times        []float64
	Tolerance    float64
}

type Experiment struct {
	cfg     Config
	reg     *Registry
	profile Profile
	coeffs  *potential.Coeffs
	scf     *potential.SCF
	metrics []dynamo.Metric
}

func New(cfg Config, reg *Registry) *Experiment {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Experiment{cfg: cfg, reg: reg}
}

// Setup computes the profile's coefficients and builds the SCF potential.
func (e *Experiment) Setup() error {
	profile, err := e.reg.GetProfile(e.cfg.Profile)
	if err != nil {
		return err
	}
	coeffs, err := e.solve(profile.Density(e.cfg.Scale))
	if err != nil {
		return fmt.Errorf("compute coefficients: %w", err)
	}
	scf, err := potential.NewSCF(potential.WithScale(e.cfg.Scale), potential.WithCoeffs(coeffs))
	if err != nil {
		return err
	}
	e.profile, e.coeffs, e.scf = profile, coeffs, scf
	e.metrics = e.reg.DefaultMetrics(scf)
	return nil
}

func (e *Experiment) solve(dens potential.RadialDensityFunc) (*potential.Coeffs, error) {
	opt := potential.ScaleRadius(e.cfg.Scale)
	switch {
	case e.cfg.Degree <= 1:
		return potential.ComputeCoeffsSpherical(dens, e.cfg.Order, opt)
	case e.cfg.Axisymmetric:
		return potential.ComputeCoeffsAxi(dens.Spherical(), e.cfg.Order, e.cfg.Degree, opt)
	default:
		return potential.ComputeCoeffs(dens.Spherical(), e.cfg.Order, e.cfg.Degree, opt)
	}
}

func (e *Experiment) Potential() *potential.SCF { return e.scf }

func (e *Experiment) Coeffs() *potential.Coeffs { return e.coeffs }

// Reference returns the profile's closed-form potential.
func (e *Experiment) Reference() potential.Potential {
	return e.profile.Reference(e.cfg.Scale)
}

// ReferenceChecks compares the SCF expansion with the profile's closed form
// on g. Setup must have been called.
func (e *Experiment) ReferenceChecks(g check.Grid, eps float64) []check.Check {
	return check.ReferenceChecks(e.profile.Name, e.Reference(), e.scf, g, eps)
}

// Run integrates the configured orbit in the SCF potential. Result states
// are cylindrical [R, vR, vT, z, vz, phi].
func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.scf == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	method, err := e.reg.GetMethod(e.cfg.Method)
	if err != nil {
		return nil, err
	}

	var opts []orbit.Option
	if e.cfg.Tolerance > 0 {
		opts = append(opts, orbit.WithTolerance(e.cfg.Tolerance))
	}
	o, err := orbit.New(e.cfg.VXVV, opts...)
	if err != nil {
		return nil, err
	}
	if err := o.Integrate(ctx, e.cfg.Times, e.scf, method); err != nil {
		return nil, err
	}

	for _, m := range e.metrics {
		m.Reset()
	}
	times := o.Times()
	for i, x := range o.States() {
		for _, m := range e.metrics {
			m.Observe(x, times[i])
		}
	}

	cyl := o.Cylindrical()
	result := &dynamo.Result{
		States:     make([]dynamo.State, len(cyl)),
		Times:      times,
		Energies:   o.Energies(),
		Metrics:    make(map[string]float64, len(e.metrics)),
		StepsTaken: o.Steps(),
	}
	for i, s := range cyl {
		result.States[i] = s
	}
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.EnergyDrift = result.Metrics["energy_drift"]
	return result, nil
}
