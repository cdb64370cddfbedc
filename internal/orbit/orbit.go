// Package orbit integrates test-particle orbits in a static potential and
// samples them at requested times.
package orbit

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/scfsim/internal/coords"
	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/integrators"
	"github.com/san-kum/scfsim/internal/potential"
)

var (
	ErrPhaseSpace    = errors.New("orbit: phase-space vector must have 5 or 6 components")
	ErrUnknownMethod = errors.New("orbit: unknown integration method")
	ErrTimes         = errors.New("orbit: times must be strictly increasing with at least one entry")
	ErrNotIntegrated = errors.New("orbit: requested time was not integrated")
	ErrTooManySteps  = errors.New("orbit: step limit exceeded")
	ErrNoPotential   = errors.New("orbit: nil potential")
	ErrStepSize      = errors.New("orbit: step size must be positive")
)

type Method string

const (
	// MethodODEInt and MethodDOPR54 are adaptive Dormand-Prince 5(4).
	MethodODEInt   Method = "odeint"
	MethodDOPR54   Method = "dopr54"
	MethodRK4      Method = "rk4"
	MethodLeapfrog Method = "leapfrog"
	MethodVerlet   Method = "verlet"
)

// Methods lists the supported integration methods.
func Methods() []Method {
	return []Method{MethodODEInt, MethodDOPR54, MethodRK4, MethodLeapfrog, MethodVerlet}
}

// NewIntegrator returns a fresh stepper for method.
func NewIntegrator(method Method) (dynamo.Integrator, error) {
	switch method {
	case MethodODEInt, MethodDOPR54:
		return integrators.NewRK45(), nil
	case MethodRK4:
		return integrators.NewRK4(), nil
	case MethodLeapfrog:
		return integrators.NewLeapfrog(), nil
	case MethodVerlet:
		return integrators.NewVerlet(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}

// Orbit is a single orbit. The phase-space vector is [R, vR, vT, z, vz]
// or [R, vR, vT, z, vz, phi]; a 5-component vector starts at phi = 0.
type Orbit struct {
	vxvv []float64
	cfg  dynamo.Config

	dyn    *Dynamics
	times  []float64
	states []dynamo.State
	steps  int
}

type Option func(*Orbit)

// WithTolerance sets the local error tolerance of adaptive methods.
func WithTolerance(tol float64) Option {
	return func(o *Orbit) { o.cfg.Tolerance = tol }
}

// WithStep sets the step size of fixed-step methods and the first trial
// step of adaptive ones.
func WithStep(dt float64) Option {
	return func(o *Orbit) { o.cfg.Dt = dt }
}

// WithMaxSteps bounds the total number of accepted and rejected steps.
func WithMaxSteps(n int) Option {
	return func(o *Orbit) { o.cfg.MaxSteps = n }
}

func New(vxvv []float64, opts ...Option) (*Orbit, error) {
	if len(vxvv) != 5 && len(vxvv) != 6 {
		return nil, fmt.Errorf("%w: got %d", ErrPhaseSpace, len(vxvv))
	}
	o := &Orbit{
		vxvv: append([]float64(nil), vxvv...),
		cfg:  dynamo.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if !(o.cfg.Dt > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrStepSize, o.cfg.Dt)
	}
	return o, nil
}

// Initial returns the Cartesian starting state.
func (o *Orbit) Initial() dynamo.State {
	R, vR, vT, z, vz := o.vxvv[0], o.vxvv[1], o.vxvv[2], o.vxvv[3], o.vxvv[4]
	phi := 0.0
	if len(o.vxvv) == 6 {
		phi = o.vxvv[5]
	}
	x, y, _ := coords.CylToRect(R, phi, z)
	vx, vy := coords.CylToRectVel(vR, vT, phi)
	return dynamo.State{x, y, z, vx, vy, vz}
}

// Integrate integrates from times[0] through every entry of times, which
// must be strictly increasing. The state at times[0] is the initial
// phase-space vector.
func (o *Orbit) Integrate(ctx context.Context, times []float64, pot potential.Potential, method Method) error {
	if pot == nil {
		return ErrNoPotential
	}
	if len(times) == 0 {
		return ErrTimes
	}
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return fmt.Errorf("%w: times[%d]=%v after %v", ErrTimes, i, times[i], times[i-1])
		}
	}
	integ, err := NewIntegrator(method)
	if err != nil {
		return err
	}

	o.dyn = NewDynamics(pot)
	o.times = append([]float64(nil), times...)
	o.states = make([]dynamo.State, 1, len(times))
	o.states[0] = o.Initial()
	o.steps = 0

	x := o.states[0].Clone()
	dt := o.cfg.Dt
	for i := 1; i < len(times); i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		if adaptive, ok := integ.(dynamo.AdaptiveIntegrator); ok {
			x, dt, err = o.advanceAdaptive(adaptive, x, times[i-1], times[i], dt)
		} else {
			x, err = o.advanceFixed(integ, x, times[i-1], times[i])
		}
		if err != nil {
			return err
		}

		if o.cfg.ValidateState && !x.IsValid() {
			return &dynamo.SimulationError{Step: o.steps, Time: times[i], State: x, Wrapped: dynamo.ErrInvalidState}
		}
		o.states = append(o.states, x.Clone())
	}
	return nil
}

func (o *Orbit) advanceAdaptive(integ dynamo.AdaptiveIntegrator, x dynamo.State, t, target, dt float64) (dynamo.State, float64, error) {
	for t < target {
		if o.steps >= o.cfg.MaxSteps {
			return nil, dt, &dynamo.SimulationError{Step: o.steps, Time: t, State: x, Wrapped: ErrTooManySteps}
		}
		o.steps++

		h := math.Min(dt, o.cfg.MaxDt)
		last := h >= target-t
		if last {
			h = target - t
		}

		xNew, dtNext, err := integ.StepAdaptive(o.dyn, x, t, h, o.cfg.Tolerance)
		if errors.Is(err, dynamo.ErrStepRejected) {
			dt = dtNext
			if dt < o.cfg.MinDt {
				return nil, dt, &dynamo.SimulationError{Step: o.steps, Time: t, State: x, Wrapped: dynamo.ErrStepTooSmall}
			}
			continue
		}
		if err != nil {
			return nil, dt, &dynamo.SimulationError{Step: o.steps, Time: t, State: x, Wrapped: err}
		}

		x = xNew
		if last {
			t = target
			if dtNext > dt {
				dt = dtNext
			}
		} else {
			t += h
			dt = dtNext
		}
	}
	return x, dt, nil
}

func (o *Orbit) advanceFixed(integ dynamo.Integrator, x dynamo.State, t, target float64) (dynamo.State, error) {
	n := int(math.Ceil((target - t) / o.cfg.Dt))
	if n < 1 {
		n = 1
	}
	h := (target - t) / float64(n)
	for k := 0; k < n; k++ {
		if o.steps >= o.cfg.MaxSteps {
			return nil, &dynamo.SimulationError{Step: o.steps, Time: t, State: x, Wrapped: ErrTooManySteps}
		}
		o.steps++
		x = integ.Step(o.dyn, x, t+float64(k)*h, h)
	}
	return x, nil
}

// Steps is the number of integrator steps taken by the last Integrate.
func (o *Orbit) Steps() int { return o.steps }

// Times returns the sample times of the last Integrate.
func (o *Orbit) Times() []float64 { return append([]float64(nil), o.times...) }

// States returns the Cartesian samples of the last Integrate.
func (o *Orbit) States() []dynamo.State {
	out := make([]dynamo.State, len(o.states))
	for i, s := range o.states {
		out[i] = s.Clone()
	}
	return out
}

func (o *Orbit) index(t float64) (int, error) {
	if len(o.states) == 0 {
		return 0, ErrNotIntegrated
	}
	tol := 1e-12 * math.Max(1, math.Abs(t))
	lo, hi := 0, len(o.times)
	for lo < hi {
		mid := (lo + hi) / 2
		if o.times[mid] < t-tol {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(o.times) && math.Abs(o.times[lo]-t) <= tol {
		return lo, nil
	}
	return 0, fmt.Errorf("%w: t=%v", ErrNotIntegrated, t)
}

// E returns the energy per unit mass at each of times.
func (o *Orbit) E(times []float64) ([]float64, error) {
	out := make([]float64, len(times))
	for i, t := range times {
		idx, err := o.index(t)
		if err != nil {
			return nil, err
		}
		out[i] = o.dyn.Energy(o.states[idx])
	}
	return out, nil
}

// Energies returns the energy at every sample.
func (o *Orbit) Energies() []float64 {
	out := make([]float64, len(o.states))
	for i, s := range o.states {
		out[i] = o.dyn.Energy(s)
	}
	return out
}

// Cylindrical returns [R, vR, vT, z, vz, phi] at every sample.
func (o *Orbit) Cylindrical() [][]float64 {
	out := make([][]float64, len(o.states))
	for i, s := range o.states {
		R, phi, z := coords.RectToCyl(s[0], s[1], s[2])
		vR, vT := coords.RectToCylVel(s[3], s[4], phi)
		out[i] = []float64{R, vR, vT, z, s[5], phi}
	}
	return out
}

func (o *Orbit) column(k int) []float64 {
	cyl := o.Cylindrical()
	out := make([]float64, len(cyl))
	for i, c := range cyl {
		out[i] = c[k]
	}
	return out
}

func (o *Orbit) R() []float64   { return o.column(0) }
func (o *Orbit) VR() []float64  { return o.column(1) }
func (o *Orbit) VT() []float64  { return o.column(2) }
func (o *Orbit) Z() []float64   { return o.column(3) }
func (o *Orbit) VZ() []float64  { return o.column(4) }
func (o *Orbit) Phi() []float64 { return o.column(5) }
