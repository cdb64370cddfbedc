package dynamo

import "math"

// State is a phase-space vector. Orbits use Cartesian
// [x, y, z, vx, vy, vz].
type State []float64

func (s State) Clone() State {
	return append(State(nil), s...)
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is a first-order ODE dx/dt = Derive(x, t). Derive must not
// retain or modify x.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// AdaptiveIntegrator steps with error control. On ErrStepRejected the
// returned state is x unchanged and the returned dt is the retry size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

// Metric reduces a sampled trajectory to one number.
type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

// Config bounds an integration. Dt is the fixed step, or the first trial
// step of adaptive methods, which then stay within [MinDt, MaxDt].
type Config struct {
	Dt            float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	MaxSteps      int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Tolerance:     1e-11,
		MaxDt:         1.0,
		MinDt:         1e-12,
		MaxSteps:      10_000_000,
		ValidateState: true,
	}
}

// Result is a sampled orbit with its energy series and metric values.
type Result struct {
	States      []State
	Times       []float64
	Energies    []float64
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
}
