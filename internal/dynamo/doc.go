// Package dynamo provides the core primitives for integrating test-particle
// orbits in a fixed gravitational potential.
//
// The package defines the interfaces shared by the integrators and the
// orbit code:
//
//   - [State]: phase-space vector
//   - [System]: ODE right-hand side (dX/dt = f(X, t))
//   - [Integrator] and [AdaptiveIntegrator]: numerical steppers
//   - [Hamiltonian]: systems with a conserved energy
//   - [Metric]: observers reducing a run to a scalar
//
// # Example
//
//	o, _ := orbit.New([]float64{1, 0.1, 1.1, 0, 0.1})
//	times := floats.Span(make([]float64, 1001), 0, 280)
//	err := o.Integrate(ctx, times, pot, orbit.MethodODEInt)
//
// # Thread Safety
//
// Integrators keep scratch buffers and are NOT safe for concurrent use.
// [ParallelFor] is the only concurrent helper; callers must write to
// disjoint ranges.
package dynamo
