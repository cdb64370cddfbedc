package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/scfsim/internal/dynamo"
)

// EnergyDrift tracks the largest relative deviation from the first
// observed energy.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.Hamiltonian
}

func NewEnergyDrift(dyn dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	energy := e.dyn.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// EnergyVariance reduces an energy series to (std/mean)², using the
// population standard deviation.
type EnergyVariance struct {
	name     string
	energies []float64
	dyn      dynamo.Hamiltonian
}

func NewEnergyVariance(dyn dynamo.Hamiltonian) *EnergyVariance {
	return &EnergyVariance{
		name: "energy_variance",
		dyn:  dyn,
	}
}

func (e *EnergyVariance) Name() string { return e.name }

func (e *EnergyVariance) Observe(x dynamo.State, t float64) {
	e.energies = append(e.energies, e.dyn.Energy(x))
}

func (e *EnergyVariance) Value() float64 {
	return RelativeVariance(e.energies)
}

func (e *EnergyVariance) Reset() {
	e.energies = e.energies[:0]
}

// RelativeVariance returns (std/mean)² of x, or 0 for fewer than two
// samples. A zero mean yields +Inf unless x is constant.
func RelativeVariance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(x, nil)
	if std == 0 {
		return 0
	}
	if mean == 0 {
		return math.Inf(1)
	}
	cv := std / mean
	return cv * cv
}
