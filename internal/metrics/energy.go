package metrics

import (
	"math"

	"github.com/san-kum/numlab/internal/dynamo"
	"github.com/san-kum/numlab/internal/models"
)

// EnergyDrift tracks the largest relative deviation of a model's energy from
// its value at the first observed point.
type EnergyDrift struct {
	model         models.Hamiltonian
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(model models.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{model: model}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(t float64, y dynamo.State) {
	energy := e.model.Energy(y)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	// zero initial energy has no meaningful relative drift
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
