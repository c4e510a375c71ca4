package models

import "github.com/san-kum/numlab/internal/dynamo"

// Model is an equation with tunable parameters and a sensible starting state.
type Model interface {
	dynamo.Equation
	dynamo.Configurable
	DefaultState() dynamo.State
}

var (
	_ Model = (*Decay)(nil)
	_ Model = (*Constant)(nil)
	_ Model = (*Harmonic)(nil)
	_ Model = (*Pendulum)(nil)
	_ Model = (*VanDerPol)(nil)
	_ Model = (*Duffing)(nil)
)

// Hamiltonian is implemented by models with a conserved quantity.
type Hamiltonian interface {
	Energy(y dynamo.State) float64
}

var (
	_ Hamiltonian = (*Harmonic)(nil)
	_ Hamiltonian = (*Pendulum)(nil)
)
