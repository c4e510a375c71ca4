package models

import (
	"fmt"
	"math"

	"github.com/san-kum/numlab/internal/dynamo"
)

// Harmonic is the undamped harmonic oscillator. State: [x, x'].
type Harmonic struct {
	Omega float64
}

func NewHarmonic() *Harmonic {
	return &Harmonic{Omega: 1.0}
}

func (h *Harmonic) Order() int { return 2 }

func (h *Harmonic) Eval(_ float64, y dynamo.State) float64 {
	return -h.Omega * h.Omega * y[0]
}

func (h *Harmonic) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

// Energy is conserved by the exact flow; explicit Euler makes it grow.
func (h *Harmonic) Energy(y dynamo.State) float64 {
	return 0.5 * (h.Omega*h.Omega*y[0]*y[0] + y[1]*y[1])
}

func (h *Harmonic) GetParams() map[string]float64 {
	return map[string]float64{"omega": h.Omega}
}

func (h *Harmonic) SetParam(name string, value float64) error {
	switch name {
	case "omega":
		h.Omega = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// Pendulum is a damped rigid pendulum. State: [theta, omega].
type Pendulum struct {
	Length  float64
	Damping float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Length:  1.0,
		Damping: 0.0,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Order() int { return 2 }

func (p *Pendulum) Eval(_ float64, y dynamo.State) float64 {
	theta, omega := y[0], y[1]
	return -p.Gravity/p.Length*math.Sin(theta) - p.Damping*omega
}

func (p *Pendulum) DefaultState() dynamo.State { return dynamo.State{0.5, 0.0} }

func (p *Pendulum) Energy(y dynamo.State) float64 {
	// per unit mass: KE = 0.5*(L*omega)^2, PE = g*L*(1 - cos(theta))
	v := p.Length * y[1]
	return 0.5*v*v + p.Gravity*p.Length*(1.0-math.Cos(y[0]))
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"damping": p.Damping,
		"gravity": p.Gravity,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// VanDerPol implements the Van der Pol oscillator.
// State: [x, y] where y = dx/dt
//
//	dy/dt = μ(1 - x²)y - x
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{
		Mu: 1.0, // classic value for limit cycle
	}
}

func (v *VanDerPol) Order() int { return 2 }

func (v *VanDerPol) Eval(_ float64, y dynamo.State) float64 {
	x, dx := y[0], y[1]
	return v.Mu*(1-x*x)*dx - x
}

func (v *VanDerPol) DefaultState() dynamo.State { return dynamo.State{2.0, 0.0} }

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.Mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	switch name {
	case "mu":
		v.Mu = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// Duffing implements a nonlinear forced oscillator. State: [x, v].
// The forcing term depends on t directly, so no phase variable is needed.
type Duffing struct {
	Alpha, Beta, Delta, Gamma, Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{Alpha: -1.0, Beta: 1.0, Delta: 0.3, Gamma: 0.5, Omega: 1.2}
}

func (d *Duffing) Order() int { return 2 }

func (d *Duffing) Eval(t float64, y dynamo.State) float64 {
	x, v := y[0], y[1]
	return -d.Delta*v - d.Alpha*x - d.Beta*x*x*x + d.Gamma*math.Cos(d.Omega*t)
}

func (d *Duffing) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0} }

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta, "gamma": d.Gamma, "omega": d.Omega}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	case "gamma":
		d.Gamma = v
	case "omega":
		d.Omega = v
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, n)
	}
	return nil
}
