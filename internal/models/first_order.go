package models

import (
	"fmt"

	"github.com/san-kum/numlab/internal/dynamo"
)

// Decay is exponential decay, dy/dt = -k*y.
type Decay struct {
	Rate float64
}

func NewDecay() *Decay {
	return &Decay{Rate: 1.0}
}

func (d *Decay) Order() int { return 1 }

func (d *Decay) Eval(_ float64, y dynamo.State) float64 {
	return -d.Rate * y[0]
}

func (d *Decay) DefaultState() dynamo.State { return dynamo.State{1.0} }

func (d *Decay) GetParams() map[string]float64 {
	return map[string]float64{"k": d.Rate}
}

func (d *Decay) SetParam(name string, value float64) error {
	switch name {
	case "k":
		d.Rate = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// Constant has a fixed slope, dy/dt = c. Euler integrates it without
// truncation error.
type Constant struct {
	Slope float64
}

func NewConstant() *Constant {
	return &Constant{Slope: 1.0}
}

func (c *Constant) Order() int { return 1 }

func (c *Constant) Eval(_ float64, _ dynamo.State) float64 {
	return c.Slope
}

func (c *Constant) DefaultState() dynamo.State { return dynamo.State{0.0} }

func (c *Constant) GetParams() map[string]float64 {
	return map[string]float64{"c": c.Slope}
}

func (c *Constant) SetParam(name string, value float64) error {
	switch name {
	case "c":
		c.Slope = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}
