package integrators

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/numlab/internal/dynamo"
)

// DefaultSteps is the number of grid points used when the caller has no preference.
const DefaultSteps = 101

// Euler is a fixed-step explicit Euler integrator.
//
// When ValidateState is set, integration stops with a *dynamo.SimulationError
// as soon as the state contains NaN or Inf. Otherwise non-finite values
// propagate into the trajectory.
type Euler struct {
	ValidateState bool
}

func NewEuler() *Euler {
	return &Euler{}
}

// Step writes y + h*dy into dst and returns it. dst may alias y.
func (e *Euler) Step(dst, y, dy dynamo.State, h float64) dynamo.State {
	floats.AddScaledTo(dst, y, h, dy)
	return dst
}

// IntegrateScalar solves dy/dt = f(t, y) for a single state variable.
func (e *Euler) IntegrateScalar(f dynamo.ScalarFunc, y0, t0, tf float64, steps int) (*dynamo.Trajectory, error) {
	if f == nil {
		return nil, fmt.Errorf("euler: %w", dynamo.ErrNilFunc)
	}
	return e.IntegratePhase(func(t float64, y dynamo.State) float64 {
		return f(t, y[0])
	}, dynamo.State{y0}, t0, tf, steps)
}

// Integrate solves the equation eq from the phase vector y0.
func (e *Euler) Integrate(eq dynamo.Equation, y0 dynamo.State, t0, tf float64, steps int) (*dynamo.Trajectory, error) {
	if eq == nil {
		return nil, fmt.Errorf("euler: %w", dynamo.ErrNilFunc)
	}
	if len(y0) != eq.Order() {
		return nil, fmt.Errorf("euler: %w: equation order %d, state length %d",
			dynamo.ErrDimensionMismatch, eq.Order(), len(y0))
	}
	return e.IntegratePhase(eq.Eval, y0, t0, tf, steps)
}

// IntegratePhase solves the scalar ODE of order len(y0) whose highest
// derivative is f(t, y), over steps evenly spaced points from t0 to tf.
//
// The derivative used on each interval is the one evaluated at its left
// end: y[k] = y[k-1] + h * dy(t[k-1], y[k-1]), with h = (tf-t0)/(steps-1).
// f is called steps times, once per grid point, in time order. It must not
// retain or modify the state it is given.
//
// y0 is not modified.
func (e *Euler) IntegratePhase(f dynamo.PhaseFunc, y0 dynamo.State, t0, tf float64, steps int) (*dynamo.Trajectory, error) {
	if err := validate(f, y0, steps); err != nil {
		return nil, fmt.Errorf("euler: %w", err)
	}

	n := len(y0)
	h := (tf - t0) / float64(steps-1)
	times := floats.Span(make([]float64, steps), t0, tf)
	out := mat.NewDense(n, steps, nil)

	y := y0.Clone()
	dy := make(dynamo.State, n)

	out.SetCol(0, y)
	phaseDerivative(dy, f, times[0], y)

	for k := 1; k < steps; k++ {
		e.Step(y, y, dy, h)

		if e.ValidateState && !y.IsValid() {
			return nil, &dynamo.SimulationError{
				Step:    k,
				Time:    times[k],
				State:   y.Clone(),
				Wrapped: dynamo.ErrInvalidState,
			}
		}

		out.SetCol(k, y)
		phaseDerivative(dy, f, times[k], y)
	}

	return &dynamo.Trajectory{Times: times, Y: out}, nil
}

// phaseDerivative fills dst with [y[1], ..., y[n-1], f(t, y)].
func phaseDerivative(dst dynamo.State, f dynamo.PhaseFunc, t float64, y dynamo.State) {
	n := len(y)
	copy(dst[:n-1], y[1:])
	dst[n-1] = f(t, y)
}

func validate(f dynamo.PhaseFunc, y0 dynamo.State, steps int) error {
	if f == nil {
		return dynamo.ErrNilFunc
	}
	if len(y0) == 0 {
		return dynamo.ErrEmptyState
	}
	if steps < 2 {
		return fmt.Errorf("%w: got %d", dynamo.ErrInvalidStepCount, steps)
	}
	return nil
}
