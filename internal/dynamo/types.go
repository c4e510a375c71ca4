package dynamo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// State is the phase vector y at a single time point.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// ScalarFunc is the right-hand side of a first-order scalar ODE dy/dt = f(t, y).
type ScalarFunc func(t, y float64) float64

// PhaseFunc returns the highest derivative of a scalar ODE of order len(y),
// given the full phase vector y = [x, x', ..., x^(n-1)].
type PhaseFunc func(t float64, y State) float64

// Equation is a named higher-order scalar ODE written in phase form.
type Equation interface {
	Order() int
	Eval(t float64, y State) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Trajectory holds the recorded solution of an integration run.
// Y has one row per state variable and one column per time point.
type Trajectory struct {
	Times []float64
	Y     *mat.Dense
}

// Len returns the number of recorded time points.
func (tr *Trajectory) Len() int {
	return len(tr.Times)
}

// Dim returns the number of state variables.
func (tr *Trajectory) Dim() int {
	if tr.Y == nil {
		return 0
	}
	r, _ := tr.Y.Dims()
	return r
}

// At returns a copy of the state recorded at time index k.
func (tr *Trajectory) At(k int) State {
	return State(mat.Col(nil, k, tr.Y))
}

// Final returns a copy of the last recorded state.
func (tr *Trajectory) Final() State {
	return tr.At(tr.Len() - 1)
}

// Component returns a copy of the time series of state variable i.
func (tr *Trajectory) Component(i int) []float64 {
	return mat.Row(nil, i, tr.Y)
}

// States returns the trajectory as one State per time point.
func (tr *Trajectory) States() []State {
	states := make([]State, tr.Len())
	for k := range states {
		states[k] = tr.At(k)
	}
	return states
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
