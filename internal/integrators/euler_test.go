package integrators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/numlab/internal/dynamo"
)

type harmonicOscillator struct{}

func (h *harmonicOscillator) Order() int { return 2 }
func (h *harmonicOscillator) Eval(t float64, y dynamo.State) float64 {
	return -y[0]
}

func TestEulerDecay(t *testing.T) {
	traj, err := NewEuler().IntegrateScalar(func(t, y float64) float64 { return -y }, 1.0, 0, 1, DefaultSteps)
	require.NoError(t, err)

	require.Equal(t, DefaultSteps, traj.Len())
	assert.Equal(t, 0.0, traj.Times[0])
	assert.Equal(t, 1.0, traj.Times[DefaultSteps-1])
	assert.Equal(t, 1.0, traj.At(0)[0], "y(0) must be exactly y0")

	final := traj.Final()[0]
	assert.InDelta(t, math.Exp(-1), final, 0.01)

	// Explicit Euler on y' = -y gives y_k = (1-h)^k.
	assert.InDelta(t, math.Pow(0.99, 100), final, 1e-12)
}

func TestEulerConstantDerivativeIsExact(t *testing.T) {
	const c, y0 = 2.5, 1.0

	for _, steps := range []int{2, 3, 11, 101} {
		traj, err := NewEuler().IntegrateScalar(func(t, y float64) float64 { return c }, y0, 0, 2, steps)
		require.NoError(t, err, "steps=%d", steps)
		for k, tk := range traj.Times {
			assert.InDelta(t, y0+c*tk, traj.At(k)[0], 1e-12, "steps=%d k=%d", steps, k)
		}
	}
}

func TestEulerScalarMatchesPhase(t *testing.T) {
	integ := NewEuler()
	f := func(t, y float64) float64 { return math.Sin(t) - 0.5*y }

	scalar, err := integ.IntegrateScalar(f, 0.3, 0, 5, 51)
	require.NoError(t, err)
	phase, err := integ.IntegratePhase(func(t float64, y dynamo.State) float64 {
		return f(t, y[0])
	}, dynamo.State{0.3}, 0, 5, 51)
	require.NoError(t, err)

	assert.Equal(t, scalar.Component(0), phase.Component(0))
}

func TestEulerPhaseShift(t *testing.T) {
	traj, err := NewEuler().Integrate(&harmonicOscillator{}, dynamo.State{1, 0}, 0, 1, 11)
	require.NoError(t, err)
	require.Equal(t, 2, traj.Dim())

	// dy(0) = [y1, -y0] = [0, -1]; h = 0.1
	s1 := traj.At(1)
	assert.InDelta(t, 1.0, s1[0], 1e-15)
	assert.InDelta(t, -0.1, s1[1], 1e-15)

	// dy(t1) = [-0.1, -1]
	s2 := traj.At(2)
	assert.InDelta(t, 0.99, s2[0], 1e-15)
	assert.InDelta(t, -0.2, s2[1], 1e-15)
}

func TestEulerThirdOrderShift(t *testing.T) {
	traj, err := NewEuler().IntegratePhase(func(t float64, y dynamo.State) float64 {
		return 10
	}, dynamo.State{1, 2, 3}, 0, 1, 3)
	require.NoError(t, err)

	// dy = [2, 3, 10], h = 0.5
	assert.Equal(t, dynamo.State{2, 3.5, 8}, traj.At(1))
}

func TestEulerCallsFAtGridTimes(t *testing.T) {
	var seen []float64
	traj, err := NewEuler().IntegratePhase(func(t float64, y dynamo.State) float64 {
		seen = append(seen, t)
		return 0
	}, dynamo.State{1, 1}, 1, 3, 5)
	require.NoError(t, err)

	assert.Equal(t, traj.Times, seen)
}

func TestEulerDoesNotMutateInitialState(t *testing.T) {
	y0 := dynamo.State{1, 0}
	_, err := NewEuler().Integrate(&harmonicOscillator{}, y0, 0, 1, 11)
	require.NoError(t, err)
	assert.Equal(t, dynamo.State{1, 0}, y0)
}

func TestEulerValidation(t *testing.T) {
	integ := NewEuler()
	zero := func(t float64, y dynamo.State) float64 { return 0 }

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"one step", func() error {
			_, err := integ.IntegratePhase(zero, dynamo.State{1}, 0, 1, 1)
			return err
		}, dynamo.ErrInvalidStepCount},
		{"zero steps", func() error {
			_, err := integ.IntegrateScalar(func(t, y float64) float64 { return 0 }, 1, 0, 1, 0)
			return err
		}, dynamo.ErrInvalidStepCount},
		{"empty state", func() error {
			_, err := integ.IntegratePhase(zero, dynamo.State{}, 0, 1, 10)
			return err
		}, dynamo.ErrEmptyState},
		{"nil phase func", func() error {
			_, err := integ.IntegratePhase(nil, dynamo.State{1}, 0, 1, 10)
			return err
		}, dynamo.ErrNilFunc},
		{"nil scalar func", func() error {
			_, err := integ.IntegrateScalar(nil, 1, 0, 1, 10)
			return err
		}, dynamo.ErrNilFunc},
		{"nil equation", func() error {
			_, err := integ.Integrate(nil, dynamo.State{1}, 0, 1, 10)
			return err
		}, dynamo.ErrNilFunc},
		{"order mismatch", func() error {
			_, err := integ.Integrate(&harmonicOscillator{}, dynamo.State{1, 0, 0}, 0, 1, 10)
			return err
		}, dynamo.ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}
}

func TestEulerValidateState(t *testing.T) {
	blowup := func(t, y float64) float64 { return math.Inf(1) }

	integ := NewEuler()
	traj, err := integ.IntegrateScalar(blowup, 1, 0, 1, 5)
	require.NoError(t, err, "non-finite values should propagate without validation")
	assert.True(t, math.IsInf(traj.Final()[0], 1), "expected +Inf final state, got %v", traj.Final())

	integ.ValidateState = true
	_, err = integ.IntegrateScalar(blowup, 1, 0, 1, 5)

	var simErr *dynamo.SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, 1, simErr.Step)
	assert.Equal(t, 0.25, simErr.Time)
	assert.ErrorIs(t, err, dynamo.ErrInvalidState)
}

func TestEulerStep(t *testing.T) {
	dst := make(dynamo.State, 2)
	NewEuler().Step(dst, dynamo.State{1, 2}, dynamo.State{4, -2}, 0.5)
	assert.Equal(t, dynamo.State{3, 1}, dst)
}
