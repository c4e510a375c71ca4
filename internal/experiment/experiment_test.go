package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/numlab/internal/dynamo"
	"github.com/san-kum/numlab/internal/integrators"
)

func TestRegistryModels(t *testing.T) {
	r := NewRegistry()
	want := []string{"constant", "decay", "duffing", "harmonic", "pendulum", "vanderpol"}
	require.Equal(t, want, r.ListModels())

	for _, name := range want {
		_, err := r.GetModel(name)
		assert.NoError(t, err, "GetModel(%s)", name)
	}

	_, err := r.GetModel("lorenz")
	assert.Error(t, err)
}

func TestRegistryReturnsFreshInstances(t *testing.T) {
	r := NewRegistry()
	a, err := r.GetModel("decay")
	require.NoError(t, err)
	require.NoError(t, a.SetParam("k", 5))

	b, err := r.GetModel("decay")
	require.NoError(t, err)
	assert.Equal(t, 1.0, b.GetParams()["k"], "parameter change leaked into a new instance")
}

func TestExperimentRun(t *testing.T) {
	model, err := NewRegistry().GetModel("decay")
	require.NoError(t, err)

	exp := New(Config{
		Model:  "decay",
		T0:     0,
		Tf:     1,
		Steps:  101,
		Params: map[string]float64{"k": 1},
	})
	require.NoError(t, exp.Setup(model, integrators.NewEuler()))
	assert.Equal(t, []float64{1}, exp.Config().InitState, "default init state")

	traj, err := exp.Run(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1), traj.Final()[0], 0.01)
}

func TestExperimentUnknownParam(t *testing.T) {
	model, err := NewRegistry().GetModel("pendulum")
	require.NoError(t, err)

	exp := New(Config{Model: "pendulum", Params: map[string]float64{"mass": 2}})
	assert.ErrorIs(t, exp.Setup(model, integrators.NewEuler()), dynamo.ErrUnknownParam)
}

func TestExperimentNotSetup(t *testing.T) {
	_, err := New(Config{}).Run(context.Background())
	assert.Error(t, err)
}

func TestExperimentCanceled(t *testing.T) {
	model, err := NewRegistry().GetModel("harmonic")
	require.NoError(t, err)

	exp := New(Config{Model: "harmonic", Tf: 1, Steps: 11})
	require.NoError(t, exp.Setup(model, integrators.NewEuler()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = exp.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExperimentStepCountValidation(t *testing.T) {
	model, err := NewRegistry().GetModel("harmonic")
	require.NoError(t, err)

	exp := New(Config{Model: "harmonic", Tf: 1, Steps: 1})
	require.NoError(t, exp.Setup(model, integrators.NewEuler()))

	_, err = exp.Run(context.Background())
	assert.ErrorIs(t, err, dynamo.ErrInvalidStepCount)
}
