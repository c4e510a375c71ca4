package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/numlab/internal/dynamo"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/models"
)

type Config struct {
	Model         string
	InitState     []float64
	T0            float64
	Tf            float64
	Steps         int
	Params        map[string]float64
	ValidateState bool
}

type Experiment struct {
	cfg        Config
	model      models.Model
	integrator *integrators.Euler
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup binds the model and integrator and applies cfg.Params to the model.
// An empty InitState is replaced by the model's default state.
func (e *Experiment) Setup(model models.Model, integrator *integrators.Euler) error {
	if model == nil || integrator == nil {
		return fmt.Errorf("experiment: model and integrator are required")
	}

	names := make([]string, 0, len(e.cfg.Params))
	for name := range e.cfg.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := model.SetParam(name, e.cfg.Params[name]); err != nil {
			return fmt.Errorf("model %s: %w", e.cfg.Model, err)
		}
	}

	if len(e.cfg.InitState) == 0 {
		e.cfg.InitState = model.DefaultState()
	}

	integrator.ValidateState = e.cfg.ValidateState
	e.model = model
	e.integrator = integrator
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Trajectory, error) {
	if e.model == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x0 := make(dynamo.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	return e.integrator.Integrate(e.model, x0, e.cfg.T0, e.cfg.Tf, e.cfg.Steps)
}

// Config returns the configuration after Setup filled in defaults.
func (e *Experiment) Config() Config {
	return e.cfg
}
