package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/numlab/internal/models"
)

type Registry struct {
	models map[string]func() models.Model
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() models.Model),
	}

	r.models["decay"] = func() models.Model { return models.NewDecay() }
	r.models["constant"] = func() models.Model { return models.NewConstant() }
	r.models["harmonic"] = func() models.Model { return models.NewHarmonic() }
	r.models["pendulum"] = func() models.Model { return models.NewPendulum() }
	r.models["vanderpol"] = func() models.Model { return models.NewVanDerPol() }
	r.models["duffing"] = func() models.Model { return models.NewDuffing() }

	return r
}

// GetModel returns a fresh instance, so parameter changes never leak between runs.
func (r *Registry) GetModel(name string) (models.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s (available: %v)", name, r.ListModels())
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
