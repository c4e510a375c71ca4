package experiment

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/numlab/internal/dynamo"
	"github.com/san-kum/numlab/internal/integrators"
)

// Level is the outcome of one run of a convergence study.
type Level struct {
	Steps int
	H     float64
	Final dynamo.State
	// Diff is the Euclidean distance between Final and the final state of
	// the finest level.
	Diff float64
}

// Convergence integrates the same problem at several step counts in parallel.
type Convergence struct {
	cfg      Config
	registry *Registry
}

func NewConvergence(cfg Config, registry *Registry) *Convergence {
	return &Convergence{cfg: cfg, registry: registry}
}

// Run returns one Level per distinct step count, sorted by Steps. Each run
// gets its own model instance.
func (c *Convergence) Run(ctx context.Context, steps []int) ([]Level, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("convergence: no step counts")
	}

	counts := append([]int(nil), steps...)
	sort.Ints(counts)
	counts = dedupe(counts)

	levels := make([]Level, len(counts))
	errs := make([]error, len(counts))

	var wg sync.WaitGroup
	for i, n := range counts {
		wg.Add(1)
		go func(idx, n int) {
			defer wg.Done()

			cfg := c.cfg
			cfg.Steps = n
			traj, err := c.runOne(ctx, cfg)
			if err != nil {
				errs[idx] = fmt.Errorf("steps=%d: %w", n, err)
				return
			}
			levels[idx] = Level{
				Steps: n,
				H:     (cfg.Tf - cfg.T0) / float64(n-1),
				Final: traj.Final(),
			}
		}(i, n)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	finest := levels[len(levels)-1].Final
	for i := range levels {
		levels[i].Diff = floats.Distance(levels[i].Final, finest, 2)
	}
	return levels, nil
}

func (c *Convergence) runOne(ctx context.Context, cfg Config) (*dynamo.Trajectory, error) {
	model, err := c.registry.GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	exp := New(cfg)
	if err := exp.Setup(model, integrators.NewEuler()); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

func dedupe(sorted []int) []int {
	out := make([]int, 0, len(sorted))
	for _, v := range sorted {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
