package metrics

import "github.com/san-kum/numlab/internal/dynamo"

// Metric accumulates a scalar over the points of a trajectory.
type Metric interface {
	Name() string
	Observe(t float64, y dynamo.State)
	Value() float64
	Reset()
}

// Evaluate resets each metric and feeds it every point of traj in time order.
func Evaluate(traj *dynamo.Trajectory, ms ...Metric) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	for k := 0; k < traj.Len(); k++ {
		y := traj.At(k)
		for _, m := range ms {
			m.Observe(traj.Times[k], y)
		}
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

var (
	_ Metric = (*EnergyDrift)(nil)
	_ Metric = (*Stability)(nil)
	_ Metric = (*PeakNorm)(nil)
)
