package metrics

import "github.com/san-kum/numlab/internal/dynamo"

// PeakNorm is the largest Euclidean norm of any observed state.
type PeakNorm struct {
	peak float64
}

func NewPeakNorm() *PeakNorm {
	return &PeakNorm{}
}

func (p *PeakNorm) Name() string {
	return "peak_norm"
}

func (p *PeakNorm) Observe(t float64, y dynamo.State) {
	if n := y.Norm(); n > p.peak {
		p.peak = n
	}
}

func (p *PeakNorm) Value() float64 {
	return p.peak
}

func (p *PeakNorm) Reset() {
	p.peak = 0
}
