package metrics

import (
	"math"

	"github.com/san-kum/numlab/internal/dynamo"
)

// Stability is the fraction of observed states whose components all stay
// within threshold. Non-finite states count as violations.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string {
	return "stability"
}

func (s *Stability) Observe(t float64, y dynamo.State) {
	s.samples++
	for _, val := range y {
		if math.IsNaN(val) || math.Abs(val) > s.threshold {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
