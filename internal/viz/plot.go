package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"
)

const (
	PlotHeight = 10
	PlotWidth  = 80
	MaxPlots   = 6

	maxConstant = 1 << 53
)

// PlotSeries draws one line plot per series. Series beyond MaxPlots are
// skipped. captions[i] labels series i; missing captions fall back to "y<i>".
// NaN and Inf samples are left out. A series with no finite
// samples, or whose range overflows, is reported instead of drawn.
func PlotSeries(series [][]float64, captions []string) string {
	var sb strings.Builder

	for i, raw := range series {
		if i >= MaxPlots {
			break
		}
		if len(raw) == 0 {
			continue
		}

		caption := fmt.Sprintf("y%d vs time", i)
		if i < len(captions) && captions[i] != "" {
			caption = captions[i]
		}

		values, dropped := finite(raw)
		if !plottable(values) {
			sb.WriteString(Subtle.Render(fmt.Sprintf("%s: not plotted, no finite range (%d of %d samples non-finite)", caption, dropped, len(raw))))
			sb.WriteString("\n\n")
			continue
		}
		if dropped > 0 {
			caption = fmt.Sprintf("%s (%d non-finite samples omitted)", caption, dropped)
		}

		sb.WriteString(asciigraph.Plot(values,
			asciigraph.Height(PlotHeight),
			asciigraph.Width(PlotWidth),
			asciigraph.Caption(caption),
		))
		sb.WriteString("\n\n")
	}

	return sb.String()
}

// finite returns the finite samples of data in order, and how many were dropped.
func finite(data []float64) ([]float64, int) {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out, len(data) - len(out)
}

// plottable reports whether asciigraph can lay out data: it must be
// non-empty, its range must fit in a float64, and a constant series must be
// small enough to be used as a row index.
func plottable(data []float64) bool {
	if len(data) == 0 {
		return false
	}
	lo, hi := data[0], data[0]
	for _, v := range data {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return math.Abs(hi) < maxConstant
	}
	return !math.IsInf(hi-lo, 0)
}

// Columns transposes per-time states into per-component series.
func Columns(states [][]float64) [][]float64 {
	if len(states) == 0 {
		return nil
	}
	series := make([][]float64, len(states[0]))
	for i := range series {
		series[i] = make([]float64, len(states))
		for k := range states {
			if i < len(states[k]) {
				series[i][k] = states[k][i]
			}
		}
	}
	return series
}

// Matrix renders m inside a bordered panel.
func Matrix(m mat.Matrix) string {
	return Panel.Render(fmt.Sprintf("%v", mat.Formatted(m, mat.Squeeze())))
}
