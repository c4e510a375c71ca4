package config

import "sort"

var MatrixPresets = map[string][][]float64{
	"identity3": {
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	},
	"duplicate_rows": {
		{1, 1},
		{1, 1},
	},
	"zero_row": {
		{1, 2, 3},
		{0, 0, 0},
		{4, 5, 6},
	},
	"zero_column": {
		{0, 1, 2},
		{0, 3, 4},
		{0, 5, 6},
	},
	"zero_pivot": {
		{0, 1},
		{1, 0},
	},
	"recovery": {
		{1, 2, 3},
		{2, 4, 7},
		{1, 3, 5},
	},
}

var ODEPresets = map[string]map[string]ODEConfig{
	"decay": {
		"unit": {Model: "decay", Y0: []float64{1.0}, T0: 0, Tf: 1, Steps: 101},
		"slow": {Model: "decay", Y0: []float64{1.0}, T0: 0, Tf: 10, Steps: 201,
			Params: map[string]float64{"k": 0.2}},
	},
	"constant": {
		"ramp": {Model: "constant", Y0: []float64{0.0}, T0: 0, Tf: 5, Steps: 11,
			Params: map[string]float64{"c": 2.0}},
	},
	"harmonic": {
		"cycle": {Model: "harmonic", Y0: []float64{1.0, 0.0}, T0: 0, Tf: 6.283185307179586, Steps: 1001},
		"fine":  {Model: "harmonic", Y0: []float64{1.0, 0.0}, T0: 0, Tf: 6.283185307179586, Steps: 10001},
	},
	"pendulum": {
		"small": {Model: "pendulum", Y0: []float64{0.2, 0.0}, T0: 0, Tf: 10, Steps: 2001},
		"large": {Model: "pendulum", Y0: []float64{2.5, 0.0}, T0: 0, Tf: 10, Steps: 2001},
		"damped": {Model: "pendulum", Y0: []float64{1.0, 0.0}, T0: 0, Tf: 20, Steps: 4001,
			Params: map[string]float64{"damping": 0.5}},
	},
	"vanderpol": {
		"limit_cycle": {Model: "vanderpol", Y0: []float64{2.0, 0.0}, T0: 0, Tf: 20, Steps: 4001},
		"stiff": {Model: "vanderpol", Y0: []float64{2.0, 0.0}, T0: 0, Tf: 20, Steps: 20001,
			Params: map[string]float64{"mu": 5.0}},
	},
	"duffing": {
		"chaos": {Model: "duffing", Y0: []float64{1.0, 0.0}, T0: 0, Tf: 50, Steps: 10001},
	},
}

// GetPreset returns a copy of the named ODE preset, or nil.
func GetPreset(model, preset string) *ODEConfig {
	modelPresets, ok := ODEPresets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	out := cfg
	out.Y0 = append([]float64(nil), cfg.Y0...)
	if cfg.Params != nil {
		out.Params = make(map[string]float64, len(cfg.Params))
		for k, v := range cfg.Params {
			out.Params[k] = v
		}
	}
	return &out
}

func ListPresets(model string) []string {
	modelPresets, ok := ODEPresets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMatrixPreset returns a copy of the named matrix rows, or nil.
func GetMatrixPreset(name string) [][]float64 {
	rows, ok := MatrixPresets[name]
	if !ok {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func ListMatrixPresets() []string {
	names := make([]string, 0, len(MatrixPresets))
	for name := range MatrixPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
