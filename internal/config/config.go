package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel = "decay"
	DefaultT0    = 0.0
	DefaultTf    = 1.0
	DefaultSteps = 101
)

var (
	ErrEmptyMatrix = errors.New("config: matrix has no rows")
	ErrRaggedRows  = errors.New("config: matrix rows have different lengths")
)

type Config struct {
	Matrix MatrixConfig `yaml:"matrix"`
	ODE    ODEConfig    `yaml:"ode"`
}

type MatrixConfig struct {
	Rows  [][]float64 `yaml:"rows"`
	Trace bool        `yaml:"trace"`
}

type ODEConfig struct {
	Model         string             `yaml:"model"`
	Y0            []float64          `yaml:"y0"`
	T0            float64            `yaml:"t0"`
	Tf            float64            `yaml:"tf"`
	Steps         int                `yaml:"steps"`
	Params        map[string]float64 `yaml:"params,omitempty"`
	ValidateState bool               `yaml:"validate_state"`
}

func DefaultConfig() *Config {
	return &Config{
		ODE: ODEConfig{
			Model: DefaultModel,
			T0:    DefaultT0,
			Tf:    DefaultTf,
			Steps: DefaultSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Dense converts the configured rows into a matrix. Rows must be non-empty
// and all of the same length; squareness is checked by the consumer.
func (m MatrixConfig) Dense() (*mat.Dense, error) {
	return DenseFromRows(m.Rows)
}

func DenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMatrix
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrRaggedRows, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
