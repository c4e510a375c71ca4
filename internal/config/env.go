package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds settings read from the process environment. Command-line
// flags take precedence over these.
type Env struct {
	DataDir  string `env:"NUMLAB_DATA_DIR" envDefault:".numlab"`
	Steps    int    `env:"NUMLAB_STEPS" envDefault:"101"`
	Trace    bool   `env:"NUMLAB_TRACE"`
	LogLevel string `env:"NUMLAB_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads Env from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
