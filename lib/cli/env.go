package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// environment holds the front-end settings that may come from the process
// environment. Command-line flags take precedence.
type environment struct {
	Config    string `env:"RAMBO_CONFIG"`
	LogLevel  string `env:"RAMBO_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"RAMBO_LOG_FORMAT" envDefault:"auto"`
}

// parseEnvironment loads environment defaults.
func parseEnvironment() (environment, error) {
	var e environment
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
