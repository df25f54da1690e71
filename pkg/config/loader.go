package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Validator is implemented by config structs that carry invariants beyond
// what `env` tags can express (value ranges, enums, cross-field rules).
type Validator interface {
	Validate() error
}

// Load parses environment variables into the provided struct using its
// `env` tags, then runs Validate when the struct implements Validator.
//
// Example:
//
//	type Config struct {
//	    Port       int    `env:"HTTP_PORT" envDefault:"8080"`
//	    StateStore string `env:"STATE_STORE" envDefault:"file"`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
