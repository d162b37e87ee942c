package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var loadDotEnv sync.Once

// Load parses environment variables into cfg based on its `env` field tags.
// On first use it also loads a .env file when one exists; a missing file is
// not an error.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilPointer
	}

	loadDotEnv.Do(func() {
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
