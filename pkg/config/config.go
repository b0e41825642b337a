package config

import (
	"errors"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into v using `env` struct tags.
//
// Before parsing it loads the given dotenv files, or ".env" in the working
// directory when none are given. Variables already present in the process
// environment win over dotenv values. A missing default .env is not an error;
// a missing explicitly named file is.
//
// Example:
//
//	type StoreConfig struct {
//		Driver    string `env:"USAGE_STORE" envDefault:"memory"`
//		CacheSize int    `env:"USAGE_CACHE_SIZE" envDefault:"1024"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}

	if len(files) == 0 {
		defaultEnvLoaded.Do(func() {
			// the default .env is optional
			_ = godotenv.Load()
		})
	} else {
		for _, f := range files {
			if _, err := os.Stat(f); err != nil {
				return errors.Join(ErrEnvFileNotFound, err)
			}
		}
		if err := godotenv.Load(files...); err != nil {
			return errors.Join(ErrParsingConfig, err)
		}
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}
