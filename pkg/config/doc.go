// Package config loads application configuration from environment variables
// and optional dotenv files.
//
// It combines github.com/joho/godotenv for reading .env files with
// github.com/caarlos0/env/v11 for parsing variables into tagged structs.
//
// # Usage
//
// Describe the settings with `env` tags:
//
//	type appConfig struct {
//	    Env        string `env:"APP_ENV" envDefault:"development"`
//	    UsageStore string `env:"USAGE_STORE" envDefault:"memory"`
//	    CacheSize  int    `env:"USAGE_CACHE_SIZE" envDefault:"1024"`
//
//	    HTTP httpserver.Config
//	}
//
//	var cfg appConfig
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Nested structs are parsed as well, so each package can own its Config and
// the binary composes them.
//
// # Dotenv files
//
// Without arguments Load reads ".env" from the working directory once per
// process; a missing file is ignored. Named files must exist:
//
//	err := config.Load(&cfg, "deploy/staging.env")
//	if errors.Is(err, config.ErrEnvFileNotFound) {
//	    // wrong path
//	}
//
// Variables already set in the process environment always win over values
// from dotenv files.
//
// # Lazy sections
//
// Backend settings marked `required` are loaded only when that backend is
// selected:
//
//	var pgCfg pg.Config // PG_CONN_URL is required
//	if err := config.Load(&pgCfg); err != nil {
//	    return err
//	}
//
// # Errors
//
//   - ErrNilPointer: Load was given a nil pointer.
//   - ErrEnvFileNotFound: a named dotenv file does not exist.
//   - ErrParsingConfig: a dotenv file or variable could not be parsed, or a
//     required variable is missing.
package config
