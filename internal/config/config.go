// Package config loads process-level settings from the environment,
// read once at startup, grounded on the noah-isme api-gateway's
// pkg/config viper wiring.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 int
	LogLevel             string
	LogFormat            string
	SolverTimeLimitSec   int
	SolverWorkers        int
	SolverRandomSeed     int64
	AllowFallback        bool
	ShutdownGraceTimeout time.Duration
}

// Load reads SOLVER_TIME_LIMIT_SEC, SOLVER_WORKERS, SOLVER_RANDOM_SEED,
// PORT, LOG_LEVEL, LOG_FORMAT, ALLOW_FALLBACK from the environment,
// falling back to the defaults in spec.md §4.2/§4.6 when unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SOLVER_TIME_LIMIT_SEC", 180)
	v.SetDefault("SOLVER_WORKERS", 8)
	v.SetDefault("SOLVER_RANDOM_SEED", 1)
	v.SetDefault("ALLOW_FALLBACK", true)

	cfg := &Config{
		Port:                 v.GetInt("PORT"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
		SolverTimeLimitSec:   v.GetInt("SOLVER_TIME_LIMIT_SEC"),
		SolverWorkers:        maxInt(1, v.GetInt("SOLVER_WORKERS")),
		SolverRandomSeed:     v.GetInt64("SOLVER_RANDOM_SEED"),
		AllowFallback:        v.GetBool("ALLOW_FALLBACK"),
		ShutdownGraceTimeout: 30 * time.Second,
	}
	return cfg, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
