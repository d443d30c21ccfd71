// Package config loads solver settings from an optional YAML file with
// environment-variable overrides, the same env-first selection the rest
// of the tool uses for its optional backends.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Config carries the runtime knobs. Zero values mean "use the default"
// or "backend disabled".
type Config struct {
	BudgetMs    int    `yaml:"budgetMs"`    // restart-loop wall-clock budget
	Seed        int64  `yaml:"seed"`        // 0 = time-derived
	MetricsAddr string `yaml:"metricsAddr"` // listen addr for /metrics and the progress stream
	DatabaseURL string `yaml:"databaseUrl"` // run-history store; empty = in-memory
	RedisURL    string `yaml:"redisUrl"`    // progress broker; empty = in-process
}

// Load reads path (when non-empty and present) and then applies env
// overrides: COIOTE_BUDGET_MS, COIOTE_SEED, METRICS_ADDR, DATABASE_URL,
// REDIS_URL.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, err
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if v := os.Getenv("COIOTE_BUDGET_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("COIOTE_BUDGET_MS: %w", err)
		}
		c.BudgetMs = ms
	}
	if v := os.Getenv("COIOTE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("COIOTE_SEED: %w", err)
		}
		c.Seed = seed
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	return c, nil
}

// Budget returns the configured wall-clock budget, or 0 when unset so the
// solver falls back to its default.
func (c Config) Budget() time.Duration {
	if c.BudgetMs <= 0 {
		return 0
	}
	return time.Duration(c.BudgetMs) * time.Millisecond
}
