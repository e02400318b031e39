// Package config loads cutoffx settings from an optional YAML file with
// CUTOFFX_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/models"
	"github.com/medcounsel/cutoffx-go/pkg/cutoffx/store"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CUTOFFX_"

// Config is the full application configuration.
type Config struct {
	DataRoot       string `yaml:"data_root"`
	CatalogDB      string `yaml:"catalog_db"`
	CutoffDB       string `yaml:"cutoff_db"`
	RankPolicy     string `yaml:"rank_policy"`
	ConflictPolicy string `yaml:"conflict_policy"`
	Workers        int    `yaml:"workers"`
	Cache          Cache  `yaml:"cache"`
	Log            Log    `yaml:"log"`
}

// Cache configures the query cache.
type Cache struct {
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataRoot:       "cutoffs",
		CatalogDB:      "data/colleges.db",
		CutoffDB:       "data/cutoff_ranks.db",
		RankPolicy:     string(models.RankPerRow),
		ConflictPolicy: string(store.ConflictReplace),
		Workers:        4,
		Cache:          Cache{TTL: "5m", MaxEntries: 256},
		Log:            Log{Level: "info", Format: "console"},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and environment overrides, then validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(Env().Prefix(EnvPrefix)); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(env Conf) error {
	c.DataRoot = env.Get("DATA_ROOT", c.DataRoot)
	c.CatalogDB = env.Get("CATALOG_DB", c.CatalogDB)
	c.CutoffDB = env.Get("CUTOFF_DB", c.CutoffDB)
	c.RankPolicy = env.Get("RANK_POLICY", c.RankPolicy)
	c.ConflictPolicy = env.Get("CONFLICT_POLICY", c.ConflictPolicy)
	c.Cache.TTL = env.Get("CACHE_TTL", c.Cache.TTL)
	c.Log.Level = env.Get("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env.Get("LOG_FORMAT", c.Log.Format)

	ints := []struct {
		key string
		dst *int
	}{
		{"WORKERS", &c.Workers},
		{"CACHE_MAX_ENTRIES", &c.Cache.MaxEntries},
	}
	for _, it := range ints {
		v, ok := env.Lookup(it.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", env.Key(it.key), v)
		}
		*it.dst = n
	}
	return nil
}

// Validate checks enum and numeric fields.
func (c Config) Validate() error {
	var errs []error
	if _, ok := models.ParseRankPolicy(c.RankPolicy); !ok {
		errs = append(errs, fmt.Errorf("rank_policy: unknown value %q", c.RankPolicy))
	}
	if _, ok := store.ParseConflictPolicy(c.ConflictPolicy); !ok {
		errs = append(errs, fmt.Errorf("conflict_policy: unknown value %q", c.ConflictPolicy))
	}
	if c.Cache.TTL != "" {
		if d, err := time.ParseDuration(c.Cache.TTL); err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("cache.ttl: invalid duration %q", c.Cache.TTL))
		}
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, errors.New("cache.max_entries: must not be negative"))
	}
	if c.Workers < 0 {
		errs = append(errs, errors.New("workers: must not be negative"))
	}
	return errors.Join(errs...)
}

// Policy returns the rank policy. Call after Validate.
func (c Config) Policy() models.RankPolicy {
	p, _ := models.ParseRankPolicy(c.RankPolicy)
	return p
}

// Conflict returns the conflict policy. Call after Validate.
func (c Config) Conflict() store.ConflictPolicy {
	p, _ := store.ParseConflictPolicy(c.ConflictPolicy)
	return p
}

// CacheTTL returns the cache TTL; zero when unset.
func (c Config) CacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.Cache.TTL)
	return d
}
