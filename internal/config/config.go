// Package config loads the simulation core's tunable parameters from YAML,
// the way the teacher configures its generator via DefaultGenConfig /
// SmallTestConfig value structs (internal/world/generation.go) — except the
// ambient stack calls for the config to additionally be externally
// loadable, the way dshills-dungo's generator config loads from YAML via
// gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/talgya/worldcore/internal/region"
	"github.com/talgya/worldcore/internal/structure"
	"github.com/talgya/worldcore/internal/worldgen"
)

// SchedulerConfig holds the region scheduler's tunable rate (spec.md
// section 4.4). The active/background rate multipliers themselves are
// fixed constants (region.ActiveRate, region.BackgroundRate) per spec.md's
// "default" wording, so only tick length is configurable here.
type SchedulerConfig struct {
	TickLengthSeconds float64 `yaml:"tick_length_seconds"`
}

// DefaultSchedulerConfig mirrors spec.md section 4.4's default tick length.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{TickLengthSeconds: 1.0}
}

// PersistenceConfig holds the persistence layer's tunables (spec.md section
// 4.10).
type PersistenceConfig struct {
	BackupCount int    `yaml:"backup_count"`
	DataDir     string `yaml:"data_dir"`
}

// DefaultPersistenceConfig mirrors spec.md section 4.10's "default 3"
// backup bound.
func DefaultPersistenceConfig() PersistenceConfig {
	return PersistenceConfig{BackupCount: 3, DataDir: "data"}
}

// Config aggregates every subsystem's tunables into a single YAML-loadable
// document for the CLI harness and long-running server entry points
// (spec.md section 6's external interfaces).
type Config struct {
	WorldGen    worldgen.Config     `yaml:"worldgen"`
	Scheduler   SchedulerConfig     `yaml:"scheduler"`
	Tax         structure.TaxParams `yaml:"tax"`
	Persistence PersistenceConfig   `yaml:"persistence"`
}

// Default returns a complete, reasonable configuration: the teacher's
// production-sized worldgen defaults plus spec.md's named defaults for
// every other subsystem.
func Default() Config {
	return Config{
		WorldGen:    worldgen.DefaultConfig(),
		Scheduler:   DefaultSchedulerConfig(),
		Tax:         structure.DefaultTaxParams(region.BackgroundInterval * 24),
		Persistence: DefaultPersistenceConfig(),
	}
}

// Load reads and parses a YAML configuration file at path, starting from
// Default() so a partial file only overrides the fields it sets.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, for operators who want to dump the
// running configuration (defaults included) to seed a new override file.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
