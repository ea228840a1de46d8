// Package config loads and validates the engine's inbound configuration.
// Files are strict YAML: unknown fields are rejected at this boundary
// rather than deep in the core.
package config

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/navigator"
	"github.com/Rallt/Quantum-maze/pkg/rotation"
	"github.com/Rallt/Quantum-maze/pkg/validation"
)

// Config is the immutable engine configuration as supplied by the host
// application. Primitive ranges are screened here; the core re-validates
// its own invariants at construction.
type Config struct {
	MazeSize          int     `yaml:"maze_size" validate:"required,min=4,max=64"`
	SecurityLevel     string  `yaml:"security_level" validate:"required,oneof=low medium high"`
	TimeWindowSeconds int     `yaml:"time_window_seconds" validate:"required,min=1"`
	ExtraEdgeDensity  float64 `yaml:"extra_edge_density" validate:"gte=0,lte=1"`
	MasterSecretHex   string  `yaml:"master_secret_hex" validate:"required,hexadecimal"`
	MaxPathAttempts   int     `yaml:"max_path_attempts" validate:"omitempty,min=1,max=100"`
	SearchDeadlineMS  int     `yaml:"search_deadline_ms" validate:"omitempty,min=1"`
}

// Default returns the configuration used when a field is omitted.
func Default() Config {
	return Config{
		MazeSize:          12,
		SecurityLevel:     "medium",
		TimeWindowSeconds: 90,
		ExtraEdgeDensity:  rotation.DefaultExtraEdgeDensity,
		MaxPathAttempts:   rotation.DefaultMaxPathAttempts,
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown fields are an error.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks primitive field ranges and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return err
	}
	return validation.NewConfigValidator("Config").
		RangeInt("MazeSize", c.MazeSize, 4, 64).
		RangeFloat("ExtraEdgeDensity", c.ExtraEdgeDensity, 0.0, 1.0).
		Custom("MasterSecretHex", func() error {
			raw, err := hex.DecodeString(c.MasterSecretHex)
			if err != nil {
				return fmt.Errorf("invalid hex: %w", err)
			}
			if len(raw) < kdf.MinMasterSecretSize {
				return fmt.Errorf("decodes to %d bytes, need at least %d",
					len(raw), kdf.MinMasterSecretSize)
			}
			return nil
		}).
		Validate()
}

// WindowDuration returns the configured key validity period.
func (c *Config) WindowDuration() time.Duration {
	return time.Duration(c.TimeWindowSeconds) * time.Second
}

// MasterSecret decodes the configured master secret.
func (c *Config) MasterSecret() (*kdf.MasterSecret, error) {
	raw, err := hex.DecodeString(c.MasterSecretHex)
	if err != nil {
		return nil, fmt.Errorf("invalid master secret hex: %w", err)
	}
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()
	return kdf.NewMasterSecret(raw)
}

// SchedulerConfig converts the loaded configuration into the core's
// engine configuration.
func (c *Config) SchedulerConfig() (rotation.SchedulerConfig, error) {
	level, err := navigator.ParseLevel(c.SecurityLevel)
	if err != nil {
		return rotation.SchedulerConfig{}, err
	}
	return rotation.SchedulerConfig{
		MazeSize:         c.MazeSize,
		Level:            level,
		WindowDuration:   c.WindowDuration(),
		ExtraEdgeDensity: c.ExtraEdgeDensity,
		SearchDeadline:   time.Duration(c.SearchDeadlineMS) * time.Millisecond,
		MaxPathAttempts:  c.MaxPathAttempts,
	}, nil
}
