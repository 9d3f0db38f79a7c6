package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the blotter's runtime configuration.
type Config struct {
	Rows       int       `yaml:"rows"`
	Seed       uint64    `yaml:"seed"`
	Filter     string    `yaml:"filter"`
	SortColumn string    `yaml:"sort_column"`
	Simulation SimConfig `yaml:"simulation"`
	Log        LogConfig `yaml:"log"`
}

type SimConfig struct {
	Enabled      bool          `yaml:"enabled"`
	KickInterval time.Duration `yaml:"kick_interval"`
	FillRatio    float64       `yaml:"fill_ratio"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Empty logs to stderr
}

// Default values for optional configuration fields.
const (
	DefaultRows         = 25
	DefaultKickInterval = 200 * time.Millisecond
	DefaultFillRatio    = 0.25
	DefaultLogLevel     = "info"
)

// Default returns a config with every default applied and the simulation on.
func Default() *Config {
	cfg := preset()
	cfg.applyDefaults()
	return &cfg
}

// preset holds the defaults for fields where the zero value is a valid
// setting, so they are only replaced when the key is present in the file.
func preset() Config {
	return Config{
		Simulation: SimConfig{
			Enabled:   true,
			FillRatio: DefaultFillRatio,
		},
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := preset()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Rows == 0 {
		c.Rows = DefaultRows
	}
	if c.Simulation.KickInterval == 0 {
		c.Simulation.KickInterval = DefaultKickInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Rows < 0 {
		errs = append(errs, fmt.Errorf("rows must not be negative, got %d", c.Rows))
	}
	if c.Simulation.KickInterval < 0 {
		errs = append(errs, fmt.Errorf("simulation.kick_interval must be positive, got %v", c.Simulation.KickInterval))
	}
	if c.Simulation.FillRatio < 0 || c.Simulation.FillRatio > 1 {
		errs = append(errs, fmt.Errorf("simulation.fill_ratio must be between 0 and 1, got %.2f", c.Simulation.FillRatio))
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not a zerolog level", c.Log.Level))
	}
	return errors.Join(errs...)
}
