package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/omnialpha/stock-selector/pkg/errors"
)

// Config holds run settings loadable from a YAML file. Command-line
// flags override whatever the file sets.
type Config struct {
	// DataPath is the DuckDB research database with bars and reports.
	DataPath string `yaml:"data_path" validate:"required"`
	// Output is the result file path; empty derives a name from the run.
	Output string `yaml:"output"`
	// Workers bounds the engine fan-out; 0 or 1 scans sequentially.
	Workers int `yaml:"workers" validate:"min=0"`
	// Mode is the match aggregation across strategies.
	Mode string `yaml:"mode" validate:"omitempty,oneof=any all"`
	// QuickSize is the pool truncation applied in quick mode.
	QuickSize int `yaml:"quick_size" validate:"min=0"`
}

// Default returns the built-in run settings.
func Default() Config {
	return Config{
		DataPath:  "data/market.duckdb",
		Workers:   1,
		Mode:      "any",
		QuickSize: 20,
	}
}

// Load reads a YAML config file over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration invariants.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}
