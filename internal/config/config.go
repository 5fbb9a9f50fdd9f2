// Package config holds runtime configuration for the cycles-watch CLI.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds everything the CLI driver needs. The core analysis packages
// never see this type; they receive explicit parameters.
type Config struct {
	Input  string `yaml:"input"`  // price file path
	Symbol string `yaml:"symbol"` // label used in reports and records

	Scan struct {
		Window        int     `yaml:"window"`
		MinPeriod     int     `yaml:"min_period"`
		MaxPeriod     int     `yaml:"max_period"`
		StepDays      int     `yaml:"step_days"`
		MaxOffsets    int     `yaml:"max_offsets"`
		PeakThreshold float64 `yaml:"peak_threshold"`
		Workers       int     `yaml:"workers"`
	} `yaml:"scan"`

	Output struct {
		Chart      string `yaml:"chart"`       // spectrum chart HTML path, empty disables
		Heatmap    string `yaml:"heatmap"`     // rolling heatmap HTML path, empty disables
		SQLitePath string `yaml:"sqlite_path"` // results database, empty disables
	} `yaml:"output"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console or json
	} `yaml:"log"`
}

// Default returns the standard high-Q scan configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.Input = "prices.txt"
	cfg.Symbol = "TLT"
	cfg.Scan.Window = 2000
	cfg.Scan.MinPeriod = 30
	cfg.Scan.MaxPeriod = 1000
	cfg.Scan.StepDays = 5
	cfg.Scan.MaxOffsets = 260
	cfg.Scan.PeakThreshold = 0.05
	cfg.Scan.Workers = 1
	cfg.Log.Level = "info"
	cfg.Log.Format = "console"

	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

// applyEnv overrides selected fields from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CYCLES_INPUT"); v != "" {
		cfg.Input = v
	}
	if v := os.Getenv("CYCLES_SYMBOL"); v != "" {
		cfg.Symbol = v
	}
	if v := os.Getenv("CYCLES_SQLITE_PATH"); v != "" {
		cfg.Output.SQLitePath = v
	}
	if v := os.Getenv("CYCLES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CYCLES_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Scan.Workers = n
		}
	}
}
