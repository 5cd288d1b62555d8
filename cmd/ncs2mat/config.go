package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration file. Command-line flags take
// precedence over values loaded here; pointer fields distinguish "not set"
// from an explicit false.
type Config struct {
	InputDir       string `yaml:"input_dir"`
	OutputDir      string `yaml:"output_dir"`
	Rescale        *bool  `yaml:"rescale"`
	ApplyInversion *bool  `yaml:"apply_inversion"`
	Verbose        bool   `yaml:"verbose"`
}

// LoadConfig reads and parses the YAML configuration at path.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}
