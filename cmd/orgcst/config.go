package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/orgcst/org/parser"
)

// Config holds the settings read from the configuration file. Command
// line flags take precedence over every field.
type Config struct {
	Format    string `yaml:"format"`
	Workers   int    `yaml:"workers"`
	MaxDepth  int    `yaml:"max_depth"`
	Verbosity int    `yaml:"verbosity"`
	LogFile   string `yaml:"log_file"`
}

func defaultConfig() *Config {
	return &Config{Format: "json"}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "orgcst", "config.yaml")
}

// LoadConfig reads the YAML file at path over the defaults. A missing file
// is only an error when the path was given explicitly.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("config %s: workers must not be negative", path)
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("config %s: max_depth must not be negative", path)
	}
	return cfg, nil
}

// ParserOptions turns the resource settings into parser options. Zero
// values keep the parser defaults.
func (c *Config) ParserOptions() []parser.Option {
	var opts []parser.Option
	if c.MaxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(c.MaxDepth))
	}
	if c.Workers > 0 {
		opts = append(opts, parser.WithWorkers(c.Workers))
	}
	return opts
}
