// Package config loads optional scan defaults from a YAML file.
// Explicit command line flags always override file values.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents scandog configuration options.
type Config struct {
	// Workers is the number of concurrent directory expansions
	Workers int

	// SkipHidden omits dot-entries entirely
	SkipHidden bool

	// FollowSymlinks descends through symlinked directories
	FollowSymlinks bool

	// Timeout is the maximum scan duration (0 = none)
	Timeout time.Duration

	// NoProgress disables the progress spinner
	NoProgress bool
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Workers: runtime.NumCPU(),
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Temporary struct to handle duration parsing: YAML has no native
	// duration type, so timeout arrives as a string.
	type yamlConfig struct {
		Workers        int    `yaml:"workers"`
		SkipHidden     bool   `yaml:"skip_hidden"`
		FollowSymlinks bool   `yaml:"follow_symlinks"`
		Timeout        string `yaml:"timeout"`
		NoProgress     bool   `yaml:"no_progress"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if yamlCfg.Workers < 0 {
		return nil, fmt.Errorf("invalid config: workers must not be negative, got %d", yamlCfg.Workers)
	}
	if yamlCfg.Workers > 0 {
		cfg.Workers = yamlCfg.Workers
	}
	cfg.SkipHidden = yamlCfg.SkipHidden
	cfg.FollowSymlinks = yamlCfg.FollowSymlinks
	cfg.NoProgress = yamlCfg.NoProgress

	if yamlCfg.Timeout != "" {
		timeout, err := time.ParseDuration(yamlCfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yamlCfg.Timeout, err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("invalid config: timeout must not be negative, got %s", timeout)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}
