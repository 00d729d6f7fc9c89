// Package config loads recordshim settings from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/petasbytes/recordshim/internal/telemetry"
)

const (
	EnvRoot         = "RECORDSHIM_ROOT"
	EnvListen       = "RECORDSHIM_LISTEN"
	EnvMaxBodyBytes = "RECORDSHIM_MAX_BODY_BYTES"

	DefaultListen       = "127.0.0.1:8787"
	DefaultMaxBodyBytes = 32 << 20
)

type Config struct {
	// Root confines every path when set; empty passes paths through verbatim.
	Root         string `yaml:"root"`
	Listen       string `yaml:"listen"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	Telemetry    struct {
		Observe   bool   `yaml:"observe"`
		EventsDir string `yaml:"events_dir"`
	} `yaml:"telemetry"`
}

// Default returns the built-in settings.
func Default() Config {
	c := Config{
		Listen:       DefaultListen,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
	c.Telemetry.EventsDir = telemetry.DefaultEventsDir
	return c
}

// Load starts from Default, overlays the YAML file at path (if path is set)
// and then the environment.
func Load(path string) (Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("config file %s not found", path)
			}
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvRoot); ok {
		c.Root = v
	}
	if v := os.Getenv(EnvListen); v != "" {
		c.Listen = v
	}
	if v := os.Getenv(EnvMaxBodyBytes); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxBodyBytes, v, err)
		}
		c.MaxBodyBytes = n
	}
	// Honour explicit 0/1.
	if v, ok := os.LookupEnv(telemetry.EnvObserve); ok {
		c.Telemetry.Observe = v == "1"
	}
	if v := os.Getenv(telemetry.EnvEventsDir); v != "" {
		c.Telemetry.EventsDir = v
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address must not be empty")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}
