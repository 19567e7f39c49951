// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package config centralizes the render parameters the CLI can
// override: worker count, backend choice, and the gold-image
// comparator's tolerance. It follows vu's config.go functional-options
// pattern (see Title/Size/Background there), backed by an optional
// YAML file rather than compiled-in defaults only.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Backend selects which rendering backend cmd/raytrace dispatches to.
type Backend string

const (
	CPU Backend = "cpu"
	GPU Backend = "gpu"
)

// Config holds the render parameters that are not part of the scene
// file itself.
type Config struct {
	Workers     int     `yaml:"workers"`
	Backend     Backend `yaml:"backend"`
	Tolerance   uint8   `yaml:"tolerance"`
	GPUFallback bool    `yaml:"gpu_fallback"`
}

// defaults provides reasonable values so a render runs even if no
// raytrace.yaml is present: one worker per hardware thread, the CPU
// backend, and zero diff tolerance.
var defaults = Config{
	Workers:     runtime.NumCPU(),
	Backend:     CPU,
	Tolerance:   0,
	GPUFallback: true,
}

// Option overrides a single Config field, applied after defaults and
// after any loaded YAML file.
type Option func(*Config)

// Workers overrides the worker-pool size. Values <= 0 are ignored,
// leaving the previous value (default: runtime.NumCPU()) in place.
func Workers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithBackend selects the rendering backend.
func WithBackend(b Backend) Option {
	return func(c *Config) { c.Backend = b }
}

// Tolerance sets the per-channel gold-image comparator tolerance.
func Tolerance(t uint8) Option {
	return func(c *Config) { c.Tolerance = t }
}

// New builds a Config starting from defaults, applying opts in order.
func New(opts ...Option) Config {
	c := defaults
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Load reads a YAML config file at path and applies opts on top of it.
// A missing file is not an error; it simply means defaults (plus opts)
// apply.
func Load(path string, opts ...Option) (Config, error) {
	c := defaults
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			for _, opt := range opts {
				opt(&c)
			}
			return c, nil
		}
		return Config{}, fmt.Errorf("config: could not read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: could not parse %s: %w", path, err)
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

// Validate reports whether c's fields are usable for a render.
func (c Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	}
	if c.Backend != CPU && c.Backend != GPU {
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}
