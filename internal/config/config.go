package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scfsim/internal/check"
	"github.com/san-kum/scfsim/internal/orbit"
)

const (
	DefaultProfile   = "hernquist"
	DefaultScale     = 1.0
	DefaultSamples   = 1001
	DefaultT1        = 280.0
	DefaultTolerance = 1e-11
)

type Config struct {
	Profile string      `yaml:"profile"`
	Order   int         `yaml:"order"`
	Eps     float64     `yaml:"eps"`
	Scale   float64     `yaml:"scale"`
	Grid    check.Grid  `yaml:"grid"`
	Orbit   OrbitConfig `yaml:"orbit"`
}

type OrbitConfig struct {
	VXVV      []float64 `yaml:"vxvv"`
	T0        float64   `yaml:"t0"`
	T1        float64   `yaml:"t1"`
	Samples   int       `yaml:"samples"`
	Method    string    `yaml:"method"`
	Tolerance float64   `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Profile: DefaultProfile,
		Order:   check.Order,
		Eps:     check.Eps,
		Scale:   DefaultScale,
		Grid:    check.DefaultGrid(),
		Orbit: OrbitConfig{
			VXVV:      []float64{1, 0.1, 1.1, 0, 0.1},
			T0:        0,
			T1:        DefaultT1,
			Samples:   DefaultSamples,
			Method:    string(orbit.MethodODEInt),
			Tolerance: DefaultTolerance,
		},
	}
}

// Load reads a YAML file over the defaults; keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Order < 1:
		return fmt.Errorf("order must be positive, got %d", c.Order)
	case !(c.Eps > 0):
		return fmt.Errorf("eps must be positive, got %v", c.Eps)
	case !(c.Scale > 0):
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	case len(c.Orbit.VXVV) != 5 && len(c.Orbit.VXVV) != 6:
		return fmt.Errorf("orbit.vxvv must have 5 or 6 components, got %d", len(c.Orbit.VXVV))
	case len(c.Grid.R) == 0 || len(c.Grid.Z) == 0 || len(c.Grid.Phi) == 0:
		return fmt.Errorf("grid axes must be non-empty, got %d × %d × %d",
			len(c.Grid.R), len(c.Grid.Z), len(c.Grid.Phi))
	case c.Orbit.Samples < 2:
		return fmt.Errorf("orbit.samples must be at least 2, got %d", c.Orbit.Samples)
	case !(c.Orbit.T1 > c.Orbit.T0):
		return fmt.Errorf("orbit.t1 must exceed orbit.t0")
	}
	if _, err := orbit.NewIntegrator(orbit.Method(c.Orbit.Method)); err != nil {
		return err
	}
	return nil
}

// Check converts c to the validation suite's parameters.
func (c *Config) Check() check.Config {
	return check.Config{
		Order: c.Order,
		Eps:   c.Eps,
		Scale: c.Scale,
		Grid:  c.Grid,
		Orbit: check.OrbitConfig{
			VXVV:      append([]float64(nil), c.Orbit.VXVV...),
			T0:        c.Orbit.T0,
			T1:        c.Orbit.T1,
			Samples:   c.Orbit.Samples,
			Method:    orbit.Method(c.Orbit.Method),
			Tolerance: c.Orbit.Tolerance,
		},
	}
}

// Times returns the orbit sample times.
func (c *Config) Times() []float64 {
	return c.Check().Orbit.Times()
}
