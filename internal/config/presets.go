package config

import (
	"math"
	"sort"
)

// vcHernquist is the circular speed of the unit Hernquist profile at R = 1.
var vcHernquist = math.Sqrt(1.0 / 8)

var Presets = map[string]map[string]*Config{
	"hernquist": {
		"default": DefaultConfig(),
		"circular": withOrbit(DefaultConfig(), OrbitConfig{
			VXVV: []float64{1, 0, vcHernquist, 0, 0}, T1: 100, Samples: 501,
			Method: "odeint", Tolerance: DefaultTolerance,
		}),
		"bound": withOrbit(DefaultConfig(), OrbitConfig{
			VXVV: []float64{1, 0.1, 0.3, 0, 0.1}, T1: 280, Samples: 1001,
			Method: "odeint", Tolerance: DefaultTolerance,
		}),
		"leapfrog": withOrbit(DefaultConfig(), OrbitConfig{
			VXVV: []float64{1, 0.1, 0.3, 0, 0.1}, T1: 100, Samples: 1001,
			Method: "leapfrog", Tolerance: DefaultTolerance,
		}),
	},
	"zeeuw": {
		"default": withProfile(DefaultConfig(), "zeeuw"),
		"bound": withOrbit(withProfile(DefaultConfig(), "zeeuw"), OrbitConfig{
			VXVV: []float64{1, 0.1, 0.3, 0, 0.1}, T1: 280, Samples: 1001,
			Method: "odeint", Tolerance: DefaultTolerance,
		}),
	},
}

func withProfile(c *Config, profile string) *Config {
	c.Profile = profile
	return c
}

func withOrbit(c *Config, o OrbitConfig) *Config {
	c.Orbit = o
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(profile, preset string) *Config {
	profilePresets, ok := Presets[profile]
	if !ok {
		return nil
	}
	cfg, ok := profilePresets[preset]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Orbit.VXVV = append([]float64(nil), cfg.Orbit.VXVV...)
	return &cp
}

func ListPresets(profile string) []string {
	profilePresets, ok := Presets[profile]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(profilePresets))
	for name := range profilePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListProfiles returns the profiles that have presets.
func ListProfiles() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
