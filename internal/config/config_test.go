package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/scfsim/internal/check"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "hernquist", cfg.Profile)
	assert.Equal(t, 10, cfg.Order)
	assert.Equal(t, 1e-13, cfg.Eps)
	assert.Equal(t, 120, cfg.Grid.Size())

	times := cfg.Times()
	require.Len(t, times, 1001)
	assert.Equal(t, 0.0, times[0])
	assert.Equal(t, 280.0, times[1000])
}

func TestDefaultConfig_MatchesSuite(t *testing.T) {
	assert.Equal(t, check.DefaultConfig(), DefaultConfig().Check())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: zeeuw
order: 6
orbit:
  method: rk4
  samples: 11
  t1: 10
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "zeeuw", cfg.Profile)
	assert.Equal(t, 6, cfg.Order)
	assert.Equal(t, "rk4", cfg.Orbit.Method)
	assert.Equal(t, 11, cfg.Orbit.Samples)
	// untouched keys keep their defaults
	assert.Equal(t, 1e-13, cfg.Eps)
	assert.Equal(t, []float64{1, 0.1, 1.1, 0, 0.1}, cfg.Orbit.VXVV)
	assert.Len(t, cfg.Grid.Phi, 8)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"order", "order: 0\n"},
		{"scale", "scale: -1\n"},
		{"vxvv", "orbit:\n  vxvv: [1, 2, 3]\n"},
		{"method", "orbit:\n  method: symplec6\n"},
		{"times", "orbit:\n  t0: 5\n  t1: 1\n"},
		{"empty r", "grid:\n  r: []\n"},
		{"empty phi", "grid:\n  phi: []\n"},
		{"one sample", "orbit:\n  samples: 1\n"},
		{"yaml", "order: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestValidate_RejectsVacuousChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no R", func(c *Config) { c.Grid.R = nil }},
		{"no Z", func(c *Config) { c.Grid.Z = []float64{} }},
		{"no phi", func(c *Config) { c.Grid.Phi = nil }},
		{"zero samples", func(c *Config) { c.Orbit.Samples = 0 }},
		{"one sample", func(c *Config) { c.Orbit.Samples = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := DefaultConfig()
	cfg.Orbit.Samples = 2
	assert.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scf.yaml")
	cfg := GetPreset("hernquist", "circular")
	require.NotNil(t, cfg)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("hernquist", "circular")
	require.NotNil(t, cfg)
	assert.InDelta(t, 0.35355339059327373, cfg.Orbit.VXVV[2], 1e-16)
	require.NoError(t, cfg.Validate())

	cfg.Orbit.VXVV[0] = 42
	assert.Equal(t, 1.0, GetPreset("hernquist", "circular").Orbit.VXVV[0])

	assert.Equal(t, "zeeuw", GetPreset("zeeuw", "bound").Profile)
}

func TestGetPreset_NotFound(t *testing.T) {
	assert.Nil(t, GetPreset("hernquist", "nonexistent"))
	assert.Nil(t, GetPreset("plummer", "default"))
}

func TestListPresets(t *testing.T) {
	assert.Equal(t, []string{"bound", "circular", "default", "leapfrog"}, ListPresets("hernquist"))
	assert.Nil(t, ListPresets("plummer"))
	assert.Equal(t, []string{"hernquist", "zeeuw"}, ListProfiles())

	for _, profile := range ListProfiles() {
		for _, name := range ListPresets(profile) {
			assert.NoError(t, GetPreset(profile, name).Validate(), "%s/%s", profile, name)
		}
	}
}
