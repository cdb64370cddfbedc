package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/metrics"
	"github.com/san-kum/scfsim/internal/orbit"
	"github.com/san-kum/scfsim/internal/potential"
)

// Profile is a spherical density with a closed-form potential, both
// parametrised by the scale radius a.
type Profile struct {
	Name        string
	Description string
	Density     func(a float64) potential.RadialDensityFunc
	Reference   func(a float64) potential.Potential
}

type Registry struct {
	profiles map[string]Profile
	methods  map[string]orbit.Method
}

func NewRegistry() *Registry {
	r := &Registry{
		profiles: make(map[string]Profile),
		methods:  make(map[string]orbit.Method),
	}

	r.profiles["hernquist"] = Profile{
		Name:        "hernquist",
		Description: "Hernquist (1990), rho = a / (4 pi r (r+a)^3) / 2",
		Density: func(a float64) potential.RadialDensityFunc {
			h := &potential.Hernquist{Amp: 1, A: a}
			return func(r float64) float64 { return h.Dens(r, 0, 0) }
		},
		Reference: func(a float64) potential.Potential { return &potential.Hernquist{Amp: 1, A: a} },
	}
	r.profiles["zeeuw"] = Profile{
		Name:        "zeeuw",
		Description: "de Zeeuw perfect ellipsoid, spherical limit, rho = 3a / (4 pi (a+r)^4)",
		Density: func(a float64) potential.RadialDensityFunc {
			return func(r float64) float64 { return potential.ZeeuwDensity(r, 0, 0, a) }
		},
		Reference: func(a float64) potential.Potential { return &potential.Zeeuw{Amp: 1, A: a} },
	}

	for _, m := range orbit.Methods() {
		r.methods[string(m)] = m
	}
	return r
}

func (r *Registry) GetProfile(name string) (Profile, error) {
	p, ok := r.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile: %s", name)
	}
	return p, nil
}

func (r *Registry) GetMethod(name string) (orbit.Method, error) {
	m, ok := r.methods[name]
	if !ok {
		return "", fmt.Errorf("unknown method: %s", name)
	}
	return m, nil
}

func (r *Registry) ListProfiles() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListMethods() []string {
	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh energy metrics for orbits in pot.
func (r *Registry) DefaultMetrics(pot potential.Potential) []dynamo.Metric {
	dyn := orbit.NewDynamics(pot)
	return []dynamo.Metric{
		metrics.NewEnergyDrift(dyn),
		metrics.NewEnergyVariance(dyn),
	}
}
