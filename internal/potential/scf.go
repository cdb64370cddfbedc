package potential

import (
	"fmt"
	"math"

	"github.com/san-kum/scfsim/internal/coords"
	"github.com/san-kum/scfsim/internal/special"
)

// SCF is a Hernquist-Ostriker basis-function expansion:
//
//	Φ(r,θ,φ) = amp/2 Σ (Cos_nlm cos mφ + Sin_nlm sin mφ) P_l^m(cos θ) Φ_nl(r)
//	Φ_nl(r)  = -(r/a)^l / (1 + r/a)^(2l+1) C_n^(2l+3/2)(ξ) / a,  ξ = (r-a)/(r+a)
//
// with the matching density basis
//
//	ρ_nl(r) = K_nl/(2π) (r/a)^l / ((r/a)(1 + r/a)^(2l+3)) C_n^(2l+3/2)(ξ) / a³
//	K_nl    = n(n+4l+3)/2 + (l+1)(2l+1)
type SCF struct {
	amp    float64
	a      float64
	coeffs *Coeffs
	hasSin bool

	n, l, m int
}

type SCFOption func(*SCF)

func WithAmp(amp float64) SCFOption {
	return func(s *SCF) { s.amp = amp }
}

func WithScale(a float64) SCFOption {
	return func(s *SCF) { s.a = a }
}

// WithCoeffs sets the expansion coefficients. The arrays are copied.
func WithCoeffs(c *Coeffs) SCFOption {
	return func(s *SCF) { s.coeffs = c }
}

// NewSCF builds an SCF potential. Without options it is the unit
// Hernquist profile.
func NewSCF(opts ...SCFOption) (*SCF, error) {
	s := &SCF{amp: 1, a: 1, coeffs: DefaultCoeffs()}
	for _, opt := range opts {
		opt(s)
	}
	if !(s.a > 0) {
		return nil, fmt.Errorf("%w: a=%v", ErrInvalidScale, s.a)
	}
	if s.coeffs == nil {
		return nil, fmt.Errorf("%w: nil coefficients", ErrCoeffShape)
	}
	if err := s.coeffs.Validate(); err != nil {
		return nil, err
	}
	s.coeffs = s.coeffs.Clone()
	s.n, s.l, s.m = s.coeffs.Shape()
	for n := 0; n < s.n && !s.hasSin; n++ {
		for l := 0; l < s.l && !s.hasSin; l++ {
			for m := 0; m < s.m; m++ {
				if s.coeffs.Sin[n][l][m] != 0 {
					s.hasSin = true
					break
				}
			}
		}
	}
	return s, nil
}

// Coeffs returns a copy of the expansion coefficients.
func (s *SCF) Coeffs() *Coeffs { return s.coeffs.Clone() }

func (s *SCF) Amp() float64   { return s.amp }
func (s *SCF) Scale() float64 { return s.a }

// radialBasis holds Φ_nl, dΦ_nl/dr and ρ_nl at one radius.
type radialBasis struct {
	phi, dphi, rho [][]float64
}

func (s *SCF) radial(r float64, withDeriv, withRho bool) radialBasis {
	a := s.a
	rho := r / a
	xi := (rho - 1) / (rho + 1)

	b := radialBasis{phi: make([][]float64, s.n)}
	if withDeriv {
		b.dphi = make([][]float64, s.n)
	}
	if withRho {
		b.rho = make([][]float64, s.n)
	}
	for n := 0; n < s.n; n++ {
		b.phi[n] = make([]float64, s.l)
		if withDeriv {
			b.dphi[n] = make([]float64, s.l)
		}
		if withRho {
			b.rho[n] = make([]float64, s.l)
		}
	}

	for l := 0; l < s.l; l++ {
		fl := float64(l)
		alpha := 2*fl + 1.5
		c := special.Gegenbauer(s.n, alpha, xi)
		var dc []float64
		if withDeriv {
			dc = special.GegenbauerDeriv(s.n, alpha, xi)
		}

		rl := math.Pow(rho, fl)
		pre := rl / math.Pow(1+rho, 2*fl+1)
		var dpre float64
		if withDeriv {
			dpre = -(2*fl + 1) * rl / math.Pow(1+rho, 2*fl+2)
			if l > 0 {
				dpre += fl * math.Pow(rho, fl-1) / math.Pow(1+rho, 2*fl+1)
			}
		}
		dxi := 2 / ((1 + rho) * (1 + rho))
		// ρ^(l-1) stays finite at r = 0 for l ≥ 1; only l = 0 diverges.
		rhoPre := math.Pow(rho, fl-1) / math.Pow(1+rho, 2*fl+3) / (2 * math.Pi * a * a * a)

		for n := 0; n < s.n; n++ {
			b.phi[n][l] = -pre * c[n] / a
			if withDeriv {
				b.dphi[n][l] = -(dpre*c[n] + pre*dc[n]*dxi) / (a * a)
			}
			if withRho {
				b.rho[n][l] = knl(n, l) * rhoPre * c[n]
			}
		}
	}
	return b
}

func knl(n, l int) float64 {
	return 0.5*float64(n*(n+4*l+3)) + float64((l+1)*(2*l+1))
}

// angular returns P_l^m(cos θ), optionally dP/dθ, and cos mφ, sin mφ.
func (s *SCF) angular(theta, phi float64, withDeriv bool) (p, dp [][]float64, cm, sm []float64) {
	x := math.Cos(theta)
	p = special.Legendre(s.l, x)
	if withDeriv {
		dp = special.LegendreDTheta(s.l, x)
	}
	cm = make([]float64, s.m)
	sm = make([]float64, s.m)
	for m := 0; m < s.m; m++ {
		sm[m], cm[m] = math.Sincos(float64(m) * phi)
	}
	return p, dp, cm, sm
}

// weight returns Σ_m (Cos cos mφ + Sin sin mφ) P_l^m for one (n, l).
func (s *SCF) weight(n, l int, p []float64, cm, sm []float64) float64 {
	w := 0.0
	for m := 0; m < s.m && m <= l; m++ {
		t := s.coeffs.Cos[n][l][m] * cm[m]
		if s.hasSin {
			t += s.coeffs.Sin[n][l][m] * sm[m]
		}
		w += t * p[m]
	}
	return w
}

func (s *SCF) Evaluate(R, z, phi float64) float64 {
	r, theta, _ := coords.CylToSpher(R, z, phi)
	rb := s.radial(r, false, false)
	p, _, cm, sm := s.angular(theta, phi, false)

	sum := 0.0
	for n := 0; n < s.n; n++ {
		for l := 0; l < s.l; l++ {
			sum += s.weight(n, l, p[l], cm, sm) * rb.phi[n][l]
		}
	}
	return 0.5 * s.amp * sum
}

func (s *SCF) Dens(R, z, phi float64) float64 {
	r, theta, _ := coords.CylToSpher(R, z, phi)
	rb := s.radial(r, false, true)
	p, _, cm, sm := s.angular(theta, phi, false)

	sum := 0.0
	for n := 0; n < s.n; n++ {
		for l := 0; l < s.l; l++ {
			if w := s.weight(n, l, p[l], cm, sm); w != 0 {
				sum += w * rb.rho[n][l]
			}
		}
	}
	return 0.5 * s.amp * sum
}

// gradient returns ∂Φ/∂r, ∂Φ/∂θ and ∂Φ/∂φ.
func (s *SCF) gradient(r, theta, phi float64) (dr, dtheta, dphi float64) {
	rb := s.radial(r, true, false)
	p, dp, cm, sm := s.angular(theta, phi, true)

	for n := 0; n < s.n; n++ {
		for l := 0; l < s.l; l++ {
			dr += s.weight(n, l, p[l], cm, sm) * rb.dphi[n][l]
			dtheta += s.weight(n, l, dp[l], cm, sm) * rb.phi[n][l]

			for m := 1; m < s.m && m <= l; m++ {
				fm := float64(m)
				t := -fm * s.coeffs.Cos[n][l][m] * sm[m]
				if s.hasSin {
					t += fm * s.coeffs.Sin[n][l][m] * cm[m]
				}
				dphi += t * p[l][m] * rb.phi[n][l]
			}
		}
	}
	half := 0.5 * s.amp
	return half * dr, half * dtheta, half * dphi
}

// Forces returns (RForce, ZForce, PhiForce) from a single basis evaluation.
func (s *SCF) Forces(R, z, phi float64) (fR, fz, fphi float64) {
	r, theta, _ := coords.CylToSpher(R, z, phi)
	dr, dtheta, dphi := s.gradient(r, theta, phi)
	st, ct := math.Sincos(theta)
	if r == 0 {
		return -dr * st, -dr * ct, -dphi
	}
	fR = -(dr*st + dtheta*ct/r)
	fz = -(dr*ct - dtheta*st/r)
	return fR, fz, -dphi
}

func (s *SCF) RForce(R, z, phi float64) float64 {
	fR, _, _ := s.Forces(R, z, phi)
	return fR
}

func (s *SCF) ZForce(R, z, phi float64) float64 {
	_, fz, _ := s.Forces(R, z, phi)
	return fz
}

func (s *SCF) PhiForce(R, z, phi float64) float64 {
	_, _, fphi := s.Forces(R, z, phi)
	return fphi
}
