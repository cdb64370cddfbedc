package potential

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/san-kum/scfsim/internal/dynamo"
	"github.com/san-kum/scfsim/internal/special"
)

type quadConfig struct {
	a        float64
	radial   int
	cosTheta int
	phi      int
}

// QuadOption tunes the quadrature used by the coefficient solvers.
type QuadOption func(*quadConfig)

// ScaleRadius sets the basis scale radius a (default 1).
func ScaleRadius(a float64) QuadOption {
	return func(c *quadConfig) { c.a = a }
}

// RadialPoints sets the Gauss-Legendre order in ξ (default max(N+1, 20)).
func RadialPoints(k int) QuadOption {
	return func(c *quadConfig) { c.radial = k }
}

// CosThetaPoints sets the Gauss-Legendre order in cos θ (default max(L+1, 20)).
func CosThetaPoints(k int) QuadOption {
	return func(c *quadConfig) { c.cosTheta = k }
}

// PhiPoints sets the number of trapezoid nodes in φ (default max(2L+1, 20)).
func PhiPoints(k int) QuadOption {
	return func(c *quadConfig) { c.phi = k }
}

func newQuadConfig(N, L int, opts []QuadOption) (quadConfig, error) {
	c := quadConfig{
		a:        1,
		radial:   max(N+1, 20),
		cosTheta: max(L+1, 20),
		phi:      max(2*L+1, 20),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if !(c.a > 0) {
		return c, fmt.Errorf("%w: a=%v", ErrInvalidScale, c.a)
	}
	if c.radial < 1 || c.cosTheta < 1 || c.phi < 1 {
		return c, fmt.Errorf("%w: quadrature order", ErrInvalidOrder)
	}
	return c, nil
}

func legendreNodes(k int) (x, w []float64) {
	x = make([]float64, k)
	w = make([]float64, k)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	return x, w
}

// xiToR maps ξ ∈ (-1, 1) to r = a(1+ξ)/(1-ξ).
func xiToR(xi, a float64) float64 {
	return a * (1 + xi) / (1 - xi)
}

// ComputeCoeffsSpherical projects a spherically symmetric density onto the
// l = m = 0 basis. The result has shape N × 1 × 1 and zero sine terms:
//
//	Cos[n,0,0] = 2 K_n ∫ a³ ρ(r) (1+ξ)² (1-ξ)⁻³ C_n^(3/2)(ξ) dξ
//	K_n = 16π (n + 3/2) / ((n+2)(n+1)(1 + n(n+3)/2))
func ComputeCoeffsSpherical(dens RadialDensityFunc, N int, opts ...QuadOption) (*Coeffs, error) {
	if N < 1 {
		return nil, fmt.Errorf("%w: N=%d", ErrInvalidOrder, N)
	}
	cfg, err := newQuadConfig(N, 1, opts)
	if err != nil {
		return nil, err
	}

	a := cfg.a
	xs, ws := legendreNodes(cfg.radial)
	integrated := make([]float64, N)
	for i, xi := range xs {
		r := xiToR(xi, a)
		f := ws[i] * a * a * a * dens(r) * (1 + xi) * (1 + xi) / math.Pow(1-xi, 3)
		c := special.Gegenbauer(N, 1.5, xi)
		for n := 0; n < N; n++ {
			integrated[n] += f * c[n]
		}
	}

	coeffs := NewCoeffs(N, 1, 1)
	for n := 0; n < N; n++ {
		fn := float64(n)
		k := 16 * math.Pi * (fn + 1.5) / ((fn + 2) * (fn + 1) * (1 + fn*(fn+3)/2))
		coeffs.Cos[n][0][0] = 2 * k * integrated[n]
	}
	return coeffs, nil
}

// ComputeCoeffsAxi projects an axisymmetric density onto the m = 0 basis.
// The result has shape N × L × 1. dens is called from several goroutines.
func ComputeCoeffsAxi(dens DensityFunc, N, L int, opts ...QuadOption) (*Coeffs, error) {
	return computeCoeffs(dens, N, L, 1, opts)
}

// ComputeCoeffs projects a general density onto the full basis. The result
// has shape N × L × L. dens is called from several goroutines.
func ComputeCoeffs(dens DensityFunc, N, L int, opts ...QuadOption) (*Coeffs, error) {
	return computeCoeffs(dens, N, L, L, opts)
}

func computeCoeffs(dens DensityFunc, N, L, M int, opts []QuadOption) (*Coeffs, error) {
	if N < 1 || L < 1 {
		return nil, fmt.Errorf("%w: N=%d L=%d", ErrInvalidOrder, N, L)
	}
	cfg, err := newQuadConfig(N, L, opts)
	if err != nil {
		return nil, err
	}
	a := cfg.a

	xis, wxi := legendreNodes(cfg.radial)
	xs, wx := legendreNodes(cfg.cosTheta)

	// Axisymmetric projections sample one azimuth and carry the full 2π.
	nphi := cfg.phi
	if M == 1 {
		nphi = 1
	}
	phis := make([]float64, nphi)
	for k := range phis {
		phis[k] = 2 * math.Pi * float64(k) / float64(nphi)
	}
	wphi := 2 * math.Pi / float64(nphi)

	plm := make([][][]float64, len(xs))
	for j, x := range xs {
		plm[j] = special.Legendre(L, x)
	}
	cosm := make([][]float64, nphi)
	sinm := make([][]float64, nphi)
	for k, phi := range phis {
		cosm[k] = make([]float64, M)
		sinm[k] = make([]float64, M)
		for m := 0; m < M; m++ {
			sinm[k][m], cosm[k][m] = math.Sincos(float64(m) * phi)
		}
	}

	// Angular projections per radial node: angCos[i][l][m], angSin[i][l][m].
	angCos := make([][][]float64, len(xis))
	angSin := make([][][]float64, len(xis))
	dynamo.ParallelFor(len(xis), 2, func(start, end int) {
		for i := start; i < end; i++ {
			r := xiToR(xis[i], a)
			ac := alloc3(1, L, M)[0]
			as := alloc3(1, L, M)[0]
			for j, x := range xs {
				sinTheta := math.Sqrt(math.Max(0, 1-x*x))
				R, z := r*sinTheta, r*x
				for k, phi := range phis {
					d := dens(R, z, phi) * wx[j] * wphi
					for l := 0; l < L; l++ {
						for m := 0; m < M && m <= l; m++ {
							v := d * plm[j][l][m]
							ac[l][m] += v * cosm[k][m]
							as[l][m] += v * sinm[k][m]
						}
					}
				}
			}
			angCos[i], angSin[i] = ac, as
		}
	})

	basis, err := NewSCF(WithScale(a), WithCoeffs(NewCoeffs(N, L, 1)))
	if err != nil {
		return nil, err
	}

	coeffs := NewCoeffs(N, L, M)
	radW := make([]float64, len(xis))
	for i, xi := range xis {
		r := xiToR(xi, a)
		radW[i] = wxi[i] * r * r * 2 * a / ((1 - xi) * (1 - xi))
	}
	phiTilde := make([][][]float64, len(xis))
	for i, xi := range xis {
		phiTilde[i] = basis.radial(xiToR(xi, a), false, false).phi
	}

	for n := 0; n < N; n++ {
		for l := 0; l < L; l++ {
			rn := radialNorm(n, l) / a
			for m := 0; m < M && m <= l; m++ {
				var ic, is float64
				for i := range xis {
					w := radW[i] * phiTilde[i][n][l]
					ic += w * angCos[i][l][m]
					is += w * angSin[i][l][m]
				}
				norm := rn * special.NormLegendre(l, m) * math.Pi
				if m == 0 {
					norm *= 2
				}
				coeffs.Cos[n][l][m] = 2 * ic / norm
				if m > 0 {
					coeffs.Sin[n][l][m] = 2 * is / norm
				}
			}
		}
	}
	return coeffs, nil
}

// radialNorm is ∫ r² ρ_nl Φ_nl dr for a = 1:
//
//	-K_nl 2^-(8l+6) Γ(n+4l+3) / (n! (n+2l+3/2) Γ(2l+3/2)²)
func radialNorm(n, l int) float64 {
	fn, fl := float64(n), float64(l)
	lg := special.LogGamma(fn+4*fl+3) - special.LogFactorial(n) -
		2*special.LogGamma(2*fl+1.5) - (8*fl+6)*math.Ln2
	return -knl(n, l) * math.Exp(lg) / (fn + 2*fl + 1.5)
}
