package special

import "math"

// Legendre returns P_l^m(x) for 0 ≤ m ≤ l < L in p[l][m]. Entries with
// m > l are zero; each row has L+1 columns so P_l^{l+1} can be read
// without bounds checks.
func Legendre(L int, x float64) [][]float64 {
	if L < 0 {
		panic("special: negative Legendre degree")
	}
	p := make([][]float64, L)
	for l := range p {
		p[l] = make([]float64, L+1)
	}
	if L == 0 {
		return p
	}

	s := math.Sqrt(math.Max(0, 1-x*x))
	pmm := 1.0
	for m := 0; m < L; m++ {
		if m > 0 {
			pmm *= float64(2*m-1) * s
		}
		p[m][m] = pmm
		if m+1 < L {
			p[m+1][m] = x * float64(2*m+1) * pmm
		}
		for l := m + 2; l < L; l++ {
			p[l][m] = (float64(2*l-1)*x*p[l-1][m] - float64(l+m-1)*p[l-2][m]) / float64(l-m)
		}
	}
	return p
}

// LegendreDTheta returns dP_l^m(cos θ)/dθ for x = cos θ, laid out as
// [Legendre]. It is regular at the poles.
func LegendreDTheta(L int, x float64) [][]float64 {
	p := Legendre(L, x)
	d := make([][]float64, L)
	for l := 0; l < L; l++ {
		d[l] = make([]float64, L+1)
		for m := 0; m <= l; m++ {
			var up float64
			if m+1 <= l {
				up = p[l][m+1]
			}
			if m == 0 {
				d[l][m] = -up
				continue
			}
			d[l][m] = 0.5 * (float64((l+m)*(l-m+1))*p[l][m-1] - up)
		}
	}
	return d
}

// NormLegendre returns ∫_{-1}^{1} (P_l^m)² dx = 2/(2l+1) (l+m)!/(l-m)!.
func NormLegendre(l, m int) float64 {
	return 2 / float64(2*l+1) * math.Exp(LogFactorial(l+m)-LogFactorial(l-m))
}

// LogFactorial returns ln(n!).
func LogFactorial(n int) float64 {
	v, _ := math.Lgamma(float64(n) + 1)
	return v
}

// LogGamma returns ln|Γ(x)|.
func LogGamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
