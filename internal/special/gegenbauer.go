package special

// Gegenbauer returns C_0^α(x) … C_{n-1}^α(x).
func Gegenbauer(n int, alpha, x float64) []float64 {
	if n < 0 {
		panic("special: negative Gegenbauer order")
	}
	c := make([]float64, n)
	if n == 0 {
		return c
	}
	c[0] = 1
	if n == 1 {
		return c
	}
	c[1] = 2 * alpha * x
	for k := 2; k < n; k++ {
		fk := float64(k)
		c[k] = (2*x*(fk+alpha-1)*c[k-1] - (fk+2*alpha-2)*c[k-2]) / fk
	}
	return c
}

// GegenbauerDeriv returns dC_k^α/dx for k = 0 … n-1.
func GegenbauerDeriv(n int, alpha, x float64) []float64 {
	d := make([]float64, n)
	if n <= 1 {
		return d
	}
	up := Gegenbauer(n-1, alpha+1, x)
	for k := 1; k < n; k++ {
		d[k] = 2 * alpha * up[k-1]
	}
	return d
}
