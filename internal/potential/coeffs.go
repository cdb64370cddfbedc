package potential

import "fmt"

// Coeffs holds the cosine and sine expansion coefficients, both indexed
// [n][l][m] with shape N × L × M.
type Coeffs struct {
	Cos [][][]float64
	Sin [][][]float64
}

// NewCoeffs allocates zeroed N × L × M coefficient arrays.
func NewCoeffs(N, L, M int) *Coeffs {
	return &Coeffs{Cos: alloc3(N, L, M), Sin: alloc3(N, L, M)}
}

// DefaultCoeffs is the single-term expansion Cos = [[[1]]], the Hernquist
// profile.
func DefaultCoeffs() *Coeffs {
	c := NewCoeffs(1, 1, 1)
	c.Cos[0][0][0] = 1
	return c
}

func alloc3(N, L, M int) [][][]float64 {
	flat := make([]float64, N*L*M)
	a := make([][][]float64, N)
	for n := range a {
		a[n] = make([][]float64, L)
		for l := range a[n] {
			off := (n*L + l) * M
			a[n][l] = flat[off : off+M : off+M]
		}
	}
	return a
}

// Shape returns (N, L, M) of the cosine array.
func (c *Coeffs) Shape() (N, L, M int) {
	N = len(c.Cos)
	if N > 0 {
		L = len(c.Cos[0])
		if L > 0 {
			M = len(c.Cos[0][0])
		}
	}
	return N, L, M
}

// Validate checks both arrays are rectangular with matching shapes and
// M ≤ L. A nil Sin is accepted and treated as zero.
func (c *Coeffs) Validate() error {
	N, L, M := c.Shape()
	if N == 0 || L == 0 || M == 0 {
		return fmt.Errorf("%w: empty cosine array", ErrCoeffShape)
	}
	if M > L {
		return fmt.Errorf("%w: M=%d exceeds L=%d", ErrCoeffShape, M, L)
	}
	if err := checkRect(c.Cos, N, L, M); err != nil {
		return fmt.Errorf("%w: cos %v", ErrCoeffShape, err)
	}
	if c.Sin != nil {
		if err := checkRect(c.Sin, N, L, M); err != nil {
			return fmt.Errorf("%w: sin %v", ErrCoeffShape, err)
		}
	}
	return nil
}

func checkRect(a [][][]float64, N, L, M int) error {
	if len(a) != N {
		return fmt.Errorf("has %d radial orders, want %d", len(a), N)
	}
	for n := range a {
		if len(a[n]) != L {
			return fmt.Errorf("n=%d has %d degrees, want %d", n, len(a[n]), L)
		}
		for l := range a[n] {
			if len(a[n][l]) != M {
				return fmt.Errorf("(n,l)=(%d,%d) has %d orders, want %d", n, l, len(a[n][l]), M)
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c *Coeffs) Clone() *Coeffs {
	N, L, M := c.Shape()
	out := NewCoeffs(N, L, M)
	for n := 0; n < N; n++ {
		for l := 0; l < L; l++ {
			copy(out.Cos[n][l], c.Cos[n][l])
			if c.Sin != nil {
				copy(out.Sin[n][l], c.Sin[n][l])
			}
		}
	}
	return out
}
