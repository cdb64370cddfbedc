// Package special provides the orthogonal polynomials used by the
// self-consistent-field basis:
//
//   - [Gegenbauer]: ultraspherical polynomials C_n^α(x), the radial part
//   - [Legendre]: associated Legendre functions P_l^m(x), the polar part
//
// Associated Legendre functions are returned without the Condon-Shortley
// phase, so P_l^m(x) ≥ 0 for x in (-1, 1) when m = l. Expansion
// coefficients computed with the phased convention (for example from
// scipy's lpmn) differ by (-1)^m: negate their odd-m Cos and Sin entries
// before use.
package special
