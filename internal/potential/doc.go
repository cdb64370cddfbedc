// Package potential implements closed-form galaxy potentials and their
// self-consistent-field (SCF) basis expansion.
//
// All potentials are evaluated at cylindrical (R, z, phi) and share the
// [Potential] interface:
//
//   - [Hernquist]: Φ = -amp / (2 (r + a))
//   - [SCF]: Hernquist-Ostriker basis expansion with cosine and sine
//     coefficients indexed by (n, l, m)
//
// Coefficients for an arbitrary density are obtained by projecting onto
// the basis with [ComputeCoeffsSpherical], [ComputeCoeffsAxi] or
// [ComputeCoeffs].
//
// # Normalization
//
// An SCF potential with Cos = [[[1]]] and unit amplitude is identical to
// the default [Hernquist] potential, so the Hernquist density has
// Cos[0][0][0] = 1 and de Zeeuw's perfect ellipsoid has Cos[0][0][0] = 3/2,
// Cos[1][0][0] = 1/6.
package potential
