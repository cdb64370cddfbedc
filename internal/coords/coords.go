// Package coords converts between the cylindrical, spherical and
// rectangular frames used by potentials and orbits. Angles are in radians;
// theta is the polar angle measured from +z.
package coords

import "math"

// CylToSpher maps cylindrical (R, z, phi) to spherical (r, theta, phi).
func CylToSpher(R, z, phi float64) (r, theta, phiOut float64) {
	return math.Hypot(R, z), math.Atan2(R, z), phi
}

// SpherToCyl maps spherical (r, theta, phi) to cylindrical (R, z, phi).
func SpherToCyl(r, theta, phi float64) (R, z, phiOut float64) {
	return r * math.Sin(theta), r * math.Cos(theta), phi
}

func CylToRect(R, phi, z float64) (x, y, zOut float64) {
	return R * math.Cos(phi), R * math.Sin(phi), z
}

func RectToCyl(x, y, z float64) (R, phi, zOut float64) {
	return math.Hypot(x, y), math.Atan2(y, x), z
}

// CylToRectVel rotates (vR, vT) at azimuth phi into (vx, vy).
func CylToRectVel(vR, vT, phi float64) (vx, vy float64) {
	s, c := math.Sincos(phi)
	return vR*c - vT*s, vR*s + vT*c
}

// RectToCylVel rotates (vx, vy) at azimuth phi into (vR, vT).
func RectToCylVel(vx, vy, phi float64) (vR, vT float64) {
	s, c := math.Sincos(phi)
	return vx*c + vy*s, -vx*s + vy*c
}
