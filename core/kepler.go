package core

import "math"

// SolveKepler solves Kepler's equation M = E - e·sin(E) for the eccentric
// anomaly E. M is in radians; e is the orbital eccentricity (elliptical,
// 0 <= e < 1). Newton iteration converges in a handful of steps for any
// realistic comet or asteroid orbit.
func SolveKepler(m, e float64) float64 {
	// Wrap M into [-pi, pi] for a well-behaved starting guess.
	m = math.Mod(m, 2*math.Pi)
	if m > math.Pi {
		m -= 2 * math.Pi
	} else if m < -math.Pi {
		m += 2 * math.Pi
	}

	ecc := m
	if e > 0.8 {
		ecc = math.Pi
		if m < 0 {
			ecc = -math.Pi
		}
	}

	for i := 0; i < 30; i++ {
		delta := (ecc - e*math.Sin(ecc) - m) / (1 - e*math.Cos(ecc))
		ecc -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return ecc
}

// OrbitalPlanePosition returns the position of a body in its orbital plane
// (perihelion along +x) given semimajor axis in AU, eccentricity, and
// eccentric anomaly in radians.
func OrbitalPlanePosition(aAU, e, eccAnom float64) (x, y float64) {
	x = aAU * (math.Cos(eccAnom) - e)
	y = aAU * math.Sqrt(1-e*e) * math.Sin(eccAnom)
	return x, y
}

// PerifocalToEcliptic rotates an orbital-plane position into heliocentric
// ecliptic coordinates. argPeri, node, and incl are the argument of
// perihelion, longitude of the ascending node, and inclination, in radians.
func PerifocalToEcliptic(x, y, argPeri, node, incl float64) Vec3 {
	cw, sw := math.Cos(argPeri), math.Sin(argPeri)
	cn, sn := math.Cos(node), math.Sin(node)
	ci, si := math.Cos(incl), math.Sin(incl)

	return Vec3{
		X: (cw*cn-sw*sn*ci)*x + (-sw*cn-cw*sn*ci)*y,
		Y: (cw*sn+sw*cn*ci)*x + (-sw*sn+cw*cn*ci)*y,
		Z: (sw*si)*x + (cw*si)*y,
	}
}
