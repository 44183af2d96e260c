package core

import "math"

// J2000 galactic frame constants: equatorial coordinates of the north
// galactic pole and the galactic longitude of the north celestial pole.
const (
	galPoleRADeg  = 192.85948
	galPoleDecDeg = 27.12825
	galLngNCPDeg  = 122.93192
)

// Galactic converts equatorial J2000 coordinates (degrees) to galactic
// longitude and latitude (degrees). Longitude is in [0, 360).
func Galactic(raDeg, decDeg float64) (lngDeg, latDeg float64) {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)
	raGP := degToRad(galPoleRADeg)
	decGP := degToRad(galPoleDecDeg)

	sinB := math.Sin(decGP)*math.Sin(dec) + math.Cos(decGP)*math.Cos(dec)*math.Cos(ra-raGP)
	b := math.Asin(math.Max(-1, math.Min(1, sinB)))

	y := math.Cos(dec) * math.Sin(ra-raGP)
	x := math.Cos(decGP)*math.Sin(dec) - math.Sin(decGP)*math.Cos(dec)*math.Cos(ra-raGP)
	l := galLngNCPDeg - radToDeg(math.Atan2(y, x))

	return normalizeDeg(l), radToDeg(b)
}
