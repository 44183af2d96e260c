package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

// J2000 is the Julian Date of the J2000.0 epoch (2000 January 1, 12:00 TT).
const J2000 = 2451545.0

// JulianDay converts a civil UTC time to a Julian Date.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	return jd + float64(t.Nanosecond())/1e9/86400.0
}

// GMST returns Greenwich Mean Sidereal Time in radians for the given UTC time.
func GMST(t time.Time) float64 {
	return satellite.ThetaG_JD(JulianDay(t))
}

// precessionAngles returns the IAU-1976 equatorial precession angles
// zeta, z, theta in radians for precessing from J2000 to the epoch given as a
// Julian Date (TT).
func precessionAngles(jdTT float64) (zeta, z, theta float64) {
	T := (jdTT - J2000) / 36525.0
	const arcsec = math.Pi / 180 / 3600

	zeta = (2306.2181*T + 0.30188*T*T + 0.017998*T*T*T) * arcsec
	z = (2306.2181*T + 1.09468*T*T + 0.018203*T*T*T) * arcsec
	theta = (2004.3109*T - 0.42665*T*T - 0.041833*T*T*T) * arcsec
	return zeta, z, theta
}

// PrecessJ2000ToDate rotates an equatorial J2000 vector to the mean equator
// and equinox of the epoch given as a Julian Date (TT).
func PrecessJ2000ToDate(v Vec3, jdTT float64) Vec3 {
	zeta, z, theta := precessionAngles(jdTT)

	cz, sz := math.Cos(zeta), math.Sin(zeta)
	cZ, sZ := math.Cos(z), math.Sin(z)
	ct, st := math.Cos(theta), math.Sin(theta)

	// P = Rz(-z) · Ry(theta) · Rz(-zeta)
	p11 := cZ*ct*cz - sZ*sz
	p12 := -cZ*ct*sz - sZ*cz
	p13 := -cZ * st
	p21 := sZ*ct*cz + cZ*sz
	p22 := -sZ*ct*sz + cZ*cz
	p23 := -sZ * st
	p31 := st * cz
	p32 := -st * sz
	p33 := ct

	return Vec3{
		X: p11*v.X + p12*v.Y + p13*v.Z,
		Y: p21*v.X + p22*v.Y + p23*v.Z,
		Z: p31*v.X + p32*v.Y + p33*v.Z,
	}
}

// meanObliquityJ2000 is the mean obliquity of the ecliptic at J2000, radians.
var meanObliquityJ2000 = degToRad(23.43928)

// EclipticToEquatorial rotates an ecliptic J2000 vector into the equatorial
// J2000 frame.
func EclipticToEquatorial(v Vec3) Vec3 {
	ce, se := math.Cos(meanObliquityJ2000), math.Sin(meanObliquityJ2000)
	return Vec3{
		X: v.X,
		Y: ce*v.Y - se*v.Z,
		Z: se*v.Y + ce*v.Z,
	}
}

// WGS-84 ellipsoid parameters.
const (
	wgs84AKm = 6378.137
	wgs84F   = 1.0 / 298.257223563
	wgs84E2  = wgs84F * (2 - wgs84F)
)

// SiteECEF returns the Earth-fixed position of a ground site in kilometres.
// Latitude and longitude are geodetic degrees, elevation metres.
func SiteECEF(latDeg, lonDeg, elevM float64) Vec3 {
	lat := degToRad(latDeg)
	lon := degToRad(lonDeg)
	altKm := elevM / 1000.0

	sinLat := math.Sin(lat)
	cosLat := math.Cos(lat)

	// Radius of curvature in the prime vertical.
	n := wgs84AKm / math.Sqrt(1-wgs84E2*sinLat*sinLat)

	return Vec3{
		X: (n + altKm) * cosLat * math.Cos(lon),
		Y: (n + altKm) * cosLat * math.Sin(lon),
		Z: (n*(1-wgs84E2) + altKm) * sinLat,
	}
}

// SiteOffsetAU returns the site's topocentric offset from the geocentre in the
// equatorial frame of date, in AU, for the given UTC time. The ECEF position
// is rotated by GMST into the inertial frame.
func SiteOffsetAU(latDeg, lonDeg, elevM float64, t time.Time) Vec3 {
	ecef := SiteECEF(latDeg, lonDeg, elevM)
	gmst := GMST(t)

	cg, sg := math.Cos(gmst), math.Sin(gmst)
	inertial := Vec3{
		X: cg*ecef.X - sg*ecef.Y,
		Y: sg*ecef.X + cg*ecef.Y,
		Z: ecef.Z,
	}
	return inertial.Scale(1 / AUKm)
}

// Horizontal holds topocentric apparent coordinates: altitude above the
// geometric horizon and azimuth measured from north, clockwise, both degrees.
type Horizontal struct {
	AltDeg float64
	AzDeg  float64
}

// EquatorialToHorizontal converts an apparent equatorial-of-date direction to
// altitude/azimuth for an observer at the given geodetic coordinates and UTC
// time. The rotation goes through the Earth-fixed frame and the local
// South-East-Zenith triad.
func EquatorialToHorizontal(raDeg, decDeg, latDeg, lonDeg float64, t time.Time) Horizontal {
	u := UnitFromRADec(raDeg, decDeg)
	gmst := GMST(t)

	// Equatorial of date -> Earth-fixed.
	cg, sg := math.Cos(gmst), math.Sin(gmst)
	rx := cg*u.X + sg*u.Y
	ry := -sg*u.X + cg*u.Y
	rz := u.Z

	lat := degToRad(latDeg)
	lon := degToRad(lonDeg)
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	south := sinLat*cosLon*rx + sinLat*sinLon*ry - cosLat*rz
	east := -sinLon*rx + cosLon*ry
	zenith := cosLat*cosLon*rx + cosLat*sinLon*ry + sinLat*rz

	alt := math.Asin(math.Max(-1, math.Min(1, zenith)))
	az := math.Atan2(east, -south)
	if az < 0 {
		az += 2 * math.Pi
	}

	return Horizontal{AltDeg: radToDeg(alt), AzDeg: radToDeg(az)}
}
