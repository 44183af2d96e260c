package core

import "math"

// AUKm is the astronomical unit in kilometres.
const AUKm = 149597870.7

// EarthRadiusKm is the mean Earth radius in kilometres.
const EarthRadiusKm = 6371.0

// LightAUPerDay is the speed of light in AU per day, used for light-time and
// aberration corrections.
const LightAUPerDay = 173.144632674

// Vec3 is an equatorial-frame position or direction vector. Positions are in
// AU unless noted otherwise.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v scaled by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the direction of v. The zero vector is
// returned unchanged.
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Norm()
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }

// normalizeDeg wraps an angle into [0, 360).
func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// UnitFromRADec builds a unit vector from equatorial spherical coordinates in
// degrees.
func UnitFromRADec(raDeg, decDeg float64) Vec3 {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)
	return Vec3{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Cos(dec) * math.Sin(ra),
		Z: math.Sin(dec),
	}
}

// RADecFromUnit recovers equatorial spherical coordinates (degrees) from a
// direction vector. RA is in [0, 360), Dec in [-90, 90].
func RADecFromUnit(v Vec3) (raDeg, decDeg float64) {
	u := v.Normalize()
	dec := math.Asin(math.Max(-1, math.Min(1, u.Z)))
	ra := math.Atan2(u.Y, u.X)
	return normalizeDeg(radToDeg(ra)), radToDeg(dec)
}
