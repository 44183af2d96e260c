package core

import (
	"math"
	"testing"
	"time"
)

func TestJulianDayAtJ2000(t *testing.T) {
	jd := JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(jd-J2000) > 1e-6 {
		t.Fatalf("JulianDay(2000-01-01T12:00Z) = %v, want %v", jd, J2000)
	}
}

func TestGMSTAtJ2000(t *testing.T) {
	gmst := radToDeg(GMST(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)))
	// GMST at the J2000.0 epoch is 280.46062 degrees.
	if math.Abs(gmst-280.46062) > 0.01 {
		t.Fatalf("GMST at J2000 = %v deg, want ~280.46", gmst)
	}
}

func TestPrecessionIsIdentityAtJ2000(t *testing.T) {
	v := UnitFromRADec(83.633, 22.0145)
	got := PrecessJ2000ToDate(v, J2000)
	if got.DistanceTo(v) > 1e-12 {
		t.Fatalf("precession at the reference epoch moved the vector: %v -> %v", v, got)
	}
}

func TestPrecessionPreservesNormAndMovesPole(t *testing.T) {
	pole := Vec3{Z: 1}
	jd2100 := J2000 + 36525.0
	got := PrecessJ2000ToDate(pole, jd2100)

	if math.Abs(got.Norm()-1) > 1e-12 {
		t.Fatalf("precession changed vector norm: %v", got.Norm())
	}

	// One century of precession tilts the pole by theta, about 0.5567 deg.
	sep := radToDeg(math.Acos(got.Dot(pole)))
	if math.Abs(sep-0.5567) > 0.001 {
		t.Fatalf("pole displacement over a century = %v deg, want ~0.5567", sep)
	}
}

func TestSiteECEFReferencePoints(t *testing.T) {
	eq := SiteECEF(0, 0, 0)
	if math.Abs(eq.X-6378.137) > 1e-6 || math.Abs(eq.Y) > 1e-9 || math.Abs(eq.Z) > 1e-9 {
		t.Fatalf("equatorial site = %+v, want (6378.137, 0, 0)", eq)
	}

	pole := SiteECEF(90, 0, 0)
	if math.Abs(pole.Z-6356.752) > 0.01 {
		t.Fatalf("polar site Z = %v, want ~6356.752", pole.Z)
	}

	elevated := SiteECEF(0, 0, 1000)
	if math.Abs(elevated.X-6379.137) > 1e-6 {
		t.Fatalf("elevation not applied: X = %v", elevated.X)
	}
}

func TestEquatorialToHorizontalZenith(t *testing.T) {
	// An object whose RA equals the local sidereal time and whose declination
	// equals the observer latitude sits at the zenith.
	when := time.Date(2024, 3, 20, 4, 30, 0, 0, time.UTC)
	lon := -110.6
	lst := normalizeDeg(radToDeg(GMST(when)) + lon)

	hz := EquatorialToHorizontal(lst, 31.6, 31.6, lon, when)
	if math.Abs(hz.AltDeg-90) > 0.2 {
		t.Fatalf("altitude at zenith = %v, want ~90", hz.AltDeg)
	}
}

func TestEquatorialToHorizontalPoleIsNorth(t *testing.T) {
	when := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	hz := EquatorialToHorizontal(0, 90, 0, 0, when)

	// From the equator the celestial pole sits on the horizon, due north.
	if math.Abs(hz.AltDeg) > 1e-6 {
		t.Fatalf("pole altitude from equator = %v, want 0", hz.AltDeg)
	}
	if math.Abs(hz.AzDeg) > 1e-6 && math.Abs(hz.AzDeg-360) > 1e-6 {
		t.Fatalf("pole azimuth from equator = %v, want 0", hz.AzDeg)
	}
}

func TestSiteOffsetMagnitude(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	off := SiteOffsetAU(31.6, -110.6, 2000, when)

	// The offset magnitude is one Earth radius, a bit over 4e-5 AU.
	r := off.Norm() * AUKm
	if r < 6356 || r > 6380 {
		t.Fatalf("site offset magnitude = %v km, want an Earth radius", r)
	}
}
