package core

import (
	"math"
	"testing"
)

func TestGalacticNorthPole(t *testing.T) {
	_, lat := Galactic(galPoleRADeg, galPoleDecDeg)
	if math.Abs(lat-90) > 1e-6 {
		t.Fatalf("galactic latitude of the NGP = %v, want 90", lat)
	}
}

func TestGalacticCenter(t *testing.T) {
	// Sgr A*, equatorial J2000.
	lng, lat := Galactic(266.41683, -29.00781)
	if dist := math.Min(lng, 360-lng); dist > 0.1 {
		t.Fatalf("galactic longitude of Sgr A* = %v, want ~0", lng)
	}
	if math.Abs(lat) > 0.1 {
		t.Fatalf("galactic latitude of Sgr A* = %v, want ~0", lat)
	}
}

func TestGalacticVega(t *testing.T) {
	lng, lat := Galactic(279.23474, 38.78369)
	if math.Abs(lng-67.448) > 0.05 {
		t.Fatalf("Vega galactic longitude = %v, want ~67.448", lng)
	}
	if math.Abs(lat-19.237) > 0.05 {
		t.Fatalf("Vega galactic latitude = %v, want ~19.237", lat)
	}
}

func TestGalacticLongitudeRange(t *testing.T) {
	for ra := 0.0; ra < 360; ra += 30 {
		for _, dec := range []float64{-80, -30, 0, 45, 85} {
			lng, lat := Galactic(ra, dec)
			if lng < 0 || lng >= 360 {
				t.Fatalf("Galactic(%v, %v) longitude %v out of [0, 360)", ra, dec, lng)
			}
			if lat < -90 || lat > 90 {
				t.Fatalf("Galactic(%v, %v) latitude %v out of [-90, 90]", ra, dec, lat)
			}
		}
	}
}
