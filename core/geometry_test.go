package core

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0.5, Z: 2}

	if got := a.Add(b); got != (Vec3{X: 0, Y: 2.5, Z: 5}) {
		t.Fatalf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{X: 2, Y: 1.5, Z: 1}) {
		t.Fatalf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Fatalf("Scale = %+v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Fatalf("Dot = %v, want 6", got)
	}
	if got := (Vec3{X: 3, Y: 4}).Norm(); got != 5 {
		t.Fatalf("Norm = %v, want 5", got)
	}
	if got := a.DistanceTo(a); got != 0 {
		t.Fatalf("DistanceTo self = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	v := Vec3{X: 0, Y: 0, Z: -7}.Normalize()
	if v != (Vec3{Z: -1}) {
		t.Fatalf("Normalize = %+v, want (0, 0, -1)", v)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Fatalf("Normalize of zero vector = %+v, want zero", got)
	}
}

func TestRADecRoundTrip(t *testing.T) {
	for _, tc := range []struct{ ra, dec float64 }{
		{0, 0},
		{90, 45},
		{180, -30},
		{359.5, 89},
		{10.684, 41.269},
	} {
		ra, dec := RADecFromUnit(UnitFromRADec(tc.ra, tc.dec))
		if math.Abs(ra-tc.ra) > 1e-9 || math.Abs(dec-tc.dec) > 1e-9 {
			t.Fatalf("round trip (%v, %v) -> (%v, %v)", tc.ra, tc.dec, ra, dec)
		}
	}
}

func TestRADecFromUnitRange(t *testing.T) {
	ra, dec := RADecFromUnit(Vec3{X: 1, Y: -0.001, Z: 0})
	if ra < 0 || ra >= 360 {
		t.Fatalf("RA %v out of [0, 360)", ra)
	}
	if math.Abs(ra-360) < 1e-9 {
		t.Fatalf("RA should wrap below 360, got %v", ra)
	}
	if dec < -90 || dec > 90 {
		t.Fatalf("Dec %v out of [-90, 90]", dec)
	}
}

func TestNormalizeDeg(t *testing.T) {
	for _, tc := range []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-10, 350},
		{725, 5},
	} {
		if got := normalizeDeg(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("normalizeDeg(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
