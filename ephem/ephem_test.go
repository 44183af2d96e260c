package ephem

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/signalsfoundry/skytarget/core"
)

func TestLoadRejectsEmptyTable(t *testing.T) {
	if _, err := Load(strings.NewReader(`{"bodies": {}}`)); err == nil {
		t.Fatal("expected error for empty element table")
	}
	if _, err := Load(strings.NewReader(`{`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestLoadRequiresEarth(t *testing.T) {
	_, err := Load(strings.NewReader(`{"bodies": {"mars": {"a": 1.52}}}`))
	if err == nil || !strings.Contains(err.Error(), "earth") {
		t.Fatalf("expected missing-earth error, got %v", err)
	}
}

func TestLoadLowercasesBodyNames(t *testing.T) {
	tb, err := Load(strings.NewReader(`{"bodies": {"Earth": {"a": 1.0, "e": 0.0167, "l": 100.46, "lp": 102.93}}}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := tb.BodyPosition("earth", core.J2000); err != nil {
		t.Fatalf("lowercased lookup failed: %v", err)
	}
}

func TestDefaultTableIsMemoized(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	b, err := Default()
	if err != nil {
		t.Fatalf("Default second call: %v", err)
	}
	if a != b {
		t.Fatal("Default should return the same table instance")
	}
}

func TestDefaultTableBodies(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	bodies := tb.Bodies()
	for _, want := range []string{"mercury", "venus", "earth", "mars", "jupiter", "saturn", "uranus", "neptune"} {
		found := false
		for _, b := range bodies {
			if b == want {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("default table missing %q, have %v", want, bodies)
		}
	}
	if got := tb.Len(); got != 8 {
		t.Fatalf("Len() = %d, want 8 planets", got)
	}
}

func TestSunIsAtOrigin(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	pos, err := tb.BodyPosition("sun", core.J2000)
	if err != nil {
		t.Fatalf("BodyPosition(sun): %v", err)
	}
	if pos.Norm() != 0 {
		t.Fatalf("sun position = %+v, want origin", pos)
	}
}

func TestUnknownBody(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	_, err = tb.BodyPosition("planet-x", core.J2000)
	if !errors.Is(err, core.ErrUnknownBody) {
		t.Fatalf("got %v, want ErrUnknownBody", err)
	}
}

func TestEarthPositionAtJ2000(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	pos, err := tb.BodyPosition("earth", core.J2000)
	if err != nil {
		t.Fatalf("BodyPosition(earth): %v", err)
	}

	// Early January puts the Earth near perihelion, about 0.983 AU out.
	r := pos.Norm()
	if r < 0.975 || r > 0.99 {
		t.Fatalf("Earth heliocentric distance at J2000 = %v AU, want ~0.983", r)
	}

	// The orbit lies nearly in the ecliptic; the equatorial z component is
	// bounded by sin(obliquity).
	if math.Abs(pos.Z) > 0.4*r {
		t.Fatalf("Earth z component %v too large for an in-ecliptic orbit", pos.Z)
	}
}

func TestEarthOrbitalMotion(t *testing.T) {
	tb, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	jan, _ := tb.BodyPosition("earth", core.J2000)
	jul, _ := tb.BodyPosition("earth", core.J2000+182.625)

	// Half a year later the Earth is on the opposite side of the Sun.
	if jan.Normalize().Dot(jul.Normalize()) > -0.95 {
		t.Fatalf("positions half a year apart should be nearly antipodal: %+v vs %+v", jan, jul)
	}
}

func TestTTOffset(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := TT(when) - core.JulianDay(when)
	want := 69.184 / 86400.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("TT offset = %v days, want %v", got, want)
	}
}
