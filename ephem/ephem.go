// Package ephem loads and serves planetary ephemeris data: heliocentric
// positions of the major planets computed from a table of mean Keplerian
// elements and their secular rates. The element table is an external data
// file, loaded once per process and shared read-only.
package ephem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/signalsfoundry/skytarget/core"
)

// Elements holds mean Keplerian elements for one body at J2000 together with
// their rates of change per Julian century. Semimajor axis in AU, angles in
// degrees.
type Elements struct {
	A   float64 `json:"a"`   // semimajor axis (AU)
	E   float64 `json:"e"`   // eccentricity
	I   float64 `json:"i"`   // inclination to the ecliptic (deg)
	L   float64 `json:"l"`   // mean longitude (deg)
	LP  float64 `json:"lp"`  // longitude of perihelion (deg)
	N   float64 `json:"n"`   // longitude of ascending node (deg)
	DA  float64 `json:"da"`  // AU/century
	DE  float64 `json:"de"`  // /century
	DI  float64 `json:"di"`  // deg/century
	DL  float64 `json:"dl"`  // deg/century
	DLP float64 `json:"dlp"` // deg/century
	DN  float64 `json:"dn"`  // deg/century
}

// Table is an immutable ephemeris backed by an element table. It implements
// core.EphemerisSource and is safe for concurrent use once constructed.
type Table struct {
	bodies map[string]Elements
}

type tableJSON struct {
	Bodies map[string]Elements `json:"bodies"`
}

// Load parses an element-table JSON document. The table must contain at
// least an "earth" entry; the calculator cannot place an observer without it.
func Load(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read ephemeris: %w", err)
	}
	var doc tableJSON
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse ephemeris: %w", err)
	}
	if len(doc.Bodies) == 0 {
		return nil, fmt.Errorf("ephemeris: no bodies in element table")
	}

	bodies := make(map[string]Elements, len(doc.Bodies))
	for name, el := range doc.Bodies {
		bodies[strings.ToLower(name)] = el
	}
	if _, ok := bodies["earth"]; !ok {
		return nil, fmt.Errorf("ephemeris: element table has no earth entry")
	}
	return &Table{bodies: bodies}, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ephemeris: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// deltaTT is the offset from UTC to Terrestrial Time: 32.184s TAI-TT plus the
// current 37 leap seconds.
const deltaTT = 69.184

// TT converts a civil UTC timestamp to a Julian Date in Terrestrial Time.
func TT(t time.Time) float64 {
	return core.JulianDay(t) + deltaTT/86400.0
}

// TT implements core.EphemerisSource.
func (tb *Table) TT(t time.Time) float64 { return TT(t) }

// Len returns the number of orbital bodies in the table, not counting the
// synthetic "sun" entry.
func (tb *Table) Len() int { return len(tb.bodies) }

// Bodies returns the names of all bodies in the table, including "sun".
func (tb *Table) Bodies() []string {
	names := make([]string, 0, len(tb.bodies)+1)
	names = append(names, "sun")
	for name := range tb.bodies {
		names = append(names, name)
	}
	return names
}

// BodyPosition returns the heliocentric equatorial J2000 position of the
// named body in AU at jdTT. "sun" is the origin. Implements
// core.EphemerisSource.
func (tb *Table) BodyPosition(body string, jdTT float64) (core.Vec3, error) {
	name := strings.ToLower(body)
	if name == "sun" {
		return core.Vec3{}, nil
	}
	el, ok := tb.bodies[name]
	if !ok {
		return core.Vec3{}, fmt.Errorf("%w: %q", core.ErrUnknownBody, body)
	}

	// Propagate the mean elements to date.
	t := (jdTT - core.J2000) / 36525.0
	a := el.A + el.DA*t
	e := el.E + el.DE*t
	incl := el.I + el.DI*t
	meanLng := el.L + el.DL*t
	periLng := el.LP + el.DLP*t
	node := el.N + el.DN*t

	meanAnom := deg2rad(meanLng - periLng)
	argPeri := deg2rad(periLng - node)

	ecc := core.SolveKepler(meanAnom, e)
	x, y := core.OrbitalPlanePosition(a, e, ecc)
	ecl := core.PerifocalToEcliptic(x, y, argPeri, deg2rad(node), deg2rad(incl))

	return core.EclipticToEquatorial(ecl), nil
}

func deg2rad(d float64) float64 { return d * 3.141592653589793 / 180 }
