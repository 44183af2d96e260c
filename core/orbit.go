package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/signalsfoundry/skytarget/model"
)

// gaussK is the Gaussian gravitational constant in radians/day, used to
// derive mean motion from the semimajor axis when a target does not carry it.
const gaussK = 0.01720209895

// OrbitModel is a heliocentric osculating orbit for a non-sidereal target.
// Angles are in degrees, referred to the J2000 ecliptic.
type OrbitModel struct {
	SemimajorAxisAU float64
	Eccentricity    float64
	InclinationDeg  float64
	NodeDeg         float64 // longitude of the ascending node
	ArgPeriDeg      float64 // argument of perihelion

	MeanAnomalyDeg     float64 // at ElementEpochJD
	ElementEpochJD     float64 // TT Julian Date of the elements
	MeanDailyMotionDeg float64 // degrees/day
}

// OrbitFromTarget builds the orbit model for a non-sidereal target. A usable
// two-body solution needs the full element set; anything missing is reported
// as a configuration error naming the absent fields. Mean daily motion is
// derived from the semimajor axis when not stored.
func OrbitFromTarget(t *model.Target) (*OrbitModel, error) {
	o := t.Orbital
	if o == nil {
		return nil, fmt.Errorf("%w: non-sidereal target %q has no orbital elements", ErrMissingParameters, t.Identifier)
	}

	var missing []string
	need := func(name string, v *float64) float64 {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return *v
	}

	m := &OrbitModel{
		SemimajorAxisAU: need("semimajor_axis", o.SemimajorAxis),
		Eccentricity:    need("eccentricity", o.Eccentricity),
		InclinationDeg:  need("inclination", o.Inclination),
		NodeDeg:         need("lng_asc_node", o.LngAscNode),
		ArgPeriDeg:      need("arg_of_perihelion", o.ArgOfPerihelion),
		MeanAnomalyDeg:  need("mean_anomaly", o.MeanAnomaly),
		ElementEpochJD:  need("ephemeris_epoch", o.EphemerisEpoch),
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: non-sidereal target %q missing %s",
			ErrMissingParameters, t.Identifier, strings.Join(missing, ", "))
	}

	if o.MeanDailyMotion != nil && *o.MeanDailyMotion > 0 {
		m.MeanDailyMotionDeg = *o.MeanDailyMotion
	} else if m.SemimajorAxisAU > 0 {
		m.MeanDailyMotionDeg = radToDeg(gaussK / (m.SemimajorAxisAU * math.Sqrt(m.SemimajorAxisAU)))
	}
	if m.SemimajorAxisAU <= 0 || m.Eccentricity < 0 || m.Eccentricity >= 1 {
		return nil, fmt.Errorf("%w: non-sidereal target %q needs 0 <= e < 1 and a > 0",
			ErrMissingParameters, t.Identifier)
	}

	return m, nil
}

// HeliocentricAt returns the body's heliocentric equatorial J2000 position in
// AU at jdTT.
func (m *OrbitModel) HeliocentricAt(jdTT float64) Vec3 {
	meanAnom := degToRad(m.MeanAnomalyDeg + m.MeanDailyMotionDeg*(jdTT-m.ElementEpochJD))
	ecc := SolveKepler(meanAnom, m.Eccentricity)
	x, y := OrbitalPlanePosition(m.SemimajorAxisAU, m.Eccentricity, ecc)
	ecl := PerifocalToEcliptic(x, y, degToRad(m.ArgPeriDeg), degToRad(m.NodeDeg), degToRad(m.InclinationDeg))
	return EclipticToEquatorial(ecl)
}
