package model

import (
	"fmt"
	"time"
)

// TargetType distinguishes fixed-direction (stellar) targets from objects on
// solar-system orbits.
type TargetType string

const (
	TargetTypeSidereal    TargetType = "SIDEREAL"
	TargetTypeNonSidereal TargetType = "NON_SIDEREAL"
)

// Valid reports whether the type is one of the enumerated kinds.
func (tt TargetType) Valid() bool {
	return tt == TargetTypeSidereal || tt == TargetTypeNonSidereal
}

// Field names shared by every target regardless of type.
var GlobalTargetFields = []string{"identifier", "name", "designation", "type"}

// SiderealFields is the ordered set of meaningful field names for a
// SIDEREAL target: the identity fields plus the stellar parameters.
var SiderealFields = append(append([]string{}, GlobalTargetFields...),
	"ra", "dec", "epoch", "parallax", "pm_ra", "pm_dec",
	"galactic_lng", "galactic_lat", "distance", "distance_err",
)

// NonSiderealFields is the ordered set of meaningful field names for a
// NON_SIDEREAL target: the identity fields plus the osculating elements.
var NonSiderealFields = append(append([]string{}, GlobalTargetFields...),
	"mean_anomaly", "arg_of_perihelion", "eccentricity", "lng_asc_node",
	"inclination", "mean_daily_motion", "semimajor_axis",
	"ephemeris_period", "ephemeris_period_err", "ephemeris_epoch", "ephemeris_epoch_err",
)

// FieldSubset returns the ordered list of semantically valid field names for a
// target type. Unknown types get the identity fields only. The returned slice
// is a copy and safe to mutate.
func FieldSubset(tt TargetType) []string {
	switch tt {
	case TargetTypeSidereal:
		return append([]string{}, SiderealFields...)
	case TargetTypeNonSidereal:
		return append([]string{}, NonSiderealFields...)
	default:
		return append([]string{}, GlobalTargetFields...)
	}
}

// SiderealParams carries the stellar parameter set. All values are optional;
// angles are in degrees, proper motion in milliarcseconds per year, parallax in
// milliarcseconds, distance in parsecs, epoch in Julian years (max 2100).
type SiderealParams struct {
	RA          *float64 // right ascension, degrees
	Dec         *float64 // declination, degrees
	Epoch       *float64 // Julian years
	ParallaxMas *float64
	PMRA        *float64 // mas/year
	PMDec       *float64 // mas/year
	GalacticLng *float64 // degrees
	GalacticLat *float64 // degrees
	Distance    *float64 // parsecs
	DistanceErr *float64 // parsecs
}

// OrbitalParams carries the osculating-element parameter set for a
// non-sidereal target. Angles are in degrees (J2000 ecliptic frame),
// semimajor axis in AU, mean daily motion in degrees/day, ephemeris
// period/epoch in days.
type OrbitalParams struct {
	MeanAnomaly        *float64
	ArgOfPerihelion    *float64
	Eccentricity       *float64
	LngAscNode         *float64
	Inclination        *float64
	MeanDailyMotion    *float64
	SemimajorAxis      *float64
	EphemerisPeriod    *float64
	EphemerisPeriodErr *float64
	EphemerisEpoch     *float64
	EphemerisEpochErr  *float64
}

// Target is a persisted astronomical observation target. Exactly one of
// Sidereal/Orbital is meaningful, selected by Type; the inactive variant is
// nil (or ignored).
type Target struct {
	ID          string
	Identifier  string // external catalog id, e.g. "Kelt-16b"
	Name        string
	Designation string
	Type        TargetType

	Created  time.Time
	Modified time.Time

	Sidereal *SiderealParams
	Orbital  *OrbitalParams
}

// String returns the target's external identifier.
func (t *Target) String() string { return t.Identifier }

// DetailPath returns the canonical identity link for this target.
func (t *Target) DetailPath() string {
	return fmt.Sprintf("/targets/%s", t.ID)
}

// Validate checks the construction invariant: the type, when set, must be one
// of the enumerated kinds, and the active parameter variant must match it.
// Range and unit checks are deliberately not performed at this layer.
func (t *Target) Validate() error {
	switch t.Type {
	case TargetTypeSidereal:
		if t.Orbital != nil {
			return fmt.Errorf("target %q: orbital parameters set on a sidereal target", t.Identifier)
		}
	case TargetTypeNonSidereal:
		if t.Sidereal != nil {
			return fmt.Errorf("target %q: sidereal parameters set on a non-sidereal target", t.Identifier)
		}
	case "":
		// generic target; identity fields only
	default:
		return fmt.Errorf("target %q: unknown target type %q", t.Identifier, t.Type)
	}
	return nil
}

// FieldValue is a single named field in a projection. Projections are ordered,
// so they are slices of FieldValue rather than maps.
type FieldValue struct {
	Name  string
	Value any
}

// Project returns the target's contents restricted to the given field names,
// in the given order. Unknown names project as nil; unset optional fields
// project as nil values.
func (t *Target) Project(fields []string) []FieldValue {
	out := make([]FieldValue, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldValue{Name: f, Value: t.fieldValue(f)})
	}
	return out
}

// AsDict returns the ordered projection over the field subset valid for the
// target's type.
func (t *Target) AsDict() []FieldValue {
	return t.Project(FieldSubset(t.Type))
}

func (t *Target) fieldValue(name string) any {
	switch name {
	case "identifier":
		return t.Identifier
	case "name":
		return t.Name
	case "designation":
		return t.Designation
	case "type":
		return string(t.Type)
	}

	if s := t.Sidereal; s != nil {
		switch name {
		case "ra":
			return floatOrNil(s.RA)
		case "dec":
			return floatOrNil(s.Dec)
		case "epoch":
			return floatOrNil(s.Epoch)
		case "parallax":
			return floatOrNil(s.ParallaxMas)
		case "pm_ra":
			return floatOrNil(s.PMRA)
		case "pm_dec":
			return floatOrNil(s.PMDec)
		case "galactic_lng":
			return floatOrNil(s.GalacticLng)
		case "galactic_lat":
			return floatOrNil(s.GalacticLat)
		case "distance":
			return floatOrNil(s.Distance)
		case "distance_err":
			return floatOrNil(s.DistanceErr)
		}
	}
	if o := t.Orbital; o != nil {
		switch name {
		case "mean_anomaly":
			return floatOrNil(o.MeanAnomaly)
		case "arg_of_perihelion":
			return floatOrNil(o.ArgOfPerihelion)
		case "eccentricity":
			return floatOrNil(o.Eccentricity)
		case "lng_asc_node":
			return floatOrNil(o.LngAscNode)
		case "inclination":
			return floatOrNil(o.Inclination)
		case "mean_daily_motion":
			return floatOrNil(o.MeanDailyMotion)
		case "semimajor_axis":
			return floatOrNil(o.SemimajorAxis)
		case "ephemeris_period":
			return floatOrNil(o.EphemerisPeriod)
		case "ephemeris_period_err":
			return floatOrNil(o.EphemerisPeriodErr)
		case "ephemeris_epoch":
			return floatOrNil(o.EphemerisEpoch)
		case "ephemeris_epoch_err":
			return floatOrNil(o.EphemerisEpochErr)
		}
	}
	return nil
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Float64 returns a pointer to v; convenience for populating optional fields.
func Float64(v float64) *float64 { return &v }
