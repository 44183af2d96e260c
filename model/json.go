package model

import (
	"encoding/json"
	"time"
)

// targetJSON is the flat wire form of a target. Parameter fields are present
// only when set; the active set is selected by the type field.
type targetJSON struct {
	ID          string `json:"id,omitempty"`
	Identifier  string `json:"identifier"`
	Name        string `json:"name,omitempty"`
	Designation string `json:"designation,omitempty"`
	Type        string `json:"type"`

	Created  *time.Time `json:"created,omitempty"`
	Modified *time.Time `json:"modified,omitempty"`

	RA          *float64 `json:"ra,omitempty"`
	Dec         *float64 `json:"dec,omitempty"`
	Epoch       *float64 `json:"epoch,omitempty"`
	Parallax    *float64 `json:"parallax,omitempty"`
	PMRA        *float64 `json:"pm_ra,omitempty"`
	PMDec       *float64 `json:"pm_dec,omitempty"`
	GalacticLng *float64 `json:"galactic_lng,omitempty"`
	GalacticLat *float64 `json:"galactic_lat,omitempty"`
	Distance    *float64 `json:"distance,omitempty"`
	DistanceErr *float64 `json:"distance_err,omitempty"`

	MeanAnomaly        *float64 `json:"mean_anomaly,omitempty"`
	ArgOfPerihelion    *float64 `json:"arg_of_perihelion,omitempty"`
	Eccentricity       *float64 `json:"eccentricity,omitempty"`
	LngAscNode         *float64 `json:"lng_asc_node,omitempty"`
	Inclination        *float64 `json:"inclination,omitempty"`
	MeanDailyMotion    *float64 `json:"mean_daily_motion,omitempty"`
	SemimajorAxis      *float64 `json:"semimajor_axis,omitempty"`
	EphemerisPeriod    *float64 `json:"ephemeris_period,omitempty"`
	EphemerisPeriodErr *float64 `json:"ephemeris_period_err,omitempty"`
	EphemerisEpoch     *float64 `json:"ephemeris_epoch,omitempty"`
	EphemerisEpochErr  *float64 `json:"ephemeris_epoch_err,omitempty"`
}

// MarshalJSON renders the target as a flat object using the catalog field
// names. Only the parameter variant active for the target's type is emitted.
func (t Target) MarshalJSON() ([]byte, error) {
	out := targetJSON{
		ID:          t.ID,
		Identifier:  t.Identifier,
		Name:        t.Name,
		Designation: t.Designation,
		Type:        string(t.Type),
	}
	if !t.Created.IsZero() {
		created := t.Created
		out.Created = &created
	}
	if !t.Modified.IsZero() {
		modified := t.Modified
		out.Modified = &modified
	}

	if t.Type == TargetTypeSidereal && t.Sidereal != nil {
		s := t.Sidereal
		out.RA, out.Dec, out.Epoch = s.RA, s.Dec, s.Epoch
		out.Parallax = s.ParallaxMas
		out.PMRA, out.PMDec = s.PMRA, s.PMDec
		out.GalacticLng, out.GalacticLat = s.GalacticLng, s.GalacticLat
		out.Distance, out.DistanceErr = s.Distance, s.DistanceErr
	}
	if t.Type == TargetTypeNonSidereal && t.Orbital != nil {
		o := t.Orbital
		out.MeanAnomaly, out.ArgOfPerihelion = o.MeanAnomaly, o.ArgOfPerihelion
		out.Eccentricity, out.LngAscNode = o.Eccentricity, o.LngAscNode
		out.Inclination, out.MeanDailyMotion = o.Inclination, o.MeanDailyMotion
		out.SemimajorAxis = o.SemimajorAxis
		out.EphemerisPeriod, out.EphemerisPeriodErr = o.EphemerisPeriod, o.EphemerisPeriodErr
		out.EphemerisEpoch, out.EphemerisEpochErr = o.EphemerisEpoch, o.EphemerisEpochErr
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the flat wire form. The parameter variant is chosen by
// the type field; fields of the inactive variant are ignored.
func (t *Target) UnmarshalJSON(data []byte) error {
	var in targetJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*t = Target{
		ID:          in.ID,
		Identifier:  in.Identifier,
		Name:        in.Name,
		Designation: in.Designation,
		Type:        TargetType(in.Type),
	}
	if in.Created != nil {
		t.Created = *in.Created
	}
	if in.Modified != nil {
		t.Modified = *in.Modified
	}

	switch t.Type {
	case TargetTypeSidereal:
		t.Sidereal = &SiderealParams{
			RA:          in.RA,
			Dec:         in.Dec,
			Epoch:       in.Epoch,
			ParallaxMas: in.Parallax,
			PMRA:        in.PMRA,
			PMDec:       in.PMDec,
			GalacticLng: in.GalacticLng,
			GalacticLat: in.GalacticLat,
			Distance:    in.Distance,
			DistanceErr: in.DistanceErr,
		}
	case TargetTypeNonSidereal:
		t.Orbital = &OrbitalParams{
			MeanAnomaly:        in.MeanAnomaly,
			ArgOfPerihelion:    in.ArgOfPerihelion,
			Eccentricity:       in.Eccentricity,
			LngAscNode:         in.LngAscNode,
			Inclination:        in.Inclination,
			MeanDailyMotion:    in.MeanDailyMotion,
			SemimajorAxis:      in.SemimajorAxis,
			EphemerisPeriod:    in.EphemerisPeriod,
			EphemerisPeriodErr: in.EphemerisPeriodErr,
			EphemerisEpoch:     in.EphemerisEpoch,
			EphemerisEpochErr:  in.EphemerisEpochErr,
		}
	}
	return nil
}
