package core

import (
	"errors"
	"fmt"

	"github.com/signalsfoundry/skytarget/model"
)

// ErrMissingParameters is returned when a target lacks parameters required by
// its type's physical model.
var ErrMissingParameters = errors.New("target parameters incomplete")

// parsecAU is one parsec in AU.
const parsecAU = 206264.806247096

// farDistanceAU stands in for the distance of a star with no measured
// parallax (one gigaparsec), far enough that annual parallax vanishes.
const farDistanceAU = 1e9 * parsecAU

// StarModel is a fixed-direction target: a catalog position at an epoch plus
// proper motion and parallax. Coordinates are in the equatorial J2000 frame.
type StarModel struct {
	RADeg  float64
	DecDeg float64

	EpochYears  float64 // Julian years of the catalog position
	PMRAMasYr   float64 // proper motion in RA (mas/year, includes cos(dec))
	PMDecMasYr  float64 // proper motion in Dec (mas/year)
	ParallaxMas float64
}

// StarFromTarget builds the star model for a sidereal target. RA and Dec are
// required; epoch defaults to J2000 and the motion terms to zero.
func StarFromTarget(t *model.Target) (*StarModel, error) {
	s := t.Sidereal
	if s == nil || s.RA == nil || s.Dec == nil {
		return nil, fmt.Errorf("%w: sidereal target %q needs ra and dec", ErrMissingParameters, t.Identifier)
	}

	m := &StarModel{
		RADeg:      *s.RA,
		DecDeg:     *s.Dec,
		EpochYears: 2000.0,
	}
	if s.Epoch != nil {
		m.EpochYears = *s.Epoch
	}
	if s.PMRA != nil {
		m.PMRAMasYr = *s.PMRA
	}
	if s.PMDec != nil {
		m.PMDecMasYr = *s.PMDec
	}
	if s.ParallaxMas != nil {
		m.ParallaxMas = *s.ParallaxMas
	}
	return m, nil
}

// DistanceAU returns the star's distance derived from its parallax, or the
// far-distance placeholder when no parallax is available.
func (m *StarModel) DistanceAU() float64 {
	if m.ParallaxMas > 0 {
		return 1000.0 / m.ParallaxMas * parsecAU
	}
	return farDistanceAU
}

// PositionAt returns the star's barycentric position in AU at jdTT, with
// proper motion applied from the catalog epoch.
func (m *StarModel) PositionAt(jdTT float64) Vec3 {
	epochJD := J2000 + (m.EpochYears-2000.0)*365.25
	years := (jdTT - epochJD) / 365.25

	const masToDeg = 1.0 / 3.6e6
	dec := m.DecDeg + m.PMDecMasYr*masToDeg*years

	ra := m.RADeg
	if cosDec := cosDeg(dec); cosDec > 1e-9 {
		ra += m.PMRAMasYr * masToDeg / cosDec * years
	}

	return UnitFromRADec(ra, dec).Scale(m.DistanceAU())
}

func cosDeg(d float64) float64 {
	return UnitFromRADec(0, d).X
}
