package core

import (
	"errors"
	"time"
)

// ErrUnknownBody is returned by an ephemeris source for bodies it has no data
// for.
var ErrUnknownBody = errors.New("ephemeris: unknown body")

// EphemerisSource supplies heliocentric body positions and the conversion
// from civil time to the ephemeris time scale. Implementations must be safe
// for concurrent use; the calculator treats the source as immutable shared
// state.
type EphemerisSource interface {
	// BodyPosition returns the heliocentric equatorial J2000 position of the
	// named body ("earth" at minimum) in AU at the given Julian Date (TT).
	BodyPosition(body string, jdTT float64) (Vec3, error)

	// TT converts a civil UTC timestamp to a Julian Date on the ephemeris's
	// internal (terrestrial) time scale.
	TT(t time.Time) float64
}

// BodyVelocity estimates a body's heliocentric velocity in AU/day by central
// difference over half a day on either side of jdTT.
func BodyVelocity(src EphemerisSource, body string, jdTT float64) (Vec3, error) {
	const h = 0.5
	before, err := src.BodyPosition(body, jdTT-h)
	if err != nil {
		return Vec3{}, err
	}
	after, err := src.BodyPosition(body, jdTT+h)
	if err != nil {
		return Vec3{}, err
	}
	return after.Sub(before).Scale(1 / (2 * h)), nil
}
