package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/skytarget/facility"
	"github.com/signalsfoundry/skytarget/internal/logging"
	"github.com/signalsfoundry/skytarget/model"
)

// Input and configuration failures surfaced by the calculator.
var (
	ErrUnsupportedTargetType = errors.New("unsupported target type")
	ErrBadInterval           = errors.New("interval must be a positive number of minutes")
	ErrBadWindow             = errors.New("start time is after end time")
)

// sampleWindowMinutes is the span covered by one visibility computation.
// Sampling runs from start_time in interval-minute steps across this fixed
// window; end_time bounds are validated but do not change the sample set.
const sampleWindowMinutes = 60

// Sample is one apparent topocentric position: altitude and azimuth in
// degrees, distance from the observing site in AU.
type Sample struct {
	Time       time.Time
	AltDeg     float64
	AzDeg      float64
	DistanceAU float64
}

// SiteResult holds the samples computed for one observing site.
type SiteResult struct {
	Facility string
	Site     string
	Samples  []Sample
}

// SiteFailure records a site that could not be computed. Failures are
// accumulated independently so one bad site does not abort the batch.
type SiteFailure struct {
	Facility string
	Site     string
	Err      error
}

// Result is the full outcome of one visibility computation.
type Result struct {
	Sites    []SiteResult
	Failures []SiteFailure
}

// MetricsRecorder receives a summary of each completed computation. The
// Prometheus implementation lives in internal/observability.
type MetricsRecorder interface {
	RecordComputation(targetType string, elapsed time.Duration, sites, samples, failures int)
}

// targetModel is the physical model observed by the calculator: a body with
// a (barycentric or heliocentric) position and the distance context needed
// for light-time treatment.
type targetModel interface {
	// positionAt returns the body position in equatorial J2000 AU at jdTT.
	positionAt(jdTT float64) Vec3
	// lightTime reports whether light-time iteration is worthwhile for this
	// body (solar-system objects yes, stars no).
	lightTime() bool
}

type starBody struct{ m *StarModel }

func (b starBody) positionAt(jdTT float64) Vec3 { return b.m.PositionAt(jdTT) }
func (b starBody) lightTime() bool              { return false }

type orbitBody struct{ m *OrbitModel }

func (b orbitBody) positionAt(jdTT float64) Vec3 { return b.m.HeliocentricAt(jdTT) }
func (b orbitBody) lightTime() bool              { return true }

// Calculator computes apparent topocentric positions of targets from every
// registered observing site. It is immutable after construction and safe for
// concurrent use; the ephemeris source is shared read-only state.
type Calculator struct {
	ephemeris EphemerisSource
	registry  *facility.Registry
	log       logging.Logger
	metrics   MetricsRecorder
}

// NewCalculator wires a calculator. The ephemeris source and registry are
// required; log may be nil (drops logs) and metrics may be nil (no-op).
func NewCalculator(src EphemerisSource, reg *facility.Registry, log logging.Logger) *Calculator {
	if log == nil {
		log = logging.Noop()
	}
	return &Calculator{ephemeris: src, registry: reg, log: log}
}

// WithMetrics attaches a metrics recorder and returns the calculator for
// chaining.
func (c *Calculator) WithMetrics(m MetricsRecorder) *Calculator {
	c.metrics = m
	return c
}

// Visibility computes the apparent (altitude, azimuth, distance) of the
// target from every site of every registered facility, sampled at
// intervalMin-minute steps across the fixed one-hour window starting at
// start. The end time is validated against start but does not alter
// sampling.
//
// Input and target-configuration problems fail the whole call; per-site
// problems are reported in Result.Failures.
func (c *Calculator) Visibility(ctx context.Context, target *model.Target, start, end time.Time, intervalMin int) (*Result, error) {
	ctx, span := otel.Tracer("skytarget/core").Start(ctx, "visibility.compute")
	defer span.End()
	span.SetAttributes(
		attribute.String("target.identifier", target.Identifier),
		attribute.String("target.type", string(target.Type)),
		attribute.Int("interval_minutes", intervalMin),
	)

	began := time.Now()

	if intervalMin <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadInterval, intervalMin)
	}
	if start.After(end) {
		return nil, fmt.Errorf("%w: %s > %s", ErrBadWindow, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	body, err := c.bodyForTarget(target)
	if err != nil {
		return nil, err
	}

	times := sampleTimes(start, intervalMin)

	// Earth state is identical for every site; compute it once per sample.
	earth := make([]earthState, len(times))
	for i, t := range times {
		jd := c.ephemeris.TT(t)
		pos, err := c.ephemeris.BodyPosition("earth", jd)
		if err != nil {
			return nil, fmt.Errorf("ephemeris earth position: %w", err)
		}
		vel, err := BodyVelocity(c.ephemeris, "earth", jd)
		if err != nil {
			return nil, fmt.Errorf("ephemeris earth velocity: %w", err)
		}
		earth[i] = earthState{jdTT: jd, pos: pos, vel: vel}
	}

	res := &Result{}
	for _, fac := range c.registry.All() {
		sites := fac.ObservingSites()
		for _, name := range facility.SiteNames(fac) {
			site := sites[name]
			samples, err := c.observeFromSite(body, site, times, earth)
			if err != nil {
				c.log.Warn(ctx, "site visibility failed",
					logging.String("facility", fac.Name()),
					logging.String("site", name),
					logging.Any("error", err.Error()))
				res.Failures = append(res.Failures, SiteFailure{Facility: fac.Name(), Site: name, Err: err})
				continue
			}
			res.Sites = append(res.Sites, SiteResult{Facility: fac.Name(), Site: name, Samples: samples})
		}
	}

	elapsed := time.Since(began)
	totalSamples := 0
	for _, s := range res.Sites {
		totalSamples += len(s.Samples)
	}
	span.SetAttributes(
		attribute.Int("sites", len(res.Sites)),
		attribute.Int("samples", totalSamples),
		attribute.Int("failures", len(res.Failures)),
	)
	if c.metrics != nil {
		c.metrics.RecordComputation(string(target.Type), elapsed, len(res.Sites), totalSamples, len(res.Failures))
	}
	c.log.Debug(ctx, "visibility computed",
		logging.String("target", target.Identifier),
		logging.Int("sites", len(res.Sites)),
		logging.Int("failures", len(res.Failures)))

	return res, nil
}

func (c *Calculator) bodyForTarget(t *model.Target) (targetModel, error) {
	switch t.Type {
	case model.TargetTypeSidereal:
		m, err := StarFromTarget(t)
		if err != nil {
			return nil, err
		}
		return starBody{m: m}, nil
	case model.TargetTypeNonSidereal:
		m, err := OrbitFromTarget(t)
		if err != nil {
			return nil, err
		}
		return orbitBody{m: m}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTargetType, t.Type)
	}
}

type earthState struct {
	jdTT float64
	pos  Vec3
	vel  Vec3
}

// sampleTimes enumerates start + k*interval while k*interval stays inside the
// fixed window.
func sampleTimes(start time.Time, intervalMin int) []time.Time {
	var out []time.Time
	for offset := 0; offset < sampleWindowMinutes; offset += intervalMin {
		out = append(out, start.Add(time.Duration(offset)*time.Minute))
	}
	return out
}

func (c *Calculator) observeFromSite(body targetModel, site facility.Site, times []time.Time, earth []earthState) ([]Sample, error) {
	if site.Latitude < -90 || site.Latitude > 90 || site.Longitude < -360 || site.Longitude > 360 {
		return nil, fmt.Errorf("malformed site coordinates: lat=%v lon=%v", site.Latitude, site.Longitude)
	}

	samples := make([]Sample, 0, len(times))
	for i, t := range times {
		es := earth[i]
		observer := es.pos.Add(SiteOffsetAU(site.Latitude, site.Longitude, site.Elevation, t))

		// Astrometric position: body relative to observer, iterated for
		// light-time when the body is close enough for it to matter.
		rel := body.positionAt(es.jdTT).Sub(observer)
		if body.lightTime() {
			for iter := 0; iter < 2; iter++ {
				tau := rel.Norm() / LightAUPerDay
				rel = body.positionAt(es.jdTT - tau).Sub(observer)
			}
		}
		dist := rel.Norm()

		// Apparent direction: annual aberration, then precession to the
		// equinox of date.
		dir := rel.Normalize().Add(es.vel.Scale(1 / LightAUPerDay)).Normalize()
		dir = PrecessJ2000ToDate(dir, es.jdTT)

		ra, dec := RADecFromUnit(dir)
		hz := EquatorialToHorizontal(ra, dec, site.Latitude, site.Longitude, t)

		samples = append(samples, Sample{
			Time:       t,
			AltDeg:     hz.AltDeg,
			AzDeg:      hz.AzDeg,
			DistanceAU: dist,
		})
	}
	return samples, nil
}
