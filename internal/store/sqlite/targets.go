package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/signalsfoundry/skytarget/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

const targetColumns = `id, identifier, name, designation, type,
	ra, dec, epoch, parallax, pm_ra, pm_dec, galactic_lng, galactic_lat, distance, distance_err,
	mean_anomaly, arg_of_perihelion, eccentricity, lng_asc_node, inclination, mean_daily_motion,
	semimajor_axis, ephemeris_period, ephemeris_period_err, ephemeris_epoch, ephemeris_epoch_err,
	created_at, modified_at`

func (s *Store) UpsertTarget(ctx context.Context, t model.Target) (model.Target, error) {
	if err := t.Validate(); err != nil {
		return model.Target{}, err
	}
	if t.Identifier == "" {
		return model.Target{}, errors.New("identifier is required")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if t.Created.IsZero() {
		t.Created = now
	}
	t.Modified = now

	sp := t.Sidereal
	if sp == nil {
		sp = &model.SiderealParams{}
	}
	op := t.Orbital
	if op == nil {
		op = &model.OrbitalParams{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO targets (`+targetColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			identifier = excluded.identifier,
			name = excluded.name,
			designation = excluded.designation,
			type = excluded.type,
			ra = excluded.ra,
			dec = excluded.dec,
			epoch = excluded.epoch,
			parallax = excluded.parallax,
			pm_ra = excluded.pm_ra,
			pm_dec = excluded.pm_dec,
			galactic_lng = excluded.galactic_lng,
			galactic_lat = excluded.galactic_lat,
			distance = excluded.distance,
			distance_err = excluded.distance_err,
			mean_anomaly = excluded.mean_anomaly,
			arg_of_perihelion = excluded.arg_of_perihelion,
			eccentricity = excluded.eccentricity,
			lng_asc_node = excluded.lng_asc_node,
			inclination = excluded.inclination,
			mean_daily_motion = excluded.mean_daily_motion,
			semimajor_axis = excluded.semimajor_axis,
			ephemeris_period = excluded.ephemeris_period,
			ephemeris_period_err = excluded.ephemeris_period_err,
			ephemeris_epoch = excluded.ephemeris_epoch,
			ephemeris_epoch_err = excluded.ephemeris_epoch_err,
			modified_at = excluded.modified_at
	`, t.ID, t.Identifier, t.Name, t.Designation, string(t.Type),
		nullFloat(sp.RA), nullFloat(sp.Dec), nullFloat(sp.Epoch), nullFloat(sp.ParallaxMas),
		nullFloat(sp.PMRA), nullFloat(sp.PMDec), nullFloat(sp.GalacticLng), nullFloat(sp.GalacticLat),
		nullFloat(sp.Distance), nullFloat(sp.DistanceErr),
		nullFloat(op.MeanAnomaly), nullFloat(op.ArgOfPerihelion), nullFloat(op.Eccentricity),
		nullFloat(op.LngAscNode), nullFloat(op.Inclination), nullFloat(op.MeanDailyMotion),
		nullFloat(op.SemimajorAxis), nullFloat(op.EphemerisPeriod), nullFloat(op.EphemerisPeriodErr),
		nullFloat(op.EphemerisEpoch), nullFloat(op.EphemerisEpochErr),
		t.Created.UnixMilli(), t.Modified.UnixMilli())
	if err != nil {
		return model.Target{}, err
	}
	return s.GetTarget(ctx, t.ID)
}

func (s *Store) GetTarget(ctx context.Context, id string) (model.Target, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+targetColumns+` FROM targets WHERE id = ?`, id)
	return scanTarget(row)
}

func (s *Store) GetTargetByIdentifier(ctx context.Context, identifier string) (model.Target, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+targetColumns+` FROM targets WHERE identifier = ?`, identifier)
	return scanTarget(row)
}

func (s *Store) ListTargets(ctx context.Context) ([]model.Target, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+targetColumns+` FROM targets ORDER BY identifier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Target
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) DeleteTarget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM targets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("target %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTarget(row rowScanner) (model.Target, error) {
	var (
		t          model.Target
		typ        string
		sidereal   [10]sql.NullFloat64
		orbital    [11]sql.NullFloat64
		createdAt  int64
		modifiedAt int64
	)
	dest := []any{&t.ID, &t.Identifier, &t.Name, &t.Designation, &typ}
	for i := range sidereal {
		dest = append(dest, &sidereal[i])
	}
	for i := range orbital {
		dest = append(dest, &orbital[i])
	}
	dest = append(dest, &createdAt, &modifiedAt)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Target{}, ErrNotFound
		}
		return model.Target{}, err
	}

	t.Type = model.TargetType(typ)
	t.Created = time.UnixMilli(createdAt).UTC()
	t.Modified = time.UnixMilli(modifiedAt).UTC()

	switch t.Type {
	case model.TargetTypeSidereal:
		t.Sidereal = &model.SiderealParams{
			RA:          ptrFloat(sidereal[0]),
			Dec:         ptrFloat(sidereal[1]),
			Epoch:       ptrFloat(sidereal[2]),
			ParallaxMas: ptrFloat(sidereal[3]),
			PMRA:        ptrFloat(sidereal[4]),
			PMDec:       ptrFloat(sidereal[5]),
			GalacticLng: ptrFloat(sidereal[6]),
			GalacticLat: ptrFloat(sidereal[7]),
			Distance:    ptrFloat(sidereal[8]),
			DistanceErr: ptrFloat(sidereal[9]),
		}
	case model.TargetTypeNonSidereal:
		t.Orbital = &model.OrbitalParams{
			MeanAnomaly:        ptrFloat(orbital[0]),
			ArgOfPerihelion:    ptrFloat(orbital[1]),
			Eccentricity:       ptrFloat(orbital[2]),
			LngAscNode:         ptrFloat(orbital[3]),
			Inclination:        ptrFloat(orbital[4]),
			MeanDailyMotion:    ptrFloat(orbital[5]),
			SemimajorAxis:      ptrFloat(orbital[6]),
			EphemerisPeriod:    ptrFloat(orbital[7]),
			EphemerisPeriodErr: ptrFloat(orbital[8]),
			EphemerisEpoch:     ptrFloat(orbital[9]),
			EphemerisEpochErr:  ptrFloat(orbital[10]),
		}
	}
	return t, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func ptrFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
