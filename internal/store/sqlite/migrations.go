package sqlite

import (
	"context"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS targets (
			id TEXT PRIMARY KEY,
			identifier TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL DEFAULT '',
			designation TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT '',
			ra REAL,
			dec REAL,
			epoch REAL,
			parallax REAL,
			pm_ra REAL,
			pm_dec REAL,
			galactic_lng REAL,
			galactic_lat REAL,
			distance REAL,
			distance_err REAL,
			mean_anomaly REAL,
			arg_of_perihelion REAL,
			eccentricity REAL,
			lng_asc_node REAL,
			inclination REAL,
			mean_daily_motion REAL,
			semimajor_axis REAL,
			ephemeris_period REAL,
			ephemeris_period_err REAL,
			ephemeris_epoch REAL,
			ephemeris_epoch_err REAL,
			created_at INTEGER NOT NULL,
			modified_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS target_extras (
			target_id TEXT NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
			key TEXT NOT NULL,
			value TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (target_id, key)
		);`,
		`CREATE TABLE IF NOT EXISTS target_lists (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS target_list_members (
			list_id TEXT NOT NULL REFERENCES target_lists(id) ON DELETE CASCADE,
			target_id TEXT NOT NULL REFERENCES targets(id) ON DELETE CASCADE,
			PRIMARY KEY (list_id, target_id)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
