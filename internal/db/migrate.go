package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS custom_nature_locations (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		latitude    REAL NOT NULL CHECK(latitude BETWEEN -90 AND 90),
		longitude   REAL NOT NULL CHECK(longitude BETWEEN -180 AND 180),
		tags        TEXT NOT NULL DEFAULT '[]',
		created_by  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_custom_locations_created_by ON custom_nature_locations(created_by)`,

	`CREATE TABLE IF NOT EXISTS user_profiles (
		user_id              TEXT PRIMARY KEY,
		mobility_level       TEXT NOT NULL DEFAULT ''
		                     CHECK(mobility_level IN ('','full','limited','assisted')),
		fitness_level        TEXT NOT NULL DEFAULT ''
		                     CHECK(fitness_level IN ('','beginner','intermediate','advanced')),
		age                  INTEGER,
		risk_tolerance       TEXT NOT NULL DEFAULT '',
		preferred_activities TEXT NOT NULL DEFAULT '[]',
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS excursions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL,
		distance_km      REAL NOT NULL DEFAULT 0,
		difficulty       TEXT NOT NULL
		                 CHECK(difficulty IN ('easy','moderate','challenging')),
		transport_mode   TEXT NOT NULL DEFAULT 'walking',
		plan_json        TEXT NOT NULL,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_excursions_user ON excursions(user_id)`,

	`CREATE TABLE IF NOT EXISTS excursion_sessions (
		id              TEXT PRIMARY KEY,
		excursion_id    TEXT NOT NULL REFERENCES excursions(id) ON DELETE CASCADE,
		user_id         TEXT NOT NULL,
		status          TEXT NOT NULL DEFAULT 'planned'
		                CHECK(status IN ('planned','active','completed','abandoned')),
		phase           TEXT NOT NULL DEFAULT 'PLAN'
		                CHECK(phase IN ('PLAN','GUIDE','REFLECT')),
		current_zone_id TEXT NOT NULL DEFAULT '',
		started_at      TEXT,
		ended_at        TEXT,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_excursion ON excursion_sessions(excursion_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_status ON excursion_sessions(user_id, status)`,

	`CREATE TABLE IF NOT EXISTS excursion_check_ins (
		id           TEXT PRIMARY KEY,
		session_id   TEXT NOT NULL REFERENCES excursion_sessions(id) ON DELETE CASCADE,
		zone_id      TEXT NOT NULL,
		check_in_id  TEXT NOT NULL,
		type         TEXT NOT NULL CHECK(type IN ('scale','text')),
		value_number REAL,
		value_text   TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_check_ins_session ON excursion_check_ins(session_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS favorite_excursions (
		user_id      TEXT NOT NULL,
		excursion_id TEXT NOT NULL REFERENCES excursions(id) ON DELETE CASCADE,
		created_at   TEXT NOT NULL,
		PRIMARY KEY (user_id, excursion_id)
	)`,

	// Time of the most recent guidance, used when resuming a session.
	`ALTER TABLE excursion_sessions ADD COLUMN last_guided_at TEXT`,
}
