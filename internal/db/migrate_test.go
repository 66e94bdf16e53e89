package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func schemaObject(t *testing.T, conn *sql.DB, kind, name string) bool {
	t.Helper()
	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, kind, name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestMigrate_SchemaObjects(t *testing.T) {
	conn := openMemory(t)

	objects := map[string][]string{
		"table": {
			"custom_nature_locations",
			"user_profiles",
			"excursions",
			"excursion_sessions",
			"excursion_check_ins",
			"favorite_excursions",
		},
		"index": {
			"idx_custom_locations_created_by",
			"idx_excursions_user",
			"idx_sessions_excursion",
			"idx_sessions_user_status",
			"idx_check_ins_session",
		},
	}
	for kind, names := range objects {
		for _, name := range names {
			assert.True(t, schemaObject(t, conn, kind, name), "%s %s missing", kind, name)
		}
	}
}

func TestMigrate_ReplayIsHarmless(t *testing.T) {
	conn := openMemory(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, Migrate(conn), "replay %d", i)
	}
	assert.True(t, schemaObject(t, conn, "table", "excursion_sessions"))
}

func TestMigrate_Constraints(t *testing.T) {
	tests := []struct {
		name string
		stmt string
	}{
		{
			name: "session without excursion",
			stmt: `INSERT INTO excursion_sessions (id, excursion_id, user_id, created_at, updated_at)
				VALUES ('s1', 'missing', 'u1', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		},
		{
			name: "unknown difficulty",
			stmt: `INSERT INTO excursions (id, user_id, title, duration_minutes, difficulty, plan_json, created_at, updated_at)
				VALUES ('e1', 'u1', 'Loop', 30, 'extreme', '{}', '2026-01-01', '2026-01-01')`,
		},
		{
			name: "latitude out of range",
			stmt: `INSERT INTO custom_nature_locations (id, name, latitude, longitude, created_at)
				VALUES ('l1', 'Pond', 91, 0, '2026-01-01')`,
		},
		{
			name: "unknown mobility level",
			stmt: `INSERT INTO user_profiles (user_id, mobility_level, updated_at)
				VALUES ('u1', 'flying', '2026-01-01')`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := openMemory(t)
			_, err := conn.Exec(tt.stmt)
			assert.Error(t, err)
		})
	}
}
