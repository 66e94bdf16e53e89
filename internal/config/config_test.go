package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CorsOrigins)
	assert.Equal(t, "always", cfg.Sources.OSMPolicy)
	assert.Equal(t, 5, cfg.Sources.OSMMinCandidates)
	assert.Equal(t, 10, cfg.Planner.TopN)
	assert.Equal(t, 50.0, cfg.Planner.DuplicateMeters)
	assert.False(t, cfg.Planner.SyntheticFallback)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.NATS.URL)
	assert.Empty(t, cfg.Weather.APIKey)
	assert.Equal(t, "wander.db", filepath.Base(cfg.Database.Path))
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("WANDER_SERVER_PORT", "9090")
	t.Setenv("WANDER_SERVER_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("WANDER_OSM_POLICY", "when_sparse")
	t.Setenv("WANDER_SYNTHETIC_FALLBACK", "true")
	t.Setenv("WANDER_DUPLICATE_METERS", "75.5")
	t.Setenv("WANDER_SOURCE_CACHE_TTL", "2m")
	t.Setenv("WANDER_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CorsOrigins)
	assert.Equal(t, "when_sparse", cfg.Sources.OSMPolicy)
	assert.True(t, cfg.Planner.SyntheticFallback)
	assert.Equal(t, 75.5, cfg.Planner.DuplicateMeters)
	assert.Equal(t, 2*time.Minute, cfg.Sources.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	chdirTemp(t)
	t.Setenv("WANDER_SERVER_PORT", "eighty")
	t.Setenv("WANDER_SERVER_REQUEST_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.RequestTimeout)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WANDER_TOP_N=4\n"), 0o600))
	t.Setenv("WANDER_TOP_N", "")
	os.Unsetenv("WANDER_TOP_N")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Planner.TopN)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"default secret in production", map[string]string{"WANDER_ENV": "production"}, "WANDER_JWT_SECRET"},
		{"unknown osm policy", map[string]string{"WANDER_OSM_POLICY": "never"}, "WANDER_OSM_POLICY"},
		{"non-positive top n", map[string]string{"WANDER_TOP_N": "0"}, "WANDER_TOP_N"},
		{"negative duplicate threshold", map[string]string{"WANDER_DUPLICATE_METERS": "-1"}, "WANDER_DUPLICATE_METERS"},
		{"port out of range", map[string]string{"WANDER_SERVER_PORT": "70000"}, "WANDER_SERVER_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_ProductionWithSecret(t *testing.T) {
	chdirTemp(t)
	t.Setenv("WANDER_ENV", "production")
	t.Setenv("WANDER_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
}
