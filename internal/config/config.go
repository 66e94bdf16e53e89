// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devTokenSecret = "wander-dev-secret"

// Config holds all application configuration.
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Sources     SourcesConfig
	Planner     PlannerConfig
	Redis       RedisConfig
	NATS        NATSConfig
	Auth        AuthConfig
	Weather     WeatherConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects local SQLite storage and, optionally, a Postgres
// store for user-submitted spots.
type DatabaseConfig struct {
	Path        string
	PostgresURL string
}

type SourcesConfig struct {
	OverpassEndpoint string
	OverpassTimeout  time.Duration
	OverpassLimit    int
	PlacesEndpoint   string
	PlacesAPIKey     string
	PlacesTimeout    time.Duration
	OSMPolicy        string
	OSMMinCandidates int
	CacheTTL         time.Duration
}

type PlannerConfig struct {
	TopN              int
	DuplicateMeters   float64
	SyntheticFallback bool
	SyntheticMinimum  int
}

// RedisConfig enables the source result cache when Addr is set.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NATSConfig enables event publishing when URL is set.
type NATSConfig struct {
	URL            string
	SubjectPrefix  string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

type AuthConfig struct {
	TokenSecret string
	Issuer      string
	TokenTTL    time.Duration
}

// WeatherConfig enables forecasts when APIKey is set.
type WeatherConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Config{
		Environment: getEnv("WANDER_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("WANDER_SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("WANDER_SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("WANDER_SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("WANDER_SERVER_WRITE_TIMEOUT", 90*time.Second),
			RequestTimeout:  getEnvAsDuration("WANDER_SERVER_REQUEST_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("WANDER_SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("WANDER_SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Path:        getEnv("WANDER_DB", defaultDBPath()),
			PostgresURL: getEnv("WANDER_POSTGRES_URL", ""),
		},
		Sources: SourcesConfig{
			OverpassEndpoint: getEnv("WANDER_OVERPASS_ENDPOINT", "https://overpass-api.de/api/interpreter"),
			OverpassTimeout:  getEnvAsDuration("WANDER_OVERPASS_TIMEOUT", 30*time.Second),
			OverpassLimit:    getEnvAsInt("WANDER_OVERPASS_LIMIT", 60),
			PlacesEndpoint:   getEnv("WANDER_PLACES_ENDPOINT", "https://maps.googleapis.com/maps/api/place/nearbysearch/json"),
			PlacesAPIKey:     getEnv("WANDER_PLACES_API_KEY", ""),
			PlacesTimeout:    getEnvAsDuration("WANDER_PLACES_TIMEOUT", 10*time.Second),
			OSMPolicy:        getEnv("WANDER_OSM_POLICY", "always"),
			OSMMinCandidates: getEnvAsInt("WANDER_OSM_MIN_CANDIDATES", 5),
			CacheTTL:         getEnvAsDuration("WANDER_SOURCE_CACHE_TTL", 15*time.Minute),
		},
		Planner: PlannerConfig{
			TopN:              getEnvAsInt("WANDER_TOP_N", 10),
			DuplicateMeters:   getEnvAsFloat("WANDER_DUPLICATE_METERS", 50),
			SyntheticFallback: getEnvAsBool("WANDER_SYNTHETIC_FALLBACK", false),
			SyntheticMinimum:  getEnvAsInt("WANDER_SYNTHETIC_MIN_CANDIDATES", 3),
		},
		Redis: RedisConfig{
			Addr:      getEnv("WANDER_REDIS_ADDR", ""),
			Password:  getEnv("WANDER_REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("WANDER_REDIS_DB", 0),
			KeyPrefix: getEnv("WANDER_REDIS_PREFIX", "wander:sources"),
		},
		NATS: NATSConfig{
			URL:            getEnv("WANDER_NATS_URL", ""),
			SubjectPrefix:  getEnv("WANDER_NATS_SUBJECT_PREFIX", "wander"),
			MaxReconnects:  getEnvAsInt("WANDER_NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("WANDER_NATS_RECONNECT_WAIT", time.Second),
			ConnectTimeout: getEnvAsDuration("WANDER_NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Auth: AuthConfig{
			TokenSecret: getEnv("WANDER_JWT_SECRET", devTokenSecret),
			Issuer:      getEnv("WANDER_JWT_ISSUER", "wander"),
			TokenTTL:    getEnvAsDuration("WANDER_JWT_TTL", 24*time.Hour),
		},
		Weather: WeatherConfig{
			BaseURL: getEnv("WANDER_WEATHER_URL", "https://api.openweathermap.org/data/2.5"),
			APIKey:  getEnv("WANDER_WEATHER_API_KEY", ""),
			Timeout: getEnvAsDuration("WANDER_WEATHER_TIMEOUT", 5*time.Second),
		},
	}

	return cfg, validate(cfg)
}

func validate(cfg Config) error {
	var errs []error
	if cfg.Auth.TokenSecret == devTokenSecret && cfg.Environment != "development" {
		errs = append(errs, errors.New("WANDER_JWT_SECRET must be set outside development"))
	}
	if cfg.Sources.OSMPolicy != "always" && cfg.Sources.OSMPolicy != "when_sparse" {
		errs = append(errs, fmt.Errorf("WANDER_OSM_POLICY %q must be always or when_sparse", cfg.Sources.OSMPolicy))
	}
	if cfg.Planner.TopN <= 0 {
		errs = append(errs, fmt.Errorf("WANDER_TOP_N must be positive, got %d", cfg.Planner.TopN))
	}
	if cfg.Planner.DuplicateMeters < 0 {
		errs = append(errs, fmt.Errorf("WANDER_DUPLICATE_METERS must not be negative, got %g", cfg.Planner.DuplicateMeters))
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("WANDER_SERVER_PORT %d is out of range", cfg.Server.Port))
	}
	return errors.Join(errs...)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wander.db"
	}
	return filepath.Join(home, ".wander", "wander.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
