// Package postgres stores user-submitted nature spots in a shared Postgres
// database for hosted deployments.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/repository"
)

const schema = `CREATE TABLE IF NOT EXISTS custom_nature_locations (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	latitude    DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
	longitude   DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
	tags        TEXT[] NOT NULL DEFAULT '{}',
	created_by  TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_custom_locations_created_by ON custom_nature_locations (created_by);`

const selectColumns = `SELECT id, name, description, latitude, longitude, tags, created_by, created_at
	FROM custom_nature_locations`

// CustomLocationStore implements repository.CustomLocationRepo on Postgres.
type CustomLocationStore struct {
	pool *pgxpool.Pool
}

var _ repository.CustomLocationRepo = (*CustomLocationStore)(nil)

// NewCustomLocationStore constructs a CustomLocationStore.
func NewCustomLocationStore(pool *pgxpool.Pool) *CustomLocationStore {
	return &CustomLocationStore{pool: pool}
}

// Connect opens a pool and makes sure the table exists.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("opening postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return pool, nil
}

func (s *CustomLocationStore) Create(ctx context.Context, l *domain.CustomLocation) error {
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO custom_nature_locations (id, name, description, latitude, longitude, tags, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.Name, l.Description, l.Latitude, l.Longitude, tags, l.CreatedBy, l.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("inserting custom location: %w", err)
	}
	return nil
}

func (s *CustomLocationStore) GetByID(ctx context.Context, id string) (*domain.CustomLocation, error) {
	rows, err := s.pool.Query(ctx, selectColumns+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("querying custom location: %w", err)
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLocation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("custom location: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning custom location: %w", err)
	}
	return l, nil
}

func (s *CustomLocationStore) List(ctx context.Context) ([]*domain.CustomLocation, error) {
	return s.list(ctx, selectColumns+` ORDER BY created_at, id`)
}

func (s *CustomLocationStore) ListByCreator(ctx context.Context, userID string) ([]*domain.CustomLocation, error) {
	return s.list(ctx, selectColumns+` WHERE created_by = $1 ORDER BY created_at, id`, userID)
}

func (s *CustomLocationStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM custom_nature_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting custom location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("custom location: %w", repository.ErrNotFound)
	}
	return nil
}

func (s *CustomLocationStore) list(ctx context.Context, query string, args ...any) ([]*domain.CustomLocation, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing custom locations: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanLocation)
	if err != nil {
		return nil, fmt.Errorf("scanning custom locations: %w", err)
	}
	if out == nil {
		out = []*domain.CustomLocation{}
	}
	return out, nil
}

func scanLocation(row pgx.CollectableRow) (*domain.CustomLocation, error) {
	var l domain.CustomLocation
	if err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Latitude, &l.Longitude, &l.Tags, &l.CreatedBy, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return &l, nil
}
