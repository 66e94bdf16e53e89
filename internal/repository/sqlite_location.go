package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLiteCustomLocationRepo implements CustomLocationRepo using a SQLite database.
type SQLiteCustomLocationRepo struct {
	db db.DBTX
}

func NewSQLiteCustomLocationRepo(conn db.DBTX) *SQLiteCustomLocationRepo {
	return &SQLiteCustomLocationRepo{db: conn}
}

const customLocationColumns = `id, name, description, latitude, longitude, tags, created_by, created_at`

func (r *SQLiteCustomLocationRepo) Create(ctx context.Context, l *domain.CustomLocation) error {
	tags, err := encodeStrings(l.Tags)
	if err != nil {
		return err
	}
	query := `INSERT INTO custom_nature_locations (` + customLocationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		l.ID,
		l.Name,
		l.Description,
		l.Latitude,
		l.Longitude,
		tags,
		l.CreatedBy,
		formatTime(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting custom location: %w", err)
	}
	return nil
}

func (r *SQLiteCustomLocationRepo) GetByID(ctx context.Context, id string) (*domain.CustomLocation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+customLocationColumns+` FROM custom_nature_locations WHERE id = ?`, id)
	l, err := scanCustomLocation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("custom location: %w", ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

func (r *SQLiteCustomLocationRepo) List(ctx context.Context) ([]*domain.CustomLocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customLocationColumns+` FROM custom_nature_locations ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing custom locations: %w", err)
	}
	defer rows.Close()
	return scanCustomLocations(rows)
}

func (r *SQLiteCustomLocationRepo) ListByCreator(ctx context.Context, userID string) ([]*domain.CustomLocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+customLocationColumns+` FROM custom_nature_locations WHERE created_by = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing custom locations by creator: %w", err)
	}
	defer rows.Close()
	return scanCustomLocations(rows)
}

func (r *SQLiteCustomLocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_nature_locations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting custom location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("custom location: %w", ErrNotFound)
	}
	return nil
}

func scanCustomLocation(row rowScanner) (*domain.CustomLocation, error) {
	var l domain.CustomLocation
	var tags, createdAt string
	if err := row.Scan(&l.ID, &l.Name, &l.Description, &l.Latitude, &l.Longitude, &tags, &l.CreatedBy, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning custom location: %w", err)
	}
	var err error
	if l.Tags, err = decodeStrings(tags); err != nil {
		return nil, err
	}
	if l.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &l, nil
}

func scanCustomLocations(rows *sql.Rows) ([]*domain.CustomLocation, error) {
	out := []*domain.CustomLocation{}
	for rows.Next() {
		l, err := scanCustomLocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom locations: %w", err)
	}
	return out, nil
}
