package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/domain"
)

// SQLiteExcursionRepo implements ExcursionRepo using a SQLite database.
type SQLiteExcursionRepo struct {
	db db.DBTX
}

func NewSQLiteExcursionRepo(conn db.DBTX) *SQLiteExcursionRepo {
	return &SQLiteExcursionRepo{db: conn}
}

// The favorite flag is relative to the excursion's owner.
const excursionSelect = `SELECT e.id, e.user_id, e.title, e.description, e.duration_minutes,
		e.distance_km, e.difficulty, e.transport_mode, e.plan_json,
		f.excursion_id IS NOT NULL, e.created_at, e.updated_at
	FROM excursions e
	LEFT JOIN favorite_excursions f ON f.excursion_id = e.id AND f.user_id = e.user_id`

func (r *SQLiteExcursionRepo) Create(ctx context.Context, e *domain.Excursion) error {
	query := `INSERT INTO excursions (id, user_id, title, description, duration_minutes,
		distance_km, difficulty, transport_mode, plan_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Title,
		e.Description,
		e.DurationMinutes,
		e.DistanceKm,
		string(e.Difficulty),
		string(e.TransportMode),
		e.PlanJSON,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting excursion: %w", err)
	}
	return nil
}

func (r *SQLiteExcursionRepo) GetByID(ctx context.Context, id string) (*domain.Excursion, error) {
	row := r.db.QueryRowContext(ctx, excursionSelect+` WHERE e.id = ?`, id)
	e, err := scanExcursion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("excursion: %w", ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteExcursionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Excursion, error) {
	rows, err := r.db.QueryContext(ctx, excursionSelect+` WHERE e.user_id = ? ORDER BY e.created_at DESC, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing excursions: %w", err)
	}
	defer rows.Close()
	return scanExcursions(rows)
}

// SetFavorite marks or unmarks an excursion as a favorite of the user.
// Both directions are idempotent. Only the owner's excursions can be added.
func (r *SQLiteExcursionRepo) SetFavorite(ctx context.Context, userID, excursionID string, favorite bool) error {
	if !favorite {
		if _, err := r.db.ExecContext(ctx,
			`DELETE FROM favorite_excursions WHERE user_id = ? AND excursion_id = ?`, userID, excursionID); err != nil {
			return fmt.Errorf("removing favorite: %w", err)
		}
		return nil
	}

	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM excursions WHERE id = ? AND user_id = ?`, excursionID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking excursion: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("excursion: %w", ErrNotFound)
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorite_excursions (user_id, excursion_id, created_at) VALUES (?, ?, ?)`,
		userID, excursionID, formatTime(time.Now())); err != nil {
		return fmt.Errorf("adding favorite: %w", err)
	}
	return nil
}

func (r *SQLiteExcursionRepo) ListFavorites(ctx context.Context, userID string) ([]*domain.Excursion, error) {
	query := `SELECT e.id, e.user_id, e.title, e.description, e.duration_minutes,
		e.distance_km, e.difficulty, e.transport_mode, e.plan_json,
		1, e.created_at, e.updated_at
		FROM favorite_excursions f
		JOIN excursions e ON e.id = f.excursion_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, e.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()
	return scanExcursions(rows)
}

func scanExcursion(row rowScanner) (*domain.Excursion, error) {
	var e domain.Excursion
	var difficulty, mode, createdAt, updatedAt string
	var favorite bool
	err := row.Scan(
		&e.ID, &e.UserID, &e.Title, &e.Description, &e.DurationMinutes,
		&e.DistanceKm, &difficulty, &mode, &e.PlanJSON,
		&favorite, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning excursion: %w", err)
	}
	e.Difficulty = domain.Difficulty(difficulty)
	e.TransportMode = domain.TravelMode(mode)
	e.Favorite = favorite
	if e.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanExcursions(rows *sql.Rows) ([]*domain.Excursion, error) {
	out := []*domain.Excursion{}
	for rows.Next() {
		e, err := scanExcursion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating excursions: %w", err)
	}
	return out, nil
}
