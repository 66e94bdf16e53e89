package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, excursion_id, user_id, status, phase, current_zone_id,
	started_at, ended_at, last_guided_at, created_at, updated_at`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.ExcursionSession) error {
	query := `INSERT INTO excursion_sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.ExcursionID,
		s.UserID,
		string(s.Status),
		string(s.Phase),
		s.CurrentZoneID,
		formatNullTime(s.StartedAt),
		formatNullTime(s.EndedAt),
		formatNullTime(s.LastGuidedAt),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting excursion session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.ExcursionSession, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM excursion_sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("excursion session: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// ListByUser returns a user's sessions, newest first. An empty status
// matches every status.
func (r *SQLiteSessionRepo) ListByUser(ctx context.Context, userID string, status domain.SessionStatus) ([]*domain.ExcursionSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM excursion_sessions
		WHERE user_id = ? AND (? = '' OR status = ?)
		ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID, string(status), string(status))
	if err != nil {
		return nil, fmt.Errorf("listing excursion sessions: %w", err)
	}
	defer rows.Close()

	out := []*domain.ExcursionSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating excursion sessions: %w", err)
	}
	return out, nil
}

func (r *SQLiteSessionRepo) Update(ctx context.Context, s *domain.ExcursionSession) error {
	query := `UPDATE excursion_sessions
		SET status = ?, phase = ?, current_zone_id = ?, started_at = ?, ended_at = ?,
		    last_guided_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(s.Status),
		string(s.Phase),
		s.CurrentZoneID,
		formatNullTime(s.StartedAt),
		formatNullTime(s.EndedAt),
		formatNullTime(s.LastGuidedAt),
		formatTime(s.UpdatedAt),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating excursion session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("excursion session: %w", ErrNotFound)
	}
	return nil
}

func scanSession(row rowScanner) (*domain.ExcursionSession, error) {
	var s domain.ExcursionSession
	var status, phase, createdAt, updatedAt string
	var startedAt, endedAt, lastGuidedAt sql.NullString
	err := row.Scan(
		&s.ID, &s.ExcursionID, &s.UserID, &status, &phase, &s.CurrentZoneID,
		&startedAt, &endedAt, &lastGuidedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning excursion session: %w", err)
	}
	s.Status = domain.SessionStatus(status)
	s.Phase = domain.SessionPhase(phase)
	s.StartedAt = parseNullTime(startedAt)
	s.EndedAt = parseNullTime(endedAt)
	s.LastGuidedAt = parseNullTime(lastGuidedAt)
	if s.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &s, nil
}
