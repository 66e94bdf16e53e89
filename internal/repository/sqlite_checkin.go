package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/domain"
)

// SQLiteCheckInRepo implements CheckInRepo using a SQLite database.
type SQLiteCheckInRepo struct {
	db db.DBTX
}

func NewSQLiteCheckInRepo(conn db.DBTX) *SQLiteCheckInRepo {
	return &SQLiteCheckInRepo{db: conn}
}

func (r *SQLiteCheckInRepo) Create(ctx context.Context, c *domain.CheckIn) error {
	query := `INSERT INTO excursion_check_ins (id, session_id, zone_id, check_in_id, type,
		value_number, value_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.SessionID,
		c.ZoneID,
		c.CheckInID,
		string(c.Type),
		nullable(c.ValueNumber),
		c.ValueText,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting check-in: %w", err)
	}
	return nil
}

// ListBySession returns check-ins in the order they were recorded.
func (r *SQLiteCheckInRepo) ListBySession(ctx context.Context, sessionID string) ([]*domain.CheckIn, error) {
	query := `SELECT id, session_id, zone_id, check_in_id, type, value_number, value_text, created_at
		FROM excursion_check_ins WHERE session_id = ? ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing check-ins: %w", err)
	}
	defer rows.Close()

	out := []*domain.CheckIn{}
	for rows.Next() {
		var c domain.CheckIn
		var typ, createdAt string
		var number sql.NullFloat64
		if err := rows.Scan(&c.ID, &c.SessionID, &c.ZoneID, &c.CheckInID, &typ, &number, &c.ValueText, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning check-in: %w", err)
		}
		c.Type = domain.CheckInType(typ)
		if number.Valid {
			v := number.Float64
			c.ValueNumber = &v
		}
		if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating check-ins: %w", err)
	}
	return out, nil
}
