package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `SELECT user_id, mobility_level, fitness_level, age, risk_tolerance,
		preferred_activities, updated_at
		FROM user_profiles WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var p domain.UserProfile
	var mobility, fitness, activities, updatedAt string
	var age sql.NullInt64
	err := row.Scan(
		&p.UserID,
		&mobility,
		&fitness,
		&age,
		&p.RiskTolerance,
		&activities,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}

	p.MobilityLevel = domain.MobilityLevel(mobility)
	p.FitnessLevel = domain.FitnessLevel(fitness)
	if age.Valid {
		a := int(age.Int64)
		p.Age = &a
	}
	if p.PreferredActivities, err = decodeStrings(activities); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	activities, err := encodeStrings(p.PreferredActivities)
	if err != nil {
		return err
	}
	updatedAt := formatTime(time.Now())
	if !p.UpdatedAt.IsZero() {
		updatedAt = formatTime(p.UpdatedAt)
	}

	query := `INSERT OR REPLACE INTO user_profiles (user_id, mobility_level, fitness_level,
		age, risk_tolerance, preferred_activities, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.UserID,
		string(p.MobilityLevel),
		string(p.FitnessLevel),
		nullable(p.Age),
		p.RiskTolerance,
		activities,
		updatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
