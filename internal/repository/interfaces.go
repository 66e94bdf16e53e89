package repository

import (
	"context"

	"github.com/alexanderramin/wander/internal/domain"
)

// CustomLocationReader lists user-submitted spots. It does no spatial
// filtering; callers filter by distance.
type CustomLocationReader interface {
	List(ctx context.Context) ([]*domain.CustomLocation, error)
}

type CustomLocationRepo interface {
	CustomLocationReader
	Create(ctx context.Context, l *domain.CustomLocation) error
	GetByID(ctx context.Context, id string) (*domain.CustomLocation, error)
	ListByCreator(ctx context.Context, userID string) ([]*domain.CustomLocation, error)
	Delete(ctx context.Context, id string) error
}

type UserProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type ExcursionRepo interface {
	Create(ctx context.Context, e *domain.Excursion) error
	GetByID(ctx context.Context, id string) (*domain.Excursion, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Excursion, error)
	SetFavorite(ctx context.Context, userID, excursionID string, favorite bool) error
	ListFavorites(ctx context.Context, userID string) ([]*domain.Excursion, error)
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.ExcursionSession) error
	GetByID(ctx context.Context, id string) (*domain.ExcursionSession, error)
	ListByUser(ctx context.Context, userID string, status domain.SessionStatus) ([]*domain.ExcursionSession, error)
	Update(ctx context.Context, s *domain.ExcursionSession) error
}

type CheckInRepo interface {
	Create(ctx context.Context, c *domain.CheckIn) error
	ListBySession(ctx context.Context, sessionID string) ([]*domain.CheckIn, error)
}
