package service

import (
	"context"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/domain"
)

type PlanService interface {
	Plan(ctx context.Context, req contract.PlanRequest) (*contract.PlanResponse, error)
}

// LocationInput is a user-submitted nature spot before validation.
type LocationInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Tags        []string `json:"tags"`
}

type LocationService interface {
	Add(ctx context.Context, userID string, in LocationInput) (*domain.CustomLocation, error)
	List(ctx context.Context) ([]*domain.CustomLocation, error)
	ListMine(ctx context.Context, userID string) ([]*domain.CustomLocation, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	Update(ctx context.Context, p *domain.UserProfile) error
}

type SessionService interface {
	Choose(ctx context.Context, req contract.ChooseRequest) (*domain.ExcursionSession, error)
	Get(ctx context.Context, sessionID string) (*domain.ExcursionSession, error)
	Start(ctx context.Context, sessionID string) (*domain.ExcursionSession, error)
	Guide(ctx context.Context, req contract.GuideRequest) (*composer.Guidance, error)
	Reflect(ctx context.Context, sessionID string) (*composer.Reflection, error)
	SubmitReflection(ctx context.Context, sessionID string, answers []contract.CheckInInput) (*domain.ExcursionSession, error)
}

type ExcursionService interface {
	List(ctx context.Context, userID string) ([]*domain.Excursion, error)
	SetFavorite(ctx context.Context, userID, excursionID string, favorite bool) error
	ListFavorites(ctx context.Context, userID string) ([]*domain.Excursion, error)
}
