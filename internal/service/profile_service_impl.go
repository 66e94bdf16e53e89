package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/repository"
)

// ErrInvalidProfile wraps validation failures for profile updates.
var ErrInvalidProfile = errors.New("invalid profile")

type profileService struct {
	profiles repository.UserProfileRepo
}

func NewProfileService(profiles repository.UserProfileRepo) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	return s.profiles.Get(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, p *domain.UserProfile) error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}
	if p.MobilityLevel != "" && !domain.ValidMobilityLevels[p.MobilityLevel] {
		return fmt.Errorf("%w: mobility_level %q", ErrInvalidProfile, p.MobilityLevel)
	}
	if p.FitnessLevel != "" && !domain.ValidFitnessLevels[p.FitnessLevel] {
		return fmt.Errorf("%w: fitness_level %q", ErrInvalidProfile, p.FitnessLevel)
	}
	if p.Age != nil && (*p.Age < 0 || *p.Age > 130) {
		return fmt.Errorf("%w: age %d", ErrInvalidProfile, *p.Age)
	}
	p.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.profiles.Upsert(ctx, p)
}
