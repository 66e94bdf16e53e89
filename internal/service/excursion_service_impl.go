package service

import (
	"context"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/repository"
)

type excursionService struct {
	excursions repository.ExcursionRepo
}

func NewExcursionService(excursions repository.ExcursionRepo) ExcursionService {
	return &excursionService{excursions: excursions}
}

func (s *excursionService) List(ctx context.Context, userID string) ([]*domain.Excursion, error) {
	return s.excursions.ListByUser(ctx, userID)
}

func (s *excursionService) SetFavorite(ctx context.Context, userID, excursionID string, favorite bool) error {
	return s.excursions.SetFavorite(ctx, userID, excursionID, favorite)
}

func (s *excursionService) ListFavorites(ctx context.Context, userID string) ([]*domain.Excursion, error) {
	return s.excursions.ListFavorites(ctx, userID)
}
