package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/events"
	"github.com/alexanderramin/wander/internal/repository"
	"github.com/google/uuid"
)

// ErrInvalidLocation wraps validation failures for submitted spots.
var ErrInvalidLocation = errors.New("invalid location")

type locationService struct {
	locations repository.CustomLocationRepo
	publisher events.Publisher
	observer  UseCaseObserver
}

func NewLocationService(locations repository.CustomLocationRepo, publisher events.Publisher, observers ...UseCaseObserver) LocationService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &locationService{
		locations: locations,
		publisher: publisher,
		observer:  combineObservers(observers),
	}
}

func (s *locationService) Add(ctx context.Context, userID string, in LocationInput) (loc *domain.CustomLocation, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "add-location",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidLocation)
	}
	pos := domain.Coordinates{Latitude: in.Latitude, Longitude: in.Longitude}
	if !pos.Valid() {
		return nil, fmt.Errorf("%w: %.6f,%.6f is not a valid coordinate", ErrInvalidLocation, in.Latitude, in.Longitude)
	}

	loc = &domain.CustomLocation{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Tags:        domain.NormalizeTags(in.Tags),
		CreatedBy:   userID,
		CreatedAt:   startedAt.Truncate(time.Second),
	}
	if err = s.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	fields["location_id"] = loc.ID

	_ = s.publisher.Publish(ctx, events.SubjectLocationCreated, userID, map[string]any{
		"id":        loc.ID,
		"name":      loc.Name,
		"latitude":  loc.Latitude,
		"longitude": loc.Longitude,
		"tags":      loc.Tags,
	})
	return loc, nil
}

func (s *locationService) List(ctx context.Context) ([]*domain.CustomLocation, error) {
	return s.locations.List(ctx)
}

func (s *locationService) ListMine(ctx context.Context, userID string) ([]*domain.CustomLocation, error) {
	return s.locations.ListByCreator(ctx, userID)
}
