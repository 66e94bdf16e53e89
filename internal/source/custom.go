package source

import (
	"context"
	"fmt"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/geo"
)

// CustomLocationLister returns every user-submitted spot. The store does no
// spatial filtering.
type CustomLocationLister interface {
	List(ctx context.Context) ([]*domain.CustomLocation, error)
}

// CustomSource serves user-submitted spots within the search radius.
type CustomSource struct {
	store CustomLocationLister
}

func NewCustomSource(store CustomLocationLister) *CustomSource {
	return &CustomSource{store: store}
}

func (s *CustomSource) Kind() domain.Source { return domain.SourceUserCustom }

func (s *CustomSource) Fetch(ctx context.Context, q Query) ([]Record, error) {
	locs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing custom locations: %w", err)
	}

	var out []Record
	for _, l := range locs {
		pos := l.Coordinates()
		if !pos.Valid() {
			continue
		}
		if geo.DistanceMeters(q.Center, pos) > q.RadiusMeters {
			continue
		}
		out = append(out, Record{
			SourceID:    l.ID,
			Name:        l.Name,
			Description: l.Description,
			Coordinates: pos,
			Tags:        domain.NormalizeTags(l.Tags),
		})
	}
	return out, nil
}
