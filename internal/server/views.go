package server

import (
	"time"

	"github.com/alexanderramin/wander/internal/domain"
)

type locationView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Tags        []string  `json:"tags"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func toLocationView(l *domain.CustomLocation) locationView {
	return locationView{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		Tags:        l.Tags,
		CreatedBy:   l.CreatedBy,
		CreatedAt:   l.CreatedAt,
	}
}

type profileView struct {
	MobilityLevel       domain.MobilityLevel `json:"mobility_level,omitempty"`
	FitnessLevel        domain.FitnessLevel  `json:"fitness_level,omitempty"`
	Age                 *int                 `json:"age,omitempty"`
	RiskTolerance       string               `json:"risk_tolerance,omitempty"`
	PreferredActivities []string             `json:"preferred_activities,omitempty"`
	UpdatedAt           *time.Time           `json:"updated_at,omitempty"`
}

func toProfileView(p *domain.UserProfile) profileView {
	v := profileView{
		MobilityLevel:       p.MobilityLevel,
		FitnessLevel:        p.FitnessLevel,
		Age:                 p.Age,
		RiskTolerance:       p.RiskTolerance,
		PreferredActivities: p.PreferredActivities,
	}
	if !p.UpdatedAt.IsZero() {
		v.UpdatedAt = &p.UpdatedAt
	}
	return v
}

type excursionView struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	DurationMinutes int               `json:"duration_minutes"`
	DistanceKm      float64           `json:"distance_km"`
	Difficulty      domain.Difficulty `json:"difficulty"`
	TransportMode   domain.TravelMode `json:"transport_mode"`
	Favorite        bool              `json:"favorite"`
	CreatedAt       time.Time         `json:"created_at"`
}

func toExcursionView(e *domain.Excursion) excursionView {
	return excursionView{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		DurationMinutes: e.DurationMinutes,
		DistanceKm:      e.DistanceKm,
		Difficulty:      e.Difficulty,
		TransportMode:   e.TransportMode,
		Favorite:        e.Favorite,
		CreatedAt:       e.CreatedAt,
	}
}

type sessionView struct {
	ID            string               `json:"id"`
	ExcursionID   string               `json:"excursion_id"`
	Status        domain.SessionStatus `json:"status"`
	Phase         domain.SessionPhase  `json:"phase"`
	CurrentZoneID string               `json:"current_zone_id,omitempty"`
	StartedAt     *time.Time           `json:"started_at,omitempty"`
	EndedAt       *time.Time           `json:"ended_at,omitempty"`
	LastGuidedAt  *time.Time           `json:"last_guided_at,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toSessionView(s *domain.ExcursionSession) sessionView {
	return sessionView{
		ID:            s.ID,
		ExcursionID:   s.ExcursionID,
		Status:        s.Status,
		Phase:         s.Phase,
		CurrentZoneID: s.CurrentZoneID,
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
		LastGuidedAt:  s.LastGuidedAt,
		CreatedAt:     s.CreatedAt,
	}
}

func mapSlice[T, V any](in []*T, fn func(*T) V) []V {
	out := make([]V, 0, len(in))
	for _, item := range in {
		out = append(out, fn(item))
	}
	return out
}
