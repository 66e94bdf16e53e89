package testutil

import (
	"encoding/json"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/google/uuid"
)

// Custom location options
type LocationOption func(*domain.CustomLocation)

func WithTags(tags ...string) LocationOption {
	return func(l *domain.CustomLocation) {
		l.Tags = tags
	}
}

func WithCreatedBy(userID string) LocationOption {
	return func(l *domain.CustomLocation) {
		l.CreatedBy = userID
	}
}

func WithPosition(lat, lon float64) LocationOption {
	return func(l *domain.CustomLocation) {
		l.Latitude = lat
		l.Longitude = lon
	}
}

func NewTestCustomLocation(name string, opts ...LocationOption) *domain.CustomLocation {
	l := &domain.CustomLocation{
		ID:        uuid.New().String(),
		Name:      name,
		Latitude:  51.5007,
		Longitude: -0.1246,
		Tags:      []string{domain.TagPark},
		CreatedBy: "test-user",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Excursion options
type ExcursionOption func(*domain.Excursion)

func WithDifficulty(d domain.Difficulty) ExcursionOption {
	return func(e *domain.Excursion) {
		e.Difficulty = d
	}
}

func WithDuration(minutes int) ExcursionOption {
	return func(e *domain.Excursion) {
		e.DurationMinutes = minutes
	}
}

func WithPlan(plan any) ExcursionOption {
	return func(e *domain.Excursion) {
		data, _ := json.Marshal(plan)
		e.PlanJSON = string(data)
	}
}

func NewTestExcursion(userID, title string, opts ...ExcursionOption) *domain.Excursion {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.Excursion{
		ID:              uuid.New().String(),
		UserID:          userID,
		Title:           title,
		DurationMinutes: 45,
		DistanceKm:      1.5,
		Difficulty:      domain.DifficultyEasy,
		TransportMode:   domain.TravelWalking,
		PlanJSON:        `{}`,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session options
type SessionOption func(*domain.ExcursionSession)

func WithStatus(s domain.SessionStatus) SessionOption {
	return func(es *domain.ExcursionSession) {
		es.Status = s
	}
}

func WithPhase(p domain.SessionPhase) SessionOption {
	return func(es *domain.ExcursionSession) {
		es.Phase = p
	}
}

func NewTestSession(excursion *domain.Excursion, opts ...SessionOption) *domain.ExcursionSession {
	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.ExcursionSession{
		ID:          uuid.New().String(),
		ExcursionID: excursion.ID,
		UserID:      excursion.UserID,
		Status:      domain.SessionPlanned,
		Phase:       domain.PhasePlan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewTestScaleCheckIn(sessionID, zoneID, checkInID string, value float64) *domain.CheckIn {
	return &domain.CheckIn{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		ZoneID:      zoneID,
		CheckInID:   checkInID,
		Type:        domain.CheckInScale,
		ValueNumber: &value,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func NewTestTextCheckIn(sessionID, zoneID, checkInID, text string) *domain.CheckIn {
	return &domain.CheckIn{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		ZoneID:    zoneID,
		CheckInID: checkInID,
		Type:      domain.CheckInText,
		ValueText: text,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
