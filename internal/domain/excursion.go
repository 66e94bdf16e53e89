package domain

import (
	"fmt"
	"time"
)

// Excursion is a plan option the user chose to keep.
type Excursion struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	DurationMinutes int
	DistanceKm      float64
	Difficulty      Difficulty
	TransportMode   TravelMode
	PlanJSON        string
	Favorite        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExcursionSession tracks one run of an excursion through its phases.
type ExcursionSession struct {
	ID            string
	ExcursionID   string
	UserID        string
	Status        SessionStatus
	Phase         SessionPhase
	CurrentZoneID string
	StartedAt     *time.Time
	EndedAt       *time.Time
	LastGuidedAt  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ReflectionZoneID is the zone id used for answers given after the excursion.
const ReflectionZoneID = "reflection"

// CheckIn is a single scale or text answer recorded during a session.
type CheckIn struct {
	ID          string
	SessionID   string
	ZoneID      string
	CheckInID   string
	Type        CheckInType
	ValueNumber *float64
	ValueText   string
	CreatedAt   time.Time
}

// Validate checks that the value matches the check-in type.
func (c CheckIn) Validate() error {
	switch c.Type {
	case CheckInScale:
		if c.ValueNumber == nil {
			return fmt.Errorf("check-in %s: scale value is required", c.CheckInID)
		}
	case CheckInText:
		if c.ValueText == "" {
			return fmt.Errorf("check-in %s: text value is required", c.CheckInID)
		}
	default:
		return fmt.Errorf("check-in %s: unknown type %q", c.CheckInID, c.Type)
	}
	return nil
}

var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionPlanned: {SessionActive, SessionAbandoned},
	SessionActive:  {SessionCompleted, SessionAbandoned},
}

// CanTransition reports whether a session may move from one status to another.
func CanTransition(from, to SessionStatus) bool {
	for _, s := range sessionTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Start moves a planned session into the guide phase.
func (s *ExcursionSession) Start(now time.Time) error {
	if !CanTransition(s.Status, SessionActive) {
		return fmt.Errorf("cannot start session in status %s", s.Status)
	}
	s.Status = SessionActive
	s.Phase = PhaseGuide
	s.StartedAt = &now
	s.UpdatedAt = now
	return nil
}

// BeginReflection moves an active session into the reflect phase.
func (s *ExcursionSession) BeginReflection(now time.Time) error {
	if s.Status != SessionActive {
		return fmt.Errorf("cannot reflect on session in status %s", s.Status)
	}
	s.Phase = PhaseReflect
	s.UpdatedAt = now
	return nil
}

// Complete closes an active session.
func (s *ExcursionSession) Complete(now time.Time) error {
	if !CanTransition(s.Status, SessionCompleted) {
		return fmt.Errorf("cannot complete session in status %s", s.Status)
	}
	s.Status = SessionCompleted
	s.Phase = PhaseReflect
	s.EndedAt = &now
	s.UpdatedAt = now
	return nil
}
