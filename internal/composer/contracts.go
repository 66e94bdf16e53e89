package composer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/wander/internal/domain"
)

// HistoricalData is the profile context sent alongside a planning request.
type HistoricalData struct {
	Age                 *int                 `json:"age,omitempty"`
	MobilityLevel       domain.MobilityLevel `json:"mobility_level,omitempty"`
	FitnessLevel        domain.FitnessLevel  `json:"fitness_level,omitempty"`
	RiskTolerance       string               `json:"risk_tolerance,omitempty"`
	PreferredActivities []string             `json:"preferred_activities,omitempty"`
}

// PlanContext is the JSON document the composer receives in the PLAN phase.
type PlanContext struct {
	Phase              domain.SessionPhase        `json:"phase"`
	CurrentData        domain.UserContext         `json:"current_data"`
	HistoricalData     HistoricalData             `json:"historical_data"`
	TravelMode         domain.TravelMode          `json:"travel_mode"`
	CandidateLocations []domain.CandidateLocation `json:"candidate_locations"`
	Weather            *domain.WeatherSnapshot    `json:"weather_forecast,omitempty"`
}

type RouteOverview struct {
	Title                string            `json:"title"`
	Description          string            `json:"description"`
	TotalDurationMinutes int               `json:"total_duration_minutes"`
	TotalDistanceKm      float64           `json:"total_distance_km"`
	Difficulty           domain.Difficulty `json:"difficulty"`
	TerrainType          string            `json:"terrain_type"`
	TransportMode        string            `json:"transport_mode"`
}

type Zone struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Location          domain.Coordinates `json:"location"`
	DurationMinutes   int                `json:"duration_minutes"`
	Activities        []string           `json:"activities"`
	NatureElements    []string           `json:"nature_elements"`
	MindfulnessPrompt string             `json:"mindfulness_prompt"`
	HealthBenefits    []string           `json:"health_benefits"`
}

type Waypoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

// PlanOption is one narrative excursion plan.
type PlanOption struct {
	RouteOverview      RouteOverview `json:"route_overview"`
	Zones              []Zone        `json:"zones"`
	Waypoints          []Waypoint    `json:"waypoints"`
	SafetyTips         []string      `json:"safety_tips"`
	PackingSuggestions []string      `json:"packing_suggestions"`
}

type planEnvelope struct {
	PlanOptions []PlanOption `json:"plan_options"`
}

var validDifficulties = map[domain.Difficulty]bool{
	domain.DifficultyEasy: true, domain.DifficultyModerate: true, domain.DifficultyChallenging: true,
}

var validTransportModes = map[string]bool{
	"walking": true, "driving": true, "cycling": true, "both": true,
}

// Validate checks the fields the rest of the application relies on.
func (p PlanOption) Validate() error {
	var errs []string
	ro := p.RouteOverview
	if strings.TrimSpace(ro.Title) == "" {
		errs = append(errs, "route_overview.title is required")
	}
	if ro.TotalDurationMinutes <= 0 {
		errs = append(errs, "route_overview.total_duration_minutes must be positive")
	}
	if ro.TotalDistanceKm < 0 {
		errs = append(errs, "route_overview.total_distance_km must not be negative")
	}
	if !validDifficulties[ro.Difficulty] {
		errs = append(errs, fmt.Sprintf("route_overview.difficulty %q is invalid", ro.Difficulty))
	}
	if ro.TransportMode != "" && !validTransportModes[ro.TransportMode] {
		errs = append(errs, fmt.Sprintf("route_overview.transport_mode %q is invalid", ro.TransportMode))
	}
	seen := map[string]bool{}
	for i, z := range p.Zones {
		if z.ID == "" {
			errs = append(errs, fmt.Sprintf("zones[%d].id is required", i))
		} else if seen[z.ID] {
			errs = append(errs, fmt.Sprintf("zones[%d].id %q is duplicated", i, z.ID))
		}
		seen[z.ID] = true
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validatePlanEnvelope(env planEnvelope) error {
	if len(env.PlanOptions) == 0 {
		return errors.New("plan_options must contain at least one option")
	}
	for i, opt := range env.PlanOptions {
		if err := opt.Validate(); err != nil {
			return fmt.Errorf("plan_options[%d]: %w", i, err)
		}
	}
	return nil
}

// CheckInAnswer is a check-in value already given by the user.
type CheckInAnswer struct {
	ZoneID    string   `json:"zone_id"`
	CheckInID string   `json:"check_in_id"`
	Type      string   `json:"type"`
	Number    *float64 `json:"value_number,omitempty"`
	Text      string   `json:"value_text,omitempty"`
}

// GuideContext is sent in the GUIDE phase.
type GuideContext struct {
	Phase             domain.SessionPhase `json:"phase"`
	SelectedExcursion PlanOption          `json:"selected_excursion"`
	CurrentZoneID     string              `json:"current_zone_id,omitempty"`
	PreviousCheckIns  []CheckInAnswer     `json:"previous_check_ins"`
}

type GuideCheckIn struct {
	ID    string             `json:"id"`
	Type  domain.CheckInType `json:"type"`
	Label string             `json:"label"`
	Min   *float64           `json:"min,omitempty"`
	Max   *float64           `json:"max,omitempty"`
}

type NextAction string

const (
	NextContinue     NextAction = "continue"
	NextEndSegment   NextAction = "end_segment"
	NextEndExcursion NextAction = "end_excursion"
)

// Guidance is live instruction for the current zone.
type Guidance struct {
	TargetZoneID      string         `json:"target_zone_id"`
	ZoneName          string         `json:"zone_name"`
	Summary           string         `json:"summary"`
	Instructions      []string       `json:"instructions"`
	MindfulnessPrompt string         `json:"mindfulness_prompt"`
	CheckIns          []GuideCheckIn `json:"check_ins"`
	NextAction        NextAction     `json:"next_action"`
	SafetyReminders   []string       `json:"safety_reminders"`
}

type guideEnvelope struct {
	Guidance Guidance `json:"guidance"`
}

func validateGuideEnvelope(env guideEnvelope) error {
	g := env.Guidance
	switch g.NextAction {
	case NextContinue, NextEndSegment, NextEndExcursion:
	default:
		return fmt.Errorf("guidance.next_action %q is invalid", g.NextAction)
	}
	if strings.TrimSpace(g.Summary) == "" && len(g.Instructions) == 0 {
		return errors.New("guidance needs a summary or instructions")
	}
	for i, c := range g.CheckIns {
		if c.ID == "" {
			return fmt.Errorf("guidance.check_ins[%d].id is required", i)
		}
		if c.Type != domain.CheckInScale && c.Type != domain.CheckInText {
			return fmt.Errorf("guidance.check_ins[%d].type %q is invalid", i, c.Type)
		}
	}
	return nil
}

// SessionSummary describes a finished excursion for the REFLECT phase.
type SessionSummary struct {
	Title           string          `json:"title"`
	DurationMinutes int             `json:"duration_minutes"`
	ZonesVisited    []string        `json:"zones_visited"`
	CheckIns        []CheckInAnswer `json:"check_ins"`
}

// ReflectContext is sent in the REFLECT phase.
type ReflectContext struct {
	Phase          domain.SessionPhase `json:"phase"`
	SessionSummary SessionSummary      `json:"session_summary"`
}

type ScaleQuestion struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type OpenQuestion struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint,omitempty"`
}

// Reflection is the set of questions asked after an excursion.
type Reflection struct {
	QuantitativeQuestions []ScaleQuestion `json:"quantitative_questions"`
	QualitativeQuestions  []OpenQuestion  `json:"qualitative_questions"`
	ClosingPrompt         string          `json:"closing_prompt"`
}

type reflectEnvelope struct {
	Reflection Reflection `json:"reflection"`
}

func validateReflectEnvelope(env reflectEnvelope) error {
	r := env.Reflection
	if len(r.QuantitativeQuestions)+len(r.QualitativeQuestions) == 0 {
		return errors.New("reflection must contain at least one question")
	}
	for i, q := range r.QuantitativeQuestions {
		if q.ID == "" || q.Max <= q.Min {
			return fmt.Errorf("reflection.quantitative_questions[%d] needs an id and min < max", i)
		}
	}
	for i, q := range r.QualitativeQuestions {
		if q.ID == "" {
			return fmt.Errorf("reflection.qualitative_questions[%d].id is required", i)
		}
	}
	return nil
}
