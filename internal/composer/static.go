package composer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/wander/internal/domain"
)

// MaxStaticOptions caps the number of plans the static composer returns.
const MaxStaticOptions = 3

type staticComposer struct{}

// NewStatic creates a Composer that builds plans directly from the ranked
// candidates. It is used when no language model is configured.
func NewStatic() Composer {
	return staticComposer{}
}

var terrainDifficulty = map[domain.TerrainIntensity]domain.Difficulty{
	domain.TerrainUnknown: domain.DifficultyEasy,
	domain.TerrainFlat:    domain.DifficultyEasy,
	domain.TerrainRolling: domain.DifficultyModerate,
	domain.TerrainHilly:   domain.DifficultyChallenging,
}

var goalActivities = map[domain.Goal][]string{
	domain.GoalRelax:      {"slow walk", "sit and listen"},
	domain.GoalRecharge:   {"brisk walk", "deep breathing"},
	domain.GoalReflect:    {"quiet sitting", "journaling"},
	domain.GoalConnect:    {"shared walk", "conversation"},
	domain.GoalCreativity: {"sketching", "photography"},
}

var goalPrompts = map[domain.Goal]string{
	domain.GoalRelax:      "Let your shoulders drop and notice five sounds around you.",
	domain.GoalRecharge:   "Match your breathing to your steps for a minute.",
	domain.GoalReflect:    "What has been on your mind today? Let it pass like a cloud.",
	domain.GoalConnect:    "Share one thing you notice with someone near you.",
	domain.GoalCreativity: "Find a pattern in nature you have never looked at closely.",
}

func (staticComposer) Plan(_ context.Context, pc PlanContext) ([]PlanOption, error) {
	if len(pc.CandidateLocations) == 0 {
		return nil, errors.New("compose plan: no candidate locations")
	}
	uc := pc.CurrentData

	n := len(pc.CandidateLocations)
	if n > MaxStaticOptions {
		n = MaxStaticOptions
	}

	options := make([]PlanOption, 0, n)
	for _, c := range pc.CandidateLocations[:n] {
		travel := int(math.Ceil(c.TravelMinutesOneWay * 2))
		onSite := uc.TimeAvailableMinutes - travel
		if onSite < 5 {
			onSite = 5
		}
		options = append(options, PlanOption{
			RouteOverview: RouteOverview{
				Title:                fmt.Sprintf("%s by %s", c.Name, strings.ToLower(string(c.TravelMode))),
				Description:          c.Description,
				TotalDurationMinutes: travel + onSite,
				TotalDistanceKm:      math.Round(c.DistanceKm*2*100) / 100,
				Difficulty:           terrainDifficulty[c.TerrainIntensity],
				TerrainType:          terrainLabel(c.TerrainIntensity),
				TransportMode:        string(c.TravelMode),
			},
			Zones: []Zone{{
				ID:                "zone-1",
				Name:              c.Name,
				Description:       c.Description,
				Location:          c.Coordinates,
				DurationMinutes:   onSite,
				Activities:        goalActivities[uc.Goal],
				NatureElements:    c.Tags,
				MindfulnessPrompt: goalPrompts[uc.Goal],
			}},
			Waypoints: []Waypoint{{
				Latitude:  c.Coordinates.Latitude,
				Longitude: c.Coordinates.Longitude,
				Name:      c.Name,
			}},
			SafetyTips:         safetyTips(c, pc.Weather),
			PackingSuggestions: []string{"water", "comfortable shoes"},
		})
	}
	return options, nil
}

func terrainLabel(t domain.TerrainIntensity) string {
	if t == domain.TerrainUnknown {
		return "mixed"
	}
	return string(t)
}

func safetyTips(c domain.CandidateLocation, w *domain.WeatherSnapshot) []string {
	tips := []string{"Let someone know where you are going."}
	if c.HasTag(domain.TagWater) {
		tips = append(tips, "Keep a safe distance from the water's edge.")
	}
	if w != nil && w.Current.Condition != "" {
		tips = append(tips, fmt.Sprintf("Current conditions: %s, %.0f°C.", w.Current.Description, w.Current.TemperatureC))
	}
	return tips
}

func (staticComposer) Guide(_ context.Context, gc GuideContext) (*Guidance, error) {
	zones := gc.SelectedExcursion.Zones
	if len(zones) == 0 {
		return nil, errors.New("compose guidance: excursion has no zones")
	}

	idx := 0
	for i, z := range zones {
		if z.ID == gc.CurrentZoneID {
			idx = i
			break
		}
	}
	zone := zones[idx]

	next := NextContinue
	if idx == len(zones)-1 {
		next = NextEndExcursion
	}

	minScale, maxScale := 1.0, 5.0
	return &Guidance{
		TargetZoneID:      zone.ID,
		ZoneName:          zone.Name,
		Summary:           zone.Description,
		Instructions:      append([]string{fmt.Sprintf("Spend about %d minutes at %s.", zone.DurationMinutes, zone.Name)}, zone.Activities...),
		MindfulnessPrompt: zone.MindfulnessPrompt,
		CheckIns: []GuideCheckIn{{
			ID:    "calm",
			Type:  domain.CheckInScale,
			Label: "How calm do you feel right now?",
			Min:   &minScale,
			Max:   &maxScale,
		}},
		NextAction:      next,
		SafetyReminders: gc.SelectedExcursion.SafetyTips,
	}, nil
}

func (staticComposer) Reflect(_ context.Context, rc ReflectContext) (*Reflection, error) {
	return &Reflection{
		QuantitativeQuestions: []ScaleQuestion{
			{ID: "stress_after", Label: "How stressed do you feel now?", Min: 1, Max: 10},
			{ID: "energy_after", Label: "How is your energy now?", Min: 1, Max: 10},
		},
		QualitativeQuestions: []OpenQuestion{
			{ID: "highlight", Label: fmt.Sprintf("What stood out to you during %s?", rc.SessionSummary.Title)},
		},
		ClosingPrompt: "Take one breath to notice how you feel before moving on.",
	}, nil
}
