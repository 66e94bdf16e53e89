package selector

import (
	"fmt"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/geo"
)

var home = domain.Coordinates{Latitude: 40.0, Longitude: -74.0}

type candOption func(*domain.CandidateLocation)

func withTags(tags ...string) candOption {
	return func(c *domain.CandidateLocation) { c.Tags = tags }
}

func withTerrain(t domain.TerrainIntensity) candOption {
	return func(c *domain.CandidateLocation) { c.TerrainIntensity = t }
}

func withSource(s domain.Source) candOption {
	return func(c *domain.CandidateLocation) { c.Source = s }
}

// newCandidate places a walking candidate at the given bearing and distance
// from home, filling distance and travel time the way the gatherer does.
func newCandidate(id string, bearing, meters float64, opts ...candOption) domain.CandidateLocation {
	pos := geo.Destination(home, bearing, meters)
	km := geo.DistanceKm(home, pos)
	c := domain.CandidateLocation{
		ID:                  id,
		Name:                fmt.Sprintf("Spot %s", id),
		Coordinates:         pos,
		DistanceKm:          km,
		TravelMinutesOneWay: TravelMinutes(km, domain.TravelWalking),
		TravelMode:          domain.TravelWalking,
		Source:              domain.SourceOSM,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func ids(cands []domain.CandidateLocation) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

func rankedIDs(ranked []domain.ScoredCandidate) []string {
	return ids(Candidates(ranked))
}

func userContext(energy domain.EnergyLevel, goal domain.Goal, mobility domain.MobilityLevel) domain.UserContext {
	loc := home
	return domain.UserContext{
		Location:             &loc,
		TimeAvailableMinutes: 60,
		EnergyLevel:          energy,
		Mood:                 domain.MoodCalm,
		Goal:                 goal,
		MobilityLevel:        mobility,
	}
}
