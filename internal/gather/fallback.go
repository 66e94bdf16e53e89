package gather

import (
	"fmt"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/geo"
	"github.com/alexanderramin/wander/internal/selector"
	"github.com/alexanderramin/wander/internal/source"
)

// FallbackConfig controls synthetic placeholder candidates. They are meant
// for development and testing and stay off unless explicitly enabled.
type FallbackConfig struct {
	Enabled       bool
	MinCandidates int
	// RadiusFractions places one placeholder per entry at that fraction of
	// the search radius, spread evenly around the user.
	RadiusFractions []float64
}

func DefaultFallbackConfig() FallbackConfig {
	return FallbackConfig{
		Enabled:         false,
		MinCandidates:   3,
		RadiusFractions: []float64{0.3, 0.5, 0.7},
	}
}

var goalFallbackTags = map[domain.Goal][]string{
	domain.GoalRelax:      {domain.TagPark, domain.TagQuiet, domain.TagWater},
	domain.GoalRecharge:   {domain.TagPark, domain.TagTrail},
	domain.GoalReflect:    {domain.TagQuiet, domain.TagTrees},
	domain.GoalConnect:    {domain.TagPark},
	domain.GoalCreativity: {domain.TagPark, domain.TagTrees},
}

// SyntheticRing builds placeholder candidates arranged in a ring around the
// centre, tagged for the requested goal.
func SyntheticRing(center domain.Coordinates, plan selector.SearchPlan, goal domain.Goal, cfg FallbackConfig) []domain.CandidateLocation {
	fractions := cfg.RadiusFractions
	if len(fractions) == 0 {
		fractions = DefaultFallbackConfig().RadiusFractions
	}
	step := 360.0 / float64(len(fractions))

	out := make([]domain.CandidateLocation, 0, len(fractions))
	for i, f := range fractions {
		pos := geo.Destination(center, float64(i)*step, plan.RadiusMeters*f)
		rec := source.Record{
			SourceID:    fmt.Sprintf("%d", i+1),
			Name:        fmt.Sprintf("Nearby Green Space %d", i+1),
			Description: "Placeholder spot generated when no mapped places were found nearby.",
			Coordinates: pos,
			Tags:        goalFallbackTags[goal],
		}
		out = append(out, Normalize(domain.SourceSynthetic, rec, center, plan.Mode))
	}
	return out
}
