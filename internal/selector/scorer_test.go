package selector

import (
	"testing"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTerrainScore_ByEnergy(t *testing.T) {
	cases := []struct {
		energy  domain.EnergyLevel
		fitness domain.FitnessLevel
		terrain domain.TerrainIntensity
		want    float64
	}{
		{domain.EnergyHigh, "", domain.TerrainHilly, 3},
		{domain.EnergyHigh, "", domain.TerrainRolling, 2},
		{domain.EnergyHigh, "", domain.TerrainFlat, 1},
		{domain.EnergyMedium, "", domain.TerrainRolling, 3},
		{domain.EnergyMedium, "", domain.TerrainFlat, 2},
		{domain.EnergyMedium, domain.FitnessAdvanced, domain.TerrainHilly, 1},
		{domain.EnergyMedium, domain.FitnessBeginner, domain.TerrainHilly, -1},
		{domain.EnergyMedium, "", domain.TerrainHilly, -1},
		{domain.EnergyLow, "", domain.TerrainFlat, 3},
		{domain.EnergyLow, "", domain.TerrainRolling, 1},
		{domain.EnergyLow, domain.FitnessAdvanced, domain.TerrainHilly, -2},
	}
	for _, tc := range cases {
		uc := userContext(tc.energy, domain.GoalRelax, domain.MobilityFull)
		uc.FitnessLevel = tc.fitness
		assert.Equal(t, tc.want, TerrainScore(tc.terrain, uc),
			"energy=%s fitness=%s terrain=%s", tc.energy, tc.fitness, tc.terrain)
	}
}

func TestTerrainScore_UnknownIsNeutral(t *testing.T) {
	for _, mobility := range []domain.MobilityLevel{domain.MobilityFull, domain.MobilityLimited, ""} {
		uc := userContext(domain.EnergyHigh, domain.GoalRelax, mobility)
		assert.Equal(t, 0.0, TerrainScore(domain.TerrainUnknown, uc))
	}
}

func TestTerrainScore_RestrictedMobility(t *testing.T) {
	for _, mobility := range []domain.MobilityLevel{domain.MobilityLimited, domain.MobilityAssisted} {
		uc := userContext(domain.EnergyHigh, domain.GoalRelax, mobility)
		assert.Equal(t, DisqualifyingTerrainScore, TerrainScore(domain.TerrainHilly, uc))
		assert.Equal(t, DisqualifyingTerrainScore, TerrainScore(domain.TerrainRolling, uc))
		assert.Equal(t, 1.0, TerrainScore(domain.TerrainFlat, uc))
	}
}

func TestTagScore(t *testing.T) {
	cases := []struct {
		goal domain.Goal
		tags []string
		want float64
	}{
		{domain.GoalRelax, []string{"water", "quiet", "trees"}, 5},
		{domain.GoalRelax, []string{"park", "quiet", "trees"}, 3},
		{domain.GoalRecharge, []string{"trail", "park", "trees"}, 4},
		{domain.GoalRecharge, []string{"water"}, 0},
		{domain.GoalReflect, []string{"quiet", "water"}, 3},
		{domain.GoalConnect, []string{"water", "quiet", "trail", "park"}, 2},
		{domain.GoalConnect, []string{"trail"}, 1},
		{domain.GoalCreativity, []string{"park"}, 1},
		{domain.GoalCreativity, []string{"water", "park"}, 2},
		{domain.Goal("unknown"), []string{"water", "park"}, 0},
		{domain.GoalRelax, nil, 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TagScore(tc.tags, tc.goal), "goal=%s tags=%v", tc.goal, tc.tags)
	}
}

func TestScoreCandidate_Composite(t *testing.T) {
	uc := userContext(domain.EnergyLow, domain.GoalRelax, domain.MobilityFull)
	c := domain.CandidateLocation{
		ID:               "c",
		DistanceKm:       1.5,
		TravelMode:       domain.TravelWalking,
		Tags:             []string{"water", "trees"},
		TerrainIntensity: domain.TerrainFlat,
	}

	sc := ScoreCandidate(c, uc)
	assert.Equal(t, -1.5, sc.DistanceScore)
	assert.Equal(t, 3.0, sc.TerrainScore)
	assert.Equal(t, 3.0, sc.TagScore)
	assert.InDelta(t, 4.5, sc.Score, 1e-9)

	codes := make([]string, 0, len(sc.Reasons))
	for _, r := range sc.Reasons {
		codes = append(codes, r.Code)
	}
	assert.Equal(t, []string{ReasonDistance, ReasonTerrainFit, ReasonGoalAffinity}, codes)
}

func TestScoreCandidate_InaccessibleReason(t *testing.T) {
	uc := userContext(domain.EnergyHigh, domain.GoalRelax, domain.MobilityLimited)
	c := domain.CandidateLocation{DistanceKm: 0.2, TerrainIntensity: domain.TerrainHilly}

	sc := ScoreCandidate(c, uc)
	assert.Equal(t, DisqualifyingTerrainScore, sc.TerrainScore)
	assert.Contains(t, sc.Reasons, domain.ScoreReason{
		Code:    ReasonTerrainInaccessible,
		Message: "hilly terrain is not accessible with limited mobility",
		Delta:   DisqualifyingTerrainScore,
	})
}
