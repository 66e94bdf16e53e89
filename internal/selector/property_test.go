package selector

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propertyTrials = 200

var (
	allEnergy   = []domain.EnergyLevel{domain.EnergyLow, domain.EnergyMedium, domain.EnergyHigh}
	allMobility = []domain.MobilityLevel{"", domain.MobilityFull, domain.MobilityLimited, domain.MobilityAssisted}
	allFitness  = []domain.FitnessLevel{"", domain.FitnessBeginner, domain.FitnessIntermediate, domain.FitnessAdvanced}
	allGoals    = []domain.Goal{domain.GoalRelax, domain.GoalRecharge, domain.GoalReflect, domain.GoalConnect, domain.GoalCreativity}
	allTerrain  = []domain.TerrainIntensity{domain.TerrainUnknown, domain.TerrainFlat, domain.TerrainRolling, domain.TerrainHilly}
	allSources  = []domain.Source{domain.SourceUserCustom, domain.SourceOSM, domain.SourceMapAPI}
	allTags     = []string{"park", "water", "trees", "trail", "quiet", "benches", "viewpoint"}
)

func randomTags(rng *rand.Rand) []string {
	var tags []string
	for _, t := range allTags {
		if rng.Intn(2) == 0 {
			tags = append(tags, t)
		}
	}
	return tags
}

func randomCandidates(rng *rand.Rand, n int) []domain.CandidateLocation {
	out := make([]domain.CandidateLocation, n)
	for i := range out {
		// Cluster some points so duplicates actually occur.
		meters := float64(rng.Intn(40)) * 25
		out[i] = newCandidate(fmt.Sprintf("c%d", i), float64(rng.Intn(8))*45, meters,
			withSource(allSources[rng.Intn(len(allSources))]),
			withTags(randomTags(rng)...),
			withTerrain(allTerrain[rng.Intn(len(allTerrain))]))
	}
	return out
}

func TestProperty_ShortOutingsAlwaysWalk(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < propertyTrials; trial++ {
		minutes := 1 + rng.Intn(20)
		energy := allEnergy[rng.Intn(len(allEnergy))]
		mobility := allMobility[rng.Intn(len(allMobility))]
		assert.Equal(t, domain.TravelWalking, SelectTravelMode(minutes, energy, mobility),
			"trial %d: minutes=%d energy=%s mobility=%s", trial, minutes, energy, mobility)
	}
}

func TestProperty_RestrictedMobilityAlwaysWalks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < propertyTrials; trial++ {
		minutes := 1 + rng.Intn(300)
		energy := allEnergy[rng.Intn(len(allEnergy))]
		for _, mobility := range []domain.MobilityLevel{domain.MobilityLimited, domain.MobilityAssisted} {
			assert.Equal(t, domain.TravelWalking, SelectTravelMode(minutes, energy, mobility),
				"trial %d: minutes=%d energy=%s mobility=%s", trial, minutes, energy, mobility)
		}
	}
}

func TestProperty_RadiusMonotoneWithFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, mode := range []domain.TravelMode{domain.TravelWalking, domain.TravelDriving} {
		prevBudget := 0.0
		prevRadius := ComputeSearchRadiusMeters(mode, prevBudget)
		for trial := 0; trial < propertyTrials; trial++ {
			budget := prevBudget + rng.Float64()*3
			radius := ComputeSearchRadiusMeters(mode, budget)
			assert.GreaterOrEqual(t, radius, prevRadius, "mode=%s budget=%.3f", mode, budget)
			assert.GreaterOrEqual(t, radius, MinSearchRadiusMeters)
			prevBudget, prevRadius = budget, radius
		}
	}
}

func TestProperty_DedupeIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < propertyTrials; trial++ {
		cands := randomCandidates(rng, 1+rng.Intn(30))
		once := Dedupe(cands, DedupeOptions{})
		twice := Dedupe(once, DedupeOptions{})
		require.Equal(t, ids(once), ids(twice), "trial %d", trial)

		again := Dedupe(cands, DedupeOptions{})
		require.Equal(t, ids(once), ids(again), "trial %d: not deterministic", trial)
	}
}

func TestProperty_BudgetFilterMonotone(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < propertyTrials; trial++ {
		cands := make([]domain.CandidateLocation, 20)
		for i := range cands {
			cands[i] = domain.CandidateLocation{ID: fmt.Sprintf("c%d", i), TravelMinutesOneWay: rng.Float64() * 60}
		}
		minutes := 1 + rng.Intn(120)
		more := minutes + rng.Intn(60)

		retained := FilterByBudget(cands, minutes)
		widened := ids(FilterByBudget(cands, more))
		for _, c := range retained {
			assert.Contains(t, widened, c.ID, "trial %d: %s dropped when budget grew %d->%d", trial, c.ID, minutes, more)
		}
	}
}

// Within realistic ranges (distance under 100 km, tag bonus at most 5) a
// non-flat spot for a restricted user always scores below any flat spot.
func TestProperty_RestrictedTerrainBelowAnyFlat(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < propertyTrials; trial++ {
		uc := userContext(allEnergy[rng.Intn(3)], allGoals[rng.Intn(len(allGoals))],
			[]domain.MobilityLevel{domain.MobilityLimited, domain.MobilityAssisted}[rng.Intn(2)])
		uc.FitnessLevel = allFitness[rng.Intn(len(allFitness))]

		rough := domain.CandidateLocation{
			DistanceKm:       rng.Float64() * 100,
			Tags:             randomTags(rng),
			TerrainIntensity: []domain.TerrainIntensity{domain.TerrainRolling, domain.TerrainHilly}[rng.Intn(2)],
		}
		flat := domain.CandidateLocation{
			DistanceKm:       rng.Float64() * 100,
			Tags:             randomTags(rng),
			TerrainIntensity: domain.TerrainFlat,
		}
		assert.Less(t, ScoreCandidate(rough, uc).Score, ScoreCandidate(flat, uc).Score, "trial %d", trial)
	}
}

func TestProperty_RankStableForEqualScores(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < propertyTrials; trial++ {
		uc := userContext(allEnergy[rng.Intn(3)], allGoals[rng.Intn(len(allGoals))], domain.MobilityFull)
		n := 2 + rng.Intn(9)
		cands := make([]domain.CandidateLocation, n)
		for i := range cands {
			// Only a few distinct distances so ties are common.
			cands[i] = domain.CandidateLocation{ID: fmt.Sprintf("c%d", i), DistanceKm: float64(rng.Intn(3))}
		}
		ranked := Rank(cands, uc, n)
		pos := make(map[string]int, n)
		for i, c := range cands {
			pos[c.ID] = i
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i-1].Score == ranked[i].Score {
				assert.Less(t, pos[ranked[i-1].Candidate.ID], pos[ranked[i].Candidate.ID], "trial %d", trial)
			}
		}
	}
}
