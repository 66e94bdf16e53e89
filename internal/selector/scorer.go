package selector

import (
	"fmt"

	"github.com/alexanderramin/wander/internal/domain"
)

// DisqualifyingTerrainScore keeps an unsuitable candidate visible for
// debugging while making sure it never reaches the top of the ranking.
const DisqualifyingTerrainScore = -1000.0

const (
	ReasonDistance            = "DISTANCE"
	ReasonTerrainFit          = "TERRAIN_FIT"
	ReasonTerrainInaccessible = "TERRAIN_INACCESSIBLE"
	ReasonGoalAffinity        = "GOAL_AFFINITY"
)

// DistanceScore is a linear penalty: closer is strictly better.
func DistanceScore(c domain.CandidateLocation) float64 {
	return -c.DistanceKm
}

var terrainByEnergy = map[domain.EnergyLevel]map[domain.TerrainIntensity]float64{
	domain.EnergyHigh: {
		domain.TerrainHilly:   3,
		domain.TerrainRolling: 2,
		domain.TerrainFlat:    1,
	},
	domain.EnergyMedium: {
		domain.TerrainRolling: 3,
		domain.TerrainFlat:    2,
		domain.TerrainHilly:   -1,
	},
	domain.EnergyLow: {
		domain.TerrainFlat:    3,
		domain.TerrainRolling: 1,
		domain.TerrainHilly:   -2,
	},
}

// TerrainScore rates how well a candidate's terrain suits the user.
// Unknown terrain is neutral.
func TerrainScore(terrain domain.TerrainIntensity, uc domain.UserContext) float64 {
	if terrain == domain.TerrainUnknown {
		return 0
	}
	if uc.MobilityLevel.Restricted() && terrain != domain.TerrainFlat {
		return DisqualifyingTerrainScore
	}
	if uc.EnergyLevel == domain.EnergyMedium && terrain == domain.TerrainHilly && uc.FitnessLevel == domain.FitnessAdvanced {
		return 1
	}
	return terrainByEnergy[uc.EnergyLevel][terrain]
}

type tagBonus struct {
	tags  []string
	bonus float64
}

// goalBonuses lists the additive bonuses per goal. A rule with several tags
// pays once if any of them is present.
var goalBonuses = map[domain.Goal][]tagBonus{
	domain.GoalRelax: {
		{[]string{domain.TagWater}, 2},
		{[]string{domain.TagQuiet}, 2},
		{[]string{domain.TagTrees}, 1},
	},
	domain.GoalRecharge: {
		{[]string{domain.TagTrail}, 2},
		{[]string{domain.TagPark}, 1},
		{[]string{domain.TagTrees}, 1},
	},
	domain.GoalReflect: {
		{[]string{domain.TagQuiet}, 2},
		{[]string{domain.TagWater}, 1},
		{[]string{domain.TagTrees}, 1},
	},
	domain.GoalConnect: {
		{[]string{domain.TagWater, domain.TagQuiet, domain.TagTrail}, 1},
		{[]string{domain.TagPark}, 1},
	},
	domain.GoalCreativity: {
		{[]string{domain.TagWater, domain.TagQuiet, domain.TagTrail}, 1},
		{[]string{domain.TagPark}, 1},
	},
}

// TagScore sums the goal bonuses earned by a tag set.
func TagScore(tags []string, goal domain.Goal) float64 {
	present := make(map[string]bool, len(tags))
	for _, t := range tags {
		present[t] = true
	}
	var score float64
	for _, rule := range goalBonuses[goal] {
		for _, t := range rule.tags {
			if present[t] {
				score += rule.bonus
				break
			}
		}
	}
	return score
}

// ScoreCandidate computes the composite score and its breakdown.
func ScoreCandidate(c domain.CandidateLocation, uc domain.UserContext) domain.ScoredCandidate {
	sc := domain.ScoredCandidate{
		Candidate:     c,
		DistanceScore: DistanceScore(c),
		TerrainScore:  TerrainScore(c.TerrainIntensity, uc),
		TagScore:      TagScore(c.Tags, uc.Goal),
	}
	sc.Score = sc.DistanceScore + sc.TerrainScore + sc.TagScore

	sc.Reasons = append(sc.Reasons, domain.ScoreReason{
		Code:    ReasonDistance,
		Message: fmt.Sprintf("%.2f km away by %s", c.DistanceKm, c.TravelMode),
		Delta:   sc.DistanceScore,
	})
	switch {
	case sc.TerrainScore == DisqualifyingTerrainScore:
		sc.Reasons = append(sc.Reasons, domain.ScoreReason{
			Code:    ReasonTerrainInaccessible,
			Message: fmt.Sprintf("%s terrain is not accessible with %s mobility", c.TerrainIntensity, uc.MobilityLevel),
			Delta:   sc.TerrainScore,
		})
	case sc.TerrainScore != 0:
		sc.Reasons = append(sc.Reasons, domain.ScoreReason{
			Code:    ReasonTerrainFit,
			Message: fmt.Sprintf("%s terrain for %s energy", c.TerrainIntensity, uc.EnergyLevel),
			Delta:   sc.TerrainScore,
		})
	}
	if sc.TagScore != 0 {
		sc.Reasons = append(sc.Reasons, domain.ScoreReason{
			Code:    ReasonGoalAffinity,
			Message: fmt.Sprintf("features suit a %s outing", uc.Goal),
			Delta:   sc.TagScore,
		})
	}
	return sc
}
