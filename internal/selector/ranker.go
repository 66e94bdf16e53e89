package selector

import (
	"sort"

	"github.com/alexanderramin/wander/internal/domain"
)

// DefaultTopN is the number of candidates handed to the plan composer.
const DefaultTopN = 10

// Rank scores every candidate and returns the best topN, highest first.
// Equal scores keep their input order. topN <= 0 uses DefaultTopN.
func Rank(candidates []domain.CandidateLocation, uc domain.UserContext, topN int) []domain.ScoredCandidate {
	if topN <= 0 {
		topN = DefaultTopN
	}
	scored := make([]domain.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = ScoreCandidate(c, uc)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// Candidates strips the score breakdown from a ranked list.
func Candidates(ranked []domain.ScoredCandidate) []domain.CandidateLocation {
	out := make([]domain.CandidateLocation, len(ranked))
	for i, sc := range ranked {
		out[i] = sc.Candidate
	}
	return out
}
