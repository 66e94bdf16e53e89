package selector

import "github.com/alexanderramin/wander/internal/domain"

// RoundTripShare is the largest share of the total time a round trip may
// take; the rest is reserved for time on site.
const RoundTripShare = 0.9

// WithinBudget reports whether a round trip fits in the time available after
// reserving on-site time.
func WithinBudget(c domain.CandidateLocation, timeAvailableMinutes int) bool {
	return c.TravelMinutesOneWay*2 <= float64(timeAvailableMinutes)*RoundTripShare
}

// FilterByBudget keeps the candidates whose round trip fits the budget.
func FilterByBudget(candidates []domain.CandidateLocation, timeAvailableMinutes int) []domain.CandidateLocation {
	out := make([]domain.CandidateLocation, 0, len(candidates))
	for _, c := range candidates {
		if WithinBudget(c, timeAvailableMinutes) {
			out = append(out, c)
		}
	}
	return out
}
