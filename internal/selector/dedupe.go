package selector

import (
	"sort"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/geo"
)

// DefaultDuplicateMeters is the distance under which two candidates are
// treated as the same physical place.
const DefaultDuplicateMeters = 50.0

// DefaultSourcePrecedence prefers curated user submissions over open data.
var DefaultSourcePrecedence = []domain.Source{
	domain.SourceUserCustom,
	domain.SourceOSM,
	domain.SourceMapAPI,
	domain.SourceSynthetic,
}

// DedupeOptions configures duplicate detection. Zero values use defaults.
type DedupeOptions struct {
	ThresholdMeters float64
	Precedence      []domain.Source
}

func (o DedupeOptions) withDefaults() DedupeOptions {
	if o.ThresholdMeters <= 0 {
		o.ThresholdMeters = DefaultDuplicateMeters
	}
	if len(o.Precedence) == 0 {
		o.Precedence = DefaultSourcePrecedence
	}
	return o
}

// Dedupe collapses candidates closer than the threshold. Candidates are
// visited in source precedence order (input order within a source) and the
// first one seen at a place wins. Survivors keep their original relative
// order. The result is deterministic and Dedupe(Dedupe(x)) == Dedupe(x).
func Dedupe(candidates []domain.CandidateLocation, opts DedupeOptions) []domain.CandidateLocation {
	opts = opts.withDefaults()

	rank := make(map[domain.Source]int, len(opts.Precedence))
	for i, s := range opts.Precedence {
		if _, ok := rank[s]; !ok {
			rank[s] = i
		}
	}
	sourceRank := func(s domain.Source) int {
		if r, ok := rank[s]; ok {
			return r
		}
		return len(opts.Precedence)
	}

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sourceRank(candidates[order[i]].Source) < sourceRank(candidates[order[j]].Source)
	})

	keep := make([]bool, len(candidates))
	var kept []int
	for _, idx := range order {
		dup := false
		for _, k := range kept {
			if geo.DistanceMeters(candidates[idx].Coordinates, candidates[k].Coordinates) < opts.ThresholdMeters {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, idx)
			keep[idx] = true
		}
	}

	out := make([]domain.CandidateLocation, 0, len(kept))
	for i, c := range candidates {
		if keep[i] {
			out = append(out, c)
		}
	}
	return out
}
