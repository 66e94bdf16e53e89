package domain

import (
	"sort"
	"strings"
)

// Canonical tags consumed by the scorer.
const (
	TagPark    = "park"
	TagWater   = "water"
	TagTrees   = "trees"
	TagTrail   = "trail"
	TagQuiet   = "quiet"
	TagBenches = "benches"
	TagView    = "viewpoint"
)

var tagSynonyms = map[string]string{
	"lake":     TagWater,
	"river":    TagWater,
	"pond":     TagWater,
	"stream":   TagWater,
	"beach":    TagWater,
	"path":     TagTrail,
	"footway":  TagTrail,
	"hiking":   TagTrail,
	"peaceful": TagQuiet,
	"calm":     TagQuiet,
	"garden":   TagPark,
	"meadow":   TagPark,
	"forest":   TagTrees,
	"wood":     TagTrees,
	"woods":    TagTrees,
	"tree":     TagTrees,
	"bench":    TagBenches,
}

// NormalizeTags lowercases, trims and dedupes tags. Synonyms are kept and
// their canonical tag is added so "lake" also yields "water".
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		out = append(out, t)
	}
	for _, raw := range tags {
		t := strings.ToLower(strings.TrimSpace(raw))
		add(t)
		if canon, ok := tagSynonyms[t]; ok {
			add(canon)
		}
	}
	sort.Strings(out)
	return out
}
