package source

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wander/internal/domain"
)

type osmRule struct {
	key   string
	value string // "*" matches any value
	tags  []string
}

// osmRules maps raw OSM attributes to scoring tags.
var osmRules = []osmRule{
	{"leisure", "park", []string{domain.TagPark}},
	{"leisure", "garden", []string{domain.TagPark, "garden"}},
	{"leisure", "nature_reserve", []string{domain.TagPark, domain.TagQuiet}},
	{"natural", "wood", []string{domain.TagTrees, "forest"}},
	{"landuse", "forest", []string{domain.TagTrees, "forest"}},
	{"natural", "water", []string{domain.TagWater}},
	{"natural", "beach", []string{domain.TagWater, "beach"}},
	{"waterway", "*", []string{domain.TagWater}},
	{"landuse", "meadow", []string{"meadow", domain.TagQuiet}},
	{"landuse", "grass", []string{domain.TagPark}},
	{"tourism", "viewpoint", []string{domain.TagView}},
	{"highway", "footway", []string{domain.TagTrail, "path"}},
	{"highway", "path", []string{domain.TagTrail, "path"}},
	{"amenity", "bench", []string{domain.TagBenches}},
	{"leisure", "picnic_table", []string{domain.TagBenches}},
}

// osmPredicates is the fixed set of selectors sent to the Overpass service.
var osmPredicates = []string{
	`["leisure"="park"]`,
	`["leisure"="garden"]`,
	`["leisure"="nature_reserve"]`,
	`["natural"="wood"]`,
	`["natural"="water"]`,
	`["natural"="beach"]`,
	`["waterway"]`,
	`["landuse"="forest"]`,
	`["landuse"="meadow"]`,
	`["landuse"="grass"]`,
	`["tourism"="viewpoint"]`,
	`["highway"="footway"]["name"]`,
	`["highway"="path"]["name"]`,
}

// MapOSMTags converts raw attributes into normalized tags. An empty result
// means the element carries no signal for scoring.
func MapOSMTags(raw map[string]string) []string {
	var tags []string
	for _, r := range osmRules {
		v, ok := raw[r.key]
		if !ok {
			continue
		}
		if r.value == "*" || r.value == v {
			tags = append(tags, r.tags...)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	if raw["bench"] == "yes" {
		tags = append(tags, domain.TagBenches)
	}
	return domain.NormalizeTags(tags)
}

var steepSACScales = map[string]bool{
	"mountain_hiking":           true,
	"demanding_mountain_hiking": true,
	"alpine_hiking":             true,
	"demanding_alpine_hiking":   true,
	"difficult_alpine_hiking":   true,
}

// InferOSMTerrain guesses terrain intensity from hiking and incline hints.
// Parks, gardens and footways without a hint count as flat; anything else
// stays unknown.
func InferOSMTerrain(raw map[string]string) domain.TerrainIntensity {
	if scale, ok := raw["sac_scale"]; ok {
		if steepSACScales[scale] {
			return domain.TerrainHilly
		}
		return domain.TerrainRolling
	}
	if incline, ok := raw["incline"]; ok {
		switch strings.ToLower(incline) {
		case "0", "0%", "no", "flat":
			return domain.TerrainFlat
		default:
			return domain.TerrainHilly
		}
	}
	if raw["wheelchair"] == "yes" {
		return domain.TerrainFlat
	}
	if surface, ok := raw["surface"]; ok && raw["highway"] == "path" {
		switch surface {
		case "paved", "asphalt", "concrete", "paving_stones":
			return domain.TerrainFlat
		}
	}
	switch {
	case raw["highway"] == "footway", raw["leisure"] == "park", raw["leisure"] == "garden":
		return domain.TerrainFlat
	}
	return domain.TerrainUnknown
}

// buildOverpassQuery renders an Overpass QL "around" query over the fixed
// predicate set.
func buildOverpassQuery(q Query, timeoutSec, limit int) string {
	around := fmt.Sprintf("around:%.0f,%.6f,%.6f", q.RadiusMeters, q.Center.Latitude, q.Center.Longitude)
	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];(", timeoutSec)
	for _, p := range osmPredicates {
		fmt.Fprintf(&b, "nwr(%s)%s;", around, p)
	}
	fmt.Fprintf(&b, ");out center tags %d;", limit)
	return b.String()
}
