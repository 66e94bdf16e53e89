package gather

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/geo"
	"github.com/alexanderramin/wander/internal/selector"
	"github.com/alexanderramin/wander/internal/source"
)

// Normalize turns a source record into a candidate for the given request
// centre and travel mode. IDs are namespaced by source.
func Normalize(kind domain.Source, rec source.Record, center domain.Coordinates, mode domain.TravelMode) domain.CandidateLocation {
	km := geo.DistanceKm(center, rec.Coordinates)
	tags := domain.NormalizeTags(rec.Tags)
	id := fmt.Sprintf("%s:%s", kind, rec.SourceID)

	name := strings.TrimSpace(rec.Name)
	if name == "" {
		name = SynthesizeName(tags, id)
	}
	desc := strings.TrimSpace(rec.Description)
	if desc == "" && len(tags) > 0 {
		desc = "Features: " + strings.Join(tags, ", ")
	}

	return domain.CandidateLocation{
		ID:                  id,
		Name:                name,
		Description:         desc,
		Coordinates:         rec.Coordinates,
		DistanceKm:          km,
		TravelMinutesOneWay: selector.TravelMinutes(km, mode),
		TravelMode:          mode,
		Tags:                tags,
		Source:              kind,
		TerrainIntensity:    rec.Terrain,
	}
}

var tagNames = []struct {
	tag  string
	name string
}{
	{domain.TagPark, "Local Park"},
	{domain.TagTrees, "Wooded Area"},
	{domain.TagTrail, "Walking Path"},
	{domain.TagWater, "Waterside Spot"},
	{domain.TagView, "Scenic Viewpoint"},
}

// SynthesizeName derives a display name from tags, falling back to a generic
// "Nature Spot {id}".
func SynthesizeName(tags []string, id string) string {
	present := make(map[string]bool, len(tags))
	for _, t := range tags {
		present[t] = true
	}
	for _, tn := range tagNames {
		if present[tn.tag] {
			return tn.name
		}
	}
	return "Nature Spot " + id
}
