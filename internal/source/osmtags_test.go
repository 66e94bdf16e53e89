package source

import (
	"strings"
	"testing"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapOSMTags(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]string
		want []string
	}{
		{"park", map[string]string{"leisure": "park"}, []string{"park"}},
		{"wood", map[string]string{"natural": "wood"}, []string{"forest", "trees"}},
		{"any waterway", map[string]string{"waterway": "stream"}, []string{"water"}},
		{"footway", map[string]string{"highway": "footway", "name": "Ridge Walk"}, []string{"path", "trail"}},
		{"garden with bench", map[string]string{"leisure": "garden", "bench": "yes"}, []string{"benches", "garden", "park"}},
		{"reserve", map[string]string{"leisure": "nature_reserve"}, []string{"park", "quiet"}},
		{"unrecognised", map[string]string{"shop": "bakery"}, nil},
		{"bench alone is not a place", map[string]string{"bench": "yes"}, nil},
		{"residential road", map[string]string{"highway": "residential"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapOSMTags(tc.raw))
		})
	}
}

func TestInferOSMTerrain(t *testing.T) {
	cases := []struct {
		raw  map[string]string
		want domain.TerrainIntensity
	}{
		{map[string]string{"sac_scale": "hiking"}, domain.TerrainRolling},
		{map[string]string{"sac_scale": "alpine_hiking"}, domain.TerrainHilly},
		{map[string]string{"incline": "12%"}, domain.TerrainHilly},
		{map[string]string{"incline": "0"}, domain.TerrainFlat},
		{map[string]string{"wheelchair": "yes"}, domain.TerrainFlat},
		{map[string]string{"highway": "footway", "surface": "asphalt"}, domain.TerrainFlat},
		{map[string]string{"highway": "path", "surface": "gravel"}, domain.TerrainUnknown},
		{map[string]string{"highway": "footway", "name": "Mill Walk"}, domain.TerrainFlat},
		{map[string]string{"leisure": "park"}, domain.TerrainFlat},
		{map[string]string{"leisure": "garden"}, domain.TerrainFlat},
		{map[string]string{"leisure": "park", "incline": "up"}, domain.TerrainHilly},
		{map[string]string{"natural": "wood"}, domain.TerrainUnknown},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InferOSMTerrain(tc.raw), "raw=%v", tc.raw)
	}
}

func TestBuildOverpassQuery(t *testing.T) {
	q := buildOverpassQuery(Query{Center: center, RadiusMeters: 900}, 25, 60)
	assert.True(t, strings.HasPrefix(q, "[out:json][timeout:25];("))
	assert.Contains(t, q, `nwr(around:900,40.000000,-74.000000)["leisure"="park"];`)
	assert.Contains(t, q, `["waterway"];`)
	assert.Contains(t, q, `["tourism"="viewpoint"];`)
	assert.True(t, strings.HasSuffix(q, ");out center tags 60;"))
	assert.Equal(t, len(osmPredicates), strings.Count(q, "nwr("))
}
