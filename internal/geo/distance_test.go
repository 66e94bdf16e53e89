package geo

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_KnownPair(t *testing.T) {
	// London to Paris is roughly 343.5 km along the great circle.
	london := domain.Coordinates{Latitude: 51.5074, Longitude: -0.1278}
	paris := domain.Coordinates{Latitude: 48.8566, Longitude: 2.3522}
	assert.InDelta(t, 343.5, DistanceKm(london, paris), 1.0)
}

func TestDistanceKm_SamePoint(t *testing.T) {
	p := domain.Coordinates{Latitude: 40, Longitude: -74}
	assert.Equal(t, 0.0, DistanceKm(p, p))
}

func TestDistanceKm_Symmetric(t *testing.T) {
	a := domain.Coordinates{Latitude: 40, Longitude: -74}
	b := domain.Coordinates{Latitude: 40.01, Longitude: -74.02}
	assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-12)
}

func TestDestination_RoundTripsDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	origin := domain.Coordinates{Latitude: 40, Longitude: -74}
	for trial := 0; trial < 200; trial++ {
		bearing := rng.Float64() * 360
		meters := 50 + rng.Float64()*20000
		dest := Destination(origin, bearing, meters)
		assert.InDelta(t, meters, DistanceMeters(origin, dest), 0.5,
			"trial %d: bearing=%.1f meters=%.1f", trial, bearing, meters)
	}
}

func TestDestination_NorthIncreasesLatitude(t *testing.T) {
	origin := domain.Coordinates{Latitude: 40, Longitude: -74}
	dest := Destination(origin, 0, 1000)
	assert.Greater(t, dest.Latitude, origin.Latitude)
	assert.InDelta(t, origin.Longitude, dest.Longitude, 1e-9)
}
