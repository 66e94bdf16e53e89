// Package geo holds great-circle helpers shared by the sources and the selector.
package geo

import (
	"math"

	"github.com/alexanderramin/wander/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used for all distance math.
const EarthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// DistanceKm returns the haversine distance between two points.
func DistanceKm(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// DistanceMeters is DistanceKm scaled to metres.
func DistanceMeters(a, b domain.Coordinates) float64 {
	return DistanceKm(a, b) * 1000
}

// Destination returns the point reached by travelling meters from origin
// along the given initial bearing (degrees clockwise from north).
func Destination(origin domain.Coordinates, bearingDeg, meters float64) domain.Coordinates {
	angular := meters / 1000 / EarthRadiusKm
	bearing := toRad(bearingDeg)
	lat1 := toRad(origin.Latitude)
	lon1 := toRad(origin.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) + math.Cos(lat1)*math.Sin(angular)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	// Normalise longitude to [-180, 180).
	lon := math.Mod(toDeg(lon2)+540, 360) - 180
	return domain.Coordinates{Latitude: toDeg(lat2), Longitude: lon}
}
