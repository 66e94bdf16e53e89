// Package selector holds the pure stages of the excursion planning pipeline:
// travel mode and radius selection, deduplication, budget filtering and
// scoring. Nothing here performs I/O.
package selector

import (
	"math"

	"github.com/alexanderramin/wander/internal/domain"
)

const (
	// WalkingKmPerMin is roughly 4.5 km/h.
	WalkingKmPerMin = 0.075
	// DrivingKmPerMin is roughly 36 km/h on local roads.
	DrivingKmPerMin = 0.6

	// MinSearchRadiusMeters keeps very short budgets from producing a
	// degenerate search area.
	MinSearchRadiusMeters = 500.0

	// TravelRatio is the share of the total time that may be spent travelling,
	// split evenly between outbound and return.
	TravelRatio = 0.4

	shortOutingMinutes = 20
	drivingMinMinutes  = 45
)

// SelectTravelMode picks the travel mode for a whole request. Rules are
// applied in order and the first match wins. Restricted mobility always
// keeps the user on foot.
func SelectTravelMode(timeAvailableMinutes int, energy domain.EnergyLevel, mobility domain.MobilityLevel) domain.TravelMode {
	switch {
	case timeAvailableMinutes <= shortOutingMinutes:
		return domain.TravelWalking
	case mobility.Restricted():
		return domain.TravelWalking
	case timeAvailableMinutes >= drivingMinMinutes && energy != domain.EnergyLow:
		return domain.TravelDriving
	default:
		return domain.TravelWalking
	}
}

// OneWayBudgetMinutes is the travel time allowed in each direction.
func OneWayBudgetMinutes(timeAvailableMinutes int) float64 {
	return float64(timeAvailableMinutes) * TravelRatio / 2
}

// SpeedKmPerMin returns the speed constant for a travel mode.
func SpeedKmPerMin(mode domain.TravelMode) float64 {
	if mode == domain.TravelDriving {
		return DrivingKmPerMin
	}
	return WalkingKmPerMin
}

// ComputeSearchRadiusMeters converts a one-way budget into a search radius,
// never below MinSearchRadiusMeters.
func ComputeSearchRadiusMeters(mode domain.TravelMode, oneWayBudgetMinutes float64) float64 {
	radiusKm := SpeedKmPerMin(mode) * oneWayBudgetMinutes
	return math.Max(radiusKm*1000, MinSearchRadiusMeters)
}

// TravelMinutes estimates one-way travel time for a distance.
func TravelMinutes(distanceKm float64, mode domain.TravelMode) float64 {
	return distanceKm / SpeedKmPerMin(mode)
}

// SearchPlan bundles the mode and radius decisions for one request.
type SearchPlan struct {
	Mode                domain.TravelMode
	OneWayBudgetMinutes float64
	RadiusMeters        float64
}

// PlanSearch runs mode and radius selection for a validated context.
func PlanSearch(uc domain.UserContext) SearchPlan {
	mode := SelectTravelMode(uc.TimeAvailableMinutes, uc.EnergyLevel, uc.MobilityLevel)
	oneWay := OneWayBudgetMinutes(uc.TimeAvailableMinutes)
	return SearchPlan{
		Mode:                mode,
		OneWayBudgetMinutes: oneWay,
		RadiusMeters:        ComputeSearchRadiusMeters(mode, oneWay),
	}
}
