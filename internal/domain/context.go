package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Coordinates is a WGS84 point in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are finite and in range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// UserContext describes a single planning request. MobilityLevel and
// FitnessLevel are optional and empty when unknown.
type UserContext struct {
	Location             *Coordinates  `json:"location"`
	TimeAvailableMinutes int           `json:"time_available_minutes"`
	EnergyLevel          EnergyLevel   `json:"energy_level"`
	Mood                 Mood          `json:"mood"`
	Goal                 Goal          `json:"goal"`
	MobilityLevel        MobilityLevel `json:"mobility_level,omitempty"`
	FitnessLevel         FitnessLevel  `json:"fitness_level,omitempty"`
}

// Validate checks every required field and returns all problems joined.
func (u UserContext) Validate() error {
	var errs []string
	if u.Location == nil {
		errs = append(errs, "location is required")
	} else if !u.Location.Valid() {
		errs = append(errs, fmt.Sprintf("location %.6f,%.6f is not a valid coordinate",
			u.Location.Latitude, u.Location.Longitude))
	}
	if u.TimeAvailableMinutes <= 0 {
		errs = append(errs, "time_available_minutes must be positive")
	}
	if !ValidEnergyLevels[u.EnergyLevel] {
		errs = append(errs, fmt.Sprintf("energy_level %q is invalid", u.EnergyLevel))
	}
	if !ValidMoods[u.Mood] {
		errs = append(errs, fmt.Sprintf("mood %q is invalid", u.Mood))
	}
	if !ValidGoals[u.Goal] {
		errs = append(errs, fmt.Sprintf("goal %q is invalid", u.Goal))
	}
	if u.MobilityLevel != "" && !ValidMobilityLevels[u.MobilityLevel] {
		errs = append(errs, fmt.Sprintf("mobility_level %q is invalid", u.MobilityLevel))
	}
	if u.FitnessLevel != "" && !ValidFitnessLevels[u.FitnessLevel] {
		errs = append(errs, fmt.Sprintf("fitness_level %q is invalid", u.FitnessLevel))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
