package domain

import "time"

// CustomLocation is a nature spot submitted by a user.
type CustomLocation struct {
	ID          string
	Name        string
	Description string
	Latitude    float64
	Longitude   float64
	Tags        []string
	CreatedBy   string
	CreatedAt   time.Time
}

func (l CustomLocation) Coordinates() Coordinates {
	return Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}
