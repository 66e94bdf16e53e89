package domain

import "time"

// UserProfile holds the historical data a planning request can fall back on.
type UserProfile struct {
	UserID              string
	MobilityLevel       MobilityLevel
	FitnessLevel        FitnessLevel
	Age                 *int
	RiskTolerance       string
	PreferredActivities []string
	UpdatedAt           time.Time
}
