package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func validContext() UserContext {
	return UserContext{
		Location:             &Coordinates{Latitude: 40.0, Longitude: -74.0},
		TimeAvailableMinutes: 30,
		EnergyLevel:          EnergyMedium,
		Mood:                 MoodCalm,
		Goal:                 GoalRelax,
	}
}

func TestUserContextValidate_OK(t *testing.T) {
	require.NoError(t, validContext().Validate())
}

func TestUserContextValidate_OptionalFieldsAccepted(t *testing.T) {
	uc := validContext()
	uc.MobilityLevel = MobilityAssisted
	uc.FitnessLevel = FitnessAdvanced
	require.NoError(t, uc.Validate())
}

func TestUserContextValidate_Failures(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*UserContext)
		wantMsg string
	}{
		{"missing location", func(u *UserContext) { u.Location = nil }, "location is required"},
		{"latitude out of range", func(u *UserContext) { u.Location = &Coordinates{Latitude: 91, Longitude: 0} }, "not a valid coordinate"},
		{"nan longitude", func(u *UserContext) { u.Location = &Coordinates{Latitude: 1, Longitude: math.NaN()} }, "not a valid coordinate"},
		{"zero time", func(u *UserContext) { u.TimeAvailableMinutes = 0 }, "time_available_minutes"},
		{"negative time", func(u *UserContext) { u.TimeAvailableMinutes = -5 }, "time_available_minutes"},
		{"missing energy", func(u *UserContext) { u.EnergyLevel = "" }, "energy_level"},
		{"bad mood", func(u *UserContext) { u.Mood = "grumpy" }, "mood"},
		{"bad goal", func(u *UserContext) { u.Goal = "explore" }, "goal"},
		{"bad mobility", func(u *UserContext) { u.MobilityLevel = "wheels" }, "mobility_level"},
		{"bad fitness", func(u *UserContext) { u.FitnessLevel = "elite" }, "fitness_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := validContext()
			tc.mutate(&uc)
			err := uc.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestUserContextValidate_ReportsAllProblems(t *testing.T) {
	err := UserContext{}.Validate()
	require.Error(t, err)
	for _, field := range []string{"location", "time_available_minutes", "energy_level", "mood", "goal"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestMobilityRestricted(t *testing.T) {
	assert.False(t, MobilityFull.Restricted())
	assert.False(t, MobilityLevel("").Restricted())
	assert.True(t, MobilityLimited.Restricted())
	assert.True(t, MobilityAssisted.Restricted())
}
