package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfileRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteUserProfileRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserProfileRepo_UpsertRoundTrip(t *testing.T) {
	repo := NewSQLiteUserProfileRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	age := 67
	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{
		UserID:              "u1",
		MobilityLevel:       domain.MobilityLimited,
		FitnessLevel:        domain.FitnessBeginner,
		Age:                 &age,
		RiskTolerance:       "low",
		PreferredActivities: []string{"birdwatching"},
	}))

	p, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.MobilityLimited, p.MobilityLevel)
	assert.Equal(t, domain.FitnessBeginner, p.FitnessLevel)
	require.NotNil(t, p.Age)
	assert.Equal(t, 67, *p.Age)
	assert.Equal(t, []string{"birdwatching"}, p.PreferredActivities)
	assert.False(t, p.UpdatedAt.IsZero())

	// Second upsert replaces the row and clears the age.
	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{UserID: "u1", MobilityLevel: domain.MobilityFull}))
	p, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.MobilityFull, p.MobilityLevel)
	assert.Empty(t, p.FitnessLevel)
	assert.Nil(t, p.Age)
	assert.Empty(t, p.PreferredActivities)
}

func TestUserProfileRepo_RejectsUnknownMobility(t *testing.T) {
	repo := NewSQLiteUserProfileRepo(testutil.NewTestDB(t))

	err := repo.Upsert(context.Background(), &domain.UserProfile{UserID: "u1", MobilityLevel: "flying"})
	assert.Error(t, err)
}
