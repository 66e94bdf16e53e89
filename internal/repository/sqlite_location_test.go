package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/wander/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomLocationRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteCustomLocationRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	loc := testutil.NewTestCustomLocation("Pond Bench",
		testutil.WithTags("water", "benches", "pond"),
		testutil.WithPosition(40.1, -74.2),
		testutil.WithCreatedBy("alice"))
	loc.Description = "Bench by the pond"
	require.NoError(t, repo.Create(ctx, loc))

	got, err := repo.GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pond Bench", got.Name)
	assert.Equal(t, "Bench by the pond", got.Description)
	assert.Equal(t, []string{"water", "benches", "pond"}, got.Tags)
	assert.Equal(t, 40.1, got.Latitude)
	assert.Equal(t, -74.2, got.Longitude)
	assert.Equal(t, "alice", got.CreatedBy)
	assert.True(t, loc.CreatedAt.Equal(got.CreatedAt))
}

func TestCustomLocationRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteCustomLocationRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomLocationRepo_ListAndListByCreator(t *testing.T) {
	repo := NewSQLiteCustomLocationRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	require.NoError(t, repo.Create(ctx, testutil.NewTestCustomLocation("A", testutil.WithCreatedBy("u1"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCustomLocation("B", testutil.WithCreatedBy("u2"))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestCustomLocation("C", testutil.WithCreatedBy("u1"))))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListByCreator(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, l := range mine {
		assert.Equal(t, "u1", l.CreatedBy)
	}
}

func TestCustomLocationRepo_RejectsInvalidLatitude(t *testing.T) {
	repo := NewSQLiteCustomLocationRepo(testutil.NewTestDB(t))

	err := repo.Create(context.Background(), testutil.NewTestCustomLocation("Bad", testutil.WithPosition(95, 0)))
	assert.Error(t, err)
}

func TestCustomLocationRepo_Delete(t *testing.T) {
	repo := NewSQLiteCustomLocationRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	loc := testutil.NewTestCustomLocation("Temp")
	require.NoError(t, repo.Create(ctx, loc))
	require.NoError(t, repo.Delete(ctx, loc.ID))

	assert.ErrorIs(t, repo.Delete(ctx, loc.ID), ErrNotFound)
}
