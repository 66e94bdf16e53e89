package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionTestSetup creates the excursion a session belongs to.
func sessionTestSetup(t *testing.T) (*SQLiteSessionRepo, *SQLiteCheckInRepo, *domain.Excursion) {
	t.Helper()
	db := testutil.NewTestDB(t)
	ex := testutil.NewTestExcursion("u1", "Loop")
	require.NoError(t, NewSQLiteExcursionRepo(db).Create(context.Background(), ex))
	return NewSQLiteSessionRepo(db), NewSQLiteCheckInRepo(db), ex
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	repo, _, ex := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(ex)
	require.NoError(t, repo.Create(ctx, sess))

	got, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, ex.ID, got.ExcursionID)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, domain.SessionPlanned, got.Status)
	assert.Equal(t, domain.PhasePlan, got.Phase)
	assert.Nil(t, got.StartedAt)
	assert.Nil(t, got.EndedAt)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	repo, _, _ := sessionTestSetup(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_UpdateLifecycle(t *testing.T) {
	repo, _, ex := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(ex)
	require.NoError(t, repo.Create(ctx, sess))

	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, sess.Start(now))
	sess.CurrentZoneID = "z1"
	sess.LastGuidedAt = &now
	require.NoError(t, repo.Update(ctx, sess))

	got, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, got.Status)
	assert.Equal(t, domain.PhaseGuide, got.Phase)
	assert.Equal(t, "z1", got.CurrentZoneID)
	require.NotNil(t, got.StartedAt)
	assert.True(t, now.Equal(*got.StartedAt))
	require.NotNil(t, got.LastGuidedAt)

	later := now.Add(40 * time.Minute)
	require.NoError(t, got.Complete(later))
	require.NoError(t, repo.Update(ctx, got))

	done, err := repo.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, done.Status)
	require.NotNil(t, done.EndedAt)
	assert.True(t, later.Equal(*done.EndedAt))
}

func TestSessionRepo_Update_NotFound(t *testing.T) {
	repo, _, ex := sessionTestSetup(t)

	err := repo.Update(context.Background(), testutil.NewTestSession(ex))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_ListByUser(t *testing.T) {
	repo, _, ex := sessionTestSetup(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(ex)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(ex, testutil.WithStatus(domain.SessionCompleted))))

	all, err := repo.ListByUser(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	completed, err := repo.ListByUser(ctx, "u1", domain.SessionCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, domain.SessionCompleted, completed[0].Status)
}

func TestCheckInRepo_CreateAndList(t *testing.T) {
	sessions, checkIns, ex := sessionTestSetup(t)
	ctx := context.Background()

	sess := testutil.NewTestSession(ex)
	require.NoError(t, sessions.Create(ctx, sess))

	require.NoError(t, checkIns.Create(ctx, testutil.NewTestScaleCheckIn(sess.ID, "z1", "calm", 4)))
	require.NoError(t, checkIns.Create(ctx, testutil.NewTestTextCheckIn(sess.ID, "z1", "notice", "herons")))

	list, err := checkIns.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "calm", list[0].CheckInID)
	require.NotNil(t, list[0].ValueNumber)
	assert.Equal(t, 4.0, *list[0].ValueNumber)
	assert.Equal(t, domain.CheckInText, list[1].Type)
	assert.Nil(t, list[1].ValueNumber)
	assert.Equal(t, "herons", list[1].ValueText)
}

func TestCheckInRepo_RequiresSession(t *testing.T) {
	_, checkIns, _ := sessionTestSetup(t)

	err := checkIns.Create(context.Background(), testutil.NewTestScaleCheckIn("missing", "z1", "calm", 3))
	assert.Error(t, err)
}
