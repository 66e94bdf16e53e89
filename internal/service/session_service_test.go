package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/events"
	"github.com/alexanderramin/wander/internal/repository"
	"github.com/alexanderramin/wander/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	db       *sql.DB
	svc      SessionService
	composer *mockComposer
	pub      *recordingPublisher
	checkIns repository.CheckInRepo
	excs     repository.ExcursionRepo
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	f := &sessionFixture{
		db: database,
		composer: &mockComposer{
			guidance: &composer.Guidance{
				TargetZoneID: "z2",
				Summary:      "Walk on to the old oak",
				NextAction:   composer.NextContinue,
			},
			reflection: &composer.Reflection{
				QuantitativeQuestions: []composer.ScaleQuestion{{ID: "calm", Label: "How calm?", Min: 1, Max: 10}},
			},
		},
		pub:      &recordingPublisher{},
		checkIns: repository.NewSQLiteCheckInRepo(database),
		excs:     repository.NewSQLiteExcursionRepo(database),
	}
	f.svc = NewSessionService(SessionRepos{
		Sessions:   repository.NewSQLiteSessionRepo(database),
		Excursions: f.excs,
		CheckIns:   f.checkIns,
	}, testutil.NewTestUoW(database), f.composer, f.pub)
	return f
}

func (f *sessionFixture) chooseAndStart(t *testing.T) *domain.ExcursionSession {
	t.Helper()
	ctx := context.Background()
	sess, err := f.svc.Choose(ctx, contract.ChooseRequest{UserID: "u1", Plan: testPlanOption()})
	require.NoError(t, err)
	sess, err = f.svc.Start(ctx, sess.ID)
	require.NoError(t, err)
	return sess
}

func scale(id string, v float64) contract.CheckInInput {
	return contract.CheckInInput{CheckInID: id, Type: "scale", Number: &v}
}

func requireSessionCode(t *testing.T, err error, code contract.SessionErrorCode) {
	t.Helper()
	var se *contract.SessionError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, code, se.Code)
}

func TestSession_ChoosePersistsExcursion(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	sess, err := f.svc.Choose(ctx, contract.ChooseRequest{UserID: "u1", Plan: testPlanOption()})
	require.NoError(t, err)

	assert.Equal(t, domain.SessionPlanned, sess.Status)
	assert.Equal(t, domain.PhasePlan, sess.Phase)

	exc, err := f.excs.GetByID(ctx, sess.ExcursionID)
	require.NoError(t, err)
	assert.Equal(t, "Riverside loop", exc.Title)
	assert.Equal(t, domain.TravelWalking, exc.TransportMode)
	assert.Contains(t, exc.PlanJSON, `"z2"`)
}

func TestSession_ChooseRejectsInvalidPlan(t *testing.T) {
	f := newSessionFixture(t)
	plan := testPlanOption()
	plan.RouteOverview.Title = ""

	_, err := f.svc.Choose(context.Background(), contract.ChooseRequest{UserID: "u1", Plan: plan})
	requireSessionCode(t, err, contract.ErrSessionInvalid)
}

func TestSession_FullLifecycle(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	sess := f.chooseAndStart(t)
	assert.Equal(t, domain.SessionActive, sess.Status)
	assert.Equal(t, domain.PhaseGuide, sess.Phase)
	assert.Equal(t, "z1", sess.CurrentZoneID)
	require.NotNil(t, sess.StartedAt)

	g, err := f.svc.Guide(ctx, contract.GuideRequest{
		SessionID: sess.ID,
		CheckIns:  []contract.CheckInInput{scale("calm", 4)},
	})
	require.NoError(t, err)
	assert.Equal(t, composer.NextContinue, g.NextAction)

	got, err := f.svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "z2", got.CurrentZoneID)
	assert.NotNil(t, got.LastGuidedAt)

	stored, err := f.checkIns.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "z1", stored[0].ZoneID)

	f.composer.guidance = &composer.Guidance{Summary: "Time to head home", NextAction: composer.NextEndExcursion}
	_, err = f.svc.Guide(ctx, contract.GuideRequest{
		SessionID: sess.ID,
		CheckIns:  []contract.CheckInInput{{CheckInID: "notice", Type: "text", Text: "heron"}},
	})
	require.NoError(t, err)

	got, err = f.svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseReflect, got.Phase)
	assert.Equal(t, domain.SessionActive, got.Status)

	require.Len(t, f.composer.guideCtxs, 2)
	assert.Len(t, f.composer.guideCtxs[1].PreviousCheckIns, 2)
	assert.Equal(t, "z2", f.composer.guideCtxs[1].CurrentZoneID)

	r, err := f.svc.Reflect(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, r.QuantitativeQuestions, 1)
	require.NotNil(t, f.composer.reflectCtx)
	assert.Equal(t, "Riverside loop", f.composer.reflectCtx.SessionSummary.Title)
	assert.Equal(t, []string{"z1", "z2"}, f.composer.reflectCtx.SessionSummary.ZonesVisited)

	done, err := f.svc.SubmitReflection(ctx, sess.ID, []contract.CheckInInput{scale("stress_after", 2)})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, done.Status)
	require.NotNil(t, done.EndedAt)

	stored, err = f.checkIns.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, domain.ReflectionZoneID, stored[2].ZoneID)

	require.Len(t, f.pub.events, 1)
	assert.Equal(t, events.SubjectSessionCompleted, f.pub.events[0].subject)
	assert.Equal(t, "u1", f.pub.events[0].userID)
}

func TestSession_GuideBeforeStartIsInvalidTransition(t *testing.T) {
	f := newSessionFixture(t)
	sess, err := f.svc.Choose(context.Background(), contract.ChooseRequest{UserID: "u1", Plan: testPlanOption()})
	require.NoError(t, err)

	_, err = f.svc.Guide(context.Background(), contract.GuideRequest{SessionID: sess.ID})
	requireSessionCode(t, err, contract.ErrInvalidTransition)
	assert.Empty(t, f.composer.guideCtxs)
}

func TestSession_StartTwiceIsInvalidTransition(t *testing.T) {
	f := newSessionFixture(t)
	sess := f.chooseAndStart(t)

	_, err := f.svc.Start(context.Background(), sess.ID)
	requireSessionCode(t, err, contract.ErrInvalidTransition)
}

func TestSession_CompletedSessionRejectsFurtherWork(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sess := f.chooseAndStart(t)
	_, err := f.svc.SubmitReflection(ctx, sess.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.SubmitReflection(ctx, sess.ID, nil)
	requireSessionCode(t, err, contract.ErrInvalidTransition)

	_, err = f.svc.Reflect(ctx, sess.ID)
	requireSessionCode(t, err, contract.ErrInvalidTransition)
}

func TestSession_UnknownSessionIsNotFound(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "missing")
	requireSessionCode(t, err, contract.ErrSessionNotFound)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = f.svc.Start(ctx, "missing")
	requireSessionCode(t, err, contract.ErrSessionNotFound)

	_, err = f.svc.Guide(ctx, contract.GuideRequest{SessionID: "missing"})
	requireSessionCode(t, err, contract.ErrSessionNotFound)
}

func TestSession_GuideRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		req  func(id string) contract.GuideRequest
	}{
		{"unknown zone", func(id string) contract.GuideRequest {
			return contract.GuideRequest{SessionID: id, ZoneID: "z9"}
		}},
		{"missing check-in id", func(id string) contract.GuideRequest {
			return contract.GuideRequest{SessionID: id, CheckIns: []contract.CheckInInput{scale("", 3)}}
		}},
		{"scale without value", func(id string) contract.GuideRequest {
			return contract.GuideRequest{SessionID: id, CheckIns: []contract.CheckInInput{{CheckInID: "calm", Type: "scale"}}}
		}},
		{"unknown type", func(id string) contract.GuideRequest {
			return contract.GuideRequest{SessionID: id, CheckIns: []contract.CheckInInput{{CheckInID: "calm", Type: "emoji", Text: ":)"}}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSessionFixture(t)
			sess := f.chooseAndStart(t)

			_, err := f.svc.Guide(context.Background(), tt.req(sess.ID))
			requireSessionCode(t, err, contract.ErrSessionInvalid)

			stored, err := f.checkIns.ListBySession(context.Background(), sess.ID)
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestSession_GuideComposerFailureKeepsCheckIns(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()
	sess := f.chooseAndStart(t)
	f.composer.err = errors.New("model overloaded")

	_, err := f.svc.Guide(ctx, contract.GuideRequest{SessionID: sess.ID, CheckIns: []contract.CheckInInput{scale("calm", 3)}})
	requireSessionCode(t, err, contract.ErrSessionComposer)

	stored, err := f.checkIns.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	got, err := f.svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "z1", got.CurrentZoneID)
	assert.Nil(t, got.LastGuidedAt)
}

func TestSession_SubmitReflectionRollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	sessions := repository.NewSQLiteSessionRepo(database)
	excursions := repository.NewSQLiteExcursionRepo(database)
	checkIns := repository.NewSQLiteCheckInRepo(database)
	ctx := context.Background()

	exc := testutil.NewTestExcursion("u1", "Riverside loop", testutil.WithPlan(testPlanOption()))
	require.NoError(t, excursions.Create(ctx, exc))
	sess := testutil.NewTestSession(exc, testutil.WithStatus(domain.SessionActive), testutil.WithPhase(domain.PhaseReflect))
	require.NoError(t, sessions.Create(ctx, sess))

	// Second exec is the session update after the first check-in insert.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")}
	svc := NewSessionService(SessionRepos{Sessions: sessions, Excursions: excursions, CheckIns: checkIns}, uow, &mockComposer{}, nil)

	_, err := svc.SubmitReflection(ctx, sess.ID, []contract.CheckInInput{scale("stress_after", 2)})
	require.Error(t, err)

	stored, err := checkIns.ListBySession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	got, err := sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, got.Status)
}
