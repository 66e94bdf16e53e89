package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/geo"
	"github.com/alexanderramin/wander/internal/source"
)

var home = domain.Coordinates{Latitude: 40.0, Longitude: -74.0}

func userContext(minutes int, energy domain.EnergyLevel, goal domain.Goal) domain.UserContext {
	loc := home
	return domain.UserContext{
		Location:             &loc,
		TimeAvailableMinutes: minutes,
		EnergyLevel:          energy,
		Mood:                 domain.MoodCalm,
		Goal:                 goal,
	}
}

// stubSource returns fixed records, or an error.
type stubSource struct {
	kind    domain.Source
	records []source.Record
	err     error
	calls   int
	mu      sync.Mutex
}

func (s *stubSource) Kind() domain.Source { return s.kind }

func (s *stubSource) Fetch(context.Context, source.Query) ([]source.Record, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func recordAt(id string, bearing, meters float64, terrain domain.TerrainIntensity, tags ...string) source.Record {
	return source.Record{
		SourceID:    id,
		Name:        "Spot " + id,
		Coordinates: geo.Destination(home, bearing, meters),
		Tags:        tags,
		Terrain:     terrain,
	}
}

// mockComposer records its inputs and returns canned results.
type mockComposer struct {
	plan       []composer.PlanOption
	guidance   *composer.Guidance
	reflection *composer.Reflection
	err        error

	planCtx    *composer.PlanContext
	guideCtxs  []composer.GuideContext
	reflectCtx *composer.ReflectContext
}

func (m *mockComposer) Plan(_ context.Context, pc composer.PlanContext) ([]composer.PlanOption, error) {
	m.planCtx = &pc
	if m.err != nil {
		return nil, m.err
	}
	return m.plan, nil
}

func (m *mockComposer) Guide(_ context.Context, gc composer.GuideContext) (*composer.Guidance, error) {
	m.guideCtxs = append(m.guideCtxs, gc)
	if m.err != nil {
		return nil, m.err
	}
	g := *m.guidance
	return &g, nil
}

func (m *mockComposer) Reflect(_ context.Context, rc composer.ReflectContext) (*composer.Reflection, error) {
	m.reflectCtx = &rc
	if m.err != nil {
		return nil, m.err
	}
	return m.reflection, nil
}

type fakeWeather struct {
	snap *domain.WeatherSnapshot
	err  error
}

func (f fakeWeather) Snapshot(context.Context, domain.Coordinates) (*domain.WeatherSnapshot, error) {
	return f.snap, f.err
}

type publishedEvent struct {
	subject string
	userID  string
	data    any
}

type recordingPublisher struct {
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, subject, userID string, data any) error {
	p.events = append(p.events, publishedEvent{subject: subject, userID: userID, data: data})
	return nil
}

type planObservation struct {
	outcome    string
	candidates int
}

type recordingPlanRecorder struct {
	observations []planObservation
}

func (r *recordingPlanRecorder) ObservePlan(outcome string, candidates int, _ time.Duration) {
	r.observations = append(r.observations, planObservation{outcome: outcome, candidates: candidates})
}

func testPlanOption() composer.PlanOption {
	return composer.PlanOption{
		RouteOverview: composer.RouteOverview{
			Title:                "Riverside loop",
			Description:          "A slow loop along the water",
			TotalDurationMinutes: 50,
			TotalDistanceKm:      1.8,
			Difficulty:           domain.DifficultyEasy,
			TransportMode:        "walking",
		},
		Zones: []composer.Zone{
			{ID: "z1", Name: "Reed bank"},
			{ID: "z2", Name: "Old oak"},
		},
	}
}
