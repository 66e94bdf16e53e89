package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/events"
	"github.com/alexanderramin/wander/internal/gather"
	"github.com/alexanderramin/wander/internal/repository"
	"github.com/alexanderramin/wander/internal/selector"
	"github.com/alexanderramin/wander/internal/weather"
)

// Plan outcomes reported to the PlanRecorder.
const (
	PlanOutcomeOK             = "ok"
	PlanOutcomeNoLocations    = "no_locations"
	PlanOutcomeInvalidInput   = "invalid_input"
	PlanOutcomeComposerFailed = "composer_failed"
)

// Gatherer collects candidate locations for a search plan.
type Gatherer interface {
	Gather(ctx context.Context, uc domain.UserContext, plan selector.SearchPlan) gather.Result
}

// PlanRecorder receives one observation per plan request.
type PlanRecorder interface {
	ObservePlan(outcome string, candidates int, d time.Duration)
}

type noopPlanRecorder struct{}

func (noopPlanRecorder) ObservePlan(string, int, time.Duration) {}

type planService struct {
	gatherer  Gatherer
	composer  composer.Composer
	profiles  repository.UserProfileRepo
	weather   weather.Provider
	publisher events.Publisher
	recorder  PlanRecorder
	observer  UseCaseObserver
	logger    *slog.Logger
	dedupe    selector.DedupeOptions
	topN      int
	now       func() time.Time
}

// PlanServiceOption configures optional collaborators.
type PlanServiceOption func(*planService)

func WithProfiles(r repository.UserProfileRepo) PlanServiceOption {
	return func(s *planService) { s.profiles = r }
}

func WithWeather(p weather.Provider) PlanServiceOption {
	return func(s *planService) { s.weather = p }
}

func WithPublisher(p events.Publisher) PlanServiceOption {
	return func(s *planService) { s.publisher = p }
}

func WithPlanRecorder(r PlanRecorder) PlanServiceOption {
	return func(s *planService) { s.recorder = r }
}

func WithPlanObserver(o UseCaseObserver) PlanServiceOption {
	return func(s *planService) { s.observer = o }
}

func WithPlanLogger(l *slog.Logger) PlanServiceOption {
	return func(s *planService) { s.logger = l }
}

func WithDedupeOptions(o selector.DedupeOptions) PlanServiceOption {
	return func(s *planService) { s.dedupe = o }
}

// WithDefaultTopN sets the ranking depth used when a request leaves TopN unset.
func WithDefaultTopN(n int) PlanServiceOption {
	return func(s *planService) { s.topN = n }
}

func WithClock(now func() time.Time) PlanServiceOption {
	return func(s *planService) { s.now = now }
}

// NewPlanService wires the planning pipeline. A nil composer returns ranked
// candidates only.
func NewPlanService(g Gatherer, c composer.Composer, opts ...PlanServiceOption) PlanService {
	s := &planService{
		gatherer:  g,
		composer:  c,
		publisher: events.NoopPublisher{},
		recorder:  noopPlanRecorder{},
		observer:  NoopUseCaseObserver{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		topN:      selector.DefaultTopN,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *planService) Plan(ctx context.Context, req contract.PlanRequest) (resp *contract.PlanResponse, err error) {
	startedAt := time.Now()
	outcome := PlanOutcomeOK
	candidates := 0
	fields := map[string]any{"user_id": req.UserID}
	defer func() {
		if err != nil {
			outcome = planErrorOutcome(err)
		}
		s.recorder.ObservePlan(outcome, candidates, time.Since(startedAt))
		fields["outcome"] = outcome
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan-excursion",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	now := s.now()
	if req.Now != nil {
		now = *req.Now
	}

	uc := req.Context
	history := s.fillFromProfile(ctx, req.UserID, &uc)

	if verr := uc.Validate(); verr != nil {
		return nil, &contract.PlanError{Code: contract.ErrInvalidInput, Message: verr.Error(), Err: verr}
	}

	plan := selector.PlanSearch(uc)
	fields["mode"] = string(plan.Mode)
	fields["radius_m"] = plan.RadiusMeters

	gathered := s.gatherer.Gather(ctx, uc, plan)
	deduped := selector.Dedupe(gathered.Candidates, s.dedupe)
	reachable := selector.FilterByBudget(deduped, uc.TimeAvailableMinutes)
	fields["gathered"] = len(gathered.Candidates)
	fields["candidates"] = len(reachable)
	candidates = len(reachable)

	resp = &contract.PlanResponse{
		GeneratedAt:  now,
		TravelMode:   plan.Mode,
		RadiusMeters: plan.RadiusMeters,
		Sources:      gathered.Reports,
	}
	for _, r := range gathered.Reports {
		if r.Outcome == gather.OutcomeFailed {
			resp.Warnings = append(resp.Warnings, string(r.Source)+" source unavailable")
		}
	}

	if len(reachable) == 0 {
		outcome = PlanOutcomeNoLocations
		resp.NoLocations = contract.NewNoLocations()
		return resp, nil
	}

	topN := req.TopN
	if topN <= 0 {
		topN = s.topN
	}
	resp.Ranked = selector.Rank(reachable, uc, topN)
	if req.SkipCompose || s.composer == nil {
		return resp, nil
	}

	resp.Weather = s.fetchWeather(ctx, *uc.Location)
	if resp.Weather == nil && s.weather != nil {
		resp.Warnings = append(resp.Warnings, "weather unavailable")
	}

	options, cerr := s.composer.Plan(ctx, composer.PlanContext{
		Phase:              domain.PhasePlan,
		CurrentData:        uc,
		HistoricalData:     history,
		TravelMode:         plan.Mode,
		CandidateLocations: selector.Candidates(resp.Ranked),
		Weather:            resp.Weather,
	})
	if cerr != nil {
		return nil, &contract.PlanError{Code: contract.ErrComposerFailed, Message: "plan composer failed", Err: cerr}
	}
	resp.PlanOptions = options
	fields["plan_options"] = len(options)

	_ = s.publisher.Publish(ctx, events.SubjectExcursionPlanned, req.UserID, map[string]any{
		"travel_mode":   plan.Mode,
		"radius_meters": plan.RadiusMeters,
		"candidates":    len(resp.Ranked),
		"plan_options":  len(options),
	})
	return resp, nil
}

// fillFromProfile copies mobility and fitness from the stored profile when
// the request leaves them empty.
func (s *planService) fillFromProfile(ctx context.Context, userID string, uc *domain.UserContext) composer.HistoricalData {
	var history composer.HistoricalData
	if s.profiles == nil || userID == "" {
		return history
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WarnContext(ctx, "profile_lookup_failed", "user_id", userID, "error", err)
		}
		return history
	}
	if uc.MobilityLevel == "" {
		uc.MobilityLevel = p.MobilityLevel
	}
	if uc.FitnessLevel == "" {
		uc.FitnessLevel = p.FitnessLevel
	}
	return composer.HistoricalData{
		Age:                 p.Age,
		MobilityLevel:       p.MobilityLevel,
		FitnessLevel:        p.FitnessLevel,
		RiskTolerance:       p.RiskTolerance,
		PreferredActivities: p.PreferredActivities,
	}
}

func (s *planService) fetchWeather(ctx context.Context, at domain.Coordinates) *domain.WeatherSnapshot {
	if s.weather == nil {
		return nil
	}
	snap, err := s.weather.Snapshot(ctx, at)
	if err != nil {
		s.logger.WarnContext(ctx, "weather_unavailable", "error", err)
		return nil
	}
	return snap
}

func planErrorOutcome(err error) string {
	var pe *contract.PlanError
	if errors.As(err, &pe) {
		switch pe.Code {
		case contract.ErrInvalidInput:
			return PlanOutcomeInvalidInput
		case contract.ErrComposerFailed:
			return PlanOutcomeComposerFailed
		}
	}
	return "error"
}
