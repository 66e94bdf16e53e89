package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/db"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/events"
	"github.com/alexanderramin/wander/internal/repository"
	"github.com/google/uuid"
)

type sessionService struct {
	sessions   repository.SessionRepo
	excursions repository.ExcursionRepo
	checkIns   repository.CheckInRepo
	uow        db.UnitOfWork
	composer   composer.Composer
	publisher  events.Publisher
	observer   UseCaseObserver
	now        func() time.Time
}

// SessionRepos groups the stores a SessionService reads outside transactions.
type SessionRepos struct {
	Sessions   repository.SessionRepo
	Excursions repository.ExcursionRepo
	CheckIns   repository.CheckInRepo
}

func NewSessionService(
	repos SessionRepos,
	uow db.UnitOfWork,
	c composer.Composer,
	publisher events.Publisher,
	observers ...UseCaseObserver,
) SessionService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &sessionService{
		sessions:   repos.Sessions,
		excursions: repos.Excursions,
		checkIns:   repos.CheckIns,
		uow:        uow,
		composer:   c,
		publisher:  publisher,
		observer:   combineObservers(observers),
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

func (s *sessionService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *sessionService) Choose(ctx context.Context, req contract.ChooseRequest) (sess *domain.ExcursionSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": req.UserID}
	defer func() { s.observe(ctx, "choose-excursion", startedAt, err, fields) }()

	if verr := req.Plan.Validate(); verr != nil {
		return nil, &contract.SessionError{Code: contract.ErrSessionInvalid, Message: verr.Error(), Err: verr}
	}
	planJSON, err := json.Marshal(req.Plan)
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}

	now := s.now()
	ro := req.Plan.RouteOverview
	excursion := &domain.Excursion{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Title:           ro.Title,
		Description:     ro.Description,
		DurationMinutes: ro.TotalDurationMinutes,
		DistanceKm:      ro.TotalDistanceKm,
		Difficulty:      ro.Difficulty,
		TransportMode:   transportMode(ro.TransportMode),
		PlanJSON:        string(planJSON),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	sess = &domain.ExcursionSession{
		ID:          uuid.New().String(),
		ExcursionID: excursion.ID,
		UserID:      req.UserID,
		Status:      domain.SessionPlanned,
		Phase:       domain.PhasePlan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteExcursionRepo(tx).Create(ctx, excursion); err != nil {
			return err
		}
		return repository.NewSQLiteSessionRepo(tx).Create(ctx, sess)
	})
	if err != nil {
		return nil, err
	}
	fields["session_id"] = sess.ID
	fields["excursion_id"] = excursion.ID
	return sess, nil
}

func transportMode(raw string) domain.TravelMode {
	if raw == string(domain.TravelDriving) {
		return domain.TravelDriving
	}
	return domain.TravelWalking
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*domain.ExcursionSession, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return sess, nil
}

func (s *sessionService) Start(ctx context.Context, sessionID string) (sess *domain.ExcursionSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": sessionID}
	defer func() { s.observe(ctx, "start-session", startedAt, err, fields) }()

	sess, plan, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if terr := sess.Start(s.now()); terr != nil {
		return nil, &contract.SessionError{Code: contract.ErrInvalidTransition, Message: terr.Error()}
	}
	if len(plan.Zones) > 0 {
		sess.CurrentZoneID = plan.Zones[0].ID
	}
	if err = s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Guide(ctx context.Context, req contract.GuideRequest) (guidance *composer.Guidance, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": req.SessionID, "check_ins": len(req.CheckIns)}
	defer func() { s.observe(ctx, "guide-session", startedAt, err, fields) }()

	sess, plan, err := s.load(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionActive || sess.Phase != domain.PhaseGuide {
		return nil, &contract.SessionError{
			Code:    contract.ErrInvalidTransition,
			Message: fmt.Sprintf("session is %s in phase %s, not guiding", sess.Status, sess.Phase),
		}
	}

	zoneID := req.ZoneID
	if zoneID == "" {
		zoneID = sess.CurrentZoneID
	}
	if zoneID != "" && !hasZone(plan, zoneID) {
		return nil, &contract.SessionError{Code: contract.ErrSessionInvalid, Message: fmt.Sprintf("zone %q is not part of this excursion", zoneID)}
	}

	now := s.now()
	records, err := toCheckIns(sess.ID, zoneID, req.CheckIns, now)
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		if err = s.storeCheckIns(ctx, records, nil); err != nil {
			return nil, err
		}
	}

	history, err := s.checkIns.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("loading check-ins: %w", err)
	}

	guidance, err = s.composer.Guide(ctx, composer.GuideContext{
		Phase:             domain.PhaseGuide,
		SelectedExcursion: *plan,
		CurrentZoneID:     zoneID,
		PreviousCheckIns:  toAnswers(history),
	})
	if err != nil {
		return nil, &contract.SessionError{Code: contract.ErrSessionComposer, Message: "guidance composer failed", Err: err}
	}

	if hasZone(plan, guidance.TargetZoneID) {
		sess.CurrentZoneID = guidance.TargetZoneID
	} else {
		sess.CurrentZoneID = zoneID
	}
	sess.LastGuidedAt = &now
	sess.UpdatedAt = now
	if guidance.NextAction == composer.NextEndExcursion {
		if err = sess.BeginReflection(now); err != nil {
			return nil, err
		}
	}
	fields["next_action"] = string(guidance.NextAction)
	if err = s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return guidance, nil
}

func (s *sessionService) Reflect(ctx context.Context, sessionID string) (reflection *composer.Reflection, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": sessionID}
	defer func() { s.observe(ctx, "reflect-session", startedAt, err, fields) }()

	sess, plan, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionActive {
		return nil, &contract.SessionError{
			Code:    contract.ErrInvalidTransition,
			Message: fmt.Sprintf("cannot reflect on session in status %s", sess.Status),
		}
	}

	history, err := s.checkIns.ListBySession(ctx, sess.ID)
	if err != nil {
		return nil, fmt.Errorf("loading check-ins: %w", err)
	}

	now := s.now()
	reflection, err = s.composer.Reflect(ctx, composer.ReflectContext{
		Phase:          domain.PhaseReflect,
		SessionSummary: summarize(sess, plan, history, now),
	})
	if err != nil {
		return nil, &contract.SessionError{Code: contract.ErrSessionComposer, Message: "reflection composer failed", Err: err}
	}

	if sess.Phase != domain.PhaseReflect {
		if err = sess.BeginReflection(now); err != nil {
			return nil, err
		}
		if err = s.sessions.Update(ctx, sess); err != nil {
			return nil, err
		}
	}
	return reflection, nil
}

func (s *sessionService) SubmitReflection(ctx context.Context, sessionID string, answers []contract.CheckInInput) (sess *domain.ExcursionSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": sessionID, "answers": len(answers)}
	defer func() { s.observe(ctx, "submit-reflection", startedAt, err, fields) }()

	sess, err = s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	now := s.now()
	records, err := toCheckIns(sess.ID, domain.ReflectionZoneID, answers, now)
	if err != nil {
		return nil, err
	}
	if terr := sess.Complete(now); terr != nil {
		return nil, &contract.SessionError{Code: contract.ErrInvalidTransition, Message: terr.Error()}
	}

	if err = s.storeCheckIns(ctx, records, sess); err != nil {
		return nil, err
	}

	var duration int
	if sess.StartedAt != nil {
		duration = int(now.Sub(*sess.StartedAt).Minutes())
	}
	_ = s.publisher.Publish(ctx, events.SubjectSessionCompleted, sess.UserID, map[string]any{
		"session_id":       sess.ID,
		"excursion_id":     sess.ExcursionID,
		"duration_minutes": duration,
		"answers":          len(records),
	})
	return sess, nil
}

// storeCheckIns writes check-ins and, when given, the updated session in one
// transaction.
func (s *sessionService) storeCheckIns(ctx context.Context, records []*domain.CheckIn, sess *domain.ExcursionSession) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCheckIns := repository.NewSQLiteCheckInRepo(tx)
		for _, c := range records {
			if err := txCheckIns.Create(ctx, c); err != nil {
				return err
			}
		}
		if sess == nil {
			return nil
		}
		return repository.NewSQLiteSessionRepo(tx).Update(ctx, sess)
	})
}

// load fetches a session with its decoded plan.
func (s *sessionService) load(ctx context.Context, sessionID string) (*domain.ExcursionSession, *composer.PlanOption, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, notFoundOr(err)
	}
	excursion, err := s.excursions.GetByID(ctx, sess.ExcursionID)
	if err != nil {
		return nil, nil, notFoundOr(err)
	}
	var plan composer.PlanOption
	if err := json.Unmarshal([]byte(excursion.PlanJSON), &plan); err != nil {
		return nil, nil, fmt.Errorf("decoding stored plan: %w", err)
	}
	return sess, &plan, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &contract.SessionError{Code: contract.ErrSessionNotFound, Message: err.Error(), Err: err}
	}
	return err
}

func hasZone(plan *composer.PlanOption, zoneID string) bool {
	for _, z := range plan.Zones {
		if z.ID == zoneID {
			return true
		}
	}
	return false
}

func toCheckIns(sessionID, defaultZone string, in []contract.CheckInInput, now time.Time) ([]*domain.CheckIn, error) {
	out := make([]*domain.CheckIn, 0, len(in))
	for _, a := range in {
		zone := a.ZoneID
		if zone == "" {
			zone = defaultZone
		}
		c := &domain.CheckIn{
			ID:          uuid.New().String(),
			SessionID:   sessionID,
			ZoneID:      zone,
			CheckInID:   a.CheckInID,
			Type:        domain.CheckInType(a.Type),
			ValueNumber: a.Number,
			ValueText:   a.Text,
			CreatedAt:   now,
		}
		if c.CheckInID == "" {
			return nil, &contract.SessionError{Code: contract.ErrSessionInvalid, Message: "check_in_id is required"}
		}
		if err := c.Validate(); err != nil {
			return nil, &contract.SessionError{Code: contract.ErrSessionInvalid, Message: err.Error(), Err: err}
		}
		out = append(out, c)
	}
	return out, nil
}

func toAnswers(history []*domain.CheckIn) []composer.CheckInAnswer {
	out := make([]composer.CheckInAnswer, 0, len(history))
	for _, c := range history {
		out = append(out, composer.CheckInAnswer{
			ZoneID:    c.ZoneID,
			CheckInID: c.CheckInID,
			Type:      string(c.Type),
			Number:    c.ValueNumber,
			Text:      c.ValueText,
		})
	}
	return out
}

func summarize(sess *domain.ExcursionSession, plan *composer.PlanOption, history []*domain.CheckIn, now time.Time) composer.SessionSummary {
	summary := composer.SessionSummary{
		Title:    plan.RouteOverview.Title,
		CheckIns: toAnswers(history),
	}
	if sess.StartedAt != nil {
		summary.DurationMinutes = int(now.Sub(*sess.StartedAt).Minutes())
	}
	seen := map[string]bool{}
	for _, c := range history {
		if c.ZoneID == domain.ReflectionZoneID || seen[c.ZoneID] {
			continue
		}
		seen[c.ZoneID] = true
		summary.ZonesVisited = append(summary.ZonesVisited, c.ZoneID)
	}
	if sess.CurrentZoneID != "" && !seen[sess.CurrentZoneID] {
		summary.ZonesVisited = append(summary.ZonesVisited, sess.CurrentZoneID)
	}
	return summary
}
