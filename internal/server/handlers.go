package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/wander/internal/auth"
	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/service"
)

type handlers struct {
	svcs   Services
	logger *slog.Logger
	ws     WebSocketConfig
}

type planBody struct {
	domain.UserContext
	TopN        int  `json:"top_n,omitempty"`
	SkipCompose bool `json:"skip_compose,omitempty"`
}

func (h *handlers) plan(w http.ResponseWriter, r *http.Request) {
	var body planBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	req := contract.PlanRequest{
		UserID:      auth.UserID(r.Context()),
		Context:     body.UserContext,
		TopN:        body.TopN,
		SkipCompose: body.SkipCompose,
	}

	resp, err := h.svcs.Plan.Plan(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) listLocations(w http.ResponseWriter, r *http.Request) {
	var (
		locs []*domain.CustomLocation
		err  error
	)
	if mine, _ := strconv.ParseBool(r.URL.Query().Get("mine")); mine {
		locs, err = h.svcs.Locations.ListMine(r.Context(), auth.UserID(r.Context()))
	} else {
		locs, err = h.svcs.Locations.List(r.Context())
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locations": mapSlice(locs, toLocationView)})
}

func (h *handlers) addLocation(w http.ResponseWriter, r *http.Request) {
	var in service.LocationInput
	if err := decode(r, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	loc, err := h.svcs.Locations.Add(r.Context(), auth.UserID(r.Context()), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLocationView(loc))
}

func (h *handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svcs.Profiles.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(p))
}

func (h *handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var body profileView
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	p := &domain.UserProfile{
		UserID:              auth.UserID(r.Context()),
		MobilityLevel:       body.MobilityLevel,
		FitnessLevel:        body.FitnessLevel,
		Age:                 body.Age,
		RiskTolerance:       body.RiskTolerance,
		PreferredActivities: body.PreferredActivities,
	}
	if err := h.svcs.Profiles.Update(r.Context(), p); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileView(p))
}

func (h *handlers) listExcursions(w http.ResponseWriter, r *http.Request) {
	list, err := h.svcs.Excursions.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"excursions": mapSlice(list, toExcursionView)})
}

func (h *handlers) listFavorites(w http.ResponseWriter, r *http.Request) {
	list, err := h.svcs.Excursions.ListFavorites(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"excursions": mapSlice(list, toExcursionView)})
}

func (h *handlers) setFavorite(favorite bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.svcs.Excursions.SetFavorite(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), favorite)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type chooseBody struct {
	Plan composer.PlanOption `json:"plan"`
}

func (h *handlers) chooseExcursion(w http.ResponseWriter, r *http.Request) {
	var body chooseBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	sess, err := h.svcs.Sessions.Choose(r.Context(), contract.ChooseRequest{
		UserID: auth.UserID(r.Context()),
		Plan:   body.Plan,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionView(sess))
}

// ownedSession loads the session in the URL and hides sessions that belong
// to another user.
func (h *handlers) ownedSession(r *http.Request) (*domain.ExcursionSession, error) {
	id := chi.URLParam(r, "id")
	sess, err := h.svcs.Sessions.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if sess.UserID != auth.UserID(r.Context()) {
		return nil, &contract.SessionError{Code: contract.ErrSessionNotFound, Message: "session " + id + " not found"}
	}
	return sess, nil
}

func (h *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ownedSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(sess))
}

func (h *handlers) startSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ownedSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	sess, err = h.svcs.Sessions.Start(r.Context(), sess.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(sess))
}

type guideBody struct {
	ZoneID   string                  `json:"zone_id,omitempty"`
	CheckIns []contract.CheckInInput `json:"check_ins,omitempty"`
}

func (h *handlers) guideSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ownedSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body guideBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	guidance, err := h.svcs.Sessions.Guide(r.Context(), contract.GuideRequest{
		SessionID: sess.ID,
		ZoneID:    body.ZoneID,
		CheckIns:  body.CheckIns,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"guidance": guidance})
}

func (h *handlers) reflectSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ownedSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	reflection, err := h.svcs.Sessions.Reflect(r.Context(), sess.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reflection": reflection})
}

type reflectBody struct {
	Answers []contract.CheckInInput `json:"answers"`
}

func (h *handlers) submitReflection(w http.ResponseWriter, r *http.Request) {
	sess, err := h.ownedSession(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var body reflectBody
	if err := decode(r, &body); err != nil {
		h.fail(w, r, err)
		return
	}
	sess, err = h.svcs.Sessions.SubmitReflection(r.Context(), sess.ID, body.Answers)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionView(sess))
}
