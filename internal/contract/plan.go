package contract

import (
	"time"

	"github.com/alexanderramin/wander/internal/composer"
	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/gather"
)

// PlanRequest asks for ranked nature spots and excursion plans near a user.
type PlanRequest struct {
	UserID  string
	Context domain.UserContext
	TopN    int
	// SkipCompose returns ranked candidates without calling the composer.
	SkipCompose bool
	Now         *time.Time
}

// NewPlanRequest returns a request with the default ranking depth.
func NewPlanRequest(uc domain.UserContext) PlanRequest {
	return PlanRequest{
		Context: uc,
		TopN:    10,
	}
}

// NoLocationsReason is the machine-readable reason for an empty result.
const NoLocationsReason = "no_locations_found"

// NoLocations is returned instead of plans when nothing survives filtering.
type NoLocations struct {
	Reason         string `json:"reason"`
	MessageForUser string `json:"message_for_user"`
}

// NewNoLocations builds the outcome for an empty candidate set.
func NewNoLocations() *NoLocations {
	return &NoLocations{
		Reason:         NoLocationsReason,
		MessageForUser: "We couldn't find any nature spots reachable in the time you have. Try allowing a little more time, or add a spot you know with `wander location add`.",
	}
}

// PlanResponse carries either ranked candidates with plans or a no-locations
// outcome.
type PlanResponse struct {
	GeneratedAt  time.Time                `json:"generated_at"`
	TravelMode   domain.TravelMode        `json:"travel_mode"`
	RadiusMeters float64                  `json:"search_radius_meters"`
	Ranked       []domain.ScoredCandidate `json:"ranked_candidates,omitempty"`
	PlanOptions  []composer.PlanOption    `json:"plan_options,omitempty"`
	Weather      *domain.WeatherSnapshot  `json:"weather,omitempty"`
	NoLocations  *NoLocations             `json:"no_locations,omitempty"`
	Sources      []gather.SourceReport    `json:"-"`
	Warnings     []string                 `json:"warnings,omitempty"`
}

type PlanErrorCode string

const (
	ErrInvalidInput   PlanErrorCode = "INVALID_INPUT"
	ErrComposerFailed PlanErrorCode = "COMPOSER_FAILED"
	ErrInternalError  PlanErrorCode = "INTERNAL_ERROR"
)

type PlanError struct {
	Code    PlanErrorCode
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *PlanError) Unwrap() error { return e.Err }
