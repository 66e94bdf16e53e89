package contract

import "github.com/alexanderramin/wander/internal/composer"

// ChooseRequest persists one plan option as an excursion and opens a session.
type ChooseRequest struct {
	UserID string
	Plan   composer.PlanOption
}

// CheckInInput is one answer submitted during guidance or reflection.
type CheckInInput struct {
	ZoneID    string   `json:"zone_id,omitempty"`
	CheckInID string   `json:"check_in_id"`
	Type      string   `json:"type"`
	Number    *float64 `json:"value_number,omitempty"`
	Text      string   `json:"value_text,omitempty"`
}

// GuideRequest records check-ins for a zone and asks for the next guidance.
type GuideRequest struct {
	SessionID string
	ZoneID    string
	CheckIns  []CheckInInput
}

type SessionErrorCode string

const (
	ErrSessionNotFound   SessionErrorCode = "NOT_FOUND"
	ErrInvalidTransition SessionErrorCode = "INVALID_TRANSITION"
	ErrSessionInvalid    SessionErrorCode = "INVALID_INPUT"
	ErrSessionComposer   SessionErrorCode = "COMPOSER_FAILED"
)

type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

func (e *SessionError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *SessionError) Unwrap() error { return e.Err }
