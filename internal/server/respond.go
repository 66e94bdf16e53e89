package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexanderramin/wander/internal/contract"
	"github.com/alexanderramin/wander/internal/repository"
	"github.com/alexanderramin/wander/internal/service"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// classify maps a use-case error to an HTTP status and error body.
func classify(err error) (int, errorBody) {
	var pe *contract.PlanError
	if errors.As(err, &pe) {
		status := http.StatusInternalServerError
		switch pe.Code {
		case contract.ErrInvalidInput:
			status = http.StatusBadRequest
		case contract.ErrComposerFailed:
			status = http.StatusBadGateway
		}
		return status, errorBody{Code: string(pe.Code), Message: pe.Message}
	}

	var se *contract.SessionError
	if errors.As(err, &se) {
		status := http.StatusInternalServerError
		switch se.Code {
		case contract.ErrSessionNotFound:
			status = http.StatusNotFound
		case contract.ErrInvalidTransition:
			status = http.StatusConflict
		case contract.ErrSessionInvalid:
			status = http.StatusBadRequest
		case contract.ErrSessionComposer:
			status = http.StatusBadGateway
		}
		return status, errorBody{Code: string(se.Code), Message: se.Message}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, service.ErrInvalidLocation), errors.Is(err, service.ErrInvalidProfile), errors.Is(err, errBadRequest):
		return http.StatusBadRequest, errorBody{Code: "INVALID_INPUT", Message: err.Error()}
	}
	return http.StatusInternalServerError, errorBody{Code: string(contract.ErrInternalError), Message: "internal error"}
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := classify(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request_failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: body})
}

var errBadRequest = errors.New("malformed request")

// decode reads a single JSON document, rejecting unknown fields.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
