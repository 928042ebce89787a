package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Recovery options offered by unexpected-failure responses
const (
	RecoveryReload = "reload"
	RecoveryReset  = "reset"
)

// ErrorBody is the payload of every error response
type ErrorBody struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	RequestID string   `json:"request_id,omitempty"`
	Recovery  []string `json:"recovery,omitempty"`
}

// ErrorResponse wraps ErrorBody under an "error" key
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, recovery ...string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: RequestID(r.Context()),
		Recovery:  recovery,
	}})
}

func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, http.StatusBadRequest, "bad_request", message)
}

// handleError maps domain errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, simplepitch.ErrBrandNotFound):
		writeError(w, r, http.StatusNotFound, "brand_not_found", err.Error())
	case errors.Is(err, simplepitch.ErrDoctorNotFound):
		writeError(w, r, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, simplepitch.ErrSlideNotFound):
		writeError(w, r, http.StatusNotFound, "slide_not_found", err.Error())
	case errors.Is(err, simplepitch.ErrSessionNotFound):
		writeError(w, r, http.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, simplepitch.ErrInvalidDoctor):
		writeError(w, r, http.StatusBadRequest, "invalid_doctor", "name and specialty are required")
	case errors.Is(err, simplepitch.ErrEmptySelection):
		writeError(w, r, http.StatusBadRequest, "empty_selection", "select at least one slide")
	case errors.Is(err, simplepitch.ErrNotHierarchical):
		writeError(w, r, http.StatusConflict, "not_hierarchical", err.Error())
	case errors.Is(err, simplepitch.ErrBrandOutOfRange):
		writeError(w, r, http.StatusBadRequest, "brand_out_of_range", err.Error())
	default:
		slog.Error("Request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", err.Error(), RecoveryReload, RecoveryReset)
	}
}
