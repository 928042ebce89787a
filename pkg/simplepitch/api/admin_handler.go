package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// Resetter clears persisted state and empties the store
type Resetter interface {
	Reset(ctx context.Context) error
}

// storeResetter empties the store when nothing is persisted
type storeResetter struct {
	store *simplepitch.Store
}

func (r storeResetter) Reset(context.Context) error {
	r.store.Reset()
	return nil
}

// AdminHandler handles maintenance requests
type AdminHandler struct {
	resetter Resetter
	sessions *simplepitch.SessionRegistry
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(resetter Resetter, sessions *simplepitch.SessionRegistry) *AdminHandler {
	return &AdminHandler{resetter: resetter, sessions: sessions}
}

// Routes returns the routes for admin
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/reset", h.Reset)
	return r
}

// ResetResponse reports the outcome of a reset
type ResetResponse struct {
	Status string `json:"status"`
}

// Reset clears all persisted data in every backend and empties the catalog
// and directory. Open sessions keep their own copies and are unaffected.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.resetter.Reset(r.Context()); err != nil {
		slog.Error("Failed to reset data", "error", err)
		writeError(w, r, http.StatusInternalServerError, "reset_failed", err.Error(), RecoveryReload)
		return
	}
	slog.Warn("All data reset", "request_id", RequestID(r.Context()), "open_sessions", h.sessions.Len())
	render.JSON(w, r, ResetResponse{Status: "reset"})
}
