package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// PresentationHandler handles slide selection and playback sessions
type PresentationHandler struct {
	store    *simplepitch.Store
	sessions *simplepitch.SessionRegistry
	logger   *slog.Logger
}

// NewPresentationHandler creates a new presentation handler
func NewPresentationHandler(store *simplepitch.Store, sessions *simplepitch.SessionRegistry, logger *slog.Logger) *PresentationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PresentationHandler{store: store, sessions: sessions, logger: logger}
}

// SelectionRoutes returns the routes for confirming a slide selection
func (h *PresentationHandler) SelectionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ConfirmSelection)
	return r
}

// Routes returns the routes for presentation sessions
func (h *PresentationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.StartPresentation)
	r.Get("/{id}", h.GetPresentation)
	r.Delete("/{id}", h.ClosePresentation)

	r.Post("/{id}/next", h.Next)
	r.Post("/{id}/previous", h.Previous)
	r.Post("/{id}/jump", h.JumpToBrand)
	r.Post("/{id}/key", h.Input)
	r.Post("/{id}/fullscreen", h.ToggleFullscreen)

	return r
}

// SelectionRequest is the request body for confirming a selection
type SelectionRequest struct {
	SlideIDs      []string `json:"slideIds"`
	DoctorID      string   `json:"doctorId,omitempty"`
	SaveAsDefault bool     `json:"saveAsDefault"`
}

// SelectionResponse is the resolved playlist for a confirmed selection
type SelectionResponse struct {
	SlideIDs []string               `json:"slideIds"`
	Playlist []PlaylistItemResponse `json:"playlist"`
	Saved    bool                   `json:"saved"`
}

// PresentationRequest is the request body for starting a presentation. At
// most one of SlideIDs, DoctorID and BrandID picks the content; with none the
// whole catalog is shown. SlideIDs play in catalog order, like a confirmed
// selection. DoctorID also labels a custom playlist.
type PresentationRequest struct {
	SlideIDs []string `json:"slideIds,omitempty"`
	DoctorID string   `json:"doctorId,omitempty"`
	BrandID  string   `json:"brandId,omitempty"`
}

// JumpRequest is the request body for jumping to a brand
type JumpRequest struct {
	Index int `json:"index"`
}

// InputRequest carries either a key name or a horizontal swipe
type InputRequest struct {
	Key    string   `json:"key,omitempty"`
	StartX *float64 `json:"startX,omitempty"`
	EndX   *float64 `json:"endX,omitempty"`
}

// ConfirmSelection resolves the selected slides into a playlist, saving it as
// the doctor's default when asked
func (h *PresentationHandler) ConfirmSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	playlist, err := h.store.ConfirmSelection(simplepitch.ConfirmRequest{
		Selection:     simplepitch.NewSelection(req.SlideIDs...),
		DoctorID:      req.DoctorID,
		SaveAsDefault: req.SaveAsDefault,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	render.JSON(w, r, SelectionResponse{
		SlideIDs: playlist.SlideIDs(),
		Playlist: playlistResponse(playlist),
		Saved:    req.SaveAsDefault && req.DoctorID != "",
	})
}

// StartPresentation opens a playback session
func (h *PresentationHandler) StartPresentation(w http.ResponseWriter, r *http.Request) {
	var req PresentationRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, r, err.Error())
		return
	}

	planReq := simplepitch.PresentationRequest{DoctorID: req.DoctorID, BrandID: req.BrandID}
	if len(req.SlideIDs) > 0 {
		planReq.Playlist = simplepitch.ResolveSelection(h.store.Brands(), simplepitch.NewSelection(req.SlideIDs...))
		if len(planReq.Playlist) == 0 {
			handleError(w, r, simplepitch.ErrEmptySelection)
			return
		}
	}

	nav, doctor, err := h.store.Plan(planReq)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s := h.sessions.Open(nav, simplepitch.WithDoctor(doctor), simplepitch.WithSessionLogger(h.logger))
	h.logger.Info("Presentation started", "session_id", s.ID(), "mode", nav.Mode())

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, s.View())
}

func (h *PresentationHandler) session(w http.ResponseWriter, r *http.Request) (*simplepitch.Session, bool) {
	s, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return nil, false
	}
	return s, true
}

// GetPresentation returns the current view of a session
func (h *PresentationHandler) GetPresentation(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, s.View())
}

// Next advances one slide
func (h *PresentationHandler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, s.Next())
}

// Previous goes back one slide
func (h *PresentationHandler) Previous(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, s.Previous())
}

// JumpToBrand moves to the first slide of a brand
func (h *PresentationHandler) JumpToBrand(w http.ResponseWriter, r *http.Request) {
	var req JumpRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	view, err := s.JumpToBrand(req.Index)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// Input applies a key press or a swipe. An Escape or close action ends the
// session and forgets it.
func (h *PresentationHandler) Input(w http.ResponseWriter, r *http.Request) {
	var req InputRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var action simplepitch.Action
	switch {
	case req.Key != "":
		action = simplepitch.KeyAction(req.Key)
	case req.StartX != nil && req.EndX != nil:
		action = simplepitch.SwipeAction(*req.StartX, *req.EndX)
	default:
		badRequest(w, r, "key or startX and endX are required")
		return
	}

	view := s.Apply(action)
	if view.Closed {
		_ = h.sessions.Close(s.ID())
	}
	render.JSON(w, r, view)
}

// ToggleFullscreen enters or leaves the exclusive display mode
func (h *PresentationHandler) ToggleFullscreen(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, s.ToggleFullscreen())
}

// ClosePresentation ends a session
func (h *PresentationHandler) ClosePresentation(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
