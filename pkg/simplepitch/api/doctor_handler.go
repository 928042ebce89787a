package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// DoctorHandler handles HTTP requests for the client directory
type DoctorHandler struct {
	store *simplepitch.Store
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(store *simplepitch.Store) *DoctorHandler {
	return &DoctorHandler{store: store}
}

// Routes returns the routes for doctors
func (h *DoctorHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListDoctors)
	r.Post("/", h.CreateDoctor)
	r.Get("/{id}", h.GetDoctor)
	r.Put("/{id}", h.UpdateDoctor)
	r.Delete("/{id}", h.DeleteDoctor)

	r.Get("/{id}/brands", h.AssignedBrands)
	r.Post("/{id}/brands/{brandID}/toggle", h.ToggleBrand)
	r.Get("/{id}/playlist", h.SavedPlaylist)

	return r
}

// DoctorRequest is the request body for creating or editing a doctor
type DoctorRequest struct {
	Name             string   `json:"name"`
	Specialty        string   `json:"specialty"`
	Hospital         string   `json:"hospital"`
	AssignedBrandIDs []string `json:"assignedBrandIds"`
}

func (req DoctorRequest) domain() simplepitch.DoctorRequest {
	return simplepitch.DoctorRequest{
		Name:             req.Name,
		Specialty:        req.Specialty,
		Hospital:         req.Hospital,
		AssignedBrandIDs: req.AssignedBrandIDs,
	}
}

// PlaylistItemResponse is one resolved slide together with its brand
type PlaylistItemResponse struct {
	Slide   simplepitch.Slide `json:"slide"`
	BrandID string            `json:"brandId"`
	Brand   string            `json:"brandName"`
}

func playlistResponse(p simplepitch.Playlist) []PlaylistItemResponse {
	out := make([]PlaylistItemResponse, 0, len(p))
	for _, item := range p {
		out = append(out, PlaylistItemResponse{Slide: item.Slide, BrandID: item.Brand.ID, Brand: item.Brand.Name})
	}
	return out
}

func (h *DoctorHandler) doctor(w http.ResponseWriter, r *http.Request) (simplepitch.Doctor, bool) {
	id := chi.URLParam(r, "id")
	d, ok := h.store.Doctor(id)
	if !ok {
		handleError(w, r, &simplepitch.DoctorError{DoctorID: id, Op: "get", Err: simplepitch.ErrDoctorNotFound})
	}
	return d, ok
}

// ListDoctors lists doctors, filtered by the optional q query parameter
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.store.SearchDoctors(r.URL.Query().Get("q")))
}

// GetDoctor returns one doctor
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	d, ok := h.doctor(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, d)
}

// CreateDoctor adds a doctor to the directory
func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req DoctorRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	d, err := simplepitch.NewDoctor(req.domain())
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.store.SaveDoctor(d)

	slog.Info("Doctor created", "doctor_id", d.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, d)
}

// UpdateDoctor edits a doctor, keeping the saved playlist
func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req DoctorRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	d, ok := h.doctor(w, r)
	if !ok {
		return
	}

	edited, err := simplepitch.EditDoctor(d, req.domain())
	if err != nil {
		handleError(w, r, err)
		return
	}
	h.store.SaveDoctor(edited)
	render.JSON(w, r, edited)
}

// DeleteDoctor removes a doctor. Unknown ids succeed.
func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteDoctor(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// AssignedBrands lists the doctor's assigned brands in catalog order
func (h *DoctorHandler) AssignedBrands(w http.ResponseWriter, r *http.Request) {
	d, ok := h.doctor(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, h.store.AssignedBrands(d))
}

// ToggleBrand assigns or unassigns a brand
func (h *DoctorHandler) ToggleBrand(w http.ResponseWriter, r *http.Request) {
	d, ok := h.doctor(w, r)
	if !ok {
		return
	}
	d = simplepitch.ToggleBrandAssignment(d, chi.URLParam(r, "brandID"))
	h.store.SaveDoctor(d)
	render.JSON(w, r, d)
}

// SavedPlaylist resolves the doctor's saved playlist against the catalog
func (h *DoctorHandler) SavedPlaylist(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.SavedPlaylist(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, playlistResponse(p))
}
