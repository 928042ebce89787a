package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// maxUploadMemory is the multipart form size kept in memory before spilling to disk
const maxUploadMemory = 32 << 20

// BrandHandler handles HTTP requests for the brand catalog
type BrandHandler struct {
	store    *simplepitch.Store
	uploader *simplepitch.Uploader
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(store *simplepitch.Store, uploader *simplepitch.Uploader) *BrandHandler {
	return &BrandHandler{store: store, uploader: uploader}
}

// Routes returns the routes for brands
func (h *BrandHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListBrands)
	r.Post("/", h.CreateBrand)
	r.Post("/upload", h.UploadBrand)
	r.Get("/{id}", h.GetBrand)
	r.Put("/{id}", h.UpdateBrand)
	r.Delete("/{id}", h.DeleteBrand)

	// Slide management
	r.Post("/{id}/slides", h.AddSlides)
	r.Post("/{id}/slides/upload", h.UploadSlides)
	r.Patch("/{id}/slides/{slideID}", h.RenameSlide)
	r.Delete("/{id}/slides/{slideID}", h.RemoveSlide)
	r.Post("/{id}/slides/{slideID}/move", h.MoveSlide)
	r.Post("/{id}/slides/{slideID}/reorder", h.ReorderSlide)

	return r
}

// SlideRequest is the request body for a slide added by URL
type SlideRequest struct {
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Name         string `json:"name"`
}

func (s SlideRequest) slide() (simplepitch.Slide, error) {
	if strings.TrimSpace(s.URL) == "" {
		return simplepitch.Slide{}, fmt.Errorf("slide url is required")
	}
	t := simplepitch.SlideType(s.Type)
	if t == "" {
		t = simplepitch.SlideTypeImage
	}
	if !t.IsValid() {
		return simplepitch.Slide{}, fmt.Errorf("invalid slide type %q", s.Type)
	}
	return simplepitch.Slide{
		ID:           uuid.New().String(),
		Type:         t,
		URL:          s.URL,
		ThumbnailURL: s.ThumbnailURL,
		Name:         s.Name,
	}, nil
}

func slidesFrom(reqs []SlideRequest) ([]simplepitch.Slide, error) {
	out := make([]simplepitch.Slide, 0, len(reqs))
	for _, s := range reqs {
		slide, err := s.slide()
		if err != nil {
			return nil, err
		}
		out = append(out, slide)
	}
	return out, nil
}

// CreateBrandRequest is the request body for creating a brand by hand
type CreateBrandRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Slides      []SlideRequest `json:"slides"`
}

// UpdateBrandRequest is the request body for editing brand details
type UpdateBrandRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AddSlidesRequest is the request body for appending slides by URL
type AddSlidesRequest struct {
	Slides []SlideRequest `json:"slides"`
}

// MoveSlideRequest is the request body for shifting a slide one position
type MoveSlideRequest struct {
	Direction string `json:"direction"`
}

// ReorderSlideRequest is the request body for a drag-and-drop reorder
type ReorderSlideRequest struct {
	TargetID string `json:"targetId"`
}

// RenameSlideRequest is the request body for renaming a slide
type RenameSlideRequest struct {
	Name string `json:"name"`
}

// ListBrands lists the catalog in order
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.store.Brands())
}

// GetBrand returns one brand
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, ok := h.store.Brand(id)
	if !ok {
		handleError(w, r, &simplepitch.BrandError{BrandID: id, Op: "get", Err: simplepitch.ErrBrandNotFound})
		return
	}
	render.JSON(w, r, b)
}

// CreateBrand creates a brand from a JSON body
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(w, r, "brand name is required")
		return
	}
	slides, err := slidesFrom(req.Slides)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	b := simplepitch.NewBrand(simplepitch.CreateBrandRequest{
		Name:        req.Name,
		Description: req.Description,
		Slides:      slides,
	})
	h.store.SaveBrand(b)

	slog.Info("Brand created", "brand_id", b.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, b)
}

// UploadBrand creates a brand from an uploaded PDF or image
func (h *BrandHandler) UploadBrand(w http.ResponseWriter, r *http.Request) {
	file, ok := readUpload(w, r)
	if !ok {
		return
	}

	b, err := h.uploader.CreateBrand(r.Context(), file)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, b)
}

// UpdateBrand edits a brand's name or description
func (h *BrandHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var req UpdateBrandRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		badRequest(w, r, "brand name cannot be empty")
		return
	}

	b, err := h.store.UpdateBrand(chi.URLParam(r, "id"), func(b simplepitch.Brand) simplepitch.Brand {
		if req.Name != nil {
			b.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			b.Description = *req.Description
		}
		return b
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// DeleteBrand removes a brand. Unknown ids succeed.
func (h *BrandHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteBrand(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// AddSlides appends slides given by URL
func (h *BrandHandler) AddSlides(w http.ResponseWriter, r *http.Request) {
	var req AddSlidesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	slides, err := slidesFrom(req.Slides)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	b, err := h.store.AddSlides(chi.URLParam(r, "id"), slides...)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// UploadSlides appends the pages of an uploaded file to a brand
func (h *BrandHandler) UploadSlides(w http.ResponseWriter, r *http.Request) {
	file, ok := readUpload(w, r)
	if !ok {
		return
	}

	b, err := h.uploader.AddSlides(r.Context(), chi.URLParam(r, "id"), file)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// RemoveSlide removes a slide from its brand
func (h *BrandHandler) RemoveSlide(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.RemoveSlide(chi.URLParam(r, "id"), chi.URLParam(r, "slideID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// MoveSlide shifts a slide one position left or right
func (h *BrandHandler) MoveSlide(w http.ResponseWriter, r *http.Request) {
	var req MoveSlideRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	dir := simplepitch.Direction(req.Direction)
	if !dir.IsValid() {
		badRequest(w, r, "direction must be left or right")
		return
	}

	b, err := h.store.MoveSlide(chi.URLParam(r, "id"), chi.URLParam(r, "slideID"), dir)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// ReorderSlide moves a slide to the position of the target slide
func (h *BrandHandler) ReorderSlide(w http.ResponseWriter, r *http.Request) {
	var req ReorderSlideRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	b, err := h.store.ReorderSlide(chi.URLParam(r, "id"), chi.URLParam(r, "slideID"), req.TargetID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// RenameSlide renames a slide
func (h *BrandHandler) RenameSlide(w http.ResponseWriter, r *http.Request) {
	var req RenameSlideRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err.Error())
		return
	}

	b, err := h.store.RenameSlide(chi.URLParam(r, "id"), chi.URLParam(r, "slideID"), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	render.JSON(w, r, b)
}

// readUpload reads the "file" part of a multipart request. It writes the
// error response itself and reports false when the request is unusable.
func readUpload(w http.ResponseWriter, r *http.Request) (simplepitch.UploadedFile, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		badRequest(w, r, "expected a multipart form: "+err.Error())
		return simplepitch.UploadedFile{}, false
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, r, "file is required")
		return simplepitch.UploadedFile{}, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Failed to read upload", "file_name", header.Filename, "error", err)
		badRequest(w, r, "failed to read file")
		return simplepitch.UploadedFile{}, false
	}

	return simplepitch.UploadedFile{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Data:     data,
	}, true
}
