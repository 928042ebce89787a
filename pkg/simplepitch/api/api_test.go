package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

type stubConverter struct {
	pages []string
}

func (c *stubConverter) Convert(ctx context.Context, file simplepitch.UploadedFile) ([]string, error) {
	return c.pages, nil
}

type testEnv struct {
	router   http.Handler
	store    *simplepitch.Store
	sessions *simplepitch.SessionRegistry
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func slide(id string) simplepitch.Slide {
	return simplepitch.Slide{ID: id, Type: simplepitch.SlideTypeImage, URL: "https://cdn.example.com/" + id + ".jpg", Name: id}
}

// setupTest serves a catalog of brand A [s1, s2] and brand B [s3], plus one
// doctor assigned to B.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	brands := []simplepitch.Brand{
		{ID: "A", Name: "Alpha", Slides: []simplepitch.Slide{slide("s1"), slide("s2")}},
		{ID: "B", Name: "Beta", Slides: []simplepitch.Slide{slide("s3")}},
	}
	doctors := []simplepitch.Doctor{
		{ID: "d1", Name: "Dr. Ada Smith", Specialty: "Cardiology", Hospital: "City", AssignedBrandIDs: []string{"B"}},
	}
	store := simplepitch.NewStore(brands, doctors)
	sessions := simplepitch.NewSessionRegistry()
	converter := &stubConverter{pages: []string{"data:image/jpeg;base64,AAAA", "data:image/jpeg;base64,BBBB"}}

	router := NewRouter(Config{
		Store:    store,
		Uploader: simplepitch.NewUploader(store, converter, simplepitch.WithUploaderLogger(quietLogger())),
		Sessions: sessions,
		Gatherer: prometheus.NewRegistry(),
		Logger:   quietLogger(),
	})
	return &testEnv{router: router, store: store, sessions: sessions}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, path, fileName, mimeType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	h.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func slideNames(b simplepitch.Brand) []string {
	out := make([]string, 0, len(b.Slides))
	for _, s := range b.Slides {
		out = append(out, s.Name)
	}
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	env := setupTest(t)
	w := env.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBrandHandler(t *testing.T) {
	env := setupTest(t)

	t.Run("list in catalog order", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/brands", nil)
		require.Equal(t, http.StatusOK, w.Code)
		brands := decode[[]simplepitch.Brand](t, w)
		require.Len(t, brands, 2)
		assert.Equal(t, "A", brands[0].ID)
		assert.Equal(t, "B", brands[1].ID)
	})

	t.Run("unknown brand", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/brands/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		resp := decode[ErrorResponse](t, w)
		assert.Equal(t, "brand_not_found", resp.Error.Code)
	})

	var created simplepitch.Brand
	t.Run("create", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{
			Name:   "  Gamma ",
			Slides: []SlideRequest{{URL: "https://x/1.jpg", Name: "one"}, {URL: "https://x/2.pdf", Type: "pdf", Name: "two"}},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created = decode[simplepitch.Brand](t, w)
		assert.Equal(t, "Gamma", created.Name)
		require.Len(t, created.Slides, 2)
		assert.Equal(t, simplepitch.SlideTypeImage, created.Slides[0].Type)
		assert.Equal(t, simplepitch.SlideTypePDF, created.Slides[1].Type)
		assert.Equal(t, 0, created.Slides[0].Order)
		assert.Equal(t, 1, created.Slides[1].Order)
		assert.Len(t, env.store.Brands(), 3)
	})

	t.Run("create validation", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{Name: " "})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(t, http.MethodPost, "/api/v1/brands", CreateBrandRequest{Name: "X", Slides: []SlideRequest{{URL: "u", Type: "video"}}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		name := "Gamma Plus"
		w := env.do(t, http.MethodPut, "/api/v1/brands/"+created.ID, UpdateBrandRequest{Name: &name})
		require.Equal(t, http.StatusOK, w.Code)
		b := decode[simplepitch.Brand](t, w)
		assert.Equal(t, "Gamma Plus", b.Name)
		assert.Len(t, b.Slides, 2)
	})

	t.Run("slide operations keep dense order", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/brands/A/slides", AddSlidesRequest{Slides: []SlideRequest{{URL: "https://x/3.jpg", Name: "s4"}}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"s1", "s2", "s4"}, slideNames(decode[simplepitch.Brand](t, w)))

		w = env.do(t, http.MethodPost, "/api/v1/brands/A/slides/s1/move", MoveSlideRequest{Direction: "right"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"s2", "s1", "s4"}, slideNames(decode[simplepitch.Brand](t, w)))

		w = env.do(t, http.MethodPost, "/api/v1/brands/A/slides/s2/reorder", ReorderSlideRequest{TargetID: "s1"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"s1", "s2", "s4"}, slideNames(decode[simplepitch.Brand](t, w)))

		w = env.do(t, http.MethodPatch, "/api/v1/brands/A/slides/s2", RenameSlideRequest{Name: "Efficacy"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"s1", "Efficacy", "s4"}, slideNames(decode[simplepitch.Brand](t, w)))

		w = env.do(t, http.MethodDelete, "/api/v1/brands/A/slides/s1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		b := decode[simplepitch.Brand](t, w)
		require.Len(t, b.Slides, 2)
		for i, s := range b.Slides {
			assert.Equal(t, i, s.Order)
		}
	})

	t.Run("slide errors", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/brands/A/slides/s9/move", MoveSlideRequest{Direction: "left"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "slide_not_found", decode[ErrorResponse](t, w).Error.Code)

		w = env.do(t, http.MethodPost, "/api/v1/brands/A/slides/s2/move", MoveSlideRequest{Direction: "up"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(t, http.MethodDelete, "/api/v1/brands/missing/slides/s1", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/brands/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		_, ok := env.store.Brand(created.ID)
		assert.False(t, ok)

		w = env.do(t, http.MethodDelete, "/api/v1/brands/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestBrandUpload(t *testing.T) {
	env := setupTest(t)

	t.Run("pdf becomes brand with page slides", func(t *testing.T) {
		w := env.upload(t, "/api/v1/brands/upload", "deck.pdf", "application/pdf", []byte("%PDF-1.4"))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		b := decode[simplepitch.Brand](t, w)
		assert.Equal(t, simplepitch.FallbackBrandName, b.Name)
		assert.Equal(t, simplepitch.FallbackDescription, b.Description)
		assert.Equal(t, []string{"Page 1", "Page 2"}, slideNames(b))
	})

	t.Run("add pages to existing brand", func(t *testing.T) {
		w := env.upload(t, "/api/v1/brands/B/slides/upload", "extra.pdf", "application/pdf", []byte("%PDF-1.4"))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		b := decode[simplepitch.Brand](t, w)
		assert.Equal(t, []string{"s3", "extra.pdf - Pg 1", "extra.pdf - Pg 2"}, slideNames(b))
	})

	t.Run("unknown brand", func(t *testing.T) {
		w := env.upload(t, "/api/v1/brands/missing/slides/upload", "extra.pdf", "application/pdf", []byte("%PDF-1.4"))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/brands/upload", map[string]string{"name": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDoctorHandler(t *testing.T) {
	env := setupTest(t)

	var created simplepitch.Doctor
	t.Run("create defaults hospital", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/doctors", DoctorRequest{Name: "Dr. Bo Chen", Specialty: "Oncology"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created = decode[simplepitch.Doctor](t, w)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, simplepitch.DefaultHospital, created.Hospital)
		assert.Empty(t, created.AssignedBrandIDs)
	})

	t.Run("create requires name and specialty", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/doctors", DoctorRequest{Name: "Dr. X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_doctor", decode[ErrorResponse](t, w).Error.Code)
	})

	t.Run("search", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/doctors?q=onco", nil)
		require.Equal(t, http.StatusOK, w.Code)
		found := decode[[]simplepitch.Doctor](t, w)
		require.Len(t, found, 1)
		assert.Equal(t, created.ID, found[0].ID)

		w = env.do(t, http.MethodGet, "/api/v1/doctors", nil)
		assert.Len(t, decode[[]simplepitch.Doctor](t, w), 2)
	})

	t.Run("toggle assignment", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/doctors/"+created.ID+"/brands/A/toggle", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"A"}, decode[simplepitch.Doctor](t, w).AssignedBrandIDs)

		w = env.do(t, http.MethodGet, "/api/v1/doctors/"+created.ID+"/brands", nil)
		brands := decode[[]simplepitch.Brand](t, w)
		require.Len(t, brands, 1)
		assert.Equal(t, "A", brands[0].ID)

		w = env.do(t, http.MethodPost, "/api/v1/doctors/"+created.ID+"/brands/A/toggle", nil)
		assert.Empty(t, decode[simplepitch.Doctor](t, w).AssignedBrandIDs)
	})

	t.Run("edit keeps saved playlist", func(t *testing.T) {
		d, _ := env.store.Doctor("d1")
		d.SavedSlideIDs = []string{"s3"}
		env.store.SaveDoctor(d)

		w := env.do(t, http.MethodPut, "/api/v1/doctors/d1", DoctorRequest{Name: "Dr. Ada Smith-Jones", Specialty: "Cardiology", AssignedBrandIDs: []string{"A", "B"}})
		require.Equal(t, http.StatusOK, w.Code)
		edited := decode[simplepitch.Doctor](t, w)
		assert.Equal(t, "Dr. Ada Smith-Jones", edited.Name)
		assert.Equal(t, []string{"s3"}, edited.SavedSlideIDs)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/doctors/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = env.do(t, http.MethodGet, "/api/v1/doctors/missing/playlist", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/doctors/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		_, ok := env.store.Doctor(created.ID)
		assert.False(t, ok)
	})
}

func TestSelection(t *testing.T) {
	env := setupTest(t)

	t.Run("empty selection is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/selections", SelectionRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "empty_selection", decode[ErrorResponse](t, w).Error.Code)
	})

	t.Run("resolves in catalog order and saves", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/selections", SelectionRequest{
			SlideIDs:      []string{"s3", "s1"},
			DoctorID:      "d1",
			SaveAsDefault: true,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decode[SelectionResponse](t, w)
		assert.Equal(t, []string{"s1", "s3"}, resp.SlideIDs)
		assert.True(t, resp.Saved)
		require.Len(t, resp.Playlist, 2)
		assert.Equal(t, "Alpha", resp.Playlist[0].Brand)

		d, _ := env.store.Doctor("d1")
		assert.Equal(t, []string{"s1", "s3"}, d.SavedSlideIDs)

		w = env.do(t, http.MethodGet, "/api/v1/doctors/d1/playlist", nil)
		assert.Len(t, decode[[]PlaylistItemResponse](t, w), 2)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/selections", SelectionRequest{SlideIDs: []string{"s1"}, DoctorID: "nobody", SaveAsDefault: true})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPresentationHandler(t *testing.T) {
	env := setupTest(t)

	start := func(t *testing.T, req any) simplepitch.SessionView {
		t.Helper()
		w := env.do(t, http.MethodPost, "/api/v1/presentations", req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[simplepitch.SessionView](t, w)
	}

	t.Run("full catalog carries across brands", func(t *testing.T) {
		view := start(t, nil)
		assert.Equal(t, simplepitch.ModeHierarchical, view.Mode)
		assert.Equal(t, simplepitch.TitleCurrentBrand, view.Title)
		assert.Equal(t, "s1", view.Position.Slide.ID)
		assert.Len(t, view.Brands, 2)

		path := "/api/v1/presentations/" + view.ID
		env.do(t, http.MethodPost, path+"/next", nil)
		w := env.do(t, http.MethodPost, path+"/next", nil)
		view = decode[simplepitch.SessionView](t, w)
		assert.Equal(t, "s3", view.Position.Slide.ID)
		assert.Equal(t, "Beta", view.BrandName)
		assert.False(t, view.CanNext)

		w = env.do(t, http.MethodPost, path+"/jump", JumpRequest{Index: 0})
		view = decode[simplepitch.SessionView](t, w)
		assert.Equal(t, "s1", view.Position.Slide.ID)

		w = env.do(t, http.MethodPost, path+"/jump", JumpRequest{Index: 5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("custom playlist plays flat in catalog order", func(t *testing.T) {
		view := start(t, PresentationRequest{SlideIDs: []string{"s3", "s1"}})
		assert.Equal(t, simplepitch.ModeFlat, view.Mode)
		assert.Equal(t, simplepitch.TitleCustom, view.Title)
		assert.Equal(t, "s1", view.Position.Slide.ID)
		assert.Equal(t, 2, view.Position.Total)

		w := env.do(t, http.MethodPost, "/api/v1/presentations/"+view.ID+"/next", nil)
		view = decode[simplepitch.SessionView](t, w)
		assert.Equal(t, "s3", view.Position.Slide.ID)

		w := env.do(t, http.MethodPost, "/api/v1/presentations/"+view.ID+"/jump", JumpRequest{Index: 0})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("stale playlist is rejected", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/presentations", PresentationRequest{SlideIDs: []string{"gone"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("doctor without saved playlist uses assigned brands", func(t *testing.T) {
		view := start(t, PresentationRequest{DoctorID: "d1"})
		assert.Equal(t, simplepitch.ModeHierarchical, view.Mode)
		require.NotNil(t, view.Doctor)
		assert.Equal(t, "d1", view.Doctor.ID)
		require.Len(t, view.Brands, 1)
		assert.Equal(t, "B", view.Brands[0].ID)
	})

	t.Run("single brand preview", func(t *testing.T) {
		view := start(t, PresentationRequest{BrandID: "A"})
		require.Len(t, view.Brands, 1)
		assert.Equal(t, 2, view.Position.Total)
	})

	t.Run("unknown sources", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/presentations", PresentationRequest{BrandID: "missing"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = env.do(t, http.MethodPost, "/api/v1/presentations", PresentationRequest{DoctorID: "missing"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("keys swipes and escape", func(t *testing.T) {
		view := start(t, nil)
		path := "/api/v1/presentations/" + view.ID

		w := env.do(t, http.MethodPost, path+"/key", InputRequest{Key: simplepitch.KeyArrowRight})
		assert.Equal(t, "s2", decode[simplepitch.SessionView](t, w).Position.Slide.ID)

		startX, endX := 100.0, 160.0
		w = env.do(t, http.MethodPost, path+"/key", InputRequest{StartX: &startX, EndX: &endX})
		assert.Equal(t, "s1", decode[simplepitch.SessionView](t, w).Position.Slide.ID)

		w = env.do(t, http.MethodPost, path+"/key", InputRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = env.do(t, http.MethodPost, path+"/fullscreen", nil)
		assert.True(t, decode[simplepitch.SessionView](t, w).Fullscreen)

		w = env.do(t, http.MethodPost, path+"/key", InputRequest{Key: simplepitch.KeyEscape})
		view = decode[simplepitch.SessionView](t, w)
		assert.True(t, view.Closed)
		assert.False(t, view.Fullscreen)

		w = env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("close", func(t *testing.T) {
		view := start(t, nil)
		path := "/api/v1/presentations/" + view.ID

		w := env.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = env.do(t, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty catalog has nothing to show", func(t *testing.T) {
		empty := setupTest(t)
		empty.store.Reset()

		w := empty.do(t, http.MethodPost, "/api/v1/presentations", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		view := decode[simplepitch.SessionView](t, w)
		assert.True(t, view.Empty())
		assert.Empty(t, view.Brands)
	})
}

func TestAdminReset(t *testing.T) {
	env := setupTest(t)

	w := env.do(t, http.MethodPost, "/api/v1/admin/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.store.Brands())
	assert.Empty(t, env.store.Doctors())
}

type failingResetter struct{}

func (failingResetter) Reset(context.Context) error {
	return assert.AnError
}

func TestAdminResetFailure(t *testing.T) {
	store := simplepitch.NewStore(nil, nil)
	router := NewRouter(Config{Store: store, Resetter: failingResetter{}, Gatherer: prometheus.NewRegistry(), Logger: quietLogger()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/reset", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "reset_failed", decode[ErrorResponse](t, w).Error.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RecoveryMiddleware(quietLogger()))
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("corrupted state")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[ErrorResponse](t, w)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.Equal(t, []string{RecoveryReload, RecoveryReset}, resp.Error.Recovery)
	assert.NotEmpty(t, resp.Error.RequestID)
	assert.True(t, strings.Contains(w.Header().Get("Content-Type"), "application/json"))
}
