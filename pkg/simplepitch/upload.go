package simplepitch

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Fallback analysis used when the analyzer fails or returns nothing usable.
const (
	FallbackBrandName   = "Unknown Brand"
	FallbackDescription = "No description available."
)

// UploadedFile is a file handed to the upload flow.
type UploadedFile struct {
	Name     string
	MimeType string
	Data     []byte
}

// IsPDF reports whether the file is a PDF document.
func (f UploadedFile) IsPDF() bool {
	return f.MimeType == "application/pdf" || strings.HasSuffix(strings.ToLower(f.Name), ".pdf")
}

// AnalyzeOrFallback runs the analyzer and substitutes the fixed fallback on
// any failure.
func AnalyzeOrFallback(ctx context.Context, a Analyzer, data []byte, mimeType string, logger *slog.Logger) Analysis {
	if logger == nil {
		logger = slog.Default()
	}
	fallback := Analysis{BrandName: FallbackBrandName, Description: FallbackDescription}
	if a == nil || len(data) == 0 {
		return fallback
	}
	res, err := a.Analyze(ctx, data, mimeType)
	if err != nil {
		logger.Warn("Content analysis failed", "mime_type", mimeType, "error", err)
		return fallback
	}
	return res
}

// Uploader turns uploaded files into brands and slides.
type Uploader struct {
	store     *Store
	converter Converter
	analyzer  Analyzer
	logger    *slog.Logger
}

// UploaderOption configures an Uploader.
type UploaderOption func(*Uploader)

// WithAnalyzer sets the content analyzer
func WithAnalyzer(a Analyzer) UploaderOption {
	return func(u *Uploader) {
		if a != nil {
			u.analyzer = a
		}
	}
}

// WithUploaderLogger sets the uploader logger
func WithUploaderLogger(l *slog.Logger) UploaderOption {
	return func(u *Uploader) {
		if l != nil {
			u.logger = l
		}
	}
}

// NewUploader creates an uploader writing into store.
func NewUploader(store *Store, converter Converter, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		store:     store,
		converter: converter,
		analyzer:  NewNoopAnalyzer(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Uploader) pages(ctx context.Context, file UploadedFile) []string {
	urls, err := u.converter.Convert(ctx, file)
	if err != nil {
		u.logger.Warn("Document conversion failed", "file", file.Name, "error", err)
		return nil
	}
	return urls
}

// CreateBrand converts file into a new brand and saves it. The brand name and
// description come from analysis of the first page (PDF) or the image itself;
// the file name is used when analysis returns a blank name. A file that
// converts to zero pages still creates a brand with no slides.
func (u *Uploader) CreateBrand(ctx context.Context, file UploadedFile) (Brand, error) {
	if u.converter == nil {
		return Brand{}, fmt.Errorf("create brand from %q: no converter configured", file.Name)
	}
	urls := u.pages(ctx, file)

	data, mime := file.Data, file.MimeType
	if file.IsPDF() {
		data, mime = nil, ""
		if len(urls) > 0 {
			data, mime, _ = DecodeDataURL(urls[0])
		}
	}
	analysis := AnalyzeOrFallback(ctx, u.analyzer, data, mime, u.logger)

	name := strings.TrimSpace(analysis.BrandName)
	if name == "" {
		name = file.Name
	}

	slides := make([]Slide, 0, len(urls))
	for i, url := range urls {
		slideName := "Main Slide"
		if file.IsPDF() {
			slideName = fmt.Sprintf("Page %d", i+1)
		}
		slides = append(slides, Slide{
			ID:   uuid.New().String(),
			Type: SlideTypeImage,
			URL:  url,
			Name: slideName,
		})
	}

	b := NewBrand(CreateBrandRequest{Name: name, Description: analysis.Description, Slides: slides})
	u.store.SaveBrand(b)
	u.logger.Info("Brand created from upload", "brand_id", b.ID, "file", file.Name, "slides", len(b.Slides))
	return b, nil
}

// AddSlides converts file and appends its pages to an existing brand.
func (u *Uploader) AddSlides(ctx context.Context, brandID string, file UploadedFile) (Brand, error) {
	if _, ok := u.store.Brand(brandID); !ok {
		return Brand{}, &BrandError{BrandID: brandID, Op: "add slides", Err: ErrBrandNotFound}
	}
	if u.converter == nil {
		return Brand{}, fmt.Errorf("add slides from %q: no converter configured", file.Name)
	}
	urls := u.pages(ctx, file)
	slides := make([]Slide, 0, len(urls))
	for i, url := range urls {
		name := file.Name
		if file.IsPDF() {
			name = fmt.Sprintf("%s - Pg %d", file.Name, i+1)
		}
		slides = append(slides, Slide{
			ID:   uuid.New().String(),
			Type: SlideTypeImage,
			URL:  url,
			Name: name,
		})
	}
	return u.store.AddSlides(brandID, slides...)
}

// EncodeDataURL renders data as a base64 data URL.
func EncodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its payload and media type.
func DecodeDataURL(url string) ([]byte, string, bool) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return nil, "", false
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", false
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return data, mime, true
}
