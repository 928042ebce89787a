// Package convert turns uploaded files into slide images encoded as data
// URLs, in page order.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// DefaultResolution renders PDF pages at 1.5x the 72 dpi base.
const DefaultResolution = 108

// Converter dispatches on the uploaded file's type: images pass through as a
// single slide and PDFs are rasterized one JPEG per page. Every failure is
// logged and yields zero pages.
type Converter struct {
	pdftoppm   string
	resolution int
	logger     *slog.Logger
}

var _ simplepitch.Converter = (*Converter)(nil)

// Option configures a Converter.
type Option func(*Converter)

// WithPdftoppm sets the path of the poppler pdftoppm binary
func WithPdftoppm(path string) Option {
	return func(c *Converter) {
		if path != "" {
			c.pdftoppm = path
		}
	}
}

// WithResolution sets the PDF render resolution in dpi
func WithResolution(dpi int) Option {
	return func(c *Converter) {
		if dpi > 0 {
			c.resolution = dpi
		}
	}
}

// WithLogger sets the converter logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		pdftoppm:   "pdftoppm",
		resolution: DefaultResolution,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert returns the slide image URLs for file. The error is always nil;
// failures are reported as zero pages.
func (c *Converter) Convert(ctx context.Context, file simplepitch.UploadedFile) ([]string, error) {
	if file.IsPDF() {
		pages, err := c.renderPDF(ctx, file.Data)
		if err != nil {
			c.logger.Error("PDF conversion failed", "file", file.Name, "error", err)
			return []string{}, nil
		}
		return pages, nil
	}

	mime := imageType(file)
	if mime == "" {
		c.logger.Warn("Unsupported upload type", "file", file.Name, "mime_type", file.MimeType)
		return []string{}, nil
	}
	return []string{simplepitch.EncodeDataURL(mime, file.Data)}, nil
}

// imageType returns the image media type of file, sniffing the content when
// the declared type is missing. Non-images yield "".
func imageType(file simplepitch.UploadedFile) string {
	if len(file.Data) == 0 {
		return ""
	}
	mime := strings.TrimSpace(strings.Split(file.MimeType, ";")[0])
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(file.Data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return ""
	}
	return mime
}

func (c *Converter) renderPDF(ctx context.Context, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, errors.New("empty document")
	}

	dir, err := os.MkdirTemp("", "simplepitch-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.pdf")
	if err := os.WriteFile(in, data, 0600); err != nil {
		return nil, fmt.Errorf("write document: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.pdftoppm, "-jpeg", "-r", fmt.Sprint(c.resolution), in, filepath.Join(dir, "page"))
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run %s: %w: %s", c.pdftoppm, err, strings.TrimSpace(stderr.String()))
	}

	files, err := filepath.Glob(filepath.Join(dir, "page-*.jpg"))
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return pageNumber(files[i]) < pageNumber(files[j]) })

	pages := make([]string, 0, len(files))
	for _, f := range files {
		img, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		pages = append(pages, simplepitch.EncodeDataURL("image/jpeg", img))
	}
	return pages, nil
}

// pageNumber parses the page index from a pdftoppm output name such as
// "page-07.jpg". pdftoppm pads the index to the width of the page count.
func pageNumber(path string) int {
	base := strings.TrimSuffix(filepath.Base(path), ".jpg")
	_, digits, _ := strings.Cut(base, "-")
	n := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
