package convert

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestConvertImage(t *testing.T) {
	ctx := context.Background()
	c := New(WithLogger(quiet))

	t.Run("declared type", func(t *testing.T) {
		pages, err := c.Convert(ctx, simplepitch.UploadedFile{Name: "a.png", MimeType: "image/png", Data: pngHeader})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		data, mime, ok := simplepitch.DecodeDataURL(pages[0])
		require.True(t, ok)
		assert.Equal(t, "image/png", mime)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("sniffed type", func(t *testing.T) {
		pages, err := c.Convert(ctx, simplepitch.UploadedFile{Name: "a", Data: pngHeader})
		require.NoError(t, err)
		require.Len(t, pages, 1)
		_, mime, _ := simplepitch.DecodeDataURL(pages[0])
		assert.Equal(t, "image/png", mime)
	})

	t.Run("not an image", func(t *testing.T) {
		pages, err := c.Convert(ctx, simplepitch.UploadedFile{Name: "notes.txt", MimeType: "text/plain", Data: []byte("hello")})
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("empty file", func(t *testing.T) {
		pages, err := c.Convert(ctx, simplepitch.UploadedFile{Name: "a.png", MimeType: "image/png"})
		require.NoError(t, err)
		assert.Empty(t, pages)
	})
}

func TestConvertPDFFailureYieldsNoPages(t *testing.T) {
	c := New(WithLogger(quiet), WithPdftoppm("/nonexistent/pdftoppm"))
	pages, err := c.Convert(context.Background(), simplepitch.UploadedFile{Name: "deck.pdf", MimeType: "application/pdf", Data: []byte("%PDF-1.4")})
	require.NoError(t, err)
	assert.NotNil(t, pages)
	assert.Empty(t, pages)
}

func TestConvertPDFWithPoppler(t *testing.T) {
	bin, err := exec.LookPath("pdftoppm")
	if err != nil {
		t.Skip("pdftoppm not installed")
	}
	c := New(WithLogger(quiet), WithPdftoppm(bin))
	pages, err := c.Convert(context.Background(), simplepitch.UploadedFile{Name: "deck.pdf", MimeType: "application/pdf", Data: twoPagePDF})
	require.NoError(t, err)
	require.Len(t, pages, 2)
	for _, p := range pages {
		_, mime, ok := simplepitch.DecodeDataURL(p)
		require.True(t, ok)
		assert.Equal(t, "image/jpeg", mime)
	}
}

func TestPageNumber(t *testing.T) {
	assert.Equal(t, 7, pageNumber("/tmp/x/page-07.jpg"))
	assert.Equal(t, 12, pageNumber("page-12.jpg"))
	assert.Less(t, pageNumber("page-2.jpg"), pageNumber("page-10.jpg"))
	assert.Equal(t, 0, pageNumber("cover.jpg"))
}

// twoPagePDF is a minimal document with two blank pages. Poppler repairs the
// missing xref table.
var twoPagePDF = []byte(`%PDF-1.4
1 0 obj << /Type /Catalog /Pages 2 0 R >> endobj
2 0 obj << /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >> endobj
3 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 72 72] >> endobj
4 0 obj << /Type /Page /Parent 2 0 R /MediaBox [0 0 72 72] >> endobj
trailer << /Root 1 0 R >>
%%EOF
`)
