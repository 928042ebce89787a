package simplepitch

import (
	"context"
)

// Backend defines the interface for durable storage of the two named records.
type Backend interface {
	// Name identifies the backend in logs and errors
	Name() string

	// Get returns the raw record stored under key, or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the record stored under key
	Put(ctx context.Context, key string, data []byte) error

	// Delete removes the record stored under key; deleting an absent key is not an error
	Delete(ctx context.Context, key string) error
}

// Analyzer defines the content-analysis collaborator used during upload.
type Analyzer interface {
	// Analyze inspects raw bytes of the given media type and suggests a brand
	// name and a one-sentence description
	Analyze(ctx context.Context, data []byte, mimeType string) (Analysis, error)
}

// Analysis is the best-effort result of content analysis.
type Analysis struct {
	BrandName   string `json:"brandName"`
	Description string `json:"description"`
}

// Converter defines the upload/document-conversion collaborator.
type Converter interface {
	// Convert returns renderable slide image URLs in page order. Zero results
	// is a valid outcome.
	Convert(ctx context.Context, file UploadedFile) ([]string, error)
}

// Display controls an exclusive full-viewport mode around a presentation.
type Display interface {
	// Enter requests the exclusive mode; the host may deny it
	Enter() error

	// Exit leaves the exclusive mode
	Exit() error
}

// ChangeListener is notified after a Store mutation replaces a collection.
type ChangeListener func(c Collection)
