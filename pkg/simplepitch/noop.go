package simplepitch

import (
	"context"
	"errors"
)

// NoopAnalyzer always fails, so callers fall back to the fixed analysis.
type NoopAnalyzer struct{}

// NewNoopAnalyzer creates an analyzer that never succeeds
func NewNoopAnalyzer() Analyzer {
	return &NoopAnalyzer{}
}

func (a *NoopAnalyzer) Analyze(ctx context.Context, data []byte, mimeType string) (Analysis, error) {
	return Analysis{}, errors.New("content analysis not configured")
}

// NoopDisplay accepts every request without doing anything.
type NoopDisplay struct{}

// NewNoopDisplay creates a display that never denies the exclusive mode
func NewNoopDisplay() Display {
	return &NoopDisplay{}
}

func (d *NoopDisplay) Enter() error { return nil }

func (d *NoopDisplay) Exit() error { return nil }
