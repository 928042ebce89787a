package simplepitch

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotFound is returned by a Backend when a key holds no record
	ErrNotFound = errors.New("record not found")

	// ErrBrandNotFound indicates a brand was not found
	ErrBrandNotFound = errors.New("brand not found")

	// ErrDoctorNotFound indicates a doctor was not found
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrSlideNotFound indicates a slide was not found in its brand
	ErrSlideNotFound = errors.New("slide not found")

	// ErrInvalidDoctor indicates a doctor record is missing required fields
	ErrInvalidDoctor = errors.New("invalid doctor")

	// ErrEmptySelection indicates a selection with no slides was confirmed
	ErrEmptySelection = errors.New("selection is empty")

	// ErrNotHierarchical indicates a brand-level operation on a flat navigator
	ErrNotHierarchical = errors.New("navigator is not in hierarchical mode")

	// ErrBrandOutOfRange indicates a brand index outside the navigator's brands
	ErrBrandOutOfRange = errors.New("brand index out of range")

	// ErrSessionNotFound indicates a presentation session was not found
	ErrSessionNotFound = errors.New("session not found")
)

// BrandError represents an error related to a brand operation
type BrandError struct {
	BrandID string
	Op      string
	Err     error
}

func (e *BrandError) Error() string {
	return fmt.Sprintf("brand operation %s failed for brand %s: %v", e.Op, e.BrandID, e.Err)
}

func (e *BrandError) Unwrap() error {
	return e.Err
}

// DoctorError represents an error related to a doctor operation
type DoctorError struct {
	DoctorID string
	Op       string
	Err      error
}

func (e *DoctorError) Error() string {
	return fmt.Sprintf("doctor operation %s failed for doctor %s: %v", e.Op, e.DoctorID, e.Err)
}

func (e *DoctorError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to storage operations
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
