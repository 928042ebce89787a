package simplepitch

import (
	"time"
)

// SlideType tags how a slide's URL is rendered.
type SlideType string

const (
	// SlideTypeImage is rendered as an image.
	SlideTypeImage SlideType = "image"
	// SlideTypePDF is rendered as an embedded document.
	SlideTypePDF SlideType = "pdf"
)

// IsValid reports whether t is a known slide type.
func (t SlideType) IsValid() bool {
	switch t {
	case SlideTypeImage, SlideTypePDF:
		return true
	default:
		return false
	}
}

// DefaultHospital is used when a doctor is saved without a hospital.
const DefaultHospital = "General Hospital"

// Slide is one unit of presentable content owned by a Brand.
type Slide struct {
	ID           string    `json:"id" yaml:"id"`
	Type         SlideType `json:"type" yaml:"type"`
	URL          string    `json:"url" yaml:"url"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty" yaml:"thumbnailUrl,omitempty"`
	Name         string    `json:"name" yaml:"name"`
	// Order mirrors the slide's zero-based position in its brand's slide list.
	Order int `json:"order" yaml:"order"`
}

// Brand is a named content package owning an ordered list of slides.
type Brand struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Slides      []Slide `json:"slides" yaml:"slides"`
	// CreatedAt is Unix milliseconds.
	CreatedAt int64 `json:"createdAt" yaml:"createdAt"`
}

// Created returns CreatedAt as a time.Time.
func (b Brand) Created() time.Time {
	return time.UnixMilli(b.CreatedAt).UTC()
}

// SlideCount returns the number of slides in the brand.
func (b Brand) SlideCount() int {
	return len(b.Slides)
}

// SlideIndex returns the list position of the slide with the given id, or -1.
func (b Brand) SlideIndex(slideID string) int {
	for i, s := range b.Slides {
		if s.ID == slideID {
			return i
		}
	}
	return -1
}

// Cover returns the first slide of the brand, if any.
func (b Brand) Cover() (Slide, bool) {
	if len(b.Slides) == 0 {
		return Slide{}, false
	}
	return b.Slides[0], true
}

// Doctor is a client-directory record.
type Doctor struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Specialty        string   `json:"specialty" yaml:"specialty"`
	Hospital         string   `json:"hospital" yaml:"hospital"`
	AssignedBrandIDs []string `json:"assignedBrandIds" yaml:"assignedBrandIds"`
	// SavedSlideIDs is the doctor's confirmed custom playlist. It may name
	// slides that have since been deleted.
	SavedSlideIDs []string `json:"savedSlideIds,omitempty" yaml:"savedSlideIds,omitempty"`
}

// IsAssigned reports whether brandID is among the doctor's assigned brands.
func (d Doctor) IsAssigned(brandID string) bool {
	for _, id := range d.AssignedBrandIDs {
		if id == brandID {
			return true
		}
	}
	return false
}

// HasSavedPlaylist reports whether the doctor has a non-empty saved playlist.
func (d Doctor) HasSavedPlaylist() bool {
	return len(d.SavedSlideIDs) > 0
}

// Collection names one of the two durable collections held by the Store.
type Collection string

const (
	CollectionBrands  Collection = "brands"
	CollectionDoctors Collection = "doctors"
)

// Storage keys for the two durable records.
const (
	KeyBrands  = "pharma_brands"
	KeyDoctors = "pharma_doctors"
)

// Key returns the storage key for the collection.
func (c Collection) Key() string {
	switch c {
	case CollectionBrands:
		return KeyBrands
	case CollectionDoctors:
		return KeyDoctors
	default:
		return string(c)
	}
}

// Collections lists every durable collection in a stable order.
func Collections() []Collection {
	return []Collection{CollectionBrands, CollectionDoctors}
}

// cloneBrand copies a brand including its slide list. A missing slide list
// becomes an empty one.
func cloneBrand(b Brand) Brand {
	out := b
	out.Slides = make([]Slide, len(b.Slides))
	copy(out.Slides, b.Slides)
	return out
}

// cloneDoctor copies a doctor including its id lists.
func cloneDoctor(d Doctor) Doctor {
	out := d
	out.AssignedBrandIDs = append([]string{}, d.AssignedBrandIDs...)
	if d.SavedSlideIDs != nil {
		out.SavedSlideIDs = append([]string(nil), d.SavedSlideIDs...)
	}
	return out
}
