package simplepitch

import (
	"strings"
	"sync"
)

// Store is the in-memory owner of the brand catalog and doctor directory.
//
// Every mutation builds a new collection slice and swaps it in, so a slice
// handed out by a reader is never written to afterwards.
type Store struct {
	mu        sync.RWMutex
	brands    []Brand
	doctors   []Doctor
	listeners []ChangeListener
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithChangeListener registers a listener called after each mutation
func WithChangeListener(l ChangeListener) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// NewStore creates a Store seeded with the given collections. Slide orders
// are re-derived from list positions on the way in.
func NewStore(brands []Brand, doctors []Doctor, opts ...StoreOption) *Store {
	s := &Store{
		brands:  make([]Brand, 0, len(brands)),
		doctors: make([]Doctor, 0, len(doctors)),
	}
	for _, b := range brands {
		s.brands = append(s.brands, Renumbered(b))
	}
	for _, d := range doctors {
		s.doctors = append(s.doctors, cloneDoctor(d))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers a change listener after construction.
func (s *Store) Subscribe(l ChangeListener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

func (s *Store) notify(c Collection) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, l := range listeners {
		l(c)
	}
}

// Brand operations

// Brands returns the catalog in order.
func (s *Store) Brands() []Brand {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Brand, len(s.brands))
	for i, b := range s.brands {
		out[i] = cloneBrand(b)
	}
	return out
}

// Brand returns the brand with the given id.
func (s *Store) Brand(id string) (Brand, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.brands {
		if b.ID == id {
			return cloneBrand(b), true
		}
	}
	return Brand{}, false
}

// SaveBrand inserts a new brand at the end of the catalog or replaces the
// brand with the same id in place.
func (s *Store) SaveBrand(b Brand) {
	b = cloneBrand(b)
	s.mu.Lock()
	next := make([]Brand, 0, len(s.brands)+1)
	replaced := false
	for _, existing := range s.brands {
		if existing.ID == b.ID {
			next = append(next, b)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, b)
	}
	s.brands = next
	s.mu.Unlock()
	s.notify(CollectionBrands)
}

// DeleteBrand removes the brand with the given id. Unknown ids are ignored.
func (s *Store) DeleteBrand(id string) {
	s.mu.Lock()
	next := make([]Brand, 0, len(s.brands))
	for _, b := range s.brands {
		if b.ID != id {
			next = append(next, b)
		}
	}
	s.brands = next
	s.mu.Unlock()
	s.notify(CollectionBrands)
}

// UpdateBrand applies fn to the current brand and saves the result. The read
// and write happen under one lock so concurrent updates do not interleave.
func (s *Store) UpdateBrand(id string, fn func(Brand) Brand) (Brand, error) {
	s.mu.Lock()
	idx := -1
	for i, b := range s.brands {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return Brand{}, &BrandError{BrandID: id, Op: "update", Err: ErrBrandNotFound}
	}
	updated := fn(cloneBrand(s.brands[idx]))
	updated.ID = id
	next := make([]Brand, len(s.brands))
	copy(next, s.brands)
	next[idx] = cloneBrand(updated)
	s.brands = next
	s.mu.Unlock()
	s.notify(CollectionBrands)
	return cloneBrand(updated), nil
}

// AddSlides appends slides to a brand.
func (s *Store) AddSlides(brandID string, slides ...Slide) (Brand, error) {
	return s.UpdateBrand(brandID, func(b Brand) Brand {
		return AppendSlides(b, slides...)
	})
}

// RemoveSlide removes a slide from a brand.
func (s *Store) RemoveSlide(brandID, slideID string) (Brand, error) {
	return s.slideUpdate(brandID, slideID, "remove_slide", func(b Brand) Brand {
		return RemoveSlide(b, slideID)
	})
}

// MoveSlide shifts a slide one position within its brand.
func (s *Store) MoveSlide(brandID, slideID string, dir Direction) (Brand, error) {
	return s.slideUpdate(brandID, slideID, "move_slide", func(b Brand) Brand {
		return MoveSlide(b, slideID, dir)
	})
}

// ReorderSlide moves the dragged slide to the target slide's position. Both
// slides must belong to the brand.
func (s *Store) ReorderSlide(brandID, draggedID, targetID string) (Brand, error) {
	b, ok := s.Brand(brandID)
	if !ok {
		return Brand{}, &BrandError{BrandID: brandID, Op: "reorder_slide", Err: ErrBrandNotFound}
	}
	if b.SlideIndex(draggedID) == -1 || b.SlideIndex(targetID) == -1 {
		return Brand{}, &BrandError{BrandID: brandID, Op: "reorder_slide", Err: ErrSlideNotFound}
	}
	return s.UpdateBrand(brandID, func(b Brand) Brand {
		return ReorderSlide(b, draggedID, targetID)
	})
}

// RenameSlide renames a slide. A blank name leaves the slide unchanged.
func (s *Store) RenameSlide(brandID, slideID, name string) (Brand, error) {
	return s.slideUpdate(brandID, slideID, "rename_slide", func(b Brand) Brand {
		return RenameSlide(b, slideID, name)
	})
}

func (s *Store) slideUpdate(brandID, slideID, op string, fn func(Brand) Brand) (Brand, error) {
	b, ok := s.Brand(brandID)
	if !ok {
		return Brand{}, &BrandError{BrandID: brandID, Op: op, Err: ErrBrandNotFound}
	}
	if b.SlideIndex(slideID) == -1 {
		return Brand{}, &BrandError{BrandID: brandID, Op: op, Err: ErrSlideNotFound}
	}
	return s.UpdateBrand(brandID, fn)
}

// Doctor operations

// Doctors returns the directory in order.
func (s *Store) Doctors() []Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Doctor, len(s.doctors))
	for i, d := range s.doctors {
		out[i] = cloneDoctor(d)
	}
	return out
}

// Doctor returns the doctor with the given id.
func (s *Store) Doctor(id string) (Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.doctors {
		if d.ID == id {
			return cloneDoctor(d), true
		}
	}
	return Doctor{}, false
}

// SaveDoctor inserts a new doctor or replaces the doctor with the same id.
func (s *Store) SaveDoctor(d Doctor) {
	d = cloneDoctor(d)
	s.mu.Lock()
	next := make([]Doctor, 0, len(s.doctors)+1)
	replaced := false
	for _, existing := range s.doctors {
		if existing.ID == d.ID {
			next = append(next, d)
			replaced = true
			continue
		}
		next = append(next, existing)
	}
	if !replaced {
		next = append(next, d)
	}
	s.doctors = next
	s.mu.Unlock()
	s.notify(CollectionDoctors)
}

// DeleteDoctor removes the doctor with the given id. Unknown ids are ignored.
func (s *Store) DeleteDoctor(id string) {
	s.mu.Lock()
	next := make([]Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		if d.ID != id {
			next = append(next, d)
		}
	}
	s.doctors = next
	s.mu.Unlock()
	s.notify(CollectionDoctors)
}

// SearchDoctors returns doctors whose name or specialty contains query,
// ignoring case. An empty query matches everyone.
func (s *Store) SearchDoctors(query string) []Doctor {
	q := strings.ToLower(strings.TrimSpace(query))
	all := s.Doctors()
	if q == "" {
		return all
	}
	out := make([]Doctor, 0, len(all))
	for _, d := range all {
		if strings.Contains(strings.ToLower(d.Name), q) || strings.Contains(strings.ToLower(d.Specialty), q) {
			out = append(out, d)
		}
	}
	return out
}

// AssignedBrands returns the catalog filtered to the doctor's assigned brands,
// in catalog order.
func (s *Store) AssignedBrands(d Doctor) []Brand {
	all := s.Brands()
	out := make([]Brand, 0, len(d.AssignedBrandIDs))
	for _, b := range all {
		if d.IsAssigned(b.ID) {
			out = append(out, b)
		}
	}
	return out
}

// Reset empties both collections.
func (s *Store) Reset() {
	s.mu.Lock()
	s.brands = []Brand{}
	s.doctors = []Doctor{}
	s.mu.Unlock()
	s.notify(CollectionBrands)
	s.notify(CollectionDoctors)
}
