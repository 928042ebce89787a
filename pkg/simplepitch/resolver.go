package simplepitch

// PlaylistItem pairs a slide with the brand that owns it.
type PlaylistItem struct {
	Slide Slide `json:"slide"`
	Brand Brand `json:"brand"`
}

// Playlist is an ordered sequence of slides, independent of brand grouping.
type Playlist []PlaylistItem

// SlideIDs returns the slide ids of the playlist in order.
func (p Playlist) SlideIDs() []string {
	ids := make([]string, len(p))
	for i, item := range p {
		ids[i] = item.Slide.ID
	}
	return ids
}

// Selection is an unordered set of chosen slide ids.
type Selection map[string]struct{}

// NewSelection builds a selection from ids.
func NewSelection(ids ...string) Selection {
	s := make(Selection, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Toggle selects id, or deselects it when already selected.
func (s Selection) Toggle(id string) {
	if s.Has(id) {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// ToggleBrand selects every slide of b, or deselects them all when every slide
// is already selected.
func (s Selection) ToggleBrand(b Brand) {
	all := true
	for _, slide := range b.Slides {
		if !s.Has(slide.ID) {
			all = false
			break
		}
	}
	for _, slide := range b.Slides {
		if all {
			delete(s, slide.ID)
		} else {
			s[slide.ID] = struct{}{}
		}
	}
}

// ResolveSelection returns the selected slides in catalog order, then slide
// order within each brand. The order ids were chosen in does not matter.
func ResolveSelection(brands []Brand, selection Selection) Playlist {
	playlist := Playlist{}
	if len(selection) == 0 {
		return playlist
	}
	for _, b := range brands {
		for _, slide := range b.Slides {
			if selection.Has(slide.ID) {
				playlist = append(playlist, PlaylistItem{Slide: slide, Brand: b})
			}
		}
	}
	return playlist
}

// ResolveSaved rebuilds a saved playlist in its stored order. Each id resolves
// to the first matching slide searching brands in catalog order; ids with no
// matching slide are skipped.
func ResolveSaved(brands []Brand, savedIDs []string) Playlist {
	playlist := Playlist{}
	for _, id := range savedIDs {
		if item, ok := findSlide(brands, id); ok {
			playlist = append(playlist, item)
		}
	}
	return playlist
}

func findSlide(brands []Brand, slideID string) (PlaylistItem, bool) {
	for _, b := range brands {
		for _, slide := range b.Slides {
			if slide.ID == slideID {
				return PlaylistItem{Slide: slide, Brand: b}, true
			}
		}
	}
	return PlaylistItem{}, false
}

// ConfirmRequest contains parameters for confirming a slide selection
type ConfirmRequest struct {
	Selection Selection
	// DoctorID is the doctor the selection was made for, if any
	DoctorID string
	// SaveAsDefault writes the resolved order onto the doctor's saved playlist
	SaveAsDefault bool
}

// ConfirmSelection resolves a selection against the current catalog. When
// SaveAsDefault is set and the doctor exists, the resolved slide ids replace
// the doctor's saved playlist.
func (s *Store) ConfirmSelection(req ConfirmRequest) (Playlist, error) {
	if len(req.Selection) == 0 {
		return Playlist{}, ErrEmptySelection
	}
	playlist := ResolveSelection(s.Brands(), req.Selection)
	if !req.SaveAsDefault || req.DoctorID == "" {
		return playlist, nil
	}
	d, ok := s.Doctor(req.DoctorID)
	if !ok {
		return playlist, &DoctorError{DoctorID: req.DoctorID, Op: "save_playlist", Err: ErrDoctorNotFound}
	}
	d.SavedSlideIDs = playlist.SlideIDs()
	s.SaveDoctor(d)
	return playlist, nil
}

// SavedPlaylist resolves the doctor's saved playlist against the current
// catalog.
func (s *Store) SavedPlaylist(doctorID string) (Playlist, error) {
	d, ok := s.Doctor(doctorID)
	if !ok {
		return Playlist{}, &DoctorError{DoctorID: doctorID, Op: "saved_playlist", Err: ErrDoctorNotFound}
	}
	return ResolveSaved(s.Brands(), d.SavedSlideIDs), nil
}
