package simplepitch

// PresentationRequest describes what a playback session should show. At most
// one source is used, checked in field order.
type PresentationRequest struct {
	// Playlist is a confirmed custom selection
	Playlist Playlist
	// DoctorID pitches to a doctor: the saved playlist when it still resolves,
	// otherwise the doctor's assigned brands
	DoctorID string
	// BrandID previews a single brand
	BrandID string
}

// Plan builds the navigator for a presentation request. With no source set
// the whole catalog is shown. The returned doctor is the focal doctor, if any.
func (s *Store) Plan(req PresentationRequest) (*Navigator, *Doctor, error) {
	var doctor *Doctor
	if req.DoctorID != "" {
		d, ok := s.Doctor(req.DoctorID)
		if !ok {
			return nil, nil, &DoctorError{DoctorID: req.DoctorID, Op: "plan", Err: ErrDoctorNotFound}
		}
		doctor = &d
	}

	if len(req.Playlist) > 0 {
		return NewFlatNavigator(req.Playlist), doctor, nil
	}

	if doctor != nil {
		if doctor.HasSavedPlaylist() {
			if saved := ResolveSaved(s.Brands(), doctor.SavedSlideIDs); len(saved) > 0 {
				return NewFlatNavigator(saved), doctor, nil
			}
		}
		return NewHierarchicalNavigator(s.AssignedBrands(*doctor)), doctor, nil
	}

	if req.BrandID != "" {
		b, ok := s.Brand(req.BrandID)
		if !ok {
			return nil, nil, &BrandError{BrandID: req.BrandID, Op: "plan", Err: ErrBrandNotFound}
		}
		return NewHierarchicalNavigator([]Brand{b}), nil, nil
	}

	return NewHierarchicalNavigator(s.Brands()), nil, nil
}

// PitchPlan returns the navigator for pitching to a doctor.
func (s *Store) PitchPlan(doctorID string) (*Navigator, error) {
	nav, _, err := s.Plan(PresentationRequest{DoctorID: doctorID})
	return nav, err
}
