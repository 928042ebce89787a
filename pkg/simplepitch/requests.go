package simplepitch

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateBrandRequest contains parameters for creating a brand by hand
type CreateBrandRequest struct {
	Name        string
	Description string
	Slides      []Slide
}

// NewBrand builds a brand with a fresh id and creation time. Slides without an
// id get one, and orders are derived from list position.
func NewBrand(req CreateBrandRequest) Brand {
	b := Brand{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Slides:      make([]Slide, 0, len(req.Slides)),
		CreatedAt:   time.Now().UnixMilli(),
	}
	for _, s := range req.Slides {
		if s.ID == "" {
			s.ID = uuid.New().String()
		}
		if s.Type == "" {
			s.Type = SlideTypeImage
		}
		b.Slides = append(b.Slides, s)
	}
	renumber(b.Slides)
	return b
}

// DoctorRequest contains the editable fields of a doctor
type DoctorRequest struct {
	Name             string
	Specialty        string
	Hospital         string
	AssignedBrandIDs []string
}

func (r DoctorRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Specialty) == "" {
		return ErrInvalidDoctor
	}
	return nil
}

func (r DoctorRequest) hospital() string {
	if h := strings.TrimSpace(r.Hospital); h != "" {
		return h
	}
	return DefaultHospital
}

// NewDoctor builds a doctor with a fresh id. Name and specialty are required.
func NewDoctor(req DoctorRequest) (Doctor, error) {
	if err := req.validate(); err != nil {
		return Doctor{}, err
	}
	assigned := req.AssignedBrandIDs
	if assigned == nil {
		assigned = []string{}
	}
	return Doctor{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(req.Name),
		Specialty:        strings.TrimSpace(req.Specialty),
		Hospital:         req.hospital(),
		AssignedBrandIDs: append([]string(nil), assigned...),
	}, nil
}

// EditDoctor applies req to an existing doctor, keeping its id and saved
// playlist.
func EditDoctor(d Doctor, req DoctorRequest) (Doctor, error) {
	if err := req.validate(); err != nil {
		return Doctor{}, &DoctorError{DoctorID: d.ID, Op: "edit", Err: err}
	}
	out := cloneDoctor(d)
	out.Name = strings.TrimSpace(req.Name)
	out.Specialty = strings.TrimSpace(req.Specialty)
	out.Hospital = req.hospital()
	out.AssignedBrandIDs = append([]string{}, req.AssignedBrandIDs...)
	return out, nil
}

// ToggleBrandAssignment adds brandID to the doctor's assignments, or removes
// it when already assigned.
func ToggleBrandAssignment(d Doctor, brandID string) Doctor {
	out := cloneDoctor(d)
	if out.IsAssigned(brandID) {
		kept := make([]string, 0, len(out.AssignedBrandIDs))
		for _, id := range out.AssignedBrandIDs {
			if id != brandID {
				kept = append(kept, id)
			}
		}
		out.AssignedBrandIDs = kept
		return out
	}
	out.AssignedBrandIDs = append(out.AssignedBrandIDs, brandID)
	return out
}
