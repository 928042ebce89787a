// Package seed imports a catalog and doctor directory from a YAML file.
//
// A seed file looks like:
//
//	brands:
//	  - id: cardiomax
//	    name: Cardiomax
//	    description: Once-daily blood pressure control.
//	    slides:
//	      - name: Efficacy
//	        url: https://cdn.example.com/cardiomax/1.jpg
//	doctors:
//	  - name: Dr. Lisa Cuddy
//	    specialty: Endocrinology
//	    assignedBrandIds: [cardiomax]
//
// Records with an id replace the stored record with the same id; records
// without one are created fresh.
package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tendant/simple-pitch/pkg/simplepitch"
)

// File is the decoded content of a seed file.
type File struct {
	Brands  []simplepitch.Brand  `yaml:"brands"`
	Doctors []simplepitch.Doctor `yaml:"doctors"`
}

// Result counts what Apply wrote.
type Result struct {
	Brands  int
	Doctors int
}

// Decode reads a seed file from r.
func Decode(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return f, nil
}

// ReadFile reads the seed file at path.
func ReadFile(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("open seed file: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Validate checks every brand has a name and every doctor has a name and a
// specialty.
func (f File) Validate() error {
	for i, b := range f.Brands {
		if b.Name == "" {
			return fmt.Errorf("brand %d: name is required", i)
		}
		for j, s := range b.Slides {
			if s.URL == "" {
				return fmt.Errorf("brand %q slide %d: url is required", b.Name, j)
			}
			if s.Type != "" && !s.Type.IsValid() {
				return fmt.Errorf("brand %q slide %d: unknown type %q", b.Name, j, s.Type)
			}
		}
	}
	for i, d := range f.Doctors {
		if d.Name == "" || d.Specialty == "" {
			return fmt.Errorf("doctor %d: %w", i, simplepitch.ErrInvalidDoctor)
		}
	}
	return nil
}

// Apply validates f and saves its records into store, brands first.
func Apply(store *simplepitch.Store, f File) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, in := range f.Brands {
		b := simplepitch.NewBrand(simplepitch.CreateBrandRequest{
			Name:        in.Name,
			Description: in.Description,
			Slides:      in.Slides,
		})
		if in.ID != "" {
			b.ID = in.ID
		}
		if in.CreatedAt != 0 {
			b.CreatedAt = in.CreatedAt
		}
		store.SaveBrand(b)
		res.Brands++
	}

	for _, in := range f.Doctors {
		d, err := simplepitch.NewDoctor(simplepitch.DoctorRequest{
			Name:             in.Name,
			Specialty:        in.Specialty,
			Hospital:         in.Hospital,
			AssignedBrandIDs: in.AssignedBrandIDs,
		})
		if err != nil {
			return res, err
		}
		if in.ID != "" {
			d.ID = in.ID
		}
		d.SavedSlideIDs = in.SavedSlideIDs
		store.SaveDoctor(d)
		res.Doctors++
	}
	return res, nil
}
