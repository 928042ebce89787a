package simplepitch

import (
	"strings"
)

// Direction moves a slide one position within its brand.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == DirectionLeft || d == DirectionRight
}

// renumber rewrites every slide's Order from its list position. It is the last
// step of each mutation that reshapes a slide list.
func renumber(slides []Slide) []Slide {
	for i := range slides {
		slides[i].Order = i
	}
	return slides
}

// Renumbered returns a copy of b whose slide orders match list positions.
func Renumbered(b Brand) Brand {
	out := cloneBrand(b)
	renumber(out.Slides)
	return out
}

// AppendSlides returns a copy of b with slides added after the existing ones.
func AppendSlides(b Brand, slides ...Slide) Brand {
	out := cloneBrand(b)
	out.Slides = append(out.Slides, slides...)
	renumber(out.Slides)
	return out
}

// RemoveSlide returns a copy of b without the slide with the given id.
func RemoveSlide(b Brand, slideID string) Brand {
	out := b
	out.Slides = make([]Slide, 0, len(b.Slides))
	for _, s := range b.Slides {
		if s.ID != slideID {
			out.Slides = append(out.Slides, s)
		}
	}
	renumber(out.Slides)
	return out
}

// MoveSlide returns a copy of b with the slide shifted one step in dir.
// Moving past either end leaves the order unchanged.
func MoveSlide(b Brand, slideID string, dir Direction) Brand {
	from := b.SlideIndex(slideID)
	if from == -1 {
		return Renumbered(b)
	}
	to := from + 1
	if dir == DirectionLeft {
		to = from - 1
	}
	if to < 0 || to >= len(b.Slides) {
		return Renumbered(b)
	}
	return splice(b, from, to)
}

// ReorderSlide returns a copy of b with the dragged slide taken out and
// inserted at the target slide's position. Both ids must belong to b.
func ReorderSlide(b Brand, draggedID, targetID string) Brand {
	if draggedID == targetID {
		return Renumbered(b)
	}
	from := b.SlideIndex(draggedID)
	to := b.SlideIndex(targetID)
	if from == -1 || to == -1 {
		return Renumbered(b)
	}
	return splice(b, from, to)
}

func splice(b Brand, from, to int) Brand {
	out := cloneBrand(b)
	moved := out.Slides[from]
	out.Slides = append(out.Slides[:from], out.Slides[from+1:]...)
	out.Slides = append(out.Slides[:to], append([]Slide{moved}, out.Slides[to:]...)...)
	renumber(out.Slides)
	return out
}

// RenameSlide returns a copy of b with the slide renamed. Blank names are
// ignored.
func RenameSlide(b Brand, slideID, name string) Brand {
	out := cloneBrand(b)
	name = strings.TrimSpace(name)
	if name == "" {
		return out
	}
	for i := range out.Slides {
		if out.Slides[i].ID == slideID {
			out.Slides[i].Name = name
		}
	}
	return out
}
