package simplepitch

// Mode selects how a Navigator walks its content.
type Mode string

const (
	// ModeFlat walks a pre-resolved playlist with one cursor
	ModeFlat Mode = "flat"
	// ModeHierarchical walks brands and their slides with a (brand, slide) pair
	ModeHierarchical Mode = "hierarchical"
)

// Position is what the playback surface renders for the navigator's state.
type Position struct {
	Mode       Mode   `json:"mode"`
	Slide      *Slide `json:"slide,omitempty"`
	Brand      *Brand `json:"brand,omitempty"`
	BrandIndex int    `json:"brandIndex"`
	SlideIndex int    `json:"slideIndex"`
	// Number is the 1-based counter shown next to Total, 0 when no slide is
	// shown
	Number int `json:"number"`
	// Total is the playlist length in flat mode and the current brand's slide
	// count in hierarchical mode
	Total int `json:"total"`
}

// HasSlide reports whether there is a slide to display at this position.
func (p Position) HasSlide() bool {
	return p.Slide != nil
}

// Navigator is a two-mode state machine over slides. The zero value is not
// usable; construct with NewFlatNavigator or NewHierarchicalNavigator.
//
// Navigator is not safe for concurrent use. Session adds locking.
type Navigator struct {
	mode Mode

	// flat state
	playlist Playlist
	cursor   int

	// hierarchical state
	brands     []Brand
	brandIndex int
	slideIndex int
}

// NewFlatNavigator creates a navigator over a playlist starting at its first
// item. An empty playlist yields a position with no slide.
func NewFlatNavigator(playlist Playlist) *Navigator {
	p := make(Playlist, len(playlist))
	copy(p, playlist)
	return &Navigator{mode: ModeFlat, playlist: p}
}

// NewHierarchicalNavigator creates a navigator over brands starting at the
// first slide of the first brand. When the first brand is empty the start
// moves to the first brand that has slides.
func NewHierarchicalNavigator(brands []Brand) *Navigator {
	bs := make([]Brand, len(brands))
	for i, b := range brands {
		bs[i] = cloneBrand(b)
	}
	n := &Navigator{mode: ModeHierarchical, brands: bs}
	if len(bs) > 0 && len(bs[0].Slides) == 0 {
		if i := n.nextNonEmpty(0); i != -1 {
			n.brandIndex = i
		}
	}
	return n
}

// Mode returns the navigator's mode.
func (n *Navigator) Mode() Mode {
	return n.mode
}

// Brands returns the brands walked in hierarchical mode, or nil in flat mode.
func (n *Navigator) Brands() []Brand {
	if n.mode != ModeHierarchical {
		return nil
	}
	out := make([]Brand, len(n.brands))
	copy(out, n.brands)
	return out
}

// Next advances one slide. It reports whether the position changed; at the
// last slide it is a no-op.
func (n *Navigator) Next() bool {
	switch n.mode {
	case ModeFlat:
		if n.cursor < len(n.playlist)-1 {
			n.cursor++
			return true
		}
		return false
	case ModeHierarchical:
		if n.slideIndex < n.brandLen(n.brandIndex)-1 {
			n.slideIndex++
			return true
		}
		if i := n.nextNonEmpty(n.brandIndex + 1); i != -1 {
			n.brandIndex = i
			n.slideIndex = 0
			return true
		}
		return false
	default:
		return false
	}
}

// Previous steps back one slide. At the first slide of a brand it carries to
// the last slide of the previous brand that has slides; at the very first
// slide it is a no-op.
func (n *Navigator) Previous() bool {
	switch n.mode {
	case ModeFlat:
		if n.cursor > 0 {
			n.cursor--
			return true
		}
		return false
	case ModeHierarchical:
		if n.slideIndex > 0 {
			n.slideIndex--
			return true
		}
		if i := n.prevNonEmpty(n.brandIndex - 1); i != -1 {
			n.brandIndex = i
			n.slideIndex = max(0, n.brandLen(i)-1)
			return true
		}
		return false
	default:
		return false
	}
}

// JumpToBrand moves to the first slide of the brand at index. Jumping onto an
// empty brand is allowed and yields a position with no slide.
func (n *Navigator) JumpToBrand(index int) error {
	if n.mode != ModeHierarchical {
		return ErrNotHierarchical
	}
	if index < 0 || index >= len(n.brands) {
		return ErrBrandOutOfRange
	}
	n.brandIndex = index
	n.slideIndex = 0
	return nil
}

// CanPrevious reports whether Previous would change the position.
func (n *Navigator) CanPrevious() bool {
	switch n.mode {
	case ModeFlat:
		return n.cursor > 0
	case ModeHierarchical:
		return n.slideIndex > 0 || n.prevNonEmpty(n.brandIndex-1) != -1
	default:
		return false
	}
}

// CanNext reports whether Next would change the position.
func (n *Navigator) CanNext() bool {
	switch n.mode {
	case ModeFlat:
		return n.cursor < len(n.playlist)-1
	case ModeHierarchical:
		return n.slideIndex < n.brandLen(n.brandIndex)-1 || n.nextNonEmpty(n.brandIndex+1) != -1
	default:
		return false
	}
}

// Current returns the current position.
func (n *Navigator) Current() Position {
	switch n.mode {
	case ModeFlat:
		pos := Position{Mode: ModeFlat, SlideIndex: n.cursor, Total: len(n.playlist)}
		if n.cursor < len(n.playlist) {
			item := n.playlist[n.cursor]
			pos.Number = n.cursor + 1
			pos.Slide = &item.Slide
			pos.Brand = &item.Brand
		}
		return pos
	case ModeHierarchical:
		pos := Position{
			Mode:       ModeHierarchical,
			BrandIndex: n.brandIndex,
			SlideIndex: n.slideIndex,
			Total:      n.brandLen(n.brandIndex),
		}
		if n.brandIndex < len(n.brands) {
			b := n.brands[n.brandIndex]
			pos.Brand = &b
			if n.slideIndex < len(b.Slides) {
				s := b.Slides[n.slideIndex]
				pos.Slide = &s
				pos.Number = n.slideIndex + 1
			}
		}
		return pos
	default:
		return Position{Mode: n.mode}
	}
}

// Progress returns Number/Total in [0,1], or 0 when there is nothing to show.
func (n *Navigator) Progress() float64 {
	pos := n.Current()
	if pos.Total == 0 {
		return 0
	}
	return float64(pos.Number) / float64(pos.Total)
}

func (n *Navigator) brandLen(i int) int {
	if i < 0 || i >= len(n.brands) {
		return 0
	}
	return len(n.brands[i].Slides)
}

// nextNonEmpty returns the first index >= from whose brand has slides, or -1.
func (n *Navigator) nextNonEmpty(from int) int {
	for i := max(from, 0); i < len(n.brands); i++ {
		if len(n.brands[i].Slides) > 0 {
			return i
		}
	}
	return -1
}

// prevNonEmpty returns the last index <= from whose brand has slides, or -1.
func (n *Navigator) prevNonEmpty(from int) int {
	for i := min(from, len(n.brands)-1); i >= 0; i-- {
		if len(n.brands[i].Slides) > 0 {
			return i
		}
	}
	return -1
}
