package simplepitch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session titles shown above the current brand name.
const (
	TitleCustom       = "Custom Presentation"
	TitleCurrentBrand = "Current Brand"
)

// Session is one playback run over a Navigator.
type Session struct {
	mu         sync.Mutex
	id         string
	nav        *Navigator
	doctor     *Doctor
	display    Display
	fullscreen bool
	closed     bool
	createdAt  time.Time
	logger     *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDoctor sets the doctor being pitched to
func WithDoctor(d *Doctor) SessionOption {
	return func(s *Session) {
		if d != nil {
			dc := cloneDoctor(*d)
			s.doctor = &dc
		}
	}
}

// WithDisplay sets the exclusive display controller
func WithDisplay(d Display) SessionOption {
	return func(s *Session) {
		if d != nil {
			s.display = d
		}
	}
}

// WithSessionLogger sets the session logger
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a session over nav.
func NewSession(nav *Navigator, opts ...SessionOption) *Session {
	s := &Session{
		id:        uuid.New().String(),
		nav:       nav,
		display:   NewNoopDisplay(),
		createdAt: time.Now().UTC(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// SessionView is a snapshot of a session for rendering.
type SessionView struct {
	ID          string     `json:"id"`
	Mode        Mode       `json:"mode"`
	Title       string     `json:"title"`
	BrandName   string     `json:"brandName"`
	Doctor      *Doctor    `json:"doctor,omitempty"`
	Position    Position   `json:"position"`
	CanPrevious bool       `json:"canPrevious"`
	CanNext     bool       `json:"canNext"`
	Progress    float64    `json:"progress"`
	Fullscreen  bool       `json:"fullscreen"`
	Closed      bool       `json:"closed"`
	Brands      []BrandTab `json:"brands,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BrandTab summarizes a brand in the jump-to-brand list.
type BrandTab struct {
	Index      int    `json:"index"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	SlideCount int    `json:"slideCount"`
	Active     bool   `json:"active"`
}

// Empty reports whether there is nothing to display.
func (v SessionView) Empty() bool {
	return !v.Position.HasSlide()
}

// View returns a snapshot of the session.
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() SessionView {
	pos := s.nav.Current()
	v := SessionView{
		ID:          s.id,
		Mode:        s.nav.Mode(),
		Title:       TitleCurrentBrand,
		BrandName:   "Unknown Brand",
		Doctor:      s.doctor,
		Position:    pos,
		CanPrevious: s.nav.CanPrevious(),
		CanNext:     s.nav.CanNext(),
		Progress:    s.nav.Progress(),
		Fullscreen:  s.fullscreen,
		Closed:      s.closed,
		CreatedAt:   s.createdAt,
	}
	if v.Mode == ModeFlat {
		v.Title = TitleCustom
	}
	if pos.Brand != nil && pos.Brand.Name != "" {
		v.BrandName = pos.Brand.Name
	}
	for i, b := range s.nav.Brands() {
		v.Brands = append(v.Brands, BrandTab{
			Index:      i,
			ID:         b.ID,
			Name:       b.Name,
			SlideCount: len(b.Slides),
			Active:     i == pos.BrandIndex,
		})
	}
	return v
}

// Next advances one slide. Navigation on a closed session does nothing.
func (s *Session) Next() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.nav.Next()
	}
	return s.viewLocked()
}

// Previous steps back one slide.
func (s *Session) Previous() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.nav.Previous()
	}
	return s.viewLocked()
}

// JumpToBrand moves to the first slide of the brand at index.
func (s *Session) JumpToBrand(index int) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.viewLocked(), nil
	}
	if err := s.nav.JumpToBrand(index); err != nil {
		return s.viewLocked(), err
	}
	return s.viewLocked(), nil
}

// Apply performs a navigation action. ActionClose closes the session.
func (s *Session) Apply(a Action) SessionView {
	switch a {
	case ActionNext:
		return s.Next()
	case ActionPrevious:
		return s.Previous()
	case ActionClose:
		s.Close()
		return s.View()
	default:
		return s.View()
	}
}

// HandleKey applies the action bound to a key name. Unbound keys are ignored.
func (s *Session) HandleKey(key string) SessionView {
	return s.Apply(KeyAction(key))
}

// HandleSwipe applies the action for a horizontal swipe from startX to endX.
func (s *Session) HandleSwipe(startX, endX float64) SessionView {
	return s.Apply(SwipeAction(startX, endX))
}

// ToggleFullscreen enters or leaves the exclusive display mode. A denied
// enter is logged and the session carries on windowed.
func (s *Session) ToggleFullscreen() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.viewLocked()
	}
	if s.fullscreen {
		s.exitDisplayLocked()
		return s.viewLocked()
	}
	if err := s.display.Enter(); err != nil {
		s.logger.Warn("Fullscreen request denied", "session_id", s.id, "error", err)
		return s.viewLocked()
	}
	s.fullscreen = true
	return s.viewLocked()
}

func (s *Session) exitDisplayLocked() {
	if !s.fullscreen {
		return
	}
	if err := s.display.Exit(); err != nil {
		s.logger.Warn("Failed to exit fullscreen", "session_id", s.id, "error", err)
	}
	s.fullscreen = false
}

// Close ends the session, releasing the exclusive display mode if held.
// Closing twice is harmless.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exitDisplayLocked()
	s.closed = true
}

// SessionRegistry tracks open sessions by id.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionRegistry creates an empty registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*Session)}
}

// Open starts a session and registers it.
func (r *SessionRegistry) Open(nav *Navigator, opts ...SessionOption) *Session {
	s := NewSession(nav, opts...)
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close closes and forgets the session with the given id.
func (r *SessionRegistry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// Len returns the number of open sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
