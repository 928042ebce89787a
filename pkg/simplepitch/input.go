package simplepitch

// Key names understood by HandleKey.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeyEscape     = "Escape"
)

// SwipeThreshold is the minimum horizontal travel for a swipe to navigate.
const SwipeThreshold = 50.0

// Action is a navigation event derived from raw input.
type Action string

const (
	ActionNone     Action = ""
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionClose    Action = "close"
)

// KeyAction maps a key name to an action.
func KeyAction(key string) Action {
	switch key {
	case KeyArrowRight:
		return ActionNext
	case KeyArrowLeft:
		return ActionPrevious
	case KeyEscape:
		return ActionClose
	default:
		return ActionNone
	}
}

// SwipeAction maps a horizontal swipe from startX to endX to an action. A
// leftward swipe moves forward.
func SwipeAction(startX, endX float64) Action {
	distance := startX - endX
	switch {
	case distance > SwipeThreshold:
		return ActionNext
	case distance < -SwipeThreshold:
		return ActionPrevious
	default:
		return ActionNone
	}
}
