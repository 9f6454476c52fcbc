package core

import "unicode"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionConfirm        // Space, Enter - start, continue, retry
	ActionRetry          // R - retry after game over
	ActionMenu           // M - back to menu from an end screen
	ActionPause          // Esc - pause/unpause while playing
	ActionLeft           // Left arrow - previous level in menu
	ActionRight          // Right arrow - next level in menu
	ActionQuit           // Ctrl+C - exit (handled by the platform)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionConfirm:
		return "Confirm"
	case ActionRetry:
		return "Retry"
	case ActionMenu:
		return "Menu"
	case ActionPause:
		return "Pause"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyCount is the number of typeable keys.
const KeyCount = 27

// Keys is the typeable key table in its fixed scan order.
// Typed keys within one frame are always processed in this order.
var Keys = [KeyCount]rune{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
	';',
}

// KeyIndex returns the position of r in the key table.
// Lower-case letters map to their upper-case key.
func KeyIndex(r rune) (int, bool) {
	r = unicode.ToUpper(r)
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r == ';':
		return KeyCount - 1, true
	default:
		return 0, false
	}
}

// IsTypeable reports whether r is in the key table.
func IsTypeable(r rune) bool {
	_, ok := KeyIndex(r)
	return ok
}

// InputFrame represents the input facts for one simulation tick.
// Each fact is a boolean "pressed this frame"; repeated presses across
// frames are independent events.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Typed holds one flag per entry of Keys.
	Typed [KeyCount]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type marks the key for r as pressed. Returns false if r is not typeable.
func (f *InputFrame) Type(r rune) bool {
	i, ok := KeyIndex(r)
	if !ok {
		return false
	}
	f.Typed[i] = true
	return true
}

// TypedKeys returns the pressed keys in key table order.
func (f InputFrame) TypedKeys() []rune {
	var keys []rune
	for i, pressed := range f.Typed {
		if pressed {
			keys = append(keys, Keys[i])
		}
	}
	return keys
}

// Clear resets all actions and keys for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Typed = [KeyCount]bool{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Typed = f.Typed
	return clone
}

// Frame bundles everything the host supplies for one update pass:
// elapsed time, the current viewport and this frame's input facts.
type Frame struct {
	Delta    float64 // Seconds since the previous frame, never negative
	Viewport Viewport
	Input    InputFrame
}
