package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionTurnLeft         // A, Left arrow - rotate counter-clockwise
	ActionTurnRight        // D, Right arrow - rotate clockwise
	ActionForward          // W, Up arrow - drive forward
	ActionReverse          // S, Down arrow - drive backward
	ActionFire             // Space - fire the main gun
	ActionBoost            // Shift/B - speed boost (drains power)
	ActionPause            // P - pause/unpause
	ActionRestart          // R - start a new round after game over
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionForward:
		return "Forward"
	case ActionReverse:
		return "Reverse"
	case ActionFire:
		return "Fire"
	case ActionBoost:
		return "Boost"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of String. It returns ActionNone for unknown names.
func ParseAction(name string) Action {
	for a := ActionNone; a <= ActionQuit; a++ {
		if a.String() == name {
			return a
		}
	}
	return ActionNone
}

// InputFrame holds the edge-triggered input delivered during one simulation tick.
// A key going down is a press, a key going up is a release. The game latches
// presses into intents and only clears them on the matching release.
type InputFrame struct {
	Pressed  map[Action]bool
	Released map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed:  make(map[Action]bool),
		Released: make(map[Action]bool),
	}
}

// Press records that the action's key went down this frame.
func (f *InputFrame) Press(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
}

// Release records that the action's key went up this frame.
func (f *InputFrame) Release(a Action) {
	if f.Released == nil {
		f.Released = make(map[Action]bool)
	}
	f.Released[a] = true
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Pressed[a]
}

// HasRelease returns true if the given action was released this frame.
func (f InputFrame) HasRelease(a Action) bool {
	return f.Released[a]
}

// Empty returns true if nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Pressed) == 0 && len(f.Released) == 0
}

// Clear resets all edges for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
	for k := range f.Released {
		delete(f.Released, k)
	}
}
