package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tankeroidz/internal/core"
)

// KeyMap defines the key bindings used while playing.
type KeyMap struct {
	TurnLeft  key.Binding
	TurnRight key.Binding
	Forward   key.Binding
	Reverse   key.Binding
	Fire      key.Binding
	Boost     key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Quit      key.Binding
	Help      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.Fire, k.Boost, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Reverse, k.TurnLeft, k.TurnRight},
		{k.Fire, k.Boost},
		{k.Pause, k.Restart, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		TurnLeft: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "turn right"),
		),
		Forward: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "forward"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "reverse"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "f"),
			key.WithHelp("space", "fire"),
		),
		Boost: key.NewBinding(
			key.WithKeys("b", "e"),
			key.WithHelp("b", "boost"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keys"),
		),
	}
}

// Action translates a key message to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.TurnLeft):
		return core.ActionTurnLeft
	case key.Matches(msg, k.TurnRight):
		return core.ActionTurnRight
	case key.Matches(msg, k.Forward):
		return core.ActionForward
	case key.Matches(msg, k.Reverse):
		return core.ActionReverse
	case key.Matches(msg, k.Fire):
		return core.ActionFire
	case key.Matches(msg, k.Boost):
		return core.ActionBoost
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Terminals report key presses and auto-repeats but never key releases, so
// held keys are emulated: an action counts as held until its key has been
// silent for a grace period. The first grace is long enough to cover the
// terminal's initial auto-repeat delay.
const (
	firstHoldTicks  = 16
	repeatHoldTicks = 4
)

// opposite pairs share one tank intent; pressing one releases the other.
var opposite = map[core.Action]core.Action{
	core.ActionTurnLeft:  core.ActionTurnRight,
	core.ActionTurnRight: core.ActionTurnLeft,
	core.ActionForward:   core.ActionReverse,
	core.ActionReverse:   core.ActionForward,
}

// holdable reports whether an action is latched while held rather than
// acting once per press.
func holdable(a core.Action) bool {
	switch a {
	case core.ActionTurnLeft, core.ActionTurnRight, core.ActionForward,
		core.ActionReverse, core.ActionFire, core.ActionBoost:
		return true
	}
	return false
}

// HoldTracker turns key presses into press and release edges.
type HoldTracker struct {
	tick     int
	deadline map[core.Action]int
}

// NewHoldTracker creates a tracker with no held keys.
func NewHoldTracker() *HoldTracker {
	return &HoldTracker{deadline: make(map[core.Action]int)}
}

// Press records a key event for a. The first event of a hold emits a press
// edge into frame; repeats only extend the hold.
func (h *HoldTracker) Press(a core.Action, frame *core.InputFrame) {
	if !holdable(a) {
		frame.Press(a)
		return
	}
	if opp, ok := opposite[a]; ok {
		if _, held := h.deadline[opp]; held {
			delete(h.deadline, opp)
			frame.Release(opp)
		}
	}
	if _, held := h.deadline[a]; held {
		h.deadline[a] = h.tick + repeatHoldTicks
		return
	}
	h.deadline[a] = h.tick + firstHoldTicks
	frame.Press(a)
}

// Advance moves to the next tick and emits release edges into frame for every
// hold whose grace period ran out.
func (h *HoldTracker) Advance(frame *core.InputFrame) {
	h.tick++
	for a, deadline := range h.deadline {
		if h.tick >= deadline {
			delete(h.deadline, a)
			frame.Release(a)
		}
	}
}

// Held reports whether a is currently held.
func (h *HoldTracker) Held(a core.Action) bool {
	_, ok := h.deadline[a]
	return ok
}

// Reset forgets every hold without emitting releases.
func (h *HoldTracker) Reset() {
	clear(h.deadline)
}
