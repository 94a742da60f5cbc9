package core

import "strings"

// Action is a player intent, independent of the key that produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // Look up
	ActionDown           // Look down
	ActionLeft           // Look left
	ActionRight          // Look right
	ActionFire           // Shoot along the crosshair
	ActionConfirm        // Menu selection
	ActionBack           // Leave a stopped run
	ActionRestart        // New run after game over
	ActionQuit           // Exit the session
	ActionPause          // Toggle pause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Fire",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

// String returns the action name.
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "Unknown"
}

// InputFrame is the set of actions triggered during one tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear empties the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Actions returns the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String lists the triggered actions, e.g. "Up+Fire".
func (f InputFrame) String() string {
	acts := f.Actions()
	if len(acts) == 0 {
		return "None"
	}
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = a.String()
	}
	return strings.Join(names, "+")
}
