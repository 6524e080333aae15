package core

import "github.com/vovakirdan/tui-blocks/internal/blocks"

// Action represents a semantic player intent, abstracted from physical keys.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // Shift piece left
	ActionRight            // Shift piece right
	ActionDrop             // Hard drop
	ActionRotateCW         // Rotate clockwise
	ActionRotateCCW        // Rotate counter-clockwise
	ActionPause            // Toggle pause
	ActionRestart          // Start a fresh game
	ActionHelp             // Toggle full key help
	ActionQuit             // Leave the game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDrop:
		return "Drop"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsGameplay reports whether the action is forwarded to the engine.
func (a Action) IsGameplay() bool {
	return a >= ActionLeft && a <= ActionRotateCCW
}

// EngineKey maps a gameplay action to the engine key it drives.
// Non-gameplay actions map to blocks.KeyNone, which the engine never consumes.
func (a Action) EngineKey() blocks.Key {
	switch a {
	case ActionLeft:
		return blocks.KeyLeft
	case ActionRight:
		return blocks.KeyRight
	case ActionDrop:
		return blocks.KeyDown
	case ActionRotateCW:
		return blocks.KeyRotateCW
	case ActionRotateCCW:
		return blocks.KeyRotateCCW
	}
	return blocks.KeyNone
}

// InputFrame collects the actions triggered during one frame, in press order.
// Repeated presses of the same action within a frame are kept.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Add records an action. ActionNone is ignored.
func (f *InputFrame) Add(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the recorded actions in press order.
func (f InputFrame) Actions() []Action {
	return f.actions
}

// Len returns the number of recorded actions.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets the frame for reuse, keeping its capacity.
func (f *InputFrame) Clear() {
	f.actions = f.actions[:0]
}
