package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionUp             // W, Up arrow - world map movement
	ActionDown           // S, Down arrow
	ActionJump           // Space, W, Up - jump
	ActionConfirm        // Enter - enter level, confirm menu entry
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// Opposite returns the action cancelled by a, or ActionNone.
func (a Action) Opposite() Action {
	switch a {
	case ActionLeft:
		return ActionRight
	case ActionRight:
		return ActionLeft
	case ActionUp:
		return ActionDown
	case ActionDown:
		return ActionUp
	}
	return ActionNone
}

// InputFrame represents the set of actions held during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as held for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is held this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}

// HeldInput turns discrete key presses into held-key state.
//
// Terminals deliver key presses and auto-repeats but never key releases, so an
// action is considered held for holdTicks ticks after its most recent press.
// Pressing a direction releases its opposite immediately.
type HeldInput struct {
	holdTicks uint64
	last      map[Action]uint64
}

// NewHeldInput creates a HeldInput; holdTicks below 1 is treated as 1.
func NewHeldInput(holdTicks int) *HeldInput {
	return &HeldInput{
		holdTicks: uint64(max(holdTicks, 1)),
		last:      make(map[Action]uint64),
	}
}

// Press records a press (or auto-repeat) of a at tick.
func (h *HeldInput) Press(a Action, tick uint64) {
	if a == ActionNone {
		return
	}
	if opp := a.Opposite(); opp != ActionNone {
		delete(h.last, opp)
	}
	h.last[a] = tick
}

// Release forgets a, as if its hold window had expired.
func (h *HeldInput) Release(a Action) {
	delete(h.last, a)
}

// Reset releases everything.
func (h *HeldInput) Reset() {
	clear(h.last)
}

// Frame returns the actions still held at tick. Expired presses are dropped.
func (h *HeldInput) Frame(tick uint64) InputFrame {
	f := NewInputFrame()
	for a, at := range h.last {
		if tick < at || tick-at < h.holdTicks {
			f.Set(a)
			continue
		}
		delete(h.last, a)
	}
	return f
}
