// Package input exposes player intent as named actions with press edges,
// independent of the device backend that fills it in.
package input

import "fmt"

// Action is a logical control the game reacts to.
type Action int

const (
	ActionMoveUp Action = iota
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionFire
	ActionCycleHand
	ActionExit
	ActionToggleDebug

	actionCount
)

var actionNames = [actionCount]string{
	ActionMoveUp:      "move_up",
	ActionMoveDown:    "move_down",
	ActionMoveLeft:    "move_left",
	ActionMoveRight:   "move_right",
	ActionFire:        "fire",
	ActionCycleHand:   "cycle_hand",
	ActionExit:        "exit",
	ActionToggleDebug: "toggle_debug",
}

// Actions lists every action in declaration order.
func Actions() []Action {
	actions := make([]Action, actionCount)
	for i := range actions {
		actions[i] = Action(i)
	}
	return actions
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// ButtonInput is the per-frame state of every action. It is stored as a
// singleton and refreshed once at the start of each frame.
type ButtonInput struct {
	pressed      [actionCount]bool
	justPressed  [actionCount]bool
	justReleased [actionCount]bool
}

// Set records whether an action is held this frame and derives its edges
// from the previous frame.
func (b *ButtonInput) Set(action Action, down bool) {
	was := b.pressed[action]
	b.pressed[action] = down
	b.justPressed[action] = down && !was
	b.justReleased[action] = !down && was
}

// Press is Set(action, true).
func (b *ButtonInput) Press(action Action) {
	b.Set(action, true)
}

// Release is Set(action, false).
func (b *ButtonInput) Release(action Action) {
	b.Set(action, false)
}

// ClearEdges drops just-pressed and just-released flags while keeping the
// held state. Backends that do not call Set every frame use it to age edges.
func (b *ButtonInput) ClearEdges() {
	b.justPressed = [actionCount]bool{}
	b.justReleased = [actionCount]bool{}
}

func (b *ButtonInput) Pressed(action Action) bool {
	return b.pressed[action]
}

func (b *ButtonInput) JustPressed(action Action) bool {
	return b.justPressed[action]
}

func (b *ButtonInput) JustReleased(action Action) bool {
	return b.justReleased[action]
}

// Axis returns +1 if positive is held, -1 if negative is held, 0 for both or
// neither.
func (b *ButtonInput) Axis(negative, positive Action) int {
	axis := 0
	if b.pressed[positive] {
		axis++
	}
	if b.pressed[negative] {
		axis--
	}
	return axis
}
