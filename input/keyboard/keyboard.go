// Package keyboard polls the Ebiten keyboard and feeds the input.ButtonInput
// singleton according to configurable key bindings.
package keyboard

import (
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/input"
)

// Bindings maps each action to the keys that trigger it.
type Bindings map[input.Action][]ebiten.Key

// DefaultBindings are arrow keys to move, Space to fire, A to cycle hands,
// Escape or Q to quit and F1 for the debug overlay.
func DefaultBindings() Bindings {
	return Bindings{
		input.ActionMoveUp:      {ebiten.KeyArrowUp},
		input.ActionMoveDown:    {ebiten.KeyArrowDown},
		input.ActionMoveLeft:    {ebiten.KeyArrowLeft},
		input.ActionMoveRight:   {ebiten.KeyArrowRight},
		input.ActionFire:        {ebiten.KeySpace},
		input.ActionCycleHand:   {ebiten.KeyA},
		input.ActionExit:        {ebiten.KeyEscape, ebiten.KeyQ},
		input.ActionToggleDebug: {ebiten.KeyF1},
	}
}

// ParseBindings converts action names to Ebiten key names ("ArrowUp", "Space",
// "A", ...). Actions missing from names keep their default keys.
func ParseBindings(names map[string][]string) (Bindings, error) {
	bindings := DefaultBindings()
	for actionName, keyNames := range names {
		action, err := input.ParseAction(actionName)
		if err != nil {
			return nil, err
		}

		keys := make([]ebiten.Key, 0, len(keyNames))
		for _, name := range keyNames {
			var key ebiten.Key
			if err := key.UnmarshalText([]byte(name)); err != nil {
				return nil, fmt.Errorf("binding for %s: %w", action, err)
			}
			keys = append(keys, key)
		}
		bindings[action] = keys
	}
	return bindings, nil
}

// System refreshes the ButtonInput singleton. Register it before any system
// that reads input.
type System struct {
	Input ecs.Singleton[input.ButtonInput]

	bindings Bindings
	pressed  []ebiten.Key
}

func NewSystem(bindings Bindings) *System {
	return &System{bindings: bindings}
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Input.Get()
	if buttons == nil {
		return
	}

	s.pressed = inpututil.AppendPressedKeys(s.pressed[:0])
	for _, action := range input.Actions() {
		down := false
		for _, key := range s.bindings[action] {
			if slices.Contains(s.pressed, key) {
				down = true
				break
			}
		}
		buttons.Set(action, down)
	}
}
