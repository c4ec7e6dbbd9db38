package main

import (
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/input"
)

// Script drives ButtonInput on a fixed frame schedule in place of a keyboard.
// An action scheduled every N frames is held for exactly one frame out of N.
// A zero period never presses the action.
type Script struct {
	FireEvery  int
	CycleEvery int
	MoveEvery  int

	Input ecs.Singleton[input.ButtonInput]

	frame int
}

func (s *Script) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Input.Get()
	if buttons == nil {
		return
	}

	buttons.Set(input.ActionFire, due(s.frame, s.FireEvery))
	buttons.Set(input.ActionCycleHand, due(s.frame, s.CycleEvery))

	// Alternate left and right so the cannon stays near the origin.
	move := due(s.frame, s.MoveEvery)
	left := move && (s.frame/s.MoveEvery)%2 == 0
	buttons.Set(input.ActionMoveLeft, left)
	buttons.Set(input.ActionMoveRight, move && !left)

	s.frame++
}

// Frames is how many frames the script has run.
func (s *Script) Frames() int {
	return s.frame
}

func due(frame, every int) bool {
	return every > 0 && frame%every == 0
}
