package game

import (
	"reflect"

	"github.com/plus3/handcannon/cannon"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/ecs/debugui"
	"github.com/plus3/handcannon/input"
)

var projectileType = reflect.TypeFor[cannon.Projectile]()

// ExitRequest is set once the player asks to quit. Game.Update ends the run
// loop when it sees it.
type ExitRequest struct {
	Requested bool
}

// ControlSystem handles the actions that affect the application rather than
// the world: quitting and the debug overlay.
type ControlSystem struct {
	Input   ecs.Singleton[input.ButtonInput]
	Exit    ecs.Singleton[ExitRequest]
	Overlay ecs.Singleton[debugui.Overlay]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Input.Get()
	if buttons == nil {
		return
	}

	if buttons.JustPressed(input.ActionExit) {
		if exit := s.Exit.Get(); exit != nil {
			exit.Requested = true
		}
	}

	if buttons.JustPressed(input.ActionToggleDebug) {
		if overlay := s.Overlay.Get(); overlay != nil {
			overlay.Toggle()
		}
	}
}
