package hand

import (
	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/camera"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/input"
	"github.com/plus3/handcannon/particles"
)

// CycleTrauma is the camera shake added on every hand change.
const CycleTrauma = 0.3

// CycleSystem advances every hand when the cycle action is pressed, shakes
// the camera and plays a burst from each changed hand. It never touches
// textures; SyncSystem does that.
type CycleSystem struct {
	Hands ecs.Query[struct {
		ecs.EntityId
		*Hand
		Emitter *particles.Emitter `ecs:"optional"`
	}]
	Input ecs.Singleton[input.ButtonInput]

	Effect particles.Effect
}

func NewCycleSystem() *CycleSystem {
	return &CycleSystem{Effect: particles.Boom()}
}

func (s *CycleSystem) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Input.Get()
	if buttons == nil || !buttons.JustPressed(input.ActionCycleHand) {
		return
	}

	frame.Commands.Spawn(camera.ShakeRequest{Trauma: CycleTrauma})

	for item := range s.Hands.Values() {
		*item.Hand = item.Hand.Cycle()

		if item.Emitter != nil {
			item.Emitter.Reset()
		} else {
			frame.Commands.AddComponent(item.EntityId, particles.NewEmitter(s.Effect))
		}
	}
}

// SyncSystem points each hand's sprite at the sheet for its current hand.
type SyncSystem struct {
	Sprites ecs.Query[struct {
		*Hand
		*HandSprite
		*animation.Sprite
	}]
	Animations ecs.Singleton[HandAnimations]
}

func (s *SyncSystem) Execute(frame *ecs.UpdateFrame) {
	anims := s.Animations.Get()
	if anims == nil {
		return
	}

	for item := range s.Sprites.Values() {
		if item.HandSprite.Shown == *item.Hand {
			continue
		}
		item.Sprite.Texture = anims.Get(*item.Hand).Texture
		item.HandSprite.Shown = *item.Hand
	}
}
