package cannon

import (
	"math/rand/v2"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/hand"
	"github.com/plus3/handcannon/input"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/tween"
	"github.com/plus3/handcannon/vmath"
)

// Direction combines the held arrow actions into a step direction. Opposite
// keys cancel; diagonals are allowed.
func Direction(buttons *input.ButtonInput) vmath.Vec3 {
	return vmath.New(
		float64(buttons.Axis(input.ActionMoveLeft, input.ActionMoveRight)),
		float64(buttons.Axis(input.ActionMoveDown, input.ActionMoveUp)),
		0,
	)
}

// MoveSystem starts a tweened step for every idle cannon with a direction
// held. The cannon stays InMotion until the tween's completion callback
// puts it back to Idle.
type MoveSystem struct {
	Cannons ecs.Query[struct {
		ecs.EntityId
		*HandCannon
		*State
		*movement.Transform
	}]
	Input ecs.Singleton[input.ButtonInput]

	Settings Settings
}

func NewMoveSystem(settings Settings) *MoveSystem {
	return &MoveSystem{Settings: settings}
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Input.Get()
	if buttons == nil {
		return
	}

	direction := Direction(buttons)
	if direction.LengthSquared() == 0 {
		return
	}

	for item := range s.Cannons.Values() {
		if *item.State == InMotion {
			continue
		}
		*item.State = InMotion

		start := item.Transform.Translation
		end := start.Add(direction.Scale(s.Settings.MoveDistance))
		frame.Commands.AddComponent(item.EntityId, tween.ExponentialInOut(
			start, end, s.Settings.MoveDuration,
			settleCallback(frame.Storage, frame.Storage.CreateEntityRef(item.EntityId)),
		))
	}
}

// settleCallback returns the cannon referenced by ref to Idle. The ref
// follows the entity across archetype moves.
func settleCallback(storage *ecs.Storage, ref *ecs.EntityRef) func() {
	return func() {
		id, ok := storage.ResolveEntityRef(ref)
		if !ok {
			return
		}
		if state := ecs.ReadComponent[State](storage, id); state != nil {
			*state = Idle
		}
	}
}

// FireSystem spawns a grid of hand projectiles from each cannon when the
// fire action is pressed, or repeatedly while held if the cannon has
// AutoFire.
type FireSystem struct {
	Cannons ecs.Query[struct {
		*HandCannon
		*movement.Transform
	}]
	Input      ecs.Singleton[input.ButtonInput]
	Animations ecs.Singleton[hand.HandAnimations]

	Settings Settings

	rng *rand.Rand
}

// NewFireSystem draws projectile hands from rng. A nil rng uses the global
// source.
func NewFireSystem(settings Settings, rng *rand.Rand) *FireSystem {
	return &FireSystem{Settings: settings, rng: rng}
}

func (s *FireSystem) Execute(frame *ecs.UpdateFrame) {
	buttons := s.Input.Get()
	anims := s.Animations.Get()
	if buttons == nil || anims == nil {
		return
	}

	for item := range s.Cannons.Values() {
		if !s.triggered(buttons, item.HandCannon, frame) {
			continue
		}
		s.fire(frame.Commands, anims, item.Transform.Translation)
	}
}

func (s *FireSystem) triggered(buttons *input.ButtonInput, cannon *HandCannon, frame *ecs.UpdateFrame) bool {
	if buttons.JustPressed(input.ActionFire) {
		cannon.FireRate.Reset()
		return true
	}
	if cannon.AutoFire && buttons.Pressed(input.ActionFire) {
		return cannon.FireRate.Tick(frame.Delta()).JustFinished()
	}
	return false
}

func (s *FireSystem) fire(commands *ecs.Commands, anims *hand.HandAnimations, origin vmath.Vec3) {
	n := s.Settings.FireAmount
	velocity := movement.NewVelocity(0, s.Settings.ProjectileSpeed, 0)

	for i := range n * n {
		h := hand.Random(s.rng)
		position := origin.Add(SpreadOffset(i, n, s.Settings.FireSpread))

		components := hand.Bundle(anims, h, position)
		components = append(components,
			lifetime.New(s.Settings.ProjectileLifetime),
			velocity,
			Projectile{},
		)
		commands.Spawn(components...)
	}
}

// SpreadOffset places projectile i of an n×n grid, centred on the origin.
func SpreadOffset(i, n int, spread float64) vmath.Vec3 {
	center := float64(n-1) / 2
	return vmath.New(
		spread*(float64(i/n)-center),
		spread*(float64(i%n)-center),
		0,
	)
}
