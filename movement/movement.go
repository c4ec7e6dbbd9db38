// Package movement integrates constant velocities into transforms.
package movement

import (
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/vmath"
)

// Transform places an entity in world space.
type Transform struct {
	Translation vmath.Vec3
	Scale       vmath.Vec3
}

// FromXYZ is an unscaled transform at (x, y, z).
func FromXYZ(x, y, z float64) Transform {
	return Transform{Translation: vmath.New(x, y, z), Scale: vmath.One}
}

// Velocity is a constant per-second displacement.
type Velocity struct {
	vmath.Vec3
}

func NewVelocity(x, y, z float64) Velocity {
	return Velocity{vmath.New(x, y, z)}
}

// System applies Translation += Velocity * dt to every moving entity.
type System struct {
	Movers ecs.Query[struct {
		*Velocity
		*Transform
	}]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	for mover := range s.Movers.Values() {
		mover.Transform.Translation = mover.Transform.Translation.Add(mover.Velocity.Scale(frame.DeltaTime))
	}
}

// Register adds the movement components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Velocity](registry)
}
