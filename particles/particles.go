// Package particles spawns short-lived burst particles from emitters.
package particles

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/vmath"
)

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// NRGBA converts to an 8-bit non-premultiplied colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Effect describes a one-shot burst.
type Effect struct {
	Count    int
	Radius   float64
	Speed    float64
	Lifetime time.Duration
	Size     float64
	Start    Color
	End      Color
	// Depth is added to the emitter's z so particles draw behind it.
	Depth float64
}

// Boom is the burst played when a hand changes.
func Boom() Effect {
	return Effect{
		Count:    100,
		Radius:   50,
		Speed:    500,
		Lifetime: 250 * time.Millisecond,
		Size:     10,
		Start:    Color{R: 0.686, G: 0.365, B: 0.40, A: 1},
		End:      Color{},
		Depth:    -0.1,
	}
}

// Emitter plays Effect once each time it is reset.
type Emitter struct {
	Effect  Effect
	Pending bool
}

// NewEmitter returns an emitter that fires on the next frame.
func NewEmitter(effect Effect) Emitter {
	return Emitter{Effect: effect, Pending: true}
}

// Reset re-arms the emitter.
func (e *Emitter) Reset() {
	e.Pending = true
}

// Particle is the render state of a single particle. Its age comes from the
// entity's lifetime.
type Particle struct {
	Size  float64
	Start Color
	End   Color
}

// ColorAt is the particle colour at fraction t of its life.
func (p Particle) ColorAt(t float64) Color {
	return p.Start.Lerp(p.End, t)
}

// System turns pending emitters into particle entities.
type System struct {
	Emitters ecs.Query[struct {
		*Emitter
		*movement.Transform
	}]

	rng *rand.Rand
}

// NewSystem seeds the angular jitter of bursts from rng. A nil rng uses the
// global source.
func NewSystem(rng *rand.Rand) *System {
	return &System{rng: rng}
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Emitters.Values() {
		if !item.Emitter.Pending {
			continue
		}
		item.Emitter.Pending = false
		s.burst(frame.Commands, item.Emitter.Effect, item.Transform.Translation)
	}
}

func (s *System) burst(commands *ecs.Commands, effect Effect, origin vmath.Vec3) {
	if effect.Count <= 0 {
		return
	}

	phase := s.float64() * 2 * math.Pi
	step := 2 * math.Pi / float64(effect.Count)
	center := origin.Add(vmath.New(0, 0, effect.Depth))

	for i := range effect.Count {
		angle := phase + step*float64(i)
		dir := vmath.New(math.Cos(angle), math.Sin(angle), 0)

		commands.Spawn(
			movement.Transform{Translation: center.Add(dir.Scale(effect.Radius)), Scale: vmath.One},
			movement.Velocity{Vec3: dir.Scale(effect.Speed)},
			lifetime.New(effect.Lifetime),
			Particle{Size: effect.Size, Start: effect.Start, End: effect.End},
		)
	}
}

func (s *System) float64() float64 {
	if s.rng == nil {
		return rand.Float64()
	}
	return s.rng.Float64()
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Emitter](registry)
	ecs.RegisterComponent[Particle](registry)
}
