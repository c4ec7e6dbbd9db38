// Package camera owns the 2D view and its trauma-driven screen shake.
package camera

import (
	"math"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/vmath"
)

// Camera is the world view. The renderer draws the world shifted by
// Position plus Offset.
type Camera struct {
	Position vmath.Vec3
	Offset   vmath.Vec3

	// Trauma is the current shake intensity in [0, 1].
	Trauma float64

	Shake ShakeSettings

	elapsed float64
}

// ShakeSettings tunes how trauma turns into offset.
type ShakeSettings struct {
	// MaxOffset is the displacement, in world units, at full trauma.
	MaxOffset float64
	// DecayPerSecond is the linear trauma falloff.
	DecayPerSecond float64
	// Frequency of the shake noise in Hz.
	Frequency float64
	// Power shapes trauma into intensity; intensity = trauma^Power.
	Power float64
}

// DefaultShake matches a punchy but short shake.
func DefaultShake() ShakeSettings {
	return ShakeSettings{
		MaxOffset:      100,
		DecayPerSecond: 0.8,
		Frequency:      15,
		Power:          2,
	}
}

func New() Camera {
	return Camera{Shake: DefaultShake()}
}

// AddTrauma raises trauma by amount, clamped to [0, 1].
func (c *Camera) AddTrauma(amount float64) {
	c.Trauma = clamp01(c.Trauma + amount)
}

// View is the effective camera translation for this frame.
func (c *Camera) View() vmath.Vec3 {
	return c.Position.Add(c.Offset)
}

func (c *Camera) update(dt float64) {
	c.elapsed += dt
	c.Trauma = clamp01(c.Trauma - c.Shake.DecayPerSecond*dt)

	if c.Trauma == 0 {
		c.Offset = vmath.Zero
		return
	}

	intensity := math.Pow(c.Trauma, c.Shake.Power) * c.Shake.MaxOffset
	t := c.elapsed * c.Shake.Frequency
	c.Offset = vmath.New(intensity*noise(t, 0), intensity*noise(t, 1), 0)
}

// noise is a smooth pseudo-random signal in [-1, 1]. Each seed gives an
// independent channel.
func noise(t float64, seed int) float64 {
	s := float64(seed) * 12.9898
	v := math.Sin(2*math.Pi*t+s) + 0.5*math.Sin(2*math.Pi*2.17*t+1.7*s) + 0.25*math.Sin(2*math.Pi*4.31*t+3.1*s)
	return v / 1.75
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ShakeRequest is an event entity asking for more trauma. It is consumed
// the frame it is seen.
type ShakeRequest struct {
	Trauma float64
}

// ShakeSystem folds pending requests into the camera and updates the shake
// offset.
type ShakeSystem struct {
	Requests ecs.Query[struct {
		ecs.EntityId
		*ShakeRequest
	}]
	Camera ecs.Singleton[Camera]
}

func (s *ShakeSystem) Execute(frame *ecs.UpdateFrame) {
	cam := s.Camera.Get()

	for request := range s.Requests.Values() {
		if cam != nil {
			cam.AddTrauma(request.ShakeRequest.Trauma)
		}
		frame.Commands.Delete(request.EntityId)
	}

	if cam != nil {
		cam.update(frame.DeltaTime)
	}
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ShakeRequest](registry)
}
