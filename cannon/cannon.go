// Package cannon is the player-controlled turret that steps around the
// screen and fires hand projectiles.
package cannon

import (
	"image/color"
	"time"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/vmath"
)

// State is the movement state of a cannon.
type State int

const (
	Idle State = iota
	InMotion
)

func (s State) String() string {
	if s == InMotion {
		return "in_motion"
	}
	return "idle"
}

// HandCannon marks the turret. FireRate paces hold-to-fire when AutoFire is
// enabled.
type HandCannon struct {
	FireRate ecs.Timer
	AutoFire bool
}

// Projectile marks entities fired by a cannon.
type Projectile struct{}

// Body is the drawn rectangle of the cannon, centred on its transform.
type Body struct {
	Width  float64
	Height float64
	Color  color.NRGBA
}

// Settings are the tunables of a cannon.
type Settings struct {
	MoveDistance float64
	MoveDuration time.Duration

	// FireAmount is the side of the projectile grid; each shot spawns
	// FireAmount² projectiles.
	FireAmount         int
	FireSpread         float64
	ProjectileSpeed    float64
	ProjectileLifetime time.Duration

	AutoFire bool
	FireRate time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		MoveDistance:       100,
		MoveDuration:       100 * time.Millisecond,
		FireAmount:         1,
		FireSpread:         40,
		ProjectileSpeed:    1000,
		ProjectileLifetime: 5 * time.Second,
		FireRate:           500 * time.Millisecond,
	}
}

// Bundle is the component set of a cannon at translation, starting Idle.
func Bundle(settings Settings, translation vmath.Vec3) []any {
	return []any{
		movement.Transform{Translation: translation, Scale: vmath.One},
		HandCannon{
			FireRate: ecs.NewTimer(settings.FireRate, ecs.TimerRepeating),
			AutoFire: settings.AutoFire,
		},
		Idle,
		Body{Width: 50, Height: 100, Color: color.NRGBA{R: 204, G: 128, B: 128, A: 255}},
		ecs.Name("Hand cannon"),
	}
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[HandCannon](registry)
	ecs.RegisterComponent[State](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[Body](registry)
}
