package cannon_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/asset"
	"github.com/plus3/handcannon/cannon"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/hand"
	"github.com/plus3/handcannon/input"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/tween"
	"github.com/plus3/handcannon/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	buttons   *input.ButtonInput
	cannon    *ecs.EntityRef

	projectiles *ecs.Query[struct {
		*cannon.Projectile
		*hand.Hand
		*movement.Transform
		*movement.Velocity
		*lifetime.EntityLifetime
	}]
}

func setup(t *testing.T, settings cannon.Settings, withAnimations bool) *world {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	movement.Register(registry)
	lifetime.Register(registry)
	animation.Register(registry)
	tween.Register(registry)
	hand.Register(registry)
	cannon.Register(registry)

	storage := ecs.NewStorage(registry)
	storage.AddSingleton(input.ButtonInput{})
	if withAnimations {
		anims, err := hand.NewHandAnimations(map[hand.Hand]asset.TextureHandle{
			hand.Rock:     1,
			hand.Paper:    2,
			hand.Scissors: 3,
		}, 1, animation.FromFrames(4))
		require.NoError(t, err)
		storage.AddSingleton(anims)
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(cannon.NewMoveSystem(settings))
	scheduler.Register(cannon.NewFireSystem(settings, rand.New(rand.NewPCG(3, 4))))
	scheduler.Register(&tween.System{})
	scheduler.Register(&movement.System{})
	scheduler.Register(&lifetime.GCSystem{})
	scheduler.Register(&animation.SpriteSystem{})
	scheduler.Register(&hand.SyncSystem{})

	id := storage.Spawn(cannon.Bundle(settings, vmath.Zero)...)

	w := &world{
		storage:   storage,
		scheduler: scheduler,
		cannon:    storage.CreateEntityRef(id),
		projectiles: ecs.NewQuery[struct {
			*cannon.Projectile
			*hand.Hand
			*movement.Transform
			*movement.Velocity
			*lifetime.EntityLifetime
		}](storage),
	}
	require.True(t, storage.ReadSingleton(&w.buttons))
	return w
}

func (w *world) state(t *testing.T) cannon.State {
	t.Helper()
	id, ok := w.storage.ResolveEntityRef(w.cannon)
	require.True(t, ok)
	return *ecs.ReadComponent[cannon.State](w.storage, id)
}

func (w *world) position(t *testing.T) vmath.Vec3 {
	t.Helper()
	id, ok := w.storage.ResolveEntityRef(w.cannon)
	require.True(t, ok)
	return ecs.ReadComponent[movement.Transform](w.storage, id).Translation
}

func (w *world) step(frames int, dt float64) {
	for range frames {
		w.scheduler.Once(dt)
	}
}

func (w *world) projectileCount() int {
	w.projectiles.Execute()
	n := 0
	for range w.projectiles.Values() {
		n++
	}
	return n
}

func TestMoveIgnoresInputWhileInMotion(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), true)
	assert.Equal(t, cannon.Idle, w.state(t))

	w.buttons.Press(input.ActionMoveRight)
	w.step(1, 0.02)
	assert.Equal(t, cannon.InMotion, w.state(t), "transition is immediate")

	w.buttons.Release(input.ActionMoveRight)
	w.buttons.Press(input.ActionMoveLeft)
	w.step(3, 0.02)

	assert.Equal(t, cannon.InMotion, w.state(t))
	x := w.position(t).X
	assert.Greater(t, x, 0.0, "still animating towards the first target")
	assert.Less(t, x, 100.0)

	w.buttons.Release(input.ActionMoveLeft)
	w.step(10, 0.02)
	assert.Equal(t, cannon.Idle, w.state(t))
	assert.Equal(t, vmath.New(100, 0, 0), w.position(t))

	w.buttons.Press(input.ActionMoveLeft)
	w.step(1, 0.02)
	assert.Equal(t, cannon.InMotion, w.state(t))
	w.buttons.Release(input.ActionMoveLeft)
	w.step(10, 0.02)

	assert.Equal(t, cannon.Idle, w.state(t))
	assert.True(t, w.position(t).ApproxEqual(vmath.Zero, 1e-9))
}

func TestStaysInMotionUntilCompletion(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), true)

	w.buttons.Press(input.ActionMoveUp)
	w.step(1, 0.01)
	w.buttons.Release(input.ActionMoveUp)

	// 90ms of a 100ms tween.
	for range 9 {
		w.step(1, 0.01)
		assert.Equal(t, cannon.InMotion, w.state(t))
	}

	w.step(2, 0.01)
	assert.Equal(t, cannon.Idle, w.state(t))
	assert.Equal(t, vmath.New(0, 100, 0), w.position(t))
}

func TestDiagonalMove(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), true)

	w.buttons.Press(input.ActionMoveDown)
	w.buttons.Press(input.ActionMoveLeft)
	w.step(1, 0.05)
	w.buttons.Release(input.ActionMoveDown)
	w.buttons.Release(input.ActionMoveLeft)
	w.step(5, 0.05)

	assert.Equal(t, vmath.New(-100, -100, 0), w.position(t))
}

func TestHeldDirectionChainsMoves(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), true)

	w.buttons.Press(input.ActionMoveRight)
	w.step(12, 0.02)
	w.buttons.Set(input.ActionMoveRight, true)
	w.step(12, 0.02)
	w.buttons.Release(input.ActionMoveRight)
	w.step(12, 0.02)

	x := w.position(t).X
	assert.Greater(t, x, 100.0, "a held key keeps stepping once each move completes")
	assert.Equal(t, cannon.Idle, w.state(t))
}

func TestFireSpawnsOneProjectileThatExpires(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), true)

	w.buttons.Press(input.ActionFire)
	w.step(1, 0.5)
	w.buttons.Release(input.ActionFire)

	require.Equal(t, 1, w.projectileCount())
	w.projectiles.Execute()
	for p := range w.projectiles.Values() {
		assert.LessOrEqual(t, p.Transform.Translation.Sub(w.position(t)).Length(), 5.0)
		assert.Equal(t, vmath.New(0, 1000, 0), p.Velocity.Vec3)
		assert.Equal(t, 5*time.Second, p.EntityLifetime.Duration())
		assert.Contains(t, hand.All(), *p.Hand)
	}

	for range 9 {
		w.step(1, 0.5)
		assert.Equal(t, 1, w.projectileCount(), "alive before 5s")
	}

	w.step(1, 0.5)
	assert.Equal(t, 0, w.projectileCount(), "gone at 5s")
}

func TestFireIsEdgeTriggered(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), true)

	w.buttons.Press(input.ActionFire)
	w.step(1, 0.01)
	for range 10 {
		w.buttons.Set(input.ActionFire, true)
		w.step(1, 0.01)
	}

	assert.Equal(t, 1, w.projectileCount())
}

func TestFireGrid(t *testing.T) {
	settings := cannon.DefaultSettings()
	settings.FireAmount = 2
	w := setup(t, settings, true)

	w.buttons.Press(input.ActionFire)
	w.step(1, 0)

	require.Equal(t, 4, w.projectileCount())

	var offsets []vmath.Vec3
	w.projectiles.Execute()
	for p := range w.projectiles.Values() {
		offsets = append(offsets, p.Transform.Translation)
	}
	assert.ElementsMatch(t, []vmath.Vec3{
		vmath.New(-20, -20, 0),
		vmath.New(-20, 20, 0),
		vmath.New(20, -20, 0),
		vmath.New(20, 20, 0),
	}, offsets)
}

func TestSpreadOffset(t *testing.T) {
	assert.Equal(t, vmath.Zero, cannon.SpreadOffset(0, 1, 40))

	tests := []struct {
		i    int
		want vmath.Vec3
	}{
		{0, vmath.New(-40, -40, 0)},
		{1, vmath.New(-40, 0, 0)},
		{5, vmath.New(0, 40, 0)},
		{8, vmath.New(40, 40, 0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cannon.SpreadOffset(tt.i, 3, 40))
	}
}

func TestAutoFire(t *testing.T) {
	settings := cannon.DefaultSettings()
	settings.AutoFire = true
	w := setup(t, settings, true)

	w.buttons.Press(input.ActionFire)
	w.step(1, 0.25)
	for range 4 {
		w.buttons.Set(input.ActionFire, true)
		w.step(1, 0.25)
	}

	// The press plus one shot per 0.5s held.
	assert.Equal(t, 3, w.projectileCount())
}

func TestFireWithoutAnimationsIsNoop(t *testing.T) {
	w := setup(t, cannon.DefaultSettings(), false)

	w.buttons.Press(input.ActionFire)
	assert.NotPanics(t, func() { w.step(1, 0.1) })
	assert.Equal(t, 0, w.projectileCount())
}

func TestDirection(t *testing.T) {
	var buttons input.ButtonInput
	assert.Equal(t, vmath.Zero, cannon.Direction(&buttons))

	buttons.Press(input.ActionMoveLeft)
	buttons.Press(input.ActionMoveRight)
	assert.Equal(t, vmath.Zero, cannon.Direction(&buttons), "opposites cancel")

	buttons.Release(input.ActionMoveLeft)
	buttons.Press(input.ActionMoveUp)
	assert.Equal(t, vmath.New(1, 1, 0), cannon.Direction(&buttons))
}
