package hand_test

import (
	"reflect"
	"testing"

	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/asset"
	"github.com/plus3/handcannon/camera"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/hand"
	"github.com/plus3/handcannon/input"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/particles"
	"github.com/plus3/handcannon/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var textures = map[hand.Hand]asset.TextureHandle{
	hand.Rock:     10,
	hand.Paper:    20,
	hand.Scissors: 30,
}

type world struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	anims     hand.HandAnimations
}

func setup(t *testing.T) *world {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	movement.Register(registry)
	animation.Register(registry)
	particles.Register(registry)
	camera.Register(registry)
	hand.Register(registry)

	anims, err := hand.NewHandAnimations(textures, 1, animation.FromFrames(4))
	require.NoError(t, err)

	storage := ecs.NewStorage(registry)
	storage.AddSingleton(input.ButtonInput{})
	storage.AddSingleton(anims)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(hand.NewCycleSystem())
	scheduler.Register(&hand.SyncSystem{})

	return &world{storage: storage, scheduler: scheduler, anims: anims}
}

func (w *world) buttons(t *testing.T) *input.ButtonInput {
	var buttons *input.ButtonInput
	require.True(t, w.storage.ReadSingleton(&buttons))
	return buttons
}

func (w *world) tap(t *testing.T) {
	buttons := w.buttons(t)
	buttons.Press(input.ActionCycleHand)
	w.scheduler.Once(1.0 / 60)
	buttons.Release(input.ActionCycleHand)
	w.scheduler.Once(1.0 / 60)
}

func (w *world) count(t *testing.T, component any) int {
	n := 0
	for _, archetype := range w.storage.GetArchetypes() {
		for _, typ := range archetype.Types() {
			if typ == reflect.TypeOf(component) {
				n += archetype.Len()
			}
		}
	}
	return n
}

func TestCycleKeyAdvancesHandAndSyncsTexture(t *testing.T) {
	w := setup(t)
	id := w.storage.Spawn(hand.Bundle(&w.anims, hand.Rock, vmath.Zero)...)
	ref := w.storage.CreateEntityRef(id)

	w.tap(t)

	current, ok := w.storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, hand.Paper, *ecs.ReadComponent[hand.Hand](w.storage, current))
	assert.Equal(t, asset.TextureHandle(20), ecs.ReadComponent[animation.Sprite](w.storage, current).Texture)
	assert.Equal(t, hand.Paper, ecs.ReadComponent[hand.HandSprite](w.storage, current).Shown)
	assert.NotNil(t, ecs.ReadComponent[particles.Emitter](w.storage, current), "first cycle attaches an emitter")

	w.tap(t)
	w.tap(t)

	current, _ = w.storage.ResolveEntityRef(ref)
	assert.Equal(t, hand.Rock, *ecs.ReadComponent[hand.Hand](w.storage, current))
	assert.Equal(t, asset.TextureHandle(10), ecs.ReadComponent[animation.Sprite](w.storage, current).Texture)
}

func TestCycleRearmsExistingEmitter(t *testing.T) {
	w := setup(t)
	emitter := particles.NewEmitter(particles.Boom())
	emitter.Pending = false
	id := w.storage.Spawn(append(hand.Bundle(&w.anims, hand.Scissors, vmath.Zero), emitter)...)

	w.tap(t)

	assert.True(t, ecs.ReadComponent[particles.Emitter](w.storage, id).Pending)
	assert.Equal(t, hand.Rock, *ecs.ReadComponent[hand.Hand](w.storage, id))
}

func TestCycleShakesCameraOncePerPress(t *testing.T) {
	w := setup(t)
	w.storage.Spawn(hand.Bundle(&w.anims, hand.Rock, vmath.Zero)...)
	w.storage.Spawn(hand.Bundle(&w.anims, hand.Paper, vmath.New(100, 0, 0))...)

	buttons := w.buttons(t)
	buttons.Press(input.ActionCycleHand)
	w.scheduler.Once(1.0 / 60)

	assert.Equal(t, 1, w.count(t, camera.ShakeRequest{}))

	// Holding the key is not a new press.
	buttons.Set(input.ActionCycleHand, true)
	w.scheduler.Once(1.0 / 60)
	assert.Equal(t, 1, w.count(t, camera.ShakeRequest{}))
}

func TestNoCycleWithoutPress(t *testing.T) {
	w := setup(t)
	id := w.storage.Spawn(hand.Bundle(&w.anims, hand.Paper, vmath.Zero)...)

	for range 10 {
		w.scheduler.Once(1.0 / 60)
	}

	assert.Equal(t, hand.Paper, *ecs.ReadComponent[hand.Hand](w.storage, id))
	assert.Equal(t, 0, w.count(t, camera.ShakeRequest{}))
}

func TestSyncOnlyRewritesChangedHands(t *testing.T) {
	w := setup(t)
	id := w.storage.Spawn(hand.Bundle(&w.anims, hand.Paper, vmath.Zero)...)

	// A texture set by someone else survives while the hand is unchanged.
	ecs.ReadComponent[animation.Sprite](w.storage, id).Texture = 99
	w.scheduler.Once(1.0 / 60)
	assert.Equal(t, asset.TextureHandle(99), ecs.ReadComponent[animation.Sprite](w.storage, id).Texture)

	*ecs.ReadComponent[hand.Hand](w.storage, id) = hand.Scissors
	w.scheduler.Once(1.0 / 60)
	assert.Equal(t, asset.TextureHandle(30), ecs.ReadComponent[animation.Sprite](w.storage, id).Texture)
}
