package tween_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/tween"
	"github.com/plus3/handcannon/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*ecs.Storage, *ecs.Scheduler) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	movement.Register(registry)
	tween.Register(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&tween.System{})
	return storage, scheduler
}

func TestAnimatorReachesEnd(t *testing.T) {
	storage, scheduler := setup(t)

	calls := 0
	start := vmath.Zero
	end := vmath.New(100, 0, 0)
	id := storage.Spawn(
		movement.FromXYZ(0, 0, 0),
		tween.ExponentialInOut(start, end, 100*time.Millisecond, func() { calls++ }),
	)
	ref := storage.CreateEntityRef(id)

	scheduler.Once(0.05)
	current, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	mid := ecs.ReadComponent[movement.Transform](storage, current).Translation
	assert.InDelta(t, 50, mid.X, 1, "exponential in-out is symmetric around the midpoint")
	assert.Equal(t, 0, calls)

	scheduler.Once(0.06)
	current, ok = storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.True(t, ecs.ReadComponent[movement.Transform](storage, current).Translation.ApproxEqual(end, 1e-9))
	assert.False(t, storage.HasComponent(current, reflect.TypeOf(tween.Animator{})))
	assert.Equal(t, 1, calls)

	for range 5 {
		scheduler.Once(0.05)
	}
	assert.Equal(t, 1, calls, "completion fires exactly once")
}

func TestAnimatorOvershootingFrameSnapsToEnd(t *testing.T) {
	storage, scheduler := setup(t)

	calls := 0
	end := vmath.New(0, -100, 0)
	id := storage.Spawn(
		movement.FromXYZ(0, 0, 0),
		tween.ExponentialInOut(vmath.Zero, end, 100*time.Millisecond, func() { calls++ }),
	)
	ref := storage.CreateEntityRef(id)

	scheduler.Once(1)

	current, ok := storage.ResolveEntityRef(ref)
	require.True(t, ok)
	assert.Equal(t, end, ecs.ReadComponent[movement.Transform](storage, current).Translation)
	assert.Equal(t, 1, calls)
}

func TestAnimatorWithoutCallback(t *testing.T) {
	storage, scheduler := setup(t)

	id := storage.Spawn(
		movement.FromXYZ(0, 0, 0),
		tween.New(vmath.Zero, vmath.New(10, 10, 0), time.Second, nil, nil),
	)
	ref := storage.CreateEntityRef(id)

	scheduler.Once(0.5)
	current, _ := storage.ResolveEntityRef(ref)
	assert.InDelta(t, 5, ecs.ReadComponent[movement.Transform](storage, current).Translation.X, 1e-4)

	assert.NotPanics(t, func() { scheduler.Once(0.5) })
	current, _ = storage.ResolveEntityRef(ref)
	assert.False(t, storage.HasComponent(current, reflect.TypeOf(tween.Animator{})))
}
