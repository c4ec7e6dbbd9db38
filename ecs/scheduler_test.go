package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/handcannon/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type ReaperSystem struct {
	Entities ecs.Query[struct {
		ecs.EntityId
		*Health
	}]
}

func (s *ReaperSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Entities.Values() {
		if item.Health.Current <= 0 {
			frame.Commands.Delete(item.EntityId)
		}
	}
}

type ClockSystem struct {
	Clock ecs.Singleton[GameClock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Frames++
	clock.Elapsed += frame.DeltaTime
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *ecs.UpdateFrame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(Position{}, Velocity{DX: 2})
}

func TestScheduler(t *testing.T) {
	t.Run("queries are executed before each system", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		id := storage.Spawn(Position{}, Velocity{DX: 10, DY: 20})
		scheduler.Once(0.5)

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(5), pos.X)
		assert.Equal(t, float32(10), pos.Y)
		assert.Equal(t, 1, movement.ExecuteCount)
	})

	t.Run("commands are visible on the next frame", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)

		scheduler.Register(&spawnOnceSystem{})
		movement := &MovementSystem{}
		scheduler.Register(movement)

		scheduler.Once(1)
		assert.Equal(t, 1, storage.EntityCount())

		scheduler.Once(1)
		for item := range movement.Entities.Values() {
			assert.Equal(t, float32(2), item.Position.X)
		}
	})

	t.Run("entity id fields are populated", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&ReaperSystem{})

		storage.Spawn(Health{Current: 0, Max: 10})
		alive := storage.Spawn(Health{Current: 5, Max: 10})

		scheduler.Once(1)
		assert.Equal(t, 1, storage.EntityCount())
		assert.True(t, storage.Alive(alive))
	})

	t.Run("singleton fields are initialized", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		ecs.NewSingleton[GameClock](storage)

		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&ClockSystem{})

		scheduler.Once(0.25)
		scheduler.Once(0.25)

		var clock *GameClock
		require.True(t, storage.ReadSingleton(&clock))
		assert.Equal(t, 2, clock.Frames)
		assert.InDelta(t, 0.5, clock.Elapsed, 1e-9)
	})

	t.Run("stats track executions", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MovementSystem{})

		for range 3 {
			scheduler.Once(0.016)
		}

		stats := scheduler.GetStats()
		require.Len(t, stats.Systems, 1)
		assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
		assert.Equal(t, int64(3), stats.TotalExecutions)
	})

	t.Run("run stops on context cancellation", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		scheduler := ecs.NewScheduler(storage)
		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			scheduler.Run(ctx, time.Millisecond)
			close(done)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("scheduler did not stop after context cancellation")
		}
		assert.Positive(t, movement.ExecuteCount)
	})
}

func TestCommandsFlushOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	commands := &ecs.Commands{}

	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)

	var deferredSaw bool
	commands.AddComponent(id, Velocity{DX: 1})
	commands.Defer(func() {
		// deferred functions run after structural changes
		resolved, ok := storage.ResolveEntityRef(ref)
		deferredSaw = ok && ecs.ReadComponent[Velocity](storage, resolved) != nil
	})
	commands.Flush(storage)

	assert.True(t, deferredSaw)

	t.Run("adds to deleted entities are dropped", func(t *testing.T) {
		other := storage.Spawn(Health{Current: 1})
		commands.Delete(other)
		commands.AddComponent(other, Velocity{})
		commands.Flush(storage)
		assert.False(t, storage.Alive(other))
	})
}
