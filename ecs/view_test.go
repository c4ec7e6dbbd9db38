package ecs_test

import (
	"testing"

	"github.com/plus3/handcannon/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mover struct {
	ecs.EntityId
	*Position
	Velocity *Velocity `ecs:"optional"`
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 2}, Health{Current: 3, Max: 5})

	view := ecs.NewView[struct {
		*Position
		*Health
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(2), item.Position.Y)
	assert.Equal(t, 3, item.Health.Current)

	// writes go straight to storage
	item.Health.Current = 0
	assert.Equal(t, 0, ecs.ReadComponent[Health](storage, id).Current)

	t.Run("missing required component", func(t *testing.T) {
		other := storage.Spawn(Position{})
		assert.Nil(t, view.Get(other))
	})

	t.Run("deleted entity", func(t *testing.T) {
		storage.Delete(id)
		assert.Nil(t, view.Get(id))
	})
}

func TestViewOptionalAndEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	still := storage.Spawn(Position{X: 1})
	moving := storage.Spawn(Position{X: 2}, Velocity{DX: 1})

	view := ecs.NewView[mover](storage)

	item := view.Get(still)
	require.NotNil(t, item)
	assert.Equal(t, still, item.EntityId)
	assert.Nil(t, item.Velocity)

	item = view.Get(moving)
	require.NotNil(t, item)
	assert.Equal(t, moving, item.EntityId)
	require.NotNil(t, item.Velocity)
	assert.Equal(t, float32(1), item.Velocity.DX)

	seen := map[ecs.EntityId]float32{}
	for id, m := range view.Iter() {
		assert.Equal(t, id, m.EntityId)
		seen[id] = m.Position.X
	}
	assert.Equal(t, map[ecs.EntityId]float32{still: 1, moving: 2}, seen)
}

func TestViewGetRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ref := storage.CreateEntityRef(storage.Spawn(Position{X: 7}))

	view := ecs.NewView[struct{ *Position }](storage)
	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, float32(7), item.Position.X)

	storage.Delete(ref.Id)
	assert.Nil(t, view.GetRef(ref))
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[mover](storage)

	id := view.Spawn(mover{Position: &Position{X: 3}})
	assert.True(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id), "nil optional fields are skipped")

	id = view.Spawn(mover{Position: &Position{X: 4}, Velocity: &Velocity{DY: 2}})
	assert.Equal(t, float32(2), ecs.ReadComponent[Velocity](storage, id).DY)
	assert.Equal(t, 2, storage.EntityCount())
}

func TestViewRejectsBadStructs(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() {
		ecs.NewView[struct{ Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A ecs.EntityId
			B ecs.EntityId
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"maybe"`
		}](storage)
	})
}

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[mover](storage)

	assert.Panics(t, func() {
		for range query.Values() {
		}
	}, "iterating before Execute")

	storage.Spawn(Position{X: 1})
	query.Execute()
	count := 0
	for range query.Values() {
		count++
	}
	assert.Equal(t, 1, count)

	// a new archetype is picked up on the next Execute
	storage.Spawn(Position{X: 2}, Velocity{DX: 1})
	query.Execute()
	withVelocity := 0
	for _, m := range query.Iter() {
		if m.Velocity != nil {
			withVelocity++
		}
	}
	assert.Equal(t, 1, withVelocity)
}
