package diagnostics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/plus3/handcannon/diagnostics"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/lifetime"
)

func TestRecordHistory(t *testing.T) {
	diag := diagnostics.New(4)
	assert.Equal(t, 0.0, diag.FPS())

	diag.Record(10*time.Millisecond, 3)
	diag.Record(30*time.Millisecond, 5)

	assert.Equal(t, 20*time.Millisecond, diag.AverageFrameTime().Round(time.Microsecond))
	assert.Equal(t, 30*time.Millisecond, diag.MaxFrameTime().Round(time.Microsecond))
	assert.InDelta(t, 50, diag.FPS(), 0.01)
	assert.Equal(t, 5, diag.Entities)

	// Older frames fall out of the window.
	for range 4 {
		diag.Record(5*time.Millisecond, 1)
	}
	assert.Equal(t, 5*time.Millisecond, diag.MaxFrameTime().Round(time.Microsecond))
	assert.Equal(t, int64(6), diag.Frames)
}

type Marker struct{}

func TestSystemLogsEveryInterval(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Marker](registry)
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(diagnostics.New(10))
	storage.AddSingleton(lifetime.Stats{Despawned: 7})
	storage.Spawn(Marker{})
	storage.Spawn(Marker{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(diagnostics.NewSystem(zap.New(core), time.Second, scheduler))

	for range 9 {
		scheduler.Once(0.25)
	}

	infos := recorded.FilterMessage("frame diagnostics").All()
	require.Len(t, infos, 2)

	fields := infos[0].ContextMap()
	assert.Equal(t, int64(2), fields["entities"])
	assert.Equal(t, int64(7), fields["despawned"])
	assert.InDelta(t, 4.0, fields["fps"], 0.01)

	assert.NotEmpty(t, recorded.FilterMessage("system timing").All())
	assert.Equal(t, "diagnostics", infos[0].LoggerName)
}

func TestSystemWithoutInterval(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)
	storage.AddSingleton(diagnostics.New(10))

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(diagnostics.NewSystem(zap.New(core), 0, nil))
	for range 100 {
		scheduler.Once(1)
	}

	assert.Zero(t, recorded.Len())

	var diag *diagnostics.Diagnostics
	require.True(t, storage.ReadSingleton(&diag))
	assert.Equal(t, int64(100), diag.Frames)
}
