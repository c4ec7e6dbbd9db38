// Package lifetime despawns transient entities once their time is up.
package lifetime

import (
	"time"

	"github.com/plus3/handcannon/ecs"
)

// EntityLifetime is a one-shot countdown. The owning entity is deleted at the
// end of the frame in which the countdown completes.
type EntityLifetime struct {
	ecs.Timer
}

// New returns a lifetime of ttl.
func New(ttl time.Duration) EntityLifetime {
	return EntityLifetime{ecs.NewTimer(ttl, ecs.TimerOnce)}
}

// Stats counts entities collected so far.
type Stats struct {
	Despawned int64
}

// GCSystem ticks every EntityLifetime and queues a delete for each one that
// just finished.
type GCSystem struct {
	Expiring ecs.Query[struct {
		ecs.EntityId
		*EntityLifetime
	}]
	Stats ecs.Singleton[Stats]
}

func (s *GCSystem) Execute(frame *ecs.UpdateFrame) {
	delta := frame.Delta()
	stats := s.Stats.Get()

	for item := range s.Expiring.Values() {
		if item.EntityLifetime.Tick(delta).JustFinished() {
			frame.Commands.Delete(item.EntityId)
			if stats != nil {
				stats.Despawned++
			}
		}
	}
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[EntityLifetime](registry)
}
