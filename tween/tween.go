// Package tween eases a Transform between two points and reports
// completion through a one-shot callback.
package tween

import (
	"reflect"
	"time"

	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/vmath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var animatorType = reflect.TypeOf(Animator{})

// Animator moves its entity's Transform.Translation from Start to End. When
// the tween completes the Animator is removed and OnComplete runs once, after
// the frame's structural changes have been applied.
type Animator struct {
	Start      vmath.Vec3
	End        vmath.Vec3
	OnComplete func()

	progress *gween.Tween
}

// New builds an animator over duration using easing. A nil easing is linear.
func New(start, end vmath.Vec3, duration time.Duration, easing ease.TweenFunc, onComplete func()) Animator {
	if easing == nil {
		easing = ease.Linear
	}
	return Animator{
		Start:      start,
		End:        end,
		OnComplete: onComplete,
		progress:   gween.New(0, 1, float32(duration.Seconds()), easing),
	}
}

// ExponentialInOut is New with exponential in-out easing.
func ExponentialInOut(start, end vmath.Vec3, duration time.Duration, onComplete func()) Animator {
	return New(start, end, duration, ease.InOutExpo, onComplete)
}

// step advances the tween and returns the eased translation.
func (a *Animator) step(dt float64) (vmath.Vec3, bool) {
	if a.progress == nil {
		return a.End, true
	}
	t, finished := a.progress.Update(float32(dt))
	if finished {
		return a.End, true
	}
	return a.Start.Lerp(a.End, float64(t)), false
}

// System drives every Animator.
type System struct {
	Animated ecs.Query[struct {
		ecs.EntityId
		*Animator
		*movement.Transform
	}]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Animated.Values() {
		translation, finished := item.Animator.step(frame.DeltaTime)
		item.Transform.Translation = translation
		if !finished {
			continue
		}

		frame.Commands.RemoveComponent(item.EntityId, animatorType)
		if item.Animator.OnComplete != nil {
			frame.Commands.Defer(item.Animator.OnComplete)
		}
	}
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Animator](registry)
}
