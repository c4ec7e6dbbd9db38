// Package animation plays looping sprite-sheet animations by stepping a
// texture-atlas frame index on a repeating timer.
package animation

import (
	"time"

	"github.com/plus3/handcannon/asset"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/vmath"
)

// AnimationIndices bounds the frames of a looping animation, inclusive.
// Callers must keep First <= Last.
type AnimationIndices struct {
	First int
	Last  int
}

// FromFrames covers frames 0..frames-1.
func FromFrames(frames int) AnimationIndices {
	return AnimationIndices{First: 0, Last: frames - 1}
}

// Advance returns the frame after index, wrapping to First once Last is
// reached.
func (a AnimationIndices) Advance(index int) int {
	if index >= a.Last {
		return a.First
	}
	return index + 1
}

// AnimationTimer paces frame advances.
type AnimationTimer struct {
	ecs.Timer
}

// Repeating returns a timer that fires every frameTime.
func Repeating(frameTime time.Duration) AnimationTimer {
	return AnimationTimer{ecs.NewTimer(frameTime, ecs.TimerRepeating)}
}

// TextureAtlas selects one frame of a sprite sheet.
type TextureAtlas struct {
	Layout asset.LayoutHandle
	Index  int
}

// Sprite is the texture drawn for an entity. With a TextureAtlas only the
// current frame is drawn.
type Sprite struct {
	Texture asset.TextureHandle
}

// Bundle is the component set of an animated sprite positioned at
// translation. Pass it to Spawn with any extra components appended.
func Bundle(
	translation vmath.Vec3,
	scale vmath.Vec3,
	texture asset.TextureHandle,
	layout asset.LayoutHandle,
	indices AnimationIndices,
	frameTime time.Duration,
) []any {
	return []any{
		movement.Transform{Translation: translation, Scale: scale},
		Sprite{Texture: texture},
		TextureAtlas{Layout: layout, Index: indices.First},
		indices,
		Repeating(frameTime),
	}
}

// SpriteSystem advances each animated sprite by at most one frame per tick.
type SpriteSystem struct {
	Sprites ecs.Query[struct {
		*AnimationIndices
		*AnimationTimer
		*TextureAtlas
	}]
}

func (s *SpriteSystem) Execute(frame *ecs.UpdateFrame) {
	delta := frame.Delta()
	for sprite := range s.Sprites.Values() {
		if sprite.AnimationTimer.Tick(delta).JustFinished() {
			sprite.TextureAtlas.Index = sprite.AnimationIndices.Advance(sprite.TextureAtlas.Index)
		}
	}
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[AnimationIndices](registry)
	ecs.RegisterComponent[AnimationTimer](registry)
	ecs.RegisterComponent[TextureAtlas](registry)
	ecs.RegisterComponent[Sprite](registry)
}
