package hand

import (
	"time"

	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/vmath"
)

const (
	// SpriteScale magnifies the 32px sheets.
	SpriteScale = 6
	// FrameTime is how long each animation frame is shown.
	FrameTime = 250 * time.Millisecond
)

// Bundle is the component set of an animated hand at translation. Extra
// components can be appended before spawning.
func Bundle(anims *HandAnimations, h Hand, translation vmath.Vec3) []any {
	sheet := anims.Get(h)
	components := animation.Bundle(
		translation,
		vmath.Splat(SpriteScale),
		sheet.Texture,
		sheet.Layout,
		sheet.Indices,
		FrameTime,
	)
	return append(components, h, HandSprite{Shown: h}, ecs.Name("Hand"))
}
