// Package hand models the rock-paper-scissors state carried by projectiles
// and keeps each hand's sprite sheet in step with it.
package hand

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/asset"
	"github.com/plus3/handcannon/ecs"
)

// Hand is a rock-paper-scissors shape.
type Hand int

const (
	Rock Hand = iota
	Paper
	Scissors

	handCount
)

var ErrMissingHand = errors.New("hand: no animation registered")

// All lists every hand in cycle order.
func All() []Hand {
	return []Hand{Rock, Paper, Scissors}
}

// Cycle returns the next hand: Rock, Paper, Scissors, Rock...
func (h Hand) Cycle() Hand {
	switch h {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// Random picks a hand uniformly. A nil r uses the global source.
func Random(r *rand.Rand) Hand {
	if r == nil {
		return Hand(rand.IntN(int(handCount)))
	}
	return Hand(r.IntN(int(handCount)))
}

func (h Hand) String() string {
	switch h {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("Hand(%d)", int(h))
	}
}

// HandSprite records which hand the entity's Sprite currently shows, so the
// sync step only rewrites textures when the hand actually changed.
type HandSprite struct {
	Shown Hand
}

// Animation is the sprite sheet of one hand.
type Animation struct {
	Texture asset.TextureHandle
	Layout  asset.LayoutHandle
	Indices animation.AnimationIndices
}

// HandAnimations maps every hand to its sprite sheet. It is built once at
// startup and read-only afterwards.
type HandAnimations struct {
	textures [handCount]asset.TextureHandle
	layout   asset.LayoutHandle
	indices  animation.AnimationIndices
}

// NewHandAnimations requires a texture for every hand.
func NewHandAnimations(textures map[Hand]asset.TextureHandle, layout asset.LayoutHandle, indices animation.AnimationIndices) (HandAnimations, error) {
	var anims HandAnimations
	for _, h := range All() {
		texture, ok := textures[h]
		if !ok || texture == 0 {
			return HandAnimations{}, fmt.Errorf("%w: %s", ErrMissingHand, h)
		}
		anims.textures[h] = texture
	}
	anims.layout = layout
	anims.indices = indices
	return anims, nil
}

// Get returns the texture, layout and frame bounds for h.
func (a *HandAnimations) Get(h Hand) Animation {
	return Animation{
		Texture: a.textures[h],
		Layout:  a.layout,
		Indices: a.indices,
	}
}

func (a *HandAnimations) Layout() asset.LayoutHandle {
	return a.layout
}

func (a *HandAnimations) Indices() animation.AnimationIndices {
	return a.indices
}

const (
	sheetTile   = 32
	sheetFrames = 4
)

// LoadAnimations reads hands/<name>.png for every hand from lib. Each sheet
// is a single row of four 32px frames.
func LoadAnimations(lib *asset.Library) (HandAnimations, error) {
	textures := make(map[Hand]asset.TextureHandle, handCount)
	for _, h := range All() {
		handle, err := lib.Load("hands/" + h.String() + ".png")
		if err != nil {
			return HandAnimations{}, fmt.Errorf("load %s sheet: %w", h, err)
		}
		textures[h] = handle
	}

	layout := lib.AddLayout(asset.GridLayout(sheetTile, sheetFrames, 1))
	return NewHandAnimations(textures, layout, animation.FromFrames(sheetFrames))
}

func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Hand](registry)
	ecs.RegisterComponent[HandSprite](registry)
}
