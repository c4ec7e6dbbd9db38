package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/plus3/handcannon/animation"
	"github.com/plus3/handcannon/asset"
	"github.com/plus3/handcannon/camera"
	"github.com/plus3/handcannon/cannon"
	"github.com/plus3/handcannon/ecs"
	"github.com/plus3/handcannon/lifetime"
	"github.com/plus3/handcannon/movement"
	"github.com/plus3/handcannon/particles"
	"github.com/plus3/handcannon/vmath"
)

var background = color.NRGBA{R: 24, G: 20, B: 28, A: 255}

// WorldToScreen maps a y-up world point, relative to the camera view, onto a
// y-down screen of width x height with the origin at its centre.
func WorldToScreen(p, view vmath.Vec3, width, height int) (float64, float64) {
	return float64(width)/2 + p.X - view.X, float64(height)/2 - (p.Y - view.Y)
}

// SpriteFrame is the source rectangle of the atlas frame to draw.
func SpriteFrame(layout asset.AtlasLayout, index int) image.Rectangle {
	if layout.Len() == 0 {
		return image.Rectangle{}
	}
	return layout.Frame(index)
}

// Renderer draws the world. GPU images are created from the asset library
// on first use.
type Renderer struct {
	library *asset.Library
	logger  *zap.Logger
	images  map[asset.TextureHandle]*ebiten.Image
	failed  map[asset.TextureHandle]bool

	sprites *ecs.Query[struct {
		*animation.Sprite
		*movement.Transform
		Atlas *animation.TextureAtlas `ecs:"optional"`
	}]
	bodies *ecs.Query[struct {
		*cannon.Body
		*movement.Transform
	}]
	particles *ecs.Query[struct {
		*particles.Particle
		*movement.Transform
		*lifetime.EntityLifetime
	}]
	camera *ecs.Singleton[camera.Camera]
}

func NewRenderer(storage *ecs.Storage, library *asset.Library, logger *zap.Logger) *Renderer {
	return &Renderer{
		library: library,
		logger:  logger,
		images:  make(map[asset.TextureHandle]*ebiten.Image),
		failed:  make(map[asset.TextureHandle]bool),
		sprites: ecs.NewQuery[struct {
			*animation.Sprite
			*movement.Transform
			Atlas *animation.TextureAtlas `ecs:"optional"`
		}](storage),
		bodies: ecs.NewQuery[struct {
			*cannon.Body
			*movement.Transform
		}](storage),
		particles: ecs.NewQuery[struct {
			*particles.Particle
			*movement.Transform
			*lifetime.EntityLifetime
		}](storage),
		camera: ecs.NewSingleton[camera.Camera](storage),
	}
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	bounds := screen.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	view := vmath.Zero
	if cam := r.camera.Get(); cam != nil {
		view = cam.View()
	}

	r.particles.Execute()
	for p := range r.particles.Values() {
		x, y := WorldToScreen(p.Transform.Translation, view, width, height)
		size := float32(p.Particle.Size)
		clr := p.Particle.ColorAt(p.EntityLifetime.Fraction()).NRGBA()
		vector.DrawFilledRect(screen, float32(x)-size/2, float32(y)-size/2, size, size, clr, false)
	}

	r.bodies.Execute()
	for b := range r.bodies.Values() {
		x, y := WorldToScreen(b.Transform.Translation, view, width, height)
		w, h := float32(b.Body.Width), float32(b.Body.Height)
		vector.DrawFilledRect(screen, float32(x)-w/2, float32(y)-h/2, w, h, b.Body.Color, false)
	}

	r.sprites.Execute()
	for s := range r.sprites.Values() {
		img := r.image(s.Sprite.Texture)
		if img == nil {
			continue
		}
		if s.Atlas != nil {
			layout, err := r.library.Layout(s.Atlas.Layout)
			if err != nil {
				continue
			}
			img = img.SubImage(SpriteFrame(layout, s.Atlas.Index)).(*ebiten.Image)
		}

		frame := img.Bounds()
		x, y := WorldToScreen(s.Transform.Translation, view, width, height)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(frame.Dx())/2, -float64(frame.Dy())/2)
		op.GeoM.Scale(s.Transform.Scale.X, s.Transform.Scale.Y)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
	}
}

func (r *Renderer) image(handle asset.TextureHandle) *ebiten.Image {
	if img, ok := r.images[handle]; ok {
		return img
	}
	if r.failed[handle] {
		return nil
	}

	src, err := r.library.Image(handle)
	if err != nil {
		r.failed[handle] = true
		r.logger.Warn("texture unavailable", zap.Error(fmt.Errorf("resolve texture: %w", err)))
		return nil
	}

	img := ebiten.NewImageFromImage(src)
	r.images[handle] = img
	return img
}
