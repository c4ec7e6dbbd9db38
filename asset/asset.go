// Package asset tracks textures and texture-atlas layouts by handle so that
// components can refer to them without depending on a graphics backend.
// The renderer resolves handles to GPU images lazily.
package asset

import (
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
)

//go:embed hands/*.png
var embedded embed.FS

// Embedded returns the sprite sheets compiled into the binary.
func Embedded() fs.FS {
	return embedded
}

// TextureHandle identifies a decoded texture in a Library. The zero value is
// never issued.
type TextureHandle uint32

// LayoutHandle identifies an AtlasLayout in a Library. The zero value is never
// issued.
type LayoutHandle uint32

var ErrUnknownHandle = errors.New("asset: unknown handle")

// AtlasLayout slices a texture into a grid of equally sized tiles, numbered
// row-major starting at 0.
type AtlasLayout struct {
	TileWidth  int
	TileHeight int
	Columns    int
	Rows       int
}

// GridLayout mirrors a square-tile sprite sheet of columns x rows frames.
func GridLayout(tile, columns, rows int) AtlasLayout {
	return AtlasLayout{TileWidth: tile, TileHeight: tile, Columns: columns, Rows: rows}
}

// Len is the number of frames in the layout.
func (l AtlasLayout) Len() int {
	return l.Columns * l.Rows
}

// Frame returns the pixel rectangle of the frame at index.
func (l AtlasLayout) Frame(index int) image.Rectangle {
	col := index % l.Columns
	row := index / l.Columns
	minPt := image.Pt(col*l.TileWidth, row*l.TileHeight)
	return image.Rectangle{Min: minPt, Max: minPt.Add(image.Pt(l.TileWidth, l.TileHeight))}
}

type texture struct {
	path  string
	image image.Image
}

// Library owns every loaded texture and layout. It is populated during
// startup and only read afterwards.
type Library struct {
	fsys     fs.FS
	textures []texture
	layouts  []AtlasLayout
	byPath   map[string]TextureHandle
}

// NewLibrary creates a Library that loads textures from fsys.
func NewLibrary(fsys fs.FS) *Library {
	return &Library{
		fsys:   fsys,
		byPath: make(map[string]TextureHandle),
	}
}

// Load decodes the image at path and returns its handle. Loading the same
// path twice returns the same handle.
func (l *Library) Load(path string) (TextureHandle, error) {
	if handle, ok := l.byPath[path]; ok {
		return handle, nil
	}

	f, err := l.fsys.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return 0, fmt.Errorf("decode texture %q: %w", path, err)
	}

	return l.AddImage(path, img), nil
}

// AddImage registers an already decoded image under path.
func (l *Library) AddImage(path string, img image.Image) TextureHandle {
	l.textures = append(l.textures, texture{path: path, image: img})
	handle := TextureHandle(len(l.textures))
	l.byPath[path] = handle
	return handle
}

// AddLayout registers an atlas layout.
func (l *Library) AddLayout(layout AtlasLayout) LayoutHandle {
	l.layouts = append(l.layouts, layout)
	return LayoutHandle(len(l.layouts))
}

// Image returns the decoded image for handle.
func (l *Library) Image(handle TextureHandle) (image.Image, error) {
	if handle == 0 || int(handle) > len(l.textures) {
		return nil, fmt.Errorf("texture %d: %w", handle, ErrUnknownHandle)
	}
	return l.textures[handle-1].image, nil
}

// Path returns the path a texture was loaded from.
func (l *Library) Path(handle TextureHandle) string {
	if handle == 0 || int(handle) > len(l.textures) {
		return ""
	}
	return l.textures[handle-1].path
}

// Layout returns the atlas layout for handle.
func (l *Library) Layout(handle LayoutHandle) (AtlasLayout, error) {
	if handle == 0 || int(handle) > len(l.layouts) {
		return AtlasLayout{}, fmt.Errorf("layout %d: %w", handle, ErrUnknownHandle)
	}
	return l.layouts[handle-1], nil
}

// TextureCount is the number of textures loaded so far.
func (l *Library) TextureCount() int {
	return len(l.textures)
}
