package asset_test

import (
	"image"
	"testing"
	"testing/fstest"

	"github.com/plus3/handcannon/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedHandSheets(t *testing.T) {
	library := asset.NewLibrary(asset.Embedded())

	for _, path := range []string{"hands/rock.png", "hands/paper.png", "hands/scissors.png"} {
		t.Run(path, func(t *testing.T) {
			handle, err := library.Load(path)
			require.NoError(t, err)

			img, err := library.Image(handle)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 128, 32), img.Bounds())
		})
	}
}

func TestLoadIsCachedByPath(t *testing.T) {
	library := asset.NewLibrary(asset.Embedded())

	first, err := library.Load("hands/rock.png")
	require.NoError(t, err)
	second, err := library.Load("hands/rock.png")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, library.TextureCount())
	assert.Equal(t, "hands/rock.png", library.Path(first))
}

func TestLoadErrors(t *testing.T) {
	library := asset.NewLibrary(fstest.MapFS{
		"broken.png": &fstest.MapFile{Data: []byte("not a png")},
	})

	_, err := library.Load("missing.png")
	assert.Error(t, err)

	_, err = library.Load("broken.png")
	assert.ErrorContains(t, err, "decode texture")

	_, err = library.Image(42)
	assert.ErrorIs(t, err, asset.ErrUnknownHandle)
	_, err = library.Layout(0)
	assert.ErrorIs(t, err, asset.ErrUnknownHandle)
}

func TestAtlasLayoutFrames(t *testing.T) {
	layout := asset.GridLayout(32, 4, 1)

	assert.Equal(t, 4, layout.Len())
	assert.Equal(t, image.Rect(0, 0, 32, 32), layout.Frame(0))
	assert.Equal(t, image.Rect(96, 0, 128, 32), layout.Frame(3))

	grid := asset.GridLayout(16, 2, 2)
	assert.Equal(t, image.Rect(0, 16, 16, 32), grid.Frame(2))
}
