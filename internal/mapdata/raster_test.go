package mapdata

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestLoadRaster_GrayPNG(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 255})
	img.SetGray(0, 1, color.Gray{Y: 127})
	img.SetGray(1, 1, color.Gray{Y: 51})

	g, err := LoadRaster(writePNG(t, img), false)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows)
	require.Equal(t, 2, g.Cols)

	assert.InDelta(t, 0.0, g.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, g.At(0, 1), 1e-9)
	assert.InDelta(t, 127.0/255.0, g.At(1, 0), 1e-9)
	assert.InDelta(t, 0.2, g.At(1, 1), 1e-9)
}

func TestLoadRaster_Negate(t *testing.T) {
	t.Parallel()

	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 255})

	g, err := LoadRaster(writePNG(t, img), true)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, g.At(0, 0), 1e-9)
}

func TestLoadRaster_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadRaster(filepath.Join(t.TempDir(), "nope.png"), false)
	assert.Error(t, err)
}

func TestDecodePGM_P5(t *testing.T) {
	t.Parallel()

	// 2x2, maxval 255, with a header comment.
	data := append([]byte("P5\n# made by map_saver\n2 2\n255\n"), 0, 255, 128, 64)
	path := filepath.Join(t.TempDir(), "map.pgm")
	require.NoError(t, os.WriteFile(path, data, 0644))

	g, err := LoadRaster(path, false)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows)
	require.Equal(t, 2, g.Cols)

	assert.InDelta(t, 0.0, g.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, g.At(0, 1), 1e-9)
	assert.InDelta(t, 128.0/255.0, g.At(1, 0), 1e-9)
}

func TestDecodePGM_P2(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "map.pgm")
	require.NoError(t, os.WriteFile(path, []byte("P2\n2 1\n100\n0 100\n"), 0644))

	g, err := LoadRaster(path, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, g.At(0, 0), 1e-9)
	assert.InDelta(t, 1.0, g.At(0, 1), 1e-9)
}

func TestDecodePGM_Truncated(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "map.pgm")
	require.NoError(t, os.WriteFile(path, []byte("P5\n4 4\n255\nxx"), 0644))

	_, err := LoadRaster(path, false)
	assert.Error(t, err)
}
