package preview

import (
	"testing"

	"f1map3d/internal/occupancy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_CellColors(t *testing.T) {
	t.Parallel()

	g := occupancy.NewGrid(2, 2)
	g.Set(0, 0, occupancy.Occupied)
	g.Set(0, 1, occupancy.Occupied)
	mask := occupancy.Boundary(g)

	img := Render(g, mask, 1)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 2, img.Bounds().Dy())

	// Both occupied cells touch free space, so they render as boundary.
	assert.Equal(t, colorBoundary, img.NRGBAAt(0, 0))
	assert.Equal(t, colorBoundary, img.NRGBAAt(1, 0))
	assert.Equal(t, colorFree, img.NRGBAAt(0, 1))
	assert.Equal(t, colorFree, img.NRGBAAt(1, 1))
}

func TestRender_WithoutMask(t *testing.T) {
	t.Parallel()

	g := occupancy.NewGrid(1, 2)
	g.Set(0, 0, occupancy.Occupied)

	img := Render(g, nil, 1)
	assert.Equal(t, colorOccupied, img.NRGBAAt(0, 0))
	assert.Equal(t, colorFree, img.NRGBAAt(1, 0))
}

func TestRender_Scale(t *testing.T) {
	t.Parallel()

	g := occupancy.NewGrid(1, 1)
	g.Set(0, 0, occupancy.Occupied)

	img := Render(g, nil, 4)
	require.Equal(t, 4, img.Bounds().Dx())
	require.Equal(t, 4, img.Bounds().Dy())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, colorOccupied, img.NRGBAAt(x, y))
		}
	}
}
