// Package preview renders a top-down image of the classified map, for
// eyeballing threshold and boundary behavior before a long conversion.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"f1map3d/internal/occupancy"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

var (
	colorFree     = color.NRGBA{255, 255, 255, 255}
	colorOccupied = color.NRGBA{40, 40, 40, 255}
	colorBoundary = color.NRGBA{220, 50, 47, 255}
)

// Render paints the grid one pixel per cell (free white, occupied dark,
// boundary red) and scales it up by the given integer factor with
// nearest-neighbor so cells stay crisp. mask may be nil.
func Render(g *occupancy.Grid, mask *occupancy.Mask, scale int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Cols, g.Rows))
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			px := colorFree
			if g.At(r, c) == occupancy.Occupied {
				px = colorOccupied
			}
			if mask != nil && mask.At(r, c) {
				px = colorBoundary
			}
			img.SetNRGBA(c, r, px)
		}
	}

	if scale <= 1 {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, g.Cols*scale, g.Rows*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// SaveWebP encodes the image to a WebP file.
func SaveWebP(path string, img *image.NRGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("preview: create %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("preview: webp encode %s: %w", path, err)
	}
	return nil
}
