package mapdata

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// IntensityGrid holds normalized grayscale samples in row-major order.
// 1.0 is brightest (free-looking), 0.0 darkest (occupied-looking).
// Row 0 is the raster's top edge.
type IntensityGrid struct {
	Rows, Cols int
	Pix        []float64
}

// At returns the sample at (row, col). No bounds check; callers iterate
// within Rows/Cols.
func (g *IntensityGrid) At(row, col int) float64 {
	return g.Pix[row*g.Cols+col]
}

// LoadRaster decodes a grayscale map raster into normalized intensities.
// PNG, JPEG, TGA, BMP and TIFF go through image.Decode; PGM (the other
// common ROS map format) has its own decoder. negate flips every sample
// (v -> 1-v), matching the map_server negate flag.
func LoadRaster(path string, negate bool) (*IntensityGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapdata: open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".pgm") {
		g, err := decodePGM(f)
		if err != nil {
			return nil, fmt.Errorf("mapdata: decode %s: %w", path, err)
		}
		return finishGrid(g, negate)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("mapdata: decode %s: %w", path, err)
	}
	return finishGrid(fromImage(img), negate)
}

func fromImage(img image.Image) *IntensityGrid {
	b := img.Bounds()
	g := &IntensityGrid{
		Rows: b.Dy(),
		Cols: b.Dx(),
		Pix:  make([]float64, b.Dy()*b.Dx()),
	}

	// Fast path for the usual grayscale decode result.
	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < g.Rows; y++ {
			row := gray.Pix[y*gray.Stride:]
			for x := 0; x < g.Cols; x++ {
				g.Pix[y*g.Cols+x] = float64(row[x]) / 255.0
			}
		}
		return g
	}

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			g.Pix[y*g.Cols+x] = float64(c.Y) / 255.0
		}
	}
	return g
}

func finishGrid(g *IntensityGrid, negate bool) (*IntensityGrid, error) {
	if g.Rows == 0 || g.Cols == 0 {
		return nil, fmt.Errorf("mapdata: %dx%d raster: %w", g.Rows, g.Cols, ErrShapeMismatch)
	}
	if negate {
		for i, v := range g.Pix {
			g.Pix[i] = 1.0 - v
		}
	}
	return g, nil
}
