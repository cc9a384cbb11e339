package main

import (
	"flag"
	"fmt"
	"os"

	"f1map3d/internal/config"
	"f1map3d/internal/mapdata"
	"f1map3d/internal/occupancy"
)

func main() {
	tracksDir := flag.String("tracks", "", "Tracks directory (default: tracks)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: inspectmap [-tracks dir] <track-name>")
		os.Exit(2)
	}
	track := flag.Arg(0)

	var cfg config.Config
	cfg.Resolve(config.Flags{TracksDir: *tracksDir})

	md, err := mapdata.LoadMetadata(cfg.MapYAMLPath(track))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := md.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	imgPath, err := cfg.MapImagePath(track)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	grid, err := mapdata.LoadRaster(imgPath, md.Negate != 0)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Raster: %s (%d rows x %d cols)\n", imgPath, grid.Rows, grid.Cols)
	fmt.Printf("Resolution: %g m/cell\n", md.Resolution)
	fmt.Printf("Origin: (%g, %g)\n", md.OriginX(), md.OriginY())
	fmt.Printf("Thresholds: occupied=%g free=%g negate=%d\n", md.OccupiedThresh, md.FreeThresh, md.Negate)
	fmt.Printf("World extent: %.2f m x %.2f m\n",
		float64(grid.Cols)*md.Resolution, float64(grid.Rows)*md.Resolution)

	// Intensity histogram over the classification bands
	occCut := 1.0 - md.OccupiedThresh
	freeCut := 1.0 - md.FreeThresh
	var nOcc, nFree, nUnknown int
	for _, v := range grid.Pix {
		switch {
		case v >= freeCut:
			nFree++
		case v <= occCut:
			nOcc++
		default:
			nUnknown++
		}
	}
	total := len(grid.Pix)
	fmt.Printf("Bands: occupied=%d (%.1f%%) free=%d (%.1f%%) unknown=%d (%.1f%%)\n",
		nOcc, pct(nOcc, total), nFree, pct(nFree, total), nUnknown, pct(nUnknown, total))

	occ := occupancy.Classify(grid.Pix, grid.Rows, grid.Cols, md.OccupiedThresh, md.FreeThresh)
	mask := occupancy.Boundary(occ)

	b := mask.Count()
	fmt.Printf("Classified occupied: %d (unknown folds into occupied)\n", occ.CountOccupied())
	fmt.Printf("Boundary cells: %d\n", b)
	fmt.Printf("Predicted mesh: %d vertices, %d triangles (pre-dedup)\n", 8*b+4, 12*b+2)
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
