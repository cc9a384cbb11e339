package main

import (
	"flag"
	"fmt"
	"os"

	"f1map3d/internal/config"
	"f1map3d/internal/mapdata"
	"f1map3d/internal/occupancy"
	"f1map3d/internal/preview"
)

func main() {
	tracksDir := flag.String("tracks", "", "Tracks directory (default: tracks)")
	out := flag.String("o", "", "Output WebP path (default: <track>_preview.webp)")
	scale := flag.Int("scale", 1, "Integer upscale factor")
	boundaryOnly := flag.Bool("boundary", true, "Highlight boundary cells in red")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: previewmap [-o out.webp] [-scale N] <track-name>")
		os.Exit(2)
	}
	track := flag.Arg(0)

	var cfg config.Config
	cfg.Resolve(config.Flags{TracksDir: *tracksDir})

	md, err := mapdata.LoadMetadata(cfg.MapYAMLPath(track))
	if err == nil {
		err = md.Validate()
	}
	if err != nil {
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

	occ := occupancy.Classify(grid.Pix, grid.Rows, grid.Cols, md.OccupiedThresh, md.FreeThresh)
	var mask *occupancy.Mask
	if *boundaryOnly {
		mask = occupancy.Boundary(occ)
	}

	img := preview.Render(occ, mask, *scale)

	path := *out
	if path == "" {
		path = track + "_preview.webp"
	}
	if err := preview.SaveWebP(path, img); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Preview: %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
}
