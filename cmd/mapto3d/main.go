package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"f1map3d/internal/batch"
	"f1map3d/internal/config"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: mapto3d [flags] <track-name>\n")
	fmt.Fprintf(os.Stderr, "       mapto3d [flags] -all\n\n")
	fmt.Fprintf(os.Stderr, "Converts a 2D occupancy map (tracks/<name>/<name>_map.png + .yaml)\n")
	fmt.Fprintf(os.Stderr, "into a 3D track mesh (walls + floor) for simulation.\n\n")
	flag.PrintDefaults()
}

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	height := flag.Float64("height", 0, "Wall height in meters (default: 1.0)")
	output := flag.String("output", "", "Output mesh file path (single track only)")
	formats := flag.String("formats", "", "Comma-separated output formats: obj,stl (default: both)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	tracksDir := flag.String("tracks", "", "Tracks directory (default: tracks)")
	outputDir := flag.String("outdir", "", "Output directory (default: output)")
	doPreview := flag.Bool("preview", false, "Also write a top-down WebP preview of the occupancy grid")
	all := flag.Bool("all", false, "Convert every track under the tracks directory")

	flag.Usage = usage
	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	var fmtList []string
	if *formats != "" {
		fmtList = strings.Split(*formats, ",")
	}
	cfg.Resolve(config.Flags{
		TracksDir:  *tracksDir,
		OutputDir:  *outputDir,
		WallHeight: *height,
		Formats:    fmtList,
		Workers:    *workers,
		Preview:    *doPreview,
	})

	var tracks []string
	switch {
	case *all:
		var err error
		tracks, err = cfg.ListTracks()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing tracks: %v\n", err)
			os.Exit(1)
		}
		if len(tracks) == 0 {
			fmt.Fprintf(os.Stderr, "No tracks found under %s\n", cfg.TracksDir)
			os.Exit(1)
		}
	case flag.NArg() == 1:
		tracks = []string{flag.Arg(0)}
	default:
		usage()
		os.Exit(2)
	}

	if *output != "" && len(tracks) > 1 {
		fmt.Fprintln(os.Stderr, "Error: -output only applies to a single track")
		os.Exit(2)
	}

	fmt.Printf("2D Map to 3D Track Mesh Converter\n")
	fmt.Printf("Tracks: %d, Wall height: %g m, Formats: %s\n", len(tracks), cfg.WallHeight, strings.Join(cfg.Formats, ","))
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	var results []batch.Result
	if len(tracks) == 1 {
		progress := func(done, total int) {
			if total > 0 {
				fmt.Printf("  walls %d/%d\n", done, total)
			}
		}
		results = []batch.Result{batch.ConvertTrack(cfg, tracks[0], *output, progress)}
	} else {
		results = batch.Run(cfg, tracks)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
			for _, out := range r.Outputs {
				fmt.Printf("  %s: %s\n", r.Track, out)
			}
		} else {
			failed++
			fmt.Fprintf(os.Stderr, "  %s: %s\n", r.Track, r.Error)
		}
	}
	fmt.Printf("Converted: %d/%d\n", success, len(tracks))

	if len(tracks) > 1 {
		manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
		os.MkdirAll(cfg.OutputDir, 0755)
		if err := batch.WriteManifest(manifestPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
		} else {
			fmt.Printf("Manifest: %s\n", manifestPath)
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
