package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"f1map3d/internal/config"
	"f1map3d/internal/export"
	"f1map3d/internal/mapdata"
	"f1map3d/internal/mesh"
	"f1map3d/internal/occupancy"
	"f1map3d/internal/preview"
)

// Result holds the outcome of converting one track.
type Result struct {
	Track   string
	Outputs []string
	Success bool
	Error   string
}

// Run converts all tracks using a worker pool. With a single track the
// pool collapses and the workers go to wall synthesis instead, so both
// shapes of run use the machine.
func Run(cfg config.Config, tracks []string) []Result {
	total := len(tracks)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	poolWorkers := cfg.Workers
	meshWorkers := 1
	if total == 1 {
		poolWorkers = 1
		meshWorkers = cfg.Workers
	}
	if poolWorkers > total {
		poolWorkers = total
	}

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					fmt.Printf("  [%d/%d] %.1fs elapsed\n", p, total, elapsed)
				}
			}
		}
	}()

	trackChan := make(chan int, poolWorkers*2)
	var wg sync.WaitGroup

	for w := 0; w < poolWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range trackChan {
				results[idx] = convertTrack(cfg, tracks[idx], "", meshWorkers, nil)
				processed.Add(1)
			}
		}()
	}

	for i := range tracks {
		trackChan <- i
	}
	close(trackChan)

	wg.Wait()
	close(done)

	return results
}

// ConvertTrack runs the full pipeline for one track: load, classify,
// extract boundary, synthesize walls and floor, assemble, export.
// outputPath overrides the default output location when non-empty.
func ConvertTrack(cfg config.Config, track, outputPath string, progress mesh.Progress) Result {
	return convertTrack(cfg, track, outputPath, cfg.Workers, progress)
}

func convertTrack(cfg config.Config, track, outputPath string, meshWorkers int, progress mesh.Progress) Result {
	outputs, err := convert(cfg, track, outputPath, meshWorkers, progress)
	if err != nil {
		return Result{Track: track, Outputs: outputs, Error: err.Error()}
	}
	return Result{Track: track, Outputs: outputs, Success: true}
}

func convert(cfg config.Config, track, outputPath string, meshWorkers int, progress mesh.Progress) ([]string, error) {
	if cfg.WallHeight < 0 {
		return nil, fmt.Errorf("batch: wall height %g is negative: %w", cfg.WallHeight, mapdata.ErrInvalidMetadata)
	}

	yamlPath := cfg.MapYAMLPath(track)
	md, err := mapdata.LoadMetadata(yamlPath)
	if err != nil {
		return nil, err
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}

	imgPath, err := resolveRaster(cfg, track, yamlPath, md)
	if err != nil {
		return nil, err
	}

	grid, err := mapdata.LoadRaster(imgPath, md.Negate != 0)
	if err != nil {
		return nil, err
	}

	occ := occupancy.Classify(grid.Pix, grid.Rows, grid.Cols, md.OccupiedThresh, md.FreeThresh)
	mask := occupancy.Boundary(occ)

	walls, err := mesh.BuildWalls(mask, mesh.WallConfig{
		Resolution: md.Resolution,
		OriginX:    md.OriginX(),
		OriginY:    md.OriginY(),
		Height:     cfg.WallHeight,
		Workers:    meshWorkers,
		Progress:   progress,
	})
	if err != nil {
		return nil, err
	}

	floor := mesh.BuildFloor(grid.Rows, grid.Cols, md.Resolution, md.OriginX(), md.OriginY())

	m, err := mesh.Assemble(walls, floor)
	if err != nil {
		return nil, fmt.Errorf("batch: assemble %s: %w", track, err)
	}

	base := outputPath
	if base == "" {
		base = cfg.OutputBase(track)
	}
	outputs, err := export.SaveAll(base, cfg.Formats, m)
	if err != nil {
		return outputs, err
	}

	if cfg.Preview {
		img := preview.Render(occ, mask, 1)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		pvPath := stem + "_preview.webp"
		if err := preview.SaveWebP(pvPath, img); err != nil {
			return outputs, err
		}
		outputs = append(outputs, pvPath)
	}

	return outputs, nil
}

// resolveRaster prefers the image named in the YAML (relative paths are
// against the YAML's directory, as map_server does), falling back to the
// track layout convention.
func resolveRaster(cfg config.Config, track, yamlPath string, md mapdata.Metadata) (string, error) {
	if md.Image != "" {
		p := md.Image
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(yamlPath), p)
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return cfg.MapImagePath(track)
}
