package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Map raster extensions probed by MapImagePath, in preference order.
var rasterExts = []string{".png", ".pgm", ".tga", ".bmp", ".jpg", ".jpeg", ".tif", ".tiff"}

// Config holds all configurable paths and conversion settings.
type Config struct {
	// Paths
	TracksDir string `json:"tracks_dir"`
	OutputDir string `json:"output_dir"`

	// Conversion settings
	WallHeight float64  `json:"wall_height"`
	Formats    []string `json:"formats"`
	Workers    int      `json:"workers"`
	Preview    bool     `json:"preview"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	TracksDir  string
	OutputDir  string
	WallHeight float64
	Formats    []string
	Workers    int
	Preview    bool
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.TracksDir != "" {
		c.TracksDir = flags.TracksDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.WallHeight != 0 {
		c.WallHeight = flags.WallHeight
	}
	if len(flags.Formats) > 0 {
		c.Formats = flags.Formats
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.Preview = true
	}

	// Defaults
	if c.TracksDir == "" {
		c.TracksDir = "tracks"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.WallHeight == 0 {
		c.WallHeight = 1.0
	}
	if len(c.Formats) == 0 {
		c.Formats = []string{"obj", "stl"}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// MapImagePath returns the map raster for a track, probing
// <tracks>/<name>/<name>_map.<ext> for the known raster extensions.
// Missing input is reported here so the core never sees an unreadable path.
func (c Config) MapImagePath(track string) (string, error) {
	base := filepath.Join(c.TracksDir, track, track+"_map")
	for _, ext := range rasterExts {
		p := base + ext
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: no map raster found at %s.{png,pgm,...}", base)
}

// MapYAMLPath returns the map metadata path for a track.
func (c Config) MapYAMLPath(track string) string {
	return filepath.Join(c.TracksDir, track, track+"_map.yaml")
}

// OutputBase returns the default mesh output path for a track; the
// exporter swaps the extension per format.
func (c Config) OutputBase(track string) string {
	return filepath.Join(c.OutputDir, track, track+"_track_3d.obj")
}

// ListTracks returns the names of all track directories that contain a
// metadata YAML, in lexical order.
func (c Config) ListTracks() ([]string, error) {
	entries, err := os.ReadDir(c.TracksDir)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", c.TracksDir, err)
	}
	var tracks []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(c.MapYAMLPath(e.Name())); err == nil {
			tracks = append(tracks, e.Name())
		}
	}
	return tracks, nil
}
