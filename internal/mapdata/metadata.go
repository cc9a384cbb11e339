package mapdata

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Error kinds surfaced by the input layer. Callers match with errors.Is.
var (
	ErrInvalidMetadata = errors.New("invalid map metadata")
	ErrShapeMismatch   = errors.New("bad grid shape")
)

// ROS map_server defaults, applied when the YAML omits the thresholds.
const (
	DefaultOccupiedThresh = 0.45
	DefaultFreeThresh     = 0.196
)

// Metadata mirrors the ROS map_server YAML format. Origin carries
// [x, y, yaw]; only x and y matter for mesh generation.
type Metadata struct {
	Image          string    `yaml:"image"`
	Resolution     float64   `yaml:"resolution"`
	Origin         []float64 `yaml:"origin"`
	Negate         int       `yaml:"negate"`
	OccupiedThresh float64   `yaml:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh"`
}

// LoadMetadata reads and parses a map YAML file. Absent threshold fields
// keep the map_server defaults.
func LoadMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("mapdata: read %s: %w", path, err)
	}

	m := Metadata{
		OccupiedThresh: DefaultOccupiedThresh,
		FreeThresh:     DefaultFreeThresh,
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Metadata{}, fmt.Errorf("mapdata: parse %s: %w", path, err)
	}

	return m, nil
}

// Validate fails fast on malformed metadata, before any grid processing.
func (m Metadata) Validate() error {
	if m.Resolution <= 0 || math.IsNaN(m.Resolution) || math.IsInf(m.Resolution, 0) {
		return fmt.Errorf("mapdata: resolution %v: %w", m.Resolution, ErrInvalidMetadata)
	}
	if len(m.Origin) < 2 {
		return fmt.Errorf("mapdata: origin needs at least [x, y], got %d values: %w", len(m.Origin), ErrInvalidMetadata)
	}
	for _, v := range m.Origin[:2] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("mapdata: non-finite origin %v: %w", m.Origin, ErrInvalidMetadata)
		}
	}
	if m.OccupiedThresh < 0 || m.OccupiedThresh > 1 {
		return fmt.Errorf("mapdata: occupied_thresh %v outside [0,1]: %w", m.OccupiedThresh, ErrInvalidMetadata)
	}
	if m.FreeThresh < 0 || m.FreeThresh > 1 {
		return fmt.Errorf("mapdata: free_thresh %v outside [0,1]: %w", m.FreeThresh, ErrInvalidMetadata)
	}
	return nil
}

// OriginX returns the world-space X of grid cell (0,0).
func (m Metadata) OriginX() float64 { return m.Origin[0] }

// OriginY returns the world-space Y offset of the map.
func (m Metadata) OriginY() float64 { return m.Origin[1] }
