package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"f1map3d/internal/config"
	"f1map3d/internal/mapdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTrack lays out tracks/<name>/<name>_map.png + .yaml with a 4x4 map:
// occupied border, free 2x2 interior. All 12 border cells are boundary.
func writeTrack(t *testing.T, tracksDir, name string) {
	t.Helper()
	dir := filepath.Join(tracksDir, name)
	require.NoError(t, os.MkdirAll(dir, 0755))

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(0)
			if x >= 1 && x <= 2 && y >= 1 && y <= 2 {
				v = 255
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	f, err := os.Create(filepath.Join(dir, name+"_map.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	yaml := "image: " + name + "_map.png\nresolution: 0.05\norigin: [-1.0, -2.0, 0.0]\nnegate: 0\noccupied_thresh: 0.45\nfree_thresh: 0.196\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+"_map.yaml"), []byte(yaml), 0644))
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := config.Config{
		TracksDir: filepath.Join(root, "tracks"),
		OutputDir: filepath.Join(root, "output"),
	}
	cfg.Resolve(config.Flags{Workers: 2})
	return cfg
}

func TestConvertTrack_EndToEnd(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeTrack(t, cfg.TracksDir, "austin")

	res := ConvertTrack(cfg, "austin", "", nil)
	require.True(t, res.Success, "conversion failed: %s", res.Error)
	require.Len(t, res.Outputs, 2)

	objPath := res.Outputs[0]
	data, err := os.ReadFile(objPath)
	require.NoError(t, err)

	// 12 boundary cells: 8*12+4 vertices, 12*12+2 triangles.
	lines := strings.Split(string(data), "\n")
	var nv, nf int
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "v "):
			nv++
		case strings.HasPrefix(l, "f "):
			nf++
		}
	}
	assert.Equal(t, 8*12+4, nv)
	assert.Equal(t, 12*12+2, nf)

	// STL sibling exists and has the right size for the same count.
	stlData, err := os.ReadFile(res.Outputs[1])
	require.NoError(t, err)
	assert.Len(t, stlData, 84+50*(12*12+2))
}

func TestConvertTrack_Deterministic(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Formats = []string{"obj"}
	writeTrack(t, cfg.TracksDir, "austin")

	first := ConvertTrack(cfg, "austin", "", nil)
	require.True(t, first.Success, first.Error)
	a, err := os.ReadFile(first.Outputs[0])
	require.NoError(t, err)

	second := ConvertTrack(cfg, "austin", "", nil)
	require.True(t, second.Success, second.Error)
	b, err := os.ReadFile(second.Outputs[0])
	require.NoError(t, err)

	assert.Equal(t, a, b, "two runs on identical inputs must be byte-identical")
}

func TestConvertTrack_AllFreeMapIsFloorOnly(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Formats = []string{"obj"}
	dir := filepath.Join(cfg.TracksDir, "flat")
	require.NoError(t, os.MkdirAll(dir, 0755))

	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "flat_map.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flat_map.yaml"),
		[]byte("image: flat_map.png\nresolution: 0.1\norigin: [0.0, 0.0, 0.0]\n"), 0644))

	res := ConvertTrack(cfg, "flat", "", nil)
	require.True(t, res.Success, res.Error)

	data, err := os.ReadFile(res.Outputs[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "# 4 vertices, 2 triangles")
}

func TestConvertTrack_NegativeHeightRejected(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.WallHeight = -1
	writeTrack(t, cfg.TracksDir, "austin")

	res := ConvertTrack(cfg, "austin", "", nil)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, mapdata.ErrInvalidMetadata.Error())

	// Failed run must not leave output files behind.
	entries, err := os.ReadDir(cfg.OutputDir)
	if err == nil {
		for _, e := range entries {
			sub, _ := os.ReadDir(filepath.Join(cfg.OutputDir, e.Name()))
			assert.Empty(t, sub)
		}
	}
}

func TestConvertTrack_MissingTrack(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.TracksDir, 0755))

	res := ConvertTrack(cfg, "nope", "", nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestRun_MultipleTracks(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Formats = []string{"obj"}
	writeTrack(t, cfg.TracksDir, "a")
	writeTrack(t, cfg.TracksDir, "b")
	writeTrack(t, cfg.TracksDir, "c")

	results := Run(cfg, []string{"a", "b", "c"})
	require.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.Success, "%s: %s", r.Track, r.Error)
	}

	manifest := filepath.Join(cfg.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(manifest, results))
	data, err := os.ReadFile(manifest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"track": "b"`)
}
