package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_ThresholdBoundaries(t *testing.T) {
	t.Parallel()

	// map_server defaults: occupied_thresh=0.45, free_thresh=0.196.
	// Cutoffs land at 1-0.45=0.55 and 1-0.196=0.804.
	tests := []struct {
		name string
		v    float64
		want State
	}{
		{"black is occupied", 0.0, Occupied},
		{"exactly at occupied cutoff", 0.55, Occupied},
		{"just above occupied cutoff is unknown", 0.5500001, Occupied},
		{"inside unknown band", 0.6, Occupied},
		{"just below free cutoff is unknown", 0.8039999, Occupied},
		{"exactly at free cutoff", 0.804, Free},
		{"white is free", 1.0, Free},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := Classify([]float64{tt.v}, 1, 1, 0.45, 0.196)
			assert.Equal(t, tt.want, g.At(0, 0))
		})
	}
}

func TestClassify_FreeWinsOnOverlappingThresholds(t *testing.T) {
	t.Parallel()

	// occupied_thresh=0.1 and free_thresh=0.95 make the two rules overlap:
	// any v in [0.05, 0.9] matches both. The free rule runs second and
	// must win.
	g := Classify([]float64{0.5}, 1, 1, 0.1, 0.95)
	assert.Equal(t, Free, g.At(0, 0))
}

func TestClassify_Shape(t *testing.T) {
	t.Parallel()

	pix := []float64{
		0.0, 1.0, 0.0,
		1.0, 0.6, 1.0,
	}
	g := Classify(pix, 2, 3, 0.45, 0.196)
	require.Equal(t, 2, g.Rows)
	require.Equal(t, 3, g.Cols)

	assert.Equal(t, Occupied, g.At(0, 0))
	assert.Equal(t, Free, g.At(0, 1))
	assert.Equal(t, Occupied, g.At(1, 1), "unknown band folds into occupied")
	assert.Equal(t, 3, g.CountOccupied())
}

func TestGrid_OutOfRangeReadsFree(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 2)
	g.Set(0, 0, Occupied)

	assert.Equal(t, Free, g.At(-1, 0))
	assert.Equal(t, Free, g.At(0, -1))
	assert.Equal(t, Free, g.At(2, 0))
	assert.Equal(t, Free, g.At(0, 2))
}
