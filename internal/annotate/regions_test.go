package annotate

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathoscope/internal/models"
)

func TestRegionRect(t *testing.T) {
	bounds := image.Rect(0, 0, 200, 100)

	tests := []struct {
		name string
		bbox []float64
		want image.Rectangle
		ok   bool
	}{
		{"pixels", []float64{10, 20, 60, 80}, image.Rect(10, 20, 60, 80), true},
		{"swapped corners", []float64{60, 80, 10, 20}, image.Rect(10, 20, 60, 80), true},
		{"normalized", []float64{0.1, 0.2, 0.5, 1}, image.Rect(20, 20, 100, 100), true},
		{"clipped", []float64{150, 50, 400, 300}, image.Rect(150, 50, 200, 100), true},
		{"outside", []float64{300, 300, 400, 400}, image.Rectangle{}, false},
		{"wrong arity", []float64{1, 2, 3}, image.Rectangle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RegionRect(tt.bbox, bounds)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnnotator_DrawOutlinesRegion(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 120; x++ {
			src.Set(x, y, color.White)
		}
	}

	out, err := NewAnnotator().Draw(src, []models.Region{
		{BBox: []float64{20, 20, 100, 70}, Confidence: 0.9},
		{BBox: []float64{500, 500, 600, 600}, Confidence: 0.2},
	})
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), out.Bounds())

	r, g, b, _ := out.At(60, 20).RGBA()
	assert.Equal(t, uint32(230), r>>8)
	assert.Equal(t, uint32(40), g>>8)
	assert.Equal(t, uint32(60), b>>8)

	r, g, b, _ = out.At(60, 45).RGBA()
	assert.Equal(t, [3]uint32{255, 255, 255}, [3]uint32{r >> 8, g >> 8, b >> 8})

	sr, _, _, _ := src.At(60, 20).RGBA()
	assert.Equal(t, uint32(255), sr>>8, "source image must not be modified")
}

func TestAnnotator_DrawNilImage(t *testing.T) {
	_, err := NewAnnotator().Draw(nil, nil)
	assert.Error(t, err)
}
