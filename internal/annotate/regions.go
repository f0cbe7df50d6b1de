// Package annotate draws inference regions onto the slide preview.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"pathoscope/internal/models"
)

var (
	DefaultBoxColor   = color.RGBA{R: 230, G: 40, B: 60, A: 255}
	DefaultLabelColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

type Annotator struct {
	BoxColor   color.RGBA
	LabelColor color.RGBA
	Thickness  int
	FontScale  float64
}

func NewAnnotator() *Annotator {
	return &Annotator{
		BoxColor:   DefaultBoxColor,
		LabelColor: DefaultLabelColor,
		Thickness:  2,
		FontScale:  0.5,
	}
}

// Draw returns a copy of img with each region outlined and labelled with its
// index and confidence. Regions that fall outside the image are skipped.
func (a *Annotator) Draw(img image.Image, regions []models.Region) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to annotate")
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("converting image to Mat: %w", err)
	}
	defer mat.Close()

	bounds := image.Rect(0, 0, mat.Cols(), mat.Rows())
	for i, region := range regions {
		rect, ok := RegionRect(region.BBox, bounds)
		if !ok {
			continue
		}

		gocv.Rectangle(&mat, rect, a.BoxColor, a.Thickness)

		label := fmt.Sprintf("%d: %.0f%%", i+1, region.Confidence*100)
		origin := image.Pt(rect.Min.X+2, max(rect.Min.Y-4, 12))
		gocv.PutText(&mat, label, origin, gocv.FontHersheySimplex, a.FontScale, a.LabelColor, 1)
	}

	annotated, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("converting Mat to image: %w", err)
	}
	return annotated, nil
}

// RegionRect maps an [x1, y1, x2, y2] box onto bounds. Boxes whose values all
// lie in [0,1] are treated as fractions of the image size.
func RegionRect(bbox []float64, bounds image.Rectangle) (image.Rectangle, bool) {
	if len(bbox) != 4 {
		return image.Rectangle{}, false
	}

	x1, y1, x2, y2 := bbox[0], bbox[1], bbox[2], bbox[3]
	if normalized(bbox) {
		w, h := float64(bounds.Dx()), float64(bounds.Dy())
		x1, x2 = x1*w, x2*w
		y1, y2 = y1*h, y2*h
	}

	rect := image.Rect(int(x1), int(y1), int(x2), int(y2)).Intersect(bounds)
	if rect.Empty() {
		return image.Rectangle{}, false
	}
	return rect, true
}

func normalized(bbox []float64) bool {
	for _, v := range bbox {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}
