package bridge

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays a window capture out on a single page using default
// page settings: A4 portrait, default margins, image scaled to fit.
type PDFRenderer struct {
	Orientation string
	PageSize    string
	Creator     string
	now         func() time.Time
}

func NewPDFRenderer(creator string) *PDFRenderer {
	return &PDFRenderer{
		Orientation: "P",
		PageSize:    "A4",
		Creator:     creator,
		now:         time.Now,
	}
}

func (r *PDFRenderer) Render(img image.Image, title string) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("window capture is empty")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("window capture is empty")
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		return nil, fmt.Errorf("encoding window capture: %w", err)
	}

	pdf := fpdf.New(r.Orientation, "mm", r.PageSize, "")
	pdf.SetCreator(r.Creator, true)
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(r.now())
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("capture", opts, &encoded)

	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	w, h := fitWithin(float64(bounds.Dx()), float64(bounds.Dy()), pageW-left-right, pageH-top-bottom)
	pdf.ImageOptions("capture", left, top, w, h, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return out.Bytes(), nil
}

// fitWithin scales (w, h) to the largest size inside (maxW, maxH) keeping
// the aspect ratio.
func fitWithin(w, h, maxW, maxH float64) (float64, float64) {
	scale := maxW / w
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}
