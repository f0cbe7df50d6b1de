package components

import (
	"image"
	"image/color"
	"image/draw"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 600
	ImageAreaHeight = 450
)

// ImageDisplay shows the selected slide, or its annotated copy once
// analysis has returned regions.
type ImageDisplay struct {
	container   *fyne.Container
	title       *widget.RichText
	image       *canvas.Image
	placeholder image.Image

	hasImage bool
}

// NewImageDisplay creates an image display with the given header and minimum size
func NewImageDisplay(title string, width, height float32) *ImageDisplay {
	d := &ImageDisplay{}
	d.placeholder = placeholderImage(int(width), int(height))

	d.image = canvas.NewImageFromImage(d.placeholder)
	d.image.FillMode = canvas.ImageFillContain
	d.image.ScaleMode = canvas.ImageScaleSmooth
	d.image.SetMinSize(fyne.NewSize(width, height))

	d.title = widget.NewRichTextFromMarkdown("**" + title + "**")
	background := canvas.NewRectangle(color.RGBA{R: 252, G: 252, B: 252, A: 255})
	d.container = container.NewBorder(d.title, nil, nil, nil, container.NewStack(background, d.image))
	return d
}

func placeholderImage(width, height int) image.Image {
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 240, G: 240, B: 240, A: 255}), image.Point{}, draw.Src)

	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	for x := 0; x < width; x++ {
		img.Set(x, 0, border)
		img.Set(x, height-1, border)
	}
	for y := 0; y < height; y++ {
		img.Set(0, y, border)
		img.Set(width-1, y, border)
	}
	return img
}

// SetImage replaces the displayed image; nil restores the placeholder.
func (d *ImageDisplay) SetImage(img image.Image) {
	fyne.Do(func() {
		if img != nil {
			d.image.Image = img
			d.hasImage = true
		} else {
			d.image.Image = d.placeholder
			d.hasImage = false
		}
		d.image.Refresh()
	})
}

// HasImage returns true if an image other than the placeholder is shown
func (d *ImageDisplay) HasImage() bool {
	return d.hasImage
}

// Image returns the currently displayed image.
func (d *ImageDisplay) Image() image.Image {
	return d.image.Image
}

// GetContainer returns the main container
func (d *ImageDisplay) GetContainer() *fyne.Container {
	return d.container
}
