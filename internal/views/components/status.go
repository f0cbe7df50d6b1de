package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	readyStatus     = "Ready"
	noImageInfo     = "No image selected"
	noSaveDirectory = "Save directory: not set"
)

// StatusBar displays application status and information
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	saveDirInfo *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel(readyStatus)
	sb.imageInfo = widget.NewLabel(noImageInfo)
	sb.saveDirInfo = widget.NewLabel(noSaveDirectory)
	sb.saveDirInfo.Truncation = fyne.TextTruncateEllipsis
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.imageInfo,
		widget.NewSeparator(),
		sb.saveDirInfo,
	)
}

// SetStatus updates the main status message
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// GetStatus returns the current status message
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetImageInfo updates the image information display
func (sb *StatusBar) SetImageInfo(name string, width, height int, format string) {
	fyne.Do(func() {
		if name == "" {
			sb.imageInfo.SetText(noImageInfo)
			return
		}
		sb.imageInfo.SetText(fmt.Sprintf("%s: %dx%d %s", name, width, height, format))
	})
}

// GetImageInfo returns the image information text
func (sb *StatusBar) GetImageInfo() string {
	return sb.imageInfo.Text
}

// SetSaveDir shows where reports will be written
func (sb *StatusBar) SetSaveDir(dir string) {
	fyne.Do(func() {
		if dir == "" {
			sb.saveDirInfo.SetText(noSaveDirectory)
			return
		}
		sb.saveDirInfo.SetText("Save directory: " + dir)
	})
}

// Reset resets the status bar to initial state
func (sb *StatusBar) Reset() {
	fyne.Do(func() {
		sb.statusLabel.SetText(readyStatus)
		sb.imageInfo.SetText(noImageInfo)
	})
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
