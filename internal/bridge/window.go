package bridge

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
)

// Capturer renders a window's currently visible content.
type Capturer interface {
	Title() string
	Capture() image.Image
}

// WindowLocator finds the window a print-to-pdf request should render.
type WindowLocator interface {
	ActiveWindow() (Capturer, bool)
}

// FyneWindows tracks the application's open windows and whether the app
// currently has focus. The most recently tracked open window is the active one.
type FyneWindows struct {
	mu         sync.RWMutex
	windows    []fyne.Window
	foreground bool
}

func NewFyneWindows() *FyneWindows {
	return &FyneWindows{foreground: true}
}

// Watch follows the app's foreground state.
func (fw *FyneWindows) Watch(lifecycle fyne.Lifecycle) {
	lifecycle.SetOnEnteredForeground(func() { fw.SetForeground(true) })
	lifecycle.SetOnExitedForeground(func() { fw.SetForeground(false) })
}

func (fw *FyneWindows) SetForeground(foreground bool) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.foreground = foreground
}

func (fw *FyneWindows) Track(w fyne.Window) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.windows = append(fw.windows, w)
}

func (fw *FyneWindows) Untrack(w fyne.Window) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for i, tracked := range fw.windows {
		if tracked == w {
			fw.windows = append(fw.windows[:i], fw.windows[i+1:]...)
			return
		}
	}
}

func (fw *FyneWindows) ActiveWindow() (Capturer, bool) {
	fw.mu.RLock()
	defer fw.mu.RUnlock()
	if !fw.foreground || len(fw.windows) == 0 {
		return nil, false
	}
	return &fyneCapturer{window: fw.windows[len(fw.windows)-1]}, true
}

type fyneCapturer struct {
	window fyne.Window
}

func (c *fyneCapturer) Title() string {
	return c.window.Title()
}

// Capture must not be called from the UI goroutine: it waits for the UI
// goroutine to paint the canvas.
func (c *fyneCapturer) Capture() image.Image {
	var img image.Image
	fyne.DoAndWait(func() {
		img = c.window.Canvas().Capture()
	})
	return img
}
