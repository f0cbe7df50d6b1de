package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const (
	SuccessDuration = 2 * time.Second
	ErrorDuration   = 3 * time.Second
)

// ToastKind selects the toast's colour and icon.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Toast is a dismissible notification shown at the bottom of a canvas that
// hides itself after a timeout. Showing a new toast replaces the current one.
type Toast struct {
	canvas fyne.Canvas

	mu         sync.Mutex
	popup      *widget.PopUp
	message    string
	kind       ToastKind
	generation int
}

func NewToast(c fyne.Canvas) *Toast {
	return &Toast{canvas: c}
}

// Show must be called on the UI goroutine.
func (t *Toast) Show(kind ToastKind, message string, ttl time.Duration) {
	t.mu.Lock()
	if t.popup != nil {
		t.popup.Hide()
	}
	t.generation++
	gen := t.generation
	t.message = message
	t.kind = kind
	t.popup = widget.NewPopUp(t.buildContent(kind, message), t.canvas)
	popup := t.popup
	t.mu.Unlock()

	size := popup.MinSize()
	canvasSize := t.canvas.Size()
	pos := fyne.NewPos((canvasSize.Width-size.Width)/2, canvasSize.Height-size.Height-theme.Padding()*4)
	popup.ShowAtPosition(pos)

	if ttl > 0 {
		time.AfterFunc(ttl, func() {
			fyne.Do(func() { t.dismiss(gen) })
		})
	}
}

// Dismiss hides the current toast, if any.
func (t *Toast) Dismiss() {
	t.mu.Lock()
	gen := t.generation
	t.mu.Unlock()
	t.dismiss(gen)
}

func (t *Toast) dismiss(gen int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation || t.popup == nil {
		return
	}
	t.popup.Hide()
	t.popup = nil
	t.message = ""
}

// Visible reports whether a toast is currently shown.
func (t *Toast) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.popup != nil
}

// Message returns the text of the current toast.
func (t *Toast) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// Kind returns the kind of the current toast.
func (t *Toast) Kind() ToastKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.kind
}

func (t *Toast) buildContent(kind ToastKind, message string) fyne.CanvasObject {
	var (
		background color.Color
		icon       fyne.Resource
	)
	switch kind {
	case ToastError:
		background = theme.Color(theme.ColorNameError)
		icon = theme.ErrorIcon()
	default:
		background = theme.Color(theme.ColorNameSuccess)
		icon = theme.ConfirmIcon()
	}

	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	closeButton := widget.NewButtonWithIcon("", theme.CancelIcon(), t.Dismiss)
	closeButton.Importance = widget.LowImportance

	row := container.NewBorder(nil, nil, widget.NewIcon(icon), closeButton, label)
	rect := canvas.NewRectangle(background)
	rect.CornerRadius = theme.InputRadiusSize()
	rect.SetMinSize(fyne.NewSize(360, 0))

	return container.NewStack(rect, container.NewPadded(row))
}
