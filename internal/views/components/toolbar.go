package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AnalysisToolbar holds the image selection and analysis controls
type AnalysisToolbar struct {
	container     *fyne.Container
	selectButton  *widget.Button
	analyzeButton *widget.Button
	progress      *widget.ProgressBarInfinite
	hintLabel     *widget.Label

	selectHandler  func()
	analyzeHandler func()

	hasImage  bool
	analyzing bool
}

// NewAnalysisToolbar creates a new analysis toolbar
func NewAnalysisToolbar() *AnalysisToolbar {
	t := &AnalysisToolbar{}
	t.createComponents()
	t.buildLayout()
	t.setupEventHandlers()
	return t
}

func (t *AnalysisToolbar) createComponents() {
	t.selectButton = widget.NewButtonWithIcon("Select Image", theme.FolderOpenIcon(), nil)
	t.selectButton.Importance = widget.HighImportance

	t.analyzeButton = widget.NewButtonWithIcon("Start Analysis", theme.MediaPlayIcon(), nil)
	t.analyzeButton.Importance = widget.HighImportance
	t.analyzeButton.Disable()

	t.progress = widget.NewProgressBarInfinite()
	t.progress.Stop()
	t.progress.Hide()

	t.hintLabel = widget.NewLabel("Supports JPG, PNG, BMP, TIFF and WebP slide images")
}

func (t *AnalysisToolbar) buildLayout() {
	t.container = container.NewVBox(
		container.NewHBox(t.selectButton, widget.NewSeparator(), t.analyzeButton),
		t.hintLabel,
		t.progress,
	)
}

func (t *AnalysisToolbar) setupEventHandlers() {
	t.selectButton.OnTapped = func() {
		if t.selectHandler != nil {
			t.selectHandler()
		}
	}

	t.analyzeButton.OnTapped = func() {
		if t.analyzeHandler != nil {
			t.analyzeHandler()
		}
	}
}

// SetSelectHandler sets the image selection handler
func (t *AnalysisToolbar) SetSelectHandler(handler func()) {
	t.selectHandler = handler
}

// SetAnalyzeHandler sets the analysis handler
func (t *AnalysisToolbar) SetAnalyzeHandler(handler func()) {
	t.analyzeHandler = handler
}

// SetImageSelected enables analysis once an image is available
func (t *AnalysisToolbar) SetImageSelected(selected bool) {
	fyne.Do(func() {
		t.hasImage = selected
		t.updateButtons()
	})
}

// SetAnalyzing toggles the progress indicator and locks the buttons while
// a request is in flight.
func (t *AnalysisToolbar) SetAnalyzing(active bool) {
	fyne.Do(func() {
		t.analyzing = active
		if active {
			t.progress.Show()
			t.progress.Start()
		} else {
			t.progress.Stop()
			t.progress.Hide()
		}
		t.updateButtons()
	})
}

// Analyzing reports whether the progress indicator is active.
func (t *AnalysisToolbar) Analyzing() bool {
	return t.analyzing
}

func (t *AnalysisToolbar) updateButtons() {
	if t.analyzing {
		t.selectButton.Disable()
		t.analyzeButton.Disable()
		return
	}
	t.selectButton.Enable()
	if t.hasImage {
		t.analyzeButton.Enable()
	} else {
		t.analyzeButton.Disable()
	}
}

// AnalyzeEnabled reports whether the analysis button accepts taps.
func (t *AnalysisToolbar) AnalyzeEnabled() bool {
	return !t.analyzeButton.Disabled()
}

// GetContainer returns the toolbar container
func (t *AnalysisToolbar) GetContainer() *fyne.Container {
	return t.container
}
