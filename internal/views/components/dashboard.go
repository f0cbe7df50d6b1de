package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Dashboard is the landing page with shortcuts into the workflow
type Dashboard struct {
	container *fyne.Container
	analyze   *widget.Button
	report    *widget.Button

	analyzeHandler func()
	reportHandler  func()
}

// NewDashboard creates the landing page
func NewDashboard() *Dashboard {
	d := &Dashboard{}
	d.analyze = widget.NewButton("Analyse a slide", func() {
		if d.analyzeHandler != nil {
			d.analyzeHandler()
		}
	})
	d.analyze.Importance = widget.HighImportance
	d.report = widget.NewButton("Write a report", func() {
		if d.reportHandler != nil {
			d.reportHandler()
		}
	})

	intro := widget.NewLabel("Select a tissue slide image, send it to the inference service for " +
		"classification, then record the diagnosis and save it as JSON or PDF.")
	intro.Wrapping = fyne.TextWrapWord

	d.container = container.NewVBox(
		widget.NewRichTextFromMarkdown("## Pathology Slide Analysis"),
		intro,
		widget.NewCard("Image Analysis", "Classify a slide and inspect detected regions", d.analyze),
		widget.NewCard("Diagnostic Report", "Attach an opinion and persist the report", d.report),
	)
	return d
}

// SetAnalyzeHandler sets the analysis shortcut handler
func (d *Dashboard) SetAnalyzeHandler(handler func()) {
	d.analyzeHandler = handler
}

// SetReportHandler sets the report shortcut handler
func (d *Dashboard) SetReportHandler(handler func()) {
	d.reportHandler = handler
}

// GetContainer returns the dashboard container
func (d *Dashboard) GetContainer() *fyne.Container {
	return d.container
}
