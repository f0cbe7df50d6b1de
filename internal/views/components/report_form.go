package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pathoscope/internal/models"
)

// ReportPanel is the diagnostic report editor. Its entries are bound to a
// ReportForm so clearing the form clears the widgets.
type ReportPanel struct {
	container *fyne.Container

	nameEntry    *widget.Entry
	idEntry      *widget.Entry
	opinionEntry *widget.Entry
	saveButton   *widget.Button
	exportButton *widget.Button

	image  *ImageDisplay
	result *ResultPanel

	saveHandler   func()
	exportHandler func()
}

// NewReportPanel creates the report editor bound to form
func NewReportPanel(form *models.ReportForm) *ReportPanel {
	p := &ReportPanel{}

	p.nameEntry = widget.NewEntryWithData(form.PatientName)
	p.nameEntry.SetPlaceHolder("Patient name")

	p.idEntry = widget.NewEntryWithData(form.PatientID)
	p.idEntry.SetPlaceHolder("Required")

	p.opinionEntry = widget.NewMultiLineEntry()
	p.opinionEntry.Bind(form.DoctorOpinion)
	p.opinionEntry.SetPlaceHolder("Diagnostic opinion")
	p.opinionEntry.SetMinRowsVisible(6)
	p.opinionEntry.Wrapping = fyne.TextWrapWord

	p.saveButton = widget.NewButtonWithIcon("Save Report", theme.DocumentSaveIcon(), func() {
		if p.saveHandler != nil {
			p.saveHandler()
		}
	})
	p.saveButton.Importance = widget.HighImportance

	p.exportButton = widget.NewButtonWithIcon("Export PDF", theme.DownloadIcon(), func() {
		if p.exportHandler != nil {
			p.exportHandler()
		}
	})

	p.image = NewImageDisplay("Slide", 320, 240)
	p.result = NewResultPanel("Analysis Result")

	p.buildLayout()
	return p
}

func (p *ReportPanel) buildLayout() {
	formWidget := widget.NewForm(
		widget.NewFormItem("Patient Name", p.nameEntry),
		widget.NewFormItem("Patient ID *", p.idEntry),
		widget.NewFormItem("Doctor's Opinion", p.opinionEntry),
	)

	summary := container.NewVBox(p.image.GetContainer(), p.result.GetContainer())

	p.container = container.NewBorder(
		widget.NewRichTextFromMarkdown("## Diagnostic Report"),
		container.NewHBox(p.saveButton, p.exportButton),
		nil, nil,
		container.NewGridWithColumns(2, formWidget, summary),
	)
}

// SetSaveHandler sets the save report handler
func (p *ReportPanel) SetSaveHandler(handler func()) {
	p.saveHandler = handler
}

// SetExportHandler sets the PDF export handler
func (p *ReportPanel) SetExportHandler(handler func()) {
	p.exportHandler = handler
}

// SetAnalysis updates the read-only slide and result summary
func (p *ReportPanel) SetAnalysis(img image.Image, result *models.AnalysisResult) {
	p.image.SetImage(img)
	p.result.SetResult(result)
}

// SetBusy disables the action buttons while a bridge call is running
func (p *ReportPanel) SetBusy(busy bool) {
	fyne.Do(func() {
		if busy {
			p.saveButton.Disable()
			p.exportButton.Disable()
		} else {
			p.saveButton.Enable()
			p.exportButton.Enable()
		}
	})
}

// ResultText returns the rendered result summary.
func (p *ReportPanel) ResultText() string {
	return p.result.Text()
}

// GetContainer returns the panel container
func (p *ReportPanel) GetContainer() *fyne.Container {
	return p.container
}
