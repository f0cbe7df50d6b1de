package views

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"pathoscope/internal/models"
	"pathoscope/internal/views/components"
)

// ImageExtensions are offered by the slide picker.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// MainView represents the main application view using MVC pattern
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	content       *fyne.Container
	pages         map[models.Page]fyne.CanvasObject
	currentPage   models.Page

	navigation      *components.Navigation
	dashboard       *components.Dashboard
	analysisToolbar *components.AnalysisToolbar
	analysisImage   *components.ImageDisplay
	analysisResult  *components.ResultPanel
	reportPanel     *components.ReportPanel
	settingsPanel   *components.SettingsPanel
	statusBar       *components.StatusBar
	toast           *components.Toast

	// Event handlers - connected to controller
	pageChangeHandler    func(models.Page)
	selectImageHandler   func()
	analyzeHandler       func()
	saveReportHandler    func()
	exportPDFHandler     func()
	saveDirChangeHandler func(string)
	browseSaveDirHandler func()
}

// NewMainView creates the main view with the report form bound to form
func NewMainView(window fyne.Window, form *models.ReportForm) *MainView {
	view := &MainView{
		window:      window,
		currentPage: models.PageDashboard,
	}

	view.initializeComponents(form)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(form *models.ReportForm) {
	mv.navigation = components.NewNavigation(models.Pages)
	mv.dashboard = components.NewDashboard()
	mv.analysisToolbar = components.NewAnalysisToolbar()
	mv.analysisImage = components.NewImageDisplay("Slide", components.ImageAreaWidth, components.ImageAreaHeight)
	mv.analysisResult = components.NewResultPanel("Analysis Result")
	mv.reportPanel = components.NewReportPanel(form)
	mv.settingsPanel = components.NewSettingsPanel()
	mv.statusBar = components.NewStatusBar()
	mv.toast = components.NewToast(mv.window.Canvas())
}

func (mv *MainView) buildLayout() {
	analysisPage := container.NewBorder(
		container.NewVBox(widget.NewRichTextFromMarkdown("## Image Analysis"), mv.analysisToolbar.GetContainer()),
		nil, nil,
		container.NewVScroll(mv.analysisResult.GetContainer()),
		mv.analysisImage.GetContainer(),
	)

	mv.pages = map[models.Page]fyne.CanvasObject{
		models.PageDashboard:     container.NewVScroll(mv.dashboard.GetContainer()),
		models.PageImageAnalysis: analysisPage,
		models.PageReports:       container.NewVScroll(mv.reportPanel.GetContainer()),
		models.PageSettings:      mv.settingsPanel.GetContainer(),
	}

	mv.content = container.NewStack()
	for _, page := range models.Pages {
		object := mv.pages[page]
		if page != mv.currentPage {
			object.Hide()
		}
		mv.content.Add(object)
	}

	split := container.NewHSplit(mv.navigation.GetObject(), container.NewPadded(mv.content))
	split.SetOffset(0.2)

	mv.mainContainer = container.NewBorder(nil, mv.statusBar.GetContainer(), nil, nil, split)
	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) setupEventHandlers() {
	mv.navigation.SetPageHandler(func(page models.Page) {
		if mv.pageChangeHandler != nil {
			mv.pageChangeHandler(page)
		}
	})
	mv.dashboard.SetAnalyzeHandler(func() {
		if mv.pageChangeHandler != nil {
			mv.pageChangeHandler(models.PageImageAnalysis)
		}
	})
	mv.dashboard.SetReportHandler(func() {
		if mv.pageChangeHandler != nil {
			mv.pageChangeHandler(models.PageReports)
		}
	})

	mv.analysisToolbar.SetSelectHandler(func() {
		if mv.selectImageHandler != nil {
			mv.selectImageHandler()
		}
	})
	mv.analysisToolbar.SetAnalyzeHandler(func() {
		if mv.analyzeHandler != nil {
			mv.analyzeHandler()
		}
	})

	mv.reportPanel.SetSaveHandler(func() {
		if mv.saveReportHandler != nil {
			mv.saveReportHandler()
		}
	})
	mv.reportPanel.SetExportHandler(func() {
		if mv.exportPDFHandler != nil {
			mv.exportPDFHandler()
		}
	})

	mv.settingsPanel.SetSaveDirHandler(func(dir string) {
		if mv.saveDirChangeHandler != nil {
			mv.saveDirChangeHandler(dir)
		}
	})
	mv.settingsPanel.SetBrowseHandler(func() {
		if mv.browseSaveDirHandler != nil {
			mv.browseSaveDirHandler()
		}
	})
}

// Event handler setters - called by controller

// SetPageChangeHandler sets the handler for navigation requests
func (mv *MainView) SetPageChangeHandler(handler func(models.Page)) {
	mv.pageChangeHandler = handler
}

// SetSelectImageHandler sets the handler for slide selection
func (mv *MainView) SetSelectImageHandler(handler func()) {
	mv.selectImageHandler = handler
}

// SetAnalyzeHandler sets the handler for analysis requests
func (mv *MainView) SetAnalyzeHandler(handler func()) {
	mv.analyzeHandler = handler
}

// SetSaveReportHandler sets the handler for report saves
func (mv *MainView) SetSaveReportHandler(handler func()) {
	mv.saveReportHandler = handler
}

// SetExportPDFHandler sets the handler for PDF exports
func (mv *MainView) SetExportPDFHandler(handler func()) {
	mv.exportPDFHandler = handler
}

// SetSaveDirChangeHandler sets the handler for save directory edits
func (mv *MainView) SetSaveDirChangeHandler(handler func(string)) {
	mv.saveDirChangeHandler = handler
}

// SetBrowseSaveDirHandler sets the handler for the folder chooser
func (mv *MainView) SetBrowseSaveDirHandler(handler func()) {
	mv.browseSaveDirHandler = handler
}

// UI update methods - called by controller

// ShowPage switches the content area to page
func (mv *MainView) ShowPage(page models.Page) {
	fyne.Do(func() {
		target, ok := mv.pages[page]
		if !ok {
			return
		}
		for _, object := range mv.pages {
			if object == target {
				object.Show()
			} else {
				object.Hide()
			}
		}
		mv.currentPage = page
		mv.navigation.Select(page)
		mv.content.Refresh()
	})
}

// CurrentPage returns the page currently shown
func (mv *MainView) CurrentPage() models.Page {
	return mv.currentPage
}

// SetSelectedImage shows a freshly selected slide and clears stale results
func (mv *MainView) SetSelectedImage(selected *models.SelectedImage) {
	if selected == nil {
		mv.analysisImage.SetImage(nil)
		mv.analysisToolbar.SetImageSelected(false)
		mv.statusBar.SetImageInfo("", 0, 0, "")
		mv.SetAnalysis(nil, nil)
		return
	}
	mv.analysisImage.SetImage(selected.Preview)
	mv.analysisToolbar.SetImageSelected(true)
	mv.statusBar.SetImageInfo(selected.Name, selected.Width, selected.Height, selected.Format)
	mv.SetAnalysis(selected.Preview, nil)
}

// SetAnalysis updates both pages with the displayed slide and its result
func (mv *MainView) SetAnalysis(display image.Image, result *models.AnalysisResult) {
	mv.analysisImage.SetImage(display)
	mv.analysisResult.SetResult(result)
	mv.reportPanel.SetAnalysis(display, result)
}

// SetAnalyzing toggles the analysis progress indicator
func (mv *MainView) SetAnalyzing(active bool) {
	mv.analysisToolbar.SetAnalyzing(active)
}

// SetReportBusy locks the report buttons during a bridge call
func (mv *MainView) SetReportBusy(busy bool) {
	mv.reportPanel.SetBusy(busy)
}

// SetSaveDir shows the current save directory in settings and the status bar
func (mv *MainView) SetSaveDir(dir string) {
	mv.settingsPanel.SetSaveDir(dir)
	mv.statusBar.SetSaveDir(dir)
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// NotifySuccess shows a short-lived success toast
func (mv *MainView) NotifySuccess(message string) {
	fyne.Do(func() {
		mv.toast.Show(components.ToastSuccess, message, components.SuccessDuration)
	})
}

// NotifyError shows an error toast
func (mv *MainView) NotifyError(message string) {
	fyne.Do(func() {
		mv.toast.Show(components.ToastError, message, components.ErrorDuration)
	})
}

// ShowImageDialog opens a file picker restricted to slide image extensions
func (mv *MainView) ShowImageDialog(callback func(fyne.URIReadCloser, error)) {
	fyne.Do(func() {
		d := dialog.NewFileOpen(callback, mv.window)
		d.SetFilter(storage.NewExtensionFileFilter(ImageExtensions))
		d.Show()
	})
}

// ShowFolderDialog opens a folder picker
func (mv *MainView) ShowFolderDialog(callback func(fyne.ListableURI, error)) {
	fyne.Do(func() {
		dialog.ShowFolderOpen(callback, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// Toast returns the notification component
func (mv *MainView) Toast() *components.Toast {
	return mv.toast
}

// StatusBar returns the status bar component
func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}

// ResultText returns the analysis page's rendered result
func (mv *MainView) ResultText() string {
	return mv.analysisResult.Text()
}

// ReportResultText returns the report page's rendered result summary
func (mv *MainView) ReportResultText() string {
	return mv.reportPanel.ResultText()
}

// AnalyzeEnabled reports whether analysis can be started
func (mv *MainView) AnalyzeEnabled() bool {
	return mv.analysisToolbar.AnalyzeEnabled()
}

// SaveDirText returns the settings entry text
func (mv *MainView) SaveDirText() string {
	return mv.settingsPanel.SaveDir()
}

// Show displays the main window
func (mv *MainView) Show() {
	mv.window.Show()
}
