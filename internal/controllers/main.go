package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"fyne.io/fyne/v2"

	"pathoscope/internal/bridge"
	"pathoscope/internal/logger"
	"pathoscope/internal/models"
	"pathoscope/internal/services"
	"pathoscope/internal/views"
)

const (
	component = "MainController"

	// PrefSaveDir is the preferences key holding the report save directory.
	PrefSaveDir = "savePath"

	analysisFailedMessage = "analysis failed"
	loadFailedMessage     = "failed to load image"
)

// SaveDirFromPreferences returns the persisted save directory, or fallback
// when none was stored yet.
func SaveDirFromPreferences(prefs fyne.Preferences, fallback string) string {
	if prefs == nil {
		return fallback
	}
	if dir := strings.TrimSpace(prefs.String(PrefSaveDir)); dir != "" {
		return dir
	}
	return fallback
}

// MainController orchestrates the application using MVC pattern
type MainController struct {
	analysis *services.AnalysisService
	composer *services.ReportComposer
	state    *models.AppState
	prefs    fyne.Preferences
	logger   logger.Logger

	mainView *views.MainView

	mu        sync.Mutex
	analyzing bool
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewMainController creates a new main controller
func NewMainController(
	analysis *services.AnalysisService,
	composer *services.ReportComposer,
	state *models.AppState,
	prefs fyne.Preferences,
	log logger.Logger,
) *MainController {
	ctx, cancel := context.WithCancel(context.Background())
	return &MainController{
		analysis: analysis,
		composer: composer,
		state:    state,
		prefs:    prefs,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view *views.MainView) {
	mc.mainView = view
	mc.setupViewEventHandlers()
	view.SetSaveDir(mc.state.SaveDir())
	view.ShowPage(mc.state.CurrentPage())
}

func (mc *MainController) setupViewEventHandlers() {
	mc.mainView.SetPageChangeHandler(mc.ShowPage)
	mc.mainView.SetSelectImageHandler(mc.SelectImage)
	mc.mainView.SetAnalyzeHandler(mc.Analyze)
	mc.mainView.SetSaveReportHandler(mc.SaveReport)
	mc.mainView.SetExportPDFHandler(mc.ExportPDF)
	mc.mainView.SetSaveDirChangeHandler(mc.ChangeSaveDir)
	mc.mainView.SetBrowseSaveDirHandler(mc.BrowseSaveDir)
}

// ShowPage navigates to page
func (mc *MainController) ShowPage(page models.Page) {
	if mc.state.CurrentPage() == page && mc.mainView.CurrentPage() == page {
		return
	}
	mc.state.SetCurrentPage(page)
	mc.mainView.ShowPage(page)
}

// SelectImage opens the slide picker
func (mc *MainController) SelectImage() {
	mc.mainView.ShowImageDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mc.handleError(err, loadFailedMessage)
			return
		}
		if reader == nil {
			return
		}

		mc.wg.Add(1)
		go func() {
			defer mc.wg.Done()
			mc.loadImageFromReader(reader)
		}()
	})
}

func (mc *MainController) loadImageFromReader(reader fyne.URIReadCloser) {
	defer reader.Close()

	mc.mainView.UpdateStatus("Loading image...")
	data, err := io.ReadAll(reader)
	if err != nil {
		mc.handleError(fmt.Errorf("reading %s: %w", reader.URI().Name(), err), loadFailedMessage)
		mc.mainView.UpdateStatus("Ready")
		return
	}
	mc.LoadImage(reader.URI().Name(), data)
}

// LoadImage makes the given file the current slide.
func (mc *MainController) LoadImage(name string, data []byte) {
	selected, err := mc.analysis.SelectImage(name, data)
	if err != nil {
		mc.handleError(err, loadFailedMessage)
		mc.mainView.UpdateStatus("Ready")
		return
	}

	mc.mainView.SetSelectedImage(selected)
	mc.mainView.UpdateStatus("Image loaded")
}

// Analyze sends the current slide to the inference service in the background.
// A second request while one is running is ignored.
func (mc *MainController) Analyze() {
	mc.mu.Lock()
	if mc.analyzing {
		mc.mu.Unlock()
		return
	}
	mc.analyzing = true
	mc.mu.Unlock()

	mc.mainView.SetAnalyzing(true)
	mc.mainView.UpdateStatus("Analysing...")

	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		mc.performAnalysis()
	}()
}

func (mc *MainController) performAnalysis() {
	defer func() {
		mc.mu.Lock()
		mc.analyzing = false
		mc.mu.Unlock()
		mc.mainView.SetAnalyzing(false)
	}()

	result, err := mc.analysis.Analyze(mc.ctx)
	if errors.Is(err, services.ErrSelectionChanged) {
		mc.logger.Debug(component, "discarding analysis for replaced image", nil)
		mc.mainView.UpdateStatus("Image loaded")
		return
	}
	if err != nil {
		mc.handleError(err, analysisFailedMessage)
		mc.mainView.UpdateStatus("Analysis failed")
		return
	}

	mc.mainView.SetAnalysis(mc.state.DisplayImage(), result)
	mc.mainView.UpdateStatus("Analysis complete: " + result.Class)
}

// SaveReport persists the report form through the bridge in the background
func (mc *MainController) SaveReport() {
	mc.mainView.SetReportBusy(true)

	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		defer mc.mainView.SetReportBusy(false)

		if err := mc.composer.Save(mc.ctx, mc.state.SaveDir()); err != nil {
			mc.mainView.UpdateStatus("Report not saved")
			return
		}
		mc.mainView.UpdateStatus("Report saved")
	}()
}

// ExportPDF prints the current window to PDF through the bridge. The buttons
// stay enabled so the capture shows the page as the user sees it.
func (mc *MainController) ExportPDF() {
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()

		if err := mc.composer.ExportCurrentPDF(mc.ctx, mc.state.SaveDir()); err != nil {
			mc.mainView.UpdateStatus("PDF not exported")
			return
		}
		mc.mainView.UpdateStatus("PDF exported")
	}()
}

// ChangeSaveDir stores dir as the report directory and persists it
func (mc *MainController) ChangeSaveDir(dir string) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		mc.mainView.NotifyError(bridge.ErrSaveDirUnset.Error())
		mc.mainView.SetSaveDir(mc.state.SaveDir())
		return
	}

	mc.state.SetSaveDir(dir)
	if mc.prefs != nil {
		mc.prefs.SetString(PrefSaveDir, dir)
	}
	mc.mainView.SetSaveDir(dir)
	mc.mainView.NotifySuccess("Save directory set to " + dir)

	mc.logger.Info(component, "save directory changed", map[string]interface{}{
		"save_dir": dir,
	})
}

// BrowseSaveDir opens a folder chooser for the save directory
func (mc *MainController) BrowseSaveDir() {
	mc.mainView.ShowFolderDialog(func(uri fyne.ListableURI, err error) {
		if err != nil {
			mc.handleError(err, "failed to choose folder")
			return
		}
		if uri == nil {
			return
		}
		mc.ChangeSaveDir(uri.Path())
	})
}

// handleError logs err and reports it to the user without interrupting the app
func (mc *MainController) handleError(err error, fallback string) {
	mc.logger.Error(component, err, map[string]interface{}{
		"context": fallback,
	})
	mc.mainView.NotifyError(services.UserMessage(err, fallback))
}

// Wait blocks until background work started by the controller has finished.
func (mc *MainController) Wait() {
	mc.wg.Wait()
}

// Shutdown cancels in-flight requests and waits for them to return
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.wg.Wait()
}
