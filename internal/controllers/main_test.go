package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathoscope/internal/bridge"
	"pathoscope/internal/inference"
	"pathoscope/internal/logger"
	"pathoscope/internal/models"
	"pathoscope/internal/services"
	"pathoscope/internal/views"
)

type stubAnalyzer struct {
	result *models.AnalysisResult
	err    error
}

func (a *stubAnalyzer) Analyze(context.Context, string, []byte) (*models.AnalysisResult, error) {
	return a.result, a.err
}

type fixture struct {
	controller *MainController
	view       *views.MainView
	state      *models.AppState
	form       *models.ReportForm
	analyzer   *stubAnalyzer
	saveDir    string
}

func newFixture(t *testing.T) (*fixture, func(string) string) {
	t.Helper()
	a := test.NewTempApp(t)
	w := a.NewWindow("pathoscope")
	t.Cleanup(w.Close)

	saveDir := filepath.Join(t.TempDir(), "reports")
	state := models.NewAppState(saveDir)
	form := models.NewReportForm()
	view := views.NewMainView(w, form)

	analyzer := &stubAnalyzer{}
	log := logger.NewNop()
	analysis := services.NewAnalysisService(analyzer, nil, state, log)
	host := bridge.NewHost(nil, nil, log)
	composer := services.NewReportComposer(form, state, host, view, nil, log)

	controller := NewMainController(analysis, composer, state, a.Preferences(), log)
	controller.SetMainView(view)
	t.Cleanup(controller.Shutdown)

	f := &fixture{
		controller: controller,
		view:       view,
		state:      state,
		form:       form,
		analyzer:   analyzer,
		saveDir:    saveDir,
	}
	return f, a.Preferences().String
}

func slide(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 32, 24))))
	return buf.Bytes()
}

func TestShowPage(t *testing.T) {
	f, _ := newFixture(t)

	f.controller.ShowPage(models.PageSettings)

	assert.Equal(t, models.PageSettings, f.state.CurrentPage())
	assert.Equal(t, models.PageSettings, f.view.CurrentPage())
}

func TestLoadImageThenAnalyze(t *testing.T) {
	f, _ := newFixture(t)
	f.analyzer.result = &models.AnalysisResult{Class: "malignant", Confidence: 0.93, Details: "dense nuclei"}

	f.controller.LoadImage("slide.png", slide(t))
	require.NotNil(t, f.state.Image())
	assert.True(t, f.view.AnalyzeEnabled())
	assert.Equal(t, "slide.png: 32x24 png", f.view.StatusBar().GetImageInfo())

	f.controller.Analyze()
	f.controller.Wait()

	assert.Equal(t, f.analyzer.result, f.state.AnalysisResult())
	assert.Contains(t, f.view.ResultText(), "Classification: malignant")
	assert.Contains(t, f.view.ResultText(), "Confidence: 93.00%")
	assert.Contains(t, f.view.ReportResultText(), "Classification: malignant")
	assert.Equal(t, "Analysis complete: malignant", f.view.StatusBar().GetStatus())
}

func TestAnalyze_ServiceErrorShowsMessage(t *testing.T) {
	f, _ := newFixture(t)
	f.analyzer.err = &inference.ServiceError{StatusCode: 200, Message: "corrupt image"}

	f.controller.LoadImage("slide.png", slide(t))
	f.controller.Analyze()
	f.controller.Wait()

	assert.Nil(t, f.state.AnalysisResult())
	assert.Equal(t, "corrupt image", f.view.Toast().Message())
	assert.Contains(t, f.view.ResultText(), "No analysis result yet")
}

func TestLoadImage_RejectsNonImage(t *testing.T) {
	f, _ := newFixture(t)

	f.controller.LoadImage("notes.txt", []byte("plain text"))

	assert.Nil(t, f.state.Image())
	assert.Equal(t, "please select an image file", f.view.Toast().Message())
}

func TestAnalyze_WithoutImage(t *testing.T) {
	f, _ := newFixture(t)

	f.controller.Analyze()
	f.controller.Wait()

	assert.Equal(t, "please select an image first", f.view.Toast().Message())
}

func TestChangeSaveDir_Persists(t *testing.T) {
	f, pref := newFixture(t)
	dir := filepath.Join(t.TempDir(), "elsewhere")

	f.controller.ChangeSaveDir("  " + dir + " ")

	assert.Equal(t, dir, f.state.SaveDir())
	assert.Equal(t, dir, pref(PrefSaveDir))
	assert.Equal(t, dir, f.view.SaveDirText())
}

func TestChangeSaveDir_RejectsEmpty(t *testing.T) {
	f, pref := newFixture(t)

	f.controller.ChangeSaveDir("   ")

	assert.Equal(t, f.saveDir, f.state.SaveDir())
	assert.Empty(t, pref(PrefSaveDir))
	assert.Equal(t, "save directory is not set", f.view.Toast().Message())
}

func TestSaveReport_WritesFileAndClearsForm(t *testing.T) {
	f, _ := newFixture(t)
	require.NoError(t, f.form.Set(models.FormValues{
		PatientName:   "Zhang",
		PatientID:     "P001",
		DoctorOpinion: "benign",
	}))

	f.controller.SaveReport()
	f.controller.Wait()

	data, err := os.ReadFile(filepath.Join(f.saveDir, "P001_report.json"))
	require.NoError(t, err)
	var report models.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "Zhang", report.PatientName)

	values, err := f.form.Values()
	require.NoError(t, err)
	assert.Empty(t, values.PatientID)
	assert.Equal(t, "Report saved", f.view.StatusBar().GetStatus())
}

func TestSaveReport_EmptyPatientID(t *testing.T) {
	f, _ := newFixture(t)
	require.NoError(t, f.form.Set(models.FormValues{PatientName: "Zhang"}))

	f.controller.SaveReport()
	f.controller.Wait()

	_, err := os.Stat(f.saveDir)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "please enter the patient ID", f.view.Toast().Message())

	values, err := f.form.Values()
	require.NoError(t, err)
	assert.Equal(t, "Zhang", values.PatientName)
}

func TestExportPDF_NoActiveWindow(t *testing.T) {
	f, _ := newFixture(t)

	f.controller.ExportPDF()
	f.controller.Wait()

	assert.Equal(t, "no active window found", f.view.Toast().Message())
	assert.Equal(t, "PDF not exported", f.view.StatusBar().GetStatus())
}

func TestSaveDirFromPreferences(t *testing.T) {
	a := test.NewTempApp(t)
	prefs := a.Preferences()

	assert.Equal(t, "/fallback", SaveDirFromPreferences(prefs, "/fallback"))
	prefs.SetString(PrefSaveDir, "/stored")
	assert.Equal(t, "/stored", SaveDirFromPreferences(prefs, "/fallback"))
	assert.Equal(t, "/fallback", SaveDirFromPreferences(nil, "/fallback"))
}

func TestShutdown_CancelsContext(t *testing.T) {
	f, _ := newFixture(t)

	done := make(chan struct{})
	go func() {
		f.controller.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("shutdown did not return")
	}
	assert.Error(t, f.controller.ctx.Err())
}
