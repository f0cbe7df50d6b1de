package services

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathoscope/internal/bridge"
	"pathoscope/internal/logger"
	"pathoscope/internal/models"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testTime = time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (n *recordingNotifier) NotifySuccess(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) NotifyError(message string)   { n.errors = append(n.errors, message) }

type fakeBridge struct {
	requests []bridge.Request
	result   bridge.Result
}

func (b *fakeBridge) Invoke(_ context.Context, req bridge.Request) bridge.Result {
	b.requests = append(b.requests, req)
	return b.result
}

type composerFixture struct {
	form     *models.ReportForm
	state    *models.AppState
	notifier *recordingNotifier
	composer *ReportComposer
}

func newComposerFixture(t *testing.T, b bridge.Bridge) *composerFixture {
	t.Helper()
	test.NewTempApp(t)

	f := &composerFixture{
		form:     models.NewReportForm(),
		state:    models.NewAppState(""),
		notifier: &recordingNotifier{},
	}
	f.composer = NewReportComposer(f.form, f.state, b, f.notifier, fixedClock{testTime}, logger.NewNop())
	return f
}

func (f *composerFixture) fill(t *testing.T, values models.FormValues) {
	t.Helper()
	require.NoError(t, f.form.Set(values))
}

func (f *composerFixture) values(t *testing.T) models.FormValues {
	t.Helper()
	values, err := f.form.Values()
	require.NoError(t, err)
	return values
}

func TestSave_EmptyPatientIDNeverReachesBridge(t *testing.T) {
	fb := &fakeBridge{result: bridge.Result{Success: true, FilePath: "/unused"}}
	f := newComposerFixture(t, fb)
	entered := models.FormValues{PatientName: "Zhang", DoctorOpinion: "needs review"}
	f.fill(t, entered)

	err := f.composer.Save(context.Background(), t.TempDir())

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, fb.requests)
	assert.Equal(t, entered, f.values(t))
	assert.Equal(t, []string{verr.Message}, f.notifier.errors)
	assert.Empty(t, f.notifier.successes)
}

func TestSave_WritesScenarioReport(t *testing.T) {
	host := bridge.NewHost(nil, nil, logger.NewNop())
	f := newComposerFixture(t, host)
	f.fill(t, models.FormValues{PatientName: "Zhang", PatientID: "P001"})
	dir := filepath.Join(t.TempDir(), "reports")

	require.NoError(t, f.composer.Save(context.Background(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "P001_report.json"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"patientName":"Zhang","patientId":"P001","doctorOpinion":"","analysisResult":null,"date":"2026-10-17 09:30:00"}`,
		string(data))

	assert.Equal(t, models.FormValues{}, f.values(t))
	require.Len(t, f.notifier.successes, 1)
	assert.Contains(t, f.notifier.successes[0], filepath.Join(dir, "P001_report.json"))
	assert.Empty(t, f.notifier.errors)
}

func TestSave_RoundTripsAnalysisResult(t *testing.T) {
	host := bridge.NewHost(nil, nil, logger.NewNop())
	f := newComposerFixture(t, host)
	analysis := &models.AnalysisResult{
		Class:      "tumor",
		Confidence: 0.82,
		Details:    "dense cellularity",
		Regions:    []models.Region{{BBox: []float64{1, 2, 3, 4}, Confidence: 0.7}},
	}
	f.state.SetAnalysis(analysis, nil)
	f.fill(t, models.FormValues{PatientName: "Wang", PatientID: "P777", DoctorOpinion: "Confirm with IHC."})
	dir := t.TempDir()

	require.NoError(t, f.composer.Save(context.Background(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "P777_report.json"))
	require.NoError(t, err)

	var saved models.Report
	require.NoError(t, json.Unmarshal(data, &saved))
	saved.Date = ""
	assert.Equal(t, models.Report{
		PatientName:    "Wang",
		PatientID:      "P777",
		DoctorOpinion:  "Confirm with IHC.",
		AnalysisResult: analysis,
	}, saved)
}

func TestSave_BridgeFailureKeepsForm(t *testing.T) {
	fb := &fakeBridge{result: bridge.Result{Success: false, Error: "mkdir /reports: permission denied"}}
	f := newComposerFixture(t, fb)
	entered := models.FormValues{PatientName: "Zhang", PatientID: "P001", DoctorOpinion: "benign"}
	f.fill(t, entered)

	err := f.composer.Save(context.Background(), "/reports")

	var berr *BridgeError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, bridge.OpSaveReport, berr.Operation)
	assert.Equal(t, entered, f.values(t))
	assert.Equal(t, []string{"mkdir /reports: permission denied"}, f.notifier.errors)

	require.Len(t, fb.requests, 1)
	req := fb.requests[0]
	assert.Equal(t, bridge.OpSaveReport, req.Operation)
	assert.Equal(t, "/reports", req.SavePath)
	assert.Equal(t, "P001_report.json", req.FileName)
	assert.NotEmpty(t, req.ID)
}

func TestSave_BridgeFailureWithoutMessageUsesFallback(t *testing.T) {
	fb := &fakeBridge{result: bridge.Result{Success: false}}
	f := newComposerFixture(t, fb)
	f.fill(t, models.FormValues{PatientID: "P001"})

	err := f.composer.Save(context.Background(), "/reports")
	require.Error(t, err)
	assert.Equal(t, []string{saveFailedMessage}, f.notifier.errors)
}

func TestSave_WithoutBridge(t *testing.T) {
	f := newComposerFixture(t, nil)
	f.fill(t, models.FormValues{PatientID: "P001"})

	err := f.composer.Save(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrBridgeUnavailable)
	assert.Equal(t, []string{ErrBridgeUnavailable.Error()}, f.notifier.errors)
	assert.Equal(t, "P001", f.values(t).PatientID)
}

func TestExportPDF_FileNames(t *testing.T) {
	tests := []struct {
		patientID string
		want      string
	}{
		{"P001", "P001_report.pdf"},
		{"", "diagnostic-report_report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			fb := &fakeBridge{result: bridge.Result{Success: true, FilePath: "/tmp/out/" + tt.want}}
			f := newComposerFixture(t, fb)
			f.fill(t, models.FormValues{PatientName: "Zhang", PatientID: tt.patientID})

			require.NoError(t, f.composer.ExportCurrentPDF(context.Background(), "/tmp/out"))

			require.Len(t, fb.requests, 1)
			assert.Equal(t, bridge.OpPrintToPDF, fb.requests[0].Operation)
			assert.Equal(t, tt.want, fb.requests[0].FileName)
			assert.Nil(t, fb.requests[0].Content)
			assert.Equal(t, "Zhang", f.values(t).PatientName, "export must not clear the form")
			assert.Len(t, f.notifier.successes, 1)
		})
	}
}

func TestExportPDF_Failure(t *testing.T) {
	fb := &fakeBridge{result: bridge.Result{Success: false, Error: "no active window found"}}
	f := newComposerFixture(t, fb)

	err := f.composer.ExportPDF(context.Background(), "/tmp/out", "P001")

	var berr *BridgeError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, bridge.OpPrintToPDF, berr.Operation)
	assert.Equal(t, []string{"no active window found"}, f.notifier.errors)
}

func TestExportPDF_WithoutBridge(t *testing.T) {
	f := newComposerFixture(t, nil)
	assert.ErrorIs(t, f.composer.ExportPDF(context.Background(), "/tmp/out", "P001"), ErrBridgeUnavailable)
}
