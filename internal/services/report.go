package services

import (
	"context"
	"fmt"

	"pathoscope/internal/bridge"
	"pathoscope/internal/logger"
	"pathoscope/internal/models"
)

const (
	saveFailedMessage   = "failed to save report"
	exportFailedMessage = "failed to export PDF"
)

// Notifier surfaces the outcome of a user action.
type Notifier interface {
	NotifySuccess(message string)
	NotifyError(message string)
}

// ReportComposer turns the report form and current analysis result into
// persistence requests. It has no filesystem access of its own: all writes
// go through the injected bridge.
type ReportComposer struct {
	form     *models.ReportForm
	state    *models.AppState
	bridge   bridge.Bridge
	notifier Notifier
	clock    Clock
	logger   logger.Logger
}

func NewReportComposer(
	form *models.ReportForm,
	state *models.AppState,
	b bridge.Bridge,
	notifier Notifier,
	clock Clock,
	log logger.Logger,
) *ReportComposer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ReportComposer{
		form:     form,
		state:    state,
		bridge:   b,
		notifier: notifier,
		clock:    clock,
		logger:   log,
	}
}

// Compose builds a fresh Report from the form and the current analysis.
func (rc *ReportComposer) Compose() (*models.Report, error) {
	values, err := rc.form.Values()
	if err != nil {
		return nil, err
	}
	return &models.Report{
		PatientName:    values.PatientName,
		PatientID:      values.PatientID,
		DoctorOpinion:  values.DoctorOpinion,
		AnalysisResult: rc.state.AnalysisResult(),
		Date:           rc.clock.Now().Format(ReportDateLayout),
	}, nil
}

// Save validates and persists the report as JSON in targetDir. On success the
// form is cleared; on any failure it is left untouched.
func (rc *ReportComposer) Save(ctx context.Context, targetDir string) error {
	report, err := rc.Compose()
	if err != nil {
		return rc.fail(err, saveFailedMessage)
	}
	if err := report.Validate(); err != nil {
		return rc.fail(err, saveFailedMessage)
	}
	if rc.bridge == nil {
		return rc.fail(ErrBridgeUnavailable, saveFailedMessage)
	}

	content, err := report.MarshalIndent()
	if err != nil {
		return rc.fail(fmt.Errorf("encoding report: %w", err), saveFailedMessage)
	}

	req := bridge.NewRequest(bridge.OpSaveReport, targetDir, report.JSONFileName(), content)
	result := rc.bridge.Invoke(ctx, req)
	if !result.Success {
		return rc.fail(bridgeFailure(req.Operation, result, saveFailedMessage), saveFailedMessage)
	}

	if err := rc.form.Clear(); err != nil {
		rc.logger.Warning("ReportComposer", "report saved but form not cleared", map[string]interface{}{
			"error": err.Error(),
		})
	}

	rc.logger.Info("ReportComposer", "report saved", map[string]interface{}{
		"request_id": req.ID.String(),
		"patient_id": report.PatientID,
		"file_path":  result.FilePath,
	})
	rc.notifier.NotifySuccess(fmt.Sprintf("Report saved to %s", result.FilePath))
	return nil
}

// ExportPDF asks the host to print the active window into targetDir. The
// form is never cleared by an export.
func (rc *ReportComposer) ExportPDF(ctx context.Context, targetDir, patientID string) error {
	if rc.bridge == nil {
		return rc.fail(ErrBridgeUnavailable, exportFailedMessage)
	}

	req := bridge.NewRequest(bridge.OpPrintToPDF, targetDir, models.PDFFileName(patientID), nil)
	result := rc.bridge.Invoke(ctx, req)
	if !result.Success {
		return rc.fail(bridgeFailure(req.Operation, result, exportFailedMessage), exportFailedMessage)
	}

	rc.logger.Info("ReportComposer", "pdf exported", map[string]interface{}{
		"request_id": req.ID.String(),
		"file_path":  result.FilePath,
	})
	rc.notifier.NotifySuccess(fmt.Sprintf("PDF exported to %s", result.FilePath))
	return nil
}

// ExportCurrentPDF exports using the patient id currently in the form.
func (rc *ReportComposer) ExportCurrentPDF(ctx context.Context, targetDir string) error {
	values, err := rc.form.Values()
	if err != nil {
		return rc.fail(err, exportFailedMessage)
	}
	return rc.ExportPDF(ctx, targetDir, values.PatientID)
}

func (rc *ReportComposer) fail(err error, fallback string) error {
	rc.logger.Warning("ReportComposer", "report action failed", map[string]interface{}{
		"error": err.Error(),
	})
	rc.notifier.NotifyError(UserMessage(err, fallback))
	return err
}

func bridgeFailure(op bridge.Operation, result bridge.Result, fallback string) *BridgeError {
	msg := result.Error
	if msg == "" {
		msg = fallback
	}
	return &BridgeError{Operation: op, Message: msg}
}
