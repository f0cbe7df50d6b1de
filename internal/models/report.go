package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultPDFBaseName is used for PDF exports when no patient id is entered.
const DefaultPDFBaseName = "diagnostic-report"

// Region is a localized finding within the analysed image.
type Region struct {
	BBox       []float64 `json:"bbox"`
	Confidence float64   `json:"confidence"`
}

// AnalysisResult is the inference service's structured output.
type AnalysisResult struct {
	Class      string   `json:"class"`
	Confidence float64  `json:"confidence"`
	Details    string   `json:"details"`
	Regions    []Region `json:"regions,omitempty"`
}

// Validate checks the ranges the rest of the application relies on.
func (r *AnalysisResult) Validate() error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", r.Confidence)
	}
	for i, region := range r.Regions {
		if len(region.BBox) != 4 {
			return fmt.Errorf("region %d: bbox has %d values, want 4", i+1, len(region.BBox))
		}
		if region.Confidence < 0 || region.Confidence > 1 {
			return fmt.Errorf("region %d: confidence %v outside [0,1]", i+1, region.Confidence)
		}
	}
	return nil
}

// Report is the clinician-authored record persisted to disk.
// Field order is the on-disk key order.
type Report struct {
	PatientName    string          `json:"patientName"`
	PatientID      string          `json:"patientId"`
	DoctorOpinion  string          `json:"doctorOpinion"`
	AnalysisResult *AnalysisResult `json:"analysisResult"`
	Date           string          `json:"date"`
}

// ValidationError reports a missing or malformed required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate enforces the one persistence invariant: a non-empty patient id.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.PatientID) == "" {
		return &ValidationError{Field: "patientId", Message: "please enter the patient ID"}
	}
	return nil
}

// MarshalIndent renders the canonical pretty-printed JSON document.
func (r *Report) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// JSONFileName is the file name a saved report is written under.
func (r *Report) JSONFileName() string {
	return r.PatientID + "_report.json"
}

// PDFFileName derives the export file name, falling back when no id is set.
func PDFFileName(patientID string) string {
	if strings.TrimSpace(patientID) == "" {
		patientID = DefaultPDFBaseName
	}
	return patientID + "_report.pdf"
}
