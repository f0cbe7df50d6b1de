package models

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/data/binding"
)

// ReportForm holds the composer's editable fields as data bindings, so a
// widget bound to a field is cleared together with the model.
type ReportForm struct {
	PatientName   binding.String
	PatientID     binding.String
	DoctorOpinion binding.String
}

// FormValues is a point-in-time copy of the form fields.
type FormValues struct {
	PatientName   string
	PatientID     string
	DoctorOpinion string
}

func NewReportForm() *ReportForm {
	return &ReportForm{
		PatientName:   binding.NewString(),
		PatientID:     binding.NewString(),
		DoctorOpinion: binding.NewString(),
	}
}

// Values reads all fields. Patient id is trimmed since it becomes a file name.
func (f *ReportForm) Values() (FormValues, error) {
	name, err := f.PatientName.Get()
	if err != nil {
		return FormValues{}, fmt.Errorf("reading patient name: %w", err)
	}
	id, err := f.PatientID.Get()
	if err != nil {
		return FormValues{}, fmt.Errorf("reading patient id: %w", err)
	}
	opinion, err := f.DoctorOpinion.Get()
	if err != nil {
		return FormValues{}, fmt.Errorf("reading doctor opinion: %w", err)
	}

	return FormValues{
		PatientName:   name,
		PatientID:     strings.TrimSpace(id),
		DoctorOpinion: opinion,
	}, nil
}

// Set overwrites every field.
func (f *ReportForm) Set(values FormValues) error {
	if err := f.PatientName.Set(values.PatientName); err != nil {
		return err
	}
	if err := f.PatientID.Set(values.PatientID); err != nil {
		return err
	}
	return f.DoctorOpinion.Set(values.DoctorOpinion)
}

// Clear resets all fields to empty.
func (f *ReportForm) Clear() error {
	return f.Set(FormValues{})
}
