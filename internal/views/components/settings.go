package components

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// SettingsPanel edits the report save directory
type SettingsPanel struct {
	container    *fyne.Container
	dirEntry     *widget.Entry
	applyButton  *widget.Button
	browseButton *widget.Button

	saveDirHandler func(string)
	browseHandler  func()
}

// NewSettingsPanel creates the settings page
func NewSettingsPanel() *SettingsPanel {
	p := &SettingsPanel{}

	p.dirEntry = widget.NewEntry()
	p.dirEntry.SetPlaceHolder("Directory where reports are saved")
	p.dirEntry.OnSubmitted = func(string) { p.apply() }

	p.applyButton = widget.NewButtonWithIcon("Apply", theme.ConfirmIcon(), p.apply)
	p.applyButton.Importance = widget.HighImportance

	p.browseButton = widget.NewButtonWithIcon("Choose Folder", theme.FolderOpenIcon(), func() {
		if p.browseHandler != nil {
			p.browseHandler()
		}
	})

	p.container = container.NewVBox(
		widget.NewRichTextFromMarkdown("## Settings"),
		widget.NewLabel("Report save directory"),
		container.NewBorder(nil, nil, nil, container.NewHBox(p.browseButton, p.applyButton), p.dirEntry),
	)
	return p
}

func (p *SettingsPanel) apply() {
	if p.saveDirHandler != nil {
		p.saveDirHandler(strings.TrimSpace(p.dirEntry.Text))
	}
}

// SetSaveDirHandler sets the handler called when the user applies a directory
func (p *SettingsPanel) SetSaveDirHandler(handler func(string)) {
	p.saveDirHandler = handler
}

// SetBrowseHandler sets the folder chooser handler
func (p *SettingsPanel) SetBrowseHandler(handler func()) {
	p.browseHandler = handler
}

// SetSaveDir shows dir in the entry without triggering the handler
func (p *SettingsPanel) SetSaveDir(dir string) {
	fyne.Do(func() {
		p.dirEntry.SetText(dir)
	})
}

// SaveDir returns the entry's current text
func (p *SettingsPanel) SaveDir() string {
	return p.dirEntry.Text
}

// GetContainer returns the panel container
func (p *SettingsPanel) GetContainer() *fyne.Container {
	return p.container
}
