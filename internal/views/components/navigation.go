package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pathoscope/internal/models"
)

var pageTitles = map[models.Page]string{
	models.PageDashboard:     "Dashboard",
	models.PageImageAnalysis: "Image Analysis",
	models.PageReports:       "Diagnostic Report",
	models.PageSettings:      "Settings",
}

var pageIcons = map[models.Page]fyne.Resource{
	models.PageDashboard:     theme.HomeIcon(),
	models.PageImageAnalysis: theme.MediaPhotoIcon(),
	models.PageReports:       theme.DocumentIcon(),
	models.PageSettings:      theme.SettingsIcon(),
}

// PageTitle returns the display name of a page.
func PageTitle(page models.Page) string {
	if title, ok := pageTitles[page]; ok {
		return title
	}
	return string(page)
}

// Navigation is the sidebar page list
type Navigation struct {
	list    *widget.List
	pages   []models.Page
	handler func(models.Page)
}

// NewNavigation creates a sidebar over the given pages
func NewNavigation(pages []models.Page) *Navigation {
	n := &Navigation{pages: pages}
	n.list = widget.NewList(
		func() int { return len(n.pages) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(nil), widget.NewLabel(""))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			page := n.pages[id]
			row := item.(*fyne.Container)
			row.Objects[0].(*widget.Icon).SetResource(pageIcons[page])
			row.Objects[1].(*widget.Label).SetText(PageTitle(page))
		},
	)
	n.list.OnSelected = func(id widget.ListItemID) {
		if n.handler != nil && id >= 0 && id < len(n.pages) {
			n.handler(n.pages[id])
		}
	}
	return n
}

// SetPageHandler sets the handler called when a page is chosen
func (n *Navigation) SetPageHandler(handler func(models.Page)) {
	n.handler = handler
}

// Select highlights page in the list, firing the page handler
func (n *Navigation) Select(page models.Page) {
	for i, p := range n.pages {
		if p == page {
			n.list.Select(i)
			return
		}
	}
}

// GetObject returns the list widget
func (n *Navigation) GetObject() fyne.CanvasObject {
	return n.list
}
