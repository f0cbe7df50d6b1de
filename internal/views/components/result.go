package components

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pathoscope/internal/models"
)

const noResultText = "No analysis result yet"

// FormatConfidence renders a [0,1] confidence as a percentage with two decimals.
func FormatConfidence(confidence float64) string {
	return strconv.FormatFloat(confidence*100, 'f', 2, 64) + "%"
}

// ResultLines returns the human readable summary of an analysis result.
func ResultLines(result *models.AnalysisResult) []string {
	if result == nil {
		return []string{noResultText}
	}

	lines := []string{
		"Classification: " + result.Class,
		"Confidence: " + FormatConfidence(result.Confidence),
	}
	if result.Details != "" {
		lines = append(lines, "Details: "+result.Details)
	}
	for i, region := range result.Regions {
		coords := make([]string, len(region.BBox))
		for j, v := range region.BBox {
			coords[j] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		lines = append(lines, fmt.Sprintf("Region %d: [%s] (%s)", i+1, strings.Join(coords, ", "), FormatConfidence(region.Confidence)))
	}
	return lines
}

// ResultPanel shows an analysis result. It is used on both the analysis and
// report pages.
type ResultPanel struct {
	container *fyne.Container
	body      *widget.Label
}

// NewResultPanel creates an empty result panel
func NewResultPanel(title string) *ResultPanel {
	p := &ResultPanel{body: widget.NewLabel(noResultText)}
	p.body.Wrapping = fyne.TextWrapWord
	p.container = container.NewVBox(widget.NewRichTextFromMarkdown("**"+title+"**"), p.body)
	return p
}

// SetResult replaces the shown result; nil clears it.
func (p *ResultPanel) SetResult(result *models.AnalysisResult) {
	text := strings.Join(ResultLines(result), "\n")
	fyne.Do(func() {
		p.body.SetText(text)
	})
}

// Text returns the rendered result text.
func (p *ResultPanel) Text() string {
	return p.body.Text
}

// GetContainer returns the panel container
func (p *ResultPanel) GetContainer() *fyne.Container {
	return p.container
}
