package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"pathoscope/internal/inference"
	"pathoscope/internal/logger"
	"pathoscope/internal/models"
)

// Analyzer submits an image to the inference service.
type Analyzer interface {
	Analyze(ctx context.Context, fileName string, data []byte) (*models.AnalysisResult, error)
}

// RegionDrawer renders detected regions onto a preview image.
type RegionDrawer interface {
	Draw(img image.Image, regions []models.Region) (image.Image, error)
}

// AnalysisService owns image selection and the inference round trip.
type AnalysisService struct {
	client    Analyzer
	annotator RegionDrawer
	state     *models.AppState
	logger    logger.Logger
}

func NewAnalysisService(client Analyzer, annotator RegionDrawer, state *models.AppState, log logger.Logger) *AnalysisService {
	return &AnalysisService{
		client:    client,
		annotator: annotator,
		state:     state,
		logger:    log,
	}
}

// SelectImage validates and decodes a picked file and makes it the current
// image. Any previous analysis result is discarded.
func (s *AnalysisService) SelectImage(name string, data []byte) (*models.SelectedImage, error) {
	if _, ok := inference.ImageContentType(name, data); !ok {
		return nil, inference.ErrNotImage
	}

	preview, detected, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := preview.Bounds()
	selected := &models.SelectedImage{
		Name:     filepath.Base(name),
		Data:     data,
		Format:   determineFormat(strings.ToLower(filepath.Ext(name)), detected),
		Preview:  preview,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		LoadTime: time.Now(),
	}
	s.state.SetImage(selected)

	s.logger.Info("AnalysisService", "image selected", map[string]interface{}{
		"file":       selected.Name,
		"format":     selected.Format,
		"width":      selected.Width,
		"height":     selected.Height,
		"size_bytes": len(data),
	})
	return selected, nil
}

// Analyze sends the current image to the inference service. The result is
// stored only on success and only if the selection did not change meanwhile.
func (s *AnalysisService) Analyze(ctx context.Context) (*models.AnalysisResult, error) {
	selected := s.state.Image()
	if selected == nil {
		return nil, ErrNoImage
	}

	result, err := s.client.Analyze(ctx, selected.Name, selected.Data)
	if err != nil {
		return nil, err
	}

	var annotated image.Image
	if len(result.Regions) > 0 && s.annotator != nil {
		annotated, err = s.annotator.Draw(selected.Preview, result.Regions)
		if err != nil {
			s.logger.Warning("AnalysisService", "region overlay failed", map[string]interface{}{
				"error": err.Error(),
			})
			annotated = nil
		}
	}

	if s.state.Image() != selected {
		return nil, ErrSelectionChanged
	}
	s.state.SetAnalysis(result, annotated)
	return result, nil
}

func determineFormat(extension, detectedFormat string) string {
	switch extension {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".tiff", ".tif":
		return "tiff"
	default:
		if detectedFormat != "" {
			return detectedFormat
		}
		return "unknown"
	}
}
