package models

import (
	"image"
	"sync"
	"time"
)

// Page identifies a top-level navigation entry.
type Page string

const (
	PageDashboard     Page = "dashboard"
	PageImageAnalysis Page = "image-analysis"
	PageReports       Page = "reports"
	PageSettings      Page = "settings"
)

// Pages lists navigation entries in display order.
var Pages = []Page{PageDashboard, PageImageAnalysis, PageReports, PageSettings}

// SelectedImage is the slide image chosen for analysis.
type SelectedImage struct {
	Name     string
	Data     []byte
	Format   string
	Preview  image.Image
	Width    int
	Height   int
	LoadTime time.Time
}

// AppState is the single process-wide application state. It is created once
// at startup and handed to the components that need it.
type AppState struct {
	mu          sync.RWMutex
	currentPage Page
	image       *SelectedImage
	annotated   image.Image
	result      *AnalysisResult
	saveDir     string
}

func NewAppState(saveDir string) *AppState {
	return &AppState{
		currentPage: PageDashboard,
		saveDir:     saveDir,
	}
}

func (s *AppState) CurrentPage() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentPage
}

func (s *AppState) SetCurrentPage(page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = page
}

// SetImage stores a newly selected image and drops any result computed for
// the previous one.
func (s *AppState) SetImage(img *SelectedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.image = img
	s.annotated = nil
	s.result = nil
}

func (s *AppState) Image() *SelectedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// SetAnalysis records the result for the current image along with its
// annotated preview, which may be nil.
func (s *AppState) SetAnalysis(result *AnalysisResult, annotated image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.annotated = annotated
}

func (s *AppState) AnalysisResult() *AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// DisplayImage returns the annotated preview when present, else the original.
func (s *AppState) DisplayImage() image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.annotated != nil {
		return s.annotated
	}
	if s.image != nil {
		return s.image.Preview
	}
	return nil
}

func (s *AppState) SaveDir() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveDir
}

func (s *AppState) SetSaveDir(dir string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveDir = dir
}
