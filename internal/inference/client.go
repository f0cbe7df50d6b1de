// Package inference talks to the external slide-analysis service.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"pathoscope/internal/logger"
	"pathoscope/internal/models"
)

const (
	DefaultBaseURL = "http://localhost:8000"
	analyzePath    = "/analyze"
	fileField      = "file"

	statusError      = "error"
	fallbackMessage  = "analysis failed"
	maxResponseBytes = 8 << 20
)

// ErrNotImage is returned before any network traffic when the selected file
// is not an image.
var ErrNotImage = errors.New("please select an image file")

// ServiceError carries a failure reported by the inference service.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("inference service unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type analyzeResponse struct {
	Status      string                 `json:"status"`
	Message     string                 `json:"message,omitempty"`
	Predictions *models.AnalysisResult `json:"predictions,omitempty"`
}

// Client uploads slide images for analysis. Each call is a single attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a client with a bounded per-request timeout. A zero
// timeout means no limit.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// Analyze uploads the image as multipart form data and maps the response.
func (c *Client) Analyze(ctx context.Context, fileName string, data []byte) (*models.AnalysisResult, error) {
	contentType, ok := ImageContentType(fileName, data)
	if !ok {
		return nil, ErrNotImage
	}

	body, formType, err := encodeUpload(fileName, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("encoding upload: %w", err)
	}

	targetURL := c.baseURL + analyzePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", formType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	c.logger.Debug("Inference", "uploading image", map[string]interface{}{
		"url":          targetURL,
		"file":         fileName,
		"content_type": contentType,
		"size_bytes":   len(data),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("reading response: %w", err)}
	}

	result, err := decodeResponse(resp.StatusCode, respBody)
	if err != nil {
		c.logger.Warning("Inference", "analysis rejected", map[string]interface{}{
			"status_code": resp.StatusCode,
			"error":       err.Error(),
		})
		return nil, err
	}

	c.logger.Info("Inference", "analysis completed", map[string]interface{}{
		"class":      result.Class,
		"confidence": result.Confidence,
		"regions":    len(result.Regions),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return result, nil
}

func decodeResponse(statusCode int, body []byte) (*models.AnalysisResult, error) {
	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &ServiceError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("unexpected response from inference service (status %d)", statusCode),
		}
	}

	if parsed.Status == statusError || statusCode >= http.StatusBadRequest {
		msg := parsed.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return nil, &ServiceError{StatusCode: statusCode, Message: msg}
	}

	if parsed.Predictions == nil {
		return nil, &ServiceError{StatusCode: statusCode, Message: "analysis returned no predictions"}
	}
	if err := parsed.Predictions.Validate(); err != nil {
		return nil, &ServiceError{StatusCode: statusCode, Message: fmt.Sprintf("invalid predictions: %v", err)}
	}
	return parsed.Predictions, nil
}

// ImageContentType reports the image MIME type of a file, judged by its
// extension first and its leading bytes second.
func ImageContentType(fileName string, data []byte) (string, bool) {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName))); strings.HasPrefix(byExt, "image/") {
		return byExt, true
	}
	if len(data) > 0 {
		if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
			return sniffed, true
		}
	}
	return "", false
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeUpload(fileName, contentType string, data []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		fileField, quoteEscaper.Replace(filepath.Base(fileName))))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
