package bridge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"pathoscope/internal/logger"
)

const component = "Bridge"

// Host performs persistence on behalf of the view layer.
type Host struct {
	windows  WindowLocator
	renderer *PDFRenderer
	logger   logger.Logger
}

var _ Bridge = (*Host)(nil)

func NewHost(windows WindowLocator, renderer *PDFRenderer, log logger.Logger) *Host {
	if renderer == nil {
		renderer = NewPDFRenderer("pathoscope")
	}
	return &Host{
		windows:  windows,
		renderer: renderer,
		logger:   log,
	}
}

// Invoke dispatches a request by operation name. Every failure, including a
// panic inside an operation, comes back as a failed Result.
func (h *Host) Invoke(ctx context.Context, req Request) (result Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = failed(fmt.Errorf("%s: internal error: %v", req.Operation, r))
		}
		h.logResult(req, result, time.Since(start))
	}()

	switch req.Operation {
	case OpSaveReport:
		return h.SaveReport(ctx, req.Content, req.SavePath, req.FileName)
	case OpPrintToPDF:
		return h.PrintToPDF(ctx, req.SavePath, req.FileName)
	default:
		return failed(fmt.Errorf("%w %q", ErrUnknownOperation, req.Operation))
	}
}

// SaveReport writes content as UTF-8 text to savePath/fileName, creating
// missing directories and replacing any existing file.
func (h *Host) SaveReport(ctx context.Context, content []byte, savePath, fileName string) Result {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}
	if err := validateTarget(savePath, fileName); err != nil {
		return failed(err)
	}
	if !utf8.Valid(content) {
		return failed(ErrInvalidContent)
	}

	path, err := writeFile(savePath, fileName, content)
	if err != nil {
		return failed(err)
	}
	return succeeded(path)
}

// PrintToPDF renders the active window's visible content to a PDF and writes
// it to savePath/fileName with the same create-or-overwrite rules.
func (h *Host) PrintToPDF(ctx context.Context, savePath, fileName string) Result {
	if err := ctx.Err(); err != nil {
		return failed(err)
	}
	if err := validateTarget(savePath, fileName); err != nil {
		return failed(err)
	}

	if h.windows == nil {
		return failed(ErrNoActiveWindow)
	}
	window, ok := h.windows.ActiveWindow()
	if !ok {
		return failed(ErrNoActiveWindow)
	}

	data, err := h.renderer.Render(window.Capture(), window.Title())
	if err != nil {
		return failed(err)
	}

	path, err := writeFile(savePath, fileName, data)
	if err != nil {
		return failed(err)
	}
	return succeeded(path)
}

func (h *Host) logResult(req Request, result Result, elapsed time.Duration) {
	fields := map[string]interface{}{
		"request_id": req.ID.String(),
		"operation":  string(req.Operation),
		"file_name":  req.FileName,
		"elapsed_ms": elapsed.Milliseconds(),
	}
	if result.Success {
		fields["file_path"] = result.FilePath
		h.logger.Info(component, "operation completed", fields)
		return
	}
	fields["error"] = result.Error
	h.logger.Warning(component, "operation failed", fields)
}

// validateTarget keeps writes inside savePath: the file name must be a bare
// name with no directory component.
func validateTarget(savePath, fileName string) error {
	if strings.TrimSpace(savePath) == "" {
		return ErrSaveDirUnset
	}
	if fileName == "" || fileName == "." || fileName == ".." ||
		strings.ContainsAny(fileName, `/\`) || filepath.Base(fileName) != fileName {
		return fmt.Errorf("%w %q", ErrInvalidFileName, fileName)
	}
	return nil
}

func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating save directory: %w", err)
	}

	path, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("resolving report path: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
