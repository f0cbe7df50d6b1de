// Package bridge is the privileged boundary between the view layer and the
// local filesystem. It is the only package that writes report files or
// renders PDFs, and it exposes that capability through two named operations
// whose outcome is always a Result, never a Go error.
package bridge

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Operation names a persistence capability offered by the host.
type Operation string

const (
	OpSaveReport Operation = "save-report"
	OpPrintToPDF Operation = "print-to-pdf"
)

var (
	ErrNoActiveWindow   = errors.New("no active window found")
	ErrSaveDirUnset     = errors.New("save directory is not set")
	ErrInvalidFileName  = errors.New("invalid file name")
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidContent   = errors.New("report content is not valid UTF-8")
)

// Bridge is the capability handed to the view layer at startup.
type Bridge interface {
	Invoke(ctx context.Context, req Request) Result
}

// Request asks the host to run one operation. Content is only used by
// save-report; print-to-pdf renders the active window instead.
type Request struct {
	ID        uuid.UUID `json:"id"`
	Operation Operation `json:"operation"`
	Content   []byte    `json:"content,omitempty"`
	SavePath  string    `json:"savePath"`
	FileName  string    `json:"fileName"`
}

// NewRequest stamps a request with a fresh id.
func NewRequest(op Operation, savePath, fileName string, content []byte) Request {
	return Request{
		ID:        uuid.New(),
		Operation: op,
		Content:   content,
		SavePath:  savePath,
		FileName:  fileName,
	}
}

// Result is what crosses back over the boundary. FilePath is set iff
// Success, Error iff not.
type Result struct {
	Success  bool   `json:"success"`
	FilePath string `json:"filePath,omitempty"`
	Error    string `json:"error,omitempty"`
}

const fallbackFailure = "operation failed"

func succeeded(path string) Result {
	return Result{Success: true, FilePath: path}
}

func failed(err error) Result {
	msg := fallbackFailure
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result{Success: false, Error: msg}
}
