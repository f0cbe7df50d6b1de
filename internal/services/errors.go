package services

import (
	"errors"
	"fmt"

	"pathoscope/internal/bridge"
	"pathoscope/internal/inference"
	"pathoscope/internal/models"
)

var (
	// ErrBridgeUnavailable means no persistence capability was injected,
	// i.e. the view layer is running outside the privileged host.
	ErrBridgeUnavailable = errors.New("report bridge unavailable: cannot write to local disk")

	ErrNoImage          = errors.New("please select an image first")
	ErrSelectionChanged = errors.New("image selection changed during analysis")
)

// BridgeError is a failed persistence operation as reported by the host.
type BridgeError struct {
	Operation bridge.Operation
	Message   string
}

func (e *BridgeError) Error() string {
	return e.Message
}

// UserMessage renders err for a notification, using fallback when the error
// carries nothing a user can act on.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var (
		validationErr *models.ValidationError
		bridgeErr     *BridgeError
		serviceErr    *inference.ServiceError
		networkErr    *inference.NetworkError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &bridgeErr):
		return bridgeErr.Message
	case errors.As(err, &serviceErr):
		return serviceErr.Message
	case errors.As(err, &networkErr):
		return networkErr.Error()
	case errors.Is(err, ErrBridgeUnavailable),
		errors.Is(err, ErrNoImage),
		errors.Is(err, inference.ErrNotImage):
		return err.Error()
	}

	if fallback == "" {
		return err.Error()
	}
	return fmt.Sprintf("%s: %v", fallback, err)
}
