package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the component-tagged logging surface shared by every package.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// DetermineLevel resolves the log level from the configured value, letting
// LOG_LEVEL and DEBUG=1 in the environment take precedence.
func DetermineLevel(configured string) zerolog.Level {
	if env := os.Getenv("LOG_LEVEL"); env != "" {
		configured = env
	} else if os.Getenv("DEBUG") == "1" {
		return zerolog.DebugLevel
	}

	switch strings.ToLower(strings.TrimSpace(configured)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
