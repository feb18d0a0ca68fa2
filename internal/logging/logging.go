// Package logging builds the service logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/insightdelivered/techmarket/internal/config"
)

// New returns a leveled key/value logger writing to stderr.
func New(cfg config.LogConfig) *log.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *log.Logger {
	level, err := log.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "techmarket",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter(cfg.Format),
	})
	return logger
}

func formatter(name string) log.Formatter {
	switch strings.ToLower(name) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
