// Package logging builds the process logger and the KB_DEBUG helpers.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"kanban-board/internal/errors"
)

// Log output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logrus logger writing to out at the given level and format.
// KB_DEBUG forces the debug level.
func New(level, format string, out io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)

	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, errors.NewInvalidInputError("log_level", level, "must be one of panic, fatal, error, warn, info, debug, trace")
	}
	if DebugEnabled() && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", FormatText:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, errors.NewInvalidInputError("log_format", format, "must be text or json")
	}

	return log, nil
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
