// Package logger builds the logrus loggers used by the command line entry
// point. Library packages never configure logging themselves; they accept a
// logrus.FieldLogger through their options.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New creates an isolated logrus.Logger writing to w. Unknown levels fall back
// to info; format is either "json" or "text".
func New(level, format string, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// Discard returns a logger that drops every entry. Tests use it to keep
// output quiet.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
