// Package logger builds the logrus logger shared by the CLI and the
// analytics engine.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger writing to stderr so command output on stdout stays
// machine readable.
func New(level, format string) *logrus.Logger {
	return NewWithOutput(os.Stderr, level, format)
}

func NewWithOutput(w io.Writer, level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to info", level)
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return log
}
