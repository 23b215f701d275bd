// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger construction.
type Options struct {
	Level   string // debug, info, warn, error
	File    string // when set, logs are also written to this rotated file
	JSON    bool
	Service string
}

// OptionsFromEnv reads LOG_LEVEL, LOG_FILE and LOG_FORMAT.
func OptionsFromEnv(service string) Options {
	return Options{
		Level:   os.Getenv("LOG_LEVEL"),
		File:    os.Getenv("LOG_FILE"),
		JSON:    strings.EqualFold(os.Getenv("LOG_FORMAT"), "json"),
		Service: service,
	}
}

// New builds a logger writing to stderr and, optionally, a rotated log file.
func New(opts Options) *logrus.Entry {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stderr
	if opts.File != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		})
	}
	logger.SetOutput(out)

	entry := logrus.NewEntry(logger)
	if opts.Service != "" {
		entry = entry.WithField("service", opts.Service)
	}
	return entry
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
