// Package logging configures the process logger and carries a session-scoped
// entry through contexts.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey struct{}

// Options configures the logger.
type Options struct {
	Level  string
	File   string
	Output io.Writer
}

var discard = func() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}()

// New builds a logger. When File is set it wins over Output; the returned
// closer releases the file and is a no-op otherwise.
func New(opts Options) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	level := strings.TrimSpace(opts.Level)
	if level == "" {
		level = "warn"
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(parsed)

	closer := func() error { return nil }
	switch {
	case strings.TrimSpace(opts.File) != "":
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(file)
		closer = file.Close
	case opts.Output != nil:
		logger.SetOutput(opts.Output)
	default:
		logger.SetOutput(io.Discard)
	}
	return logger, closer, nil
}

// NewSession returns a context carrying an entry tagged with a fresh session id.
func NewSession(ctx context.Context, logger *logrus.Logger) (context.Context, string) {
	id := uuid.NewString()
	entry := logger.WithField("session", id)
	return NewContext(ctx, entry), id
}

// NewContext stores entry in ctx.
func NewContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, contextKey{}, entry)
}

// WithContext returns the entry carried by ctx, or a discarding entry.
func WithContext(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(contextKey{}).(*logrus.Entry); ok && entry != nil {
			return entry.WithContext(ctx)
		}
	}
	return logrus.NewEntry(discard)
}
