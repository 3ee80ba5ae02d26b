package logger

import (
	"io"
	"log/slog"
	"os"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Options struct {
	Buffer io.Writer
	Level  Level
	Type   Type
}

var (
	DefaultLogger = New(Options{os.Stderr, DefaultLevel, TypeText})

	// Discard drops every record. Components fall back to it when no logger
	// is configured.
	Discard = New(Options{Buffer: io.Discard, Level: ErrorLevel})
)

type logger struct {
	*slog.Logger
}

func New(opts Options) Logger {
	if opts.Buffer == nil {
		opts.Buffer = os.Stderr
	}
	handlerOpts := &slog.HandlerOptions{Level: levels[opts.Level]}

	var handler slog.Handler
	switch opts.Type {
	case TypeJSON:
		handler = slog.NewJSONHandler(opts.Buffer, handlerOpts)
	case TypeText:
		fallthrough
	default:
		handler = slog.NewTextHandler(opts.Buffer, handlerOpts)
	}
	return &logger{
		Logger: slog.New(handler),
	}
}

// OrDiscard returns l, or Discard when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard
	}
	return l
}
