package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

type Level int

const (
	InfoLevel Level = iota
	DebugLevel
	WarnLevel
	ErrorLevel
	DefaultLevel Level = InfoLevel
)

var levels = map[Level]slog.Level{
	DebugLevel: slog.LevelDebug,
	InfoLevel:  slog.LevelInfo,
	WarnLevel:  slog.LevelWarn,
	ErrorLevel: slog.LevelError,
}

// ParseLevel maps the textual level names accepted by the CLI to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return InfoLevel, nil
	case "debug":
		return DebugLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return DefaultLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// The output encoding of the handler.
type Type int

const (
	TypeText Type = iota
	TypeJSON
)

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return TypeText, nil
	case "json":
		return TypeJSON, nil
	default:
		return TypeText, fmt.Errorf("unknown log format %q", s)
	}
}
