package logger

import (
	"io"
	"log/slog"
	"strings"
)

type Level int

const (
	levelError Level = iota
	levelInfo
	levelDebug
)

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return levelDebug
	case "info", "":
		return levelInfo
	default:
		return levelError
	}
}

func (l Level) toSlog() slog.Level {
	switch l {
	case levelDebug:
		return slog.LevelDebug
	case levelInfo:
		return slog.LevelInfo
	}
	return slog.LevelError
}

type Logger struct {
	l *slog.Logger
}

// New returns a text logger writing to w. Unknown levels keep errors only.
func New(lvl string, w io.Writer) *Logger {
	level := parseLevel(lvl)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level.toSlog(),
		AddSource: level == levelDebug,
	})
	return &Logger{l: slog.New(h)}
}

// Discard drops everything; used by library callers that pass no logger.
func Discard() *Logger { return New("error", io.Discard) }

func (lg *Logger) Debug(msg string, args ...any) { lg.l.Debug(msg, args...) }

func (lg *Logger) Info(msg string, args ...any) { lg.l.Info(msg, args...) }

func (lg *Logger) Error(msg string, args ...any) { lg.l.Error(msg, args...) }
