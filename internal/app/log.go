package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// scanHandler is a custom slog.Handler that formats log records as:
//
//	<timestamp>\t<level>\t<scanID>\t<message>\t<key=value ...>
type scanHandler struct {
	w      io.Writer
	scanID string
	attrs  []slog.Attr
}

func (h *scanHandler) Enabled(_ context.Context, _ slog.Level) bool { return true }

func (h *scanHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.UTC().Format("2006-01-02T15:04:05Z")
	level := r.Level.String()

	_, err := fmt.Fprintf(h.w, "%s\t%s\t%s\t%s", ts, level, h.scanID, r.Message)
	if err != nil {
		return err
	}

	// Write pre-set attrs.
	for _, a := range h.attrs {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
	}

	// Write per-record attrs.
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.w, "\t%s=%v", a.Key, a.Value)
		return true
	})

	_, err = fmt.Fprintln(h.w)
	return err
}

func (h *scanHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &scanHandler{
		w:      h.w,
		scanID: h.scanID,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
	}
}

func (h *scanHandler) WithGroup(string) slog.Handler { return h }

// newLogger creates a structured logger that writes to both
// logDir/modelscan.log and stderr. The log file rotates at 20 MB with
// three rotations kept. It returns the slog.Logger and the file writer
// for cleanup.
func newLogger(logDir string, scanID string) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "modelscan.log"),
		MaxSize:    20, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	w := io.MultiWriter(logFile, os.Stderr)
	handler := &scanHandler{w: w, scanID: scanID}
	return slog.New(handler), logFile, nil
}

// slogAdapter wraps *slog.Logger to satisfy the scan.Logger interface.
type slogAdapter struct {
	l *slog.Logger
}

func (a *slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
