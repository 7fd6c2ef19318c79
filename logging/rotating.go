package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// RotatingLogger is an io.Writer over weekly log files (app-YYYY-Www.log).
// When a file reaches maxFileSize, writing continues in app-YYYY-Www_NN.log.
type RotatingLogger struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	file        *os.File
	week        string
	sequence    int
	currentSize int64
}

// NewRotatingLogger creates a rotating writer; the first file is opened on first write
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
	}
}

// weekKey returns the ISO week in YYYY-Www format
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (rl *RotatingLogger) fileName(week string, sequence int) string {
	if sequence == 0 {
		return fmt.Sprintf("app-%s.log", week)
	}
	return fmt.Sprintf("app-%s_%02d.log", week, sequence)
}

// open moves to the first file of week, at or after sequence, that still has room.
// Caller must hold rl.mu.
func (rl *RotatingLogger) open(week string, sequence int) error {
	if rl.file != nil {
		if err := rl.file.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
		rl.file = nil
	}

	for {
		path := filepath.Join(rl.logDir, rl.fileName(week, sequence))
		info, err := os.Stat(path)
		if err == nil && rl.maxFileSize > 0 && info.Size() >= rl.maxFileSize {
			sequence++
			continue
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file %s: %w", path, err)
		}

		rl.file = file
		rl.week = week
		rl.sequence = sequence
		rl.currentSize = 0
		if info != nil {
			rl.currentSize = info.Size()
		}
		return nil
	}
}

// Write writes p to the current file, rotating on week change or size limit
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	week := weekKey(time.Now())
	switch {
	case rl.file == nil || rl.week != week:
		if err := rl.open(week, 0); err != nil {
			return 0, err
		}
	case rl.maxFileSize > 0 && rl.currentSize > 0 && rl.currentSize+int64(len(p)) > rl.maxFileSize:
		if err := rl.open(week, rl.sequence+1); err != nil {
			return 0, err
		}
	}

	n, err := rl.file.Write(p)
	rl.currentSize += int64(n)
	return n, err
}

// CleanupOldLogs removes app-*.log files not modified within the retention period
func (rl *RotatingLogger) CleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	rl.mu.Lock()
	current := ""
	if rl.file != nil {
		current = filepath.Base(rl.file.Name())
	}
	rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.retention)
	deleted := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == current || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(rl.logDir, name)); err == nil {
			deleted++
		}
	}

	return deleted, nil
}

// Close closes the current file
func (rl *RotatingLogger) Close() error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.file == nil {
		return nil
	}
	err := rl.file.Close()
	rl.file = nil
	return err
}

// SetupLogger builds a logger writing text to stdout and JSON to rotating files.
// If the log directory is unusable it degrades to console only and returns a nil rotator.
func SetupLogger(logDir string, level slog.Level, retentionWeeks int, maxFileSize int64) (*slog.Logger, *RotatingLogger) {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if err := os.MkdirAll(logDir, 0755); err != nil {
		consoleLogger := slog.New(consoleHandler)
		consoleLogger.Error("Failed to create logs directory", "error", err)
		return consoleLogger, nil
	}

	rotator := NewRotatingLogger(logDir, retentionWeeks, maxFileSize)
	rotator.mu.Lock()
	err := rotator.open(weekKey(time.Now()), 0)
	rotator.mu.Unlock()
	if err != nil {
		consoleLogger := slog.New(consoleHandler)
		consoleLogger.Error("Failed to initialize rotating logger", "error", err)
		return consoleLogger, nil
	}

	fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}}), rotator
}

// multiHandler fans records out to several handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
