// Package logging wraps log/slog for the MediCombine API: a console + rotating file
// logger installed as the slog default, package-level helpers, and an HTTP middleware.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type LoggingService struct {
	Logger  *slog.Logger
	rotator *RotatingLogger
}

var DefaultLoggingService *LoggingService

// ParseLevel maps a LOG_LEVEL value to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// InitLogger initializes the global logger instance and installs it as the slog default
func InitLogger(logDir string, level slog.Level, retentionWeeks int, maxFileSize int64) {
	logger, rotator := SetupLogger(logDir, level, retentionWeeks, maxFileSize)
	DefaultLoggingService = &LoggingService{
		Logger:  logger,
		rotator: rotator,
	}
	slog.SetDefault(logger)
}

// CleanupOldLogs removes rotated files past retention; a no-op without a file logger
func CleanupOldLogs() (int, error) {
	if DefaultLoggingService == nil || DefaultLoggingService.rotator == nil {
		return 0, nil
	}
	return DefaultLoggingService.rotator.CleanupOldLogs()
}

// Close flushes and closes the log file
func Close() error {
	if DefaultLoggingService == nil || DefaultLoggingService.rotator == nil {
		return nil
	}
	return DefaultLoggingService.rotator.Close()
}

// DefaultLogger returns the initialized logger, or a stderr fallback
func DefaultLogger() *slog.Logger {
	return logger()
}

func logger() *slog.Logger {
	if DefaultLoggingService == nil || DefaultLoggingService.Logger == nil {
		// Fallback to console logger if not initialized
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return DefaultLoggingService.Logger
}

// Package-level functions for direct access

func Info(msg string, args ...any) {
	logger().Info(msg, args...)
}

func Error(msg string, args ...any) {
	logger().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	logger().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	logger().Debug(msg, args...)
}
