// Package health provides health checking functionality for the MediCombine API.
package health

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/giygas/medicombine-api/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	startTime time.Time
	model     string
	env       string
}

// NewHealthChecker creates a new health checker for the configured model
func NewHealthChecker(model, env string) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		startTime: time.Now(),
		model:     model,
		env:       env,
	}
}

// HealthCheck reports process health. The service holds no data that can go stale,
// so it is healthy whenever it can answer.
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	uptime := time.Since(h.startTime)

	data = map[string]any{
		"uptime":         FormatUptimeHuman(uptime),
		"uptime_seconds": int64(uptime.Seconds()),
		"model":          h.model,
		"env":            h.env,
		"goroutines":     runtime.NumGoroutine(),
		"memory_mb":      int(m.Alloc / 1024 / 1024),
	}

	return "healthy", data, http.StatusOK
}

// FormatUptimeHuman formats duration into a human-readable string
func FormatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string

	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
