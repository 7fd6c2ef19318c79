// Package scheduler runs the periodic maintenance jobs of the MediCombine API:
// evicting idle rate limiter buckets and removing log files past retention.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/medicombine-api/interfaces"
	"github.com/giygas/medicombine-api/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// BucketCleaner evicts idle rate limiter clients and reports how many remain
type BucketCleaner interface {
	Cleanup() int
}

// LogCleaner removes old log files and reports how many were deleted
type LogCleaner func() (int, error)

// Scheduler handles periodic maintenance using dependency injection
type Scheduler struct {
	buckets    BucketCleaner
	logCleaner LogCleaner
	scheduler  *gocron.Scheduler

	bucketInterval time.Duration
	logCleanupAt   string
}

// NewScheduler creates a new scheduler instance with injected dependencies
func NewScheduler(buckets BucketCleaner, logCleaner LogCleaner) *Scheduler {
	return &Scheduler{
		buckets:        buckets,
		logCleaner:     logCleaner,
		scheduler:      gocron.NewScheduler(time.Local),
		bucketInterval: 30 * time.Minute,
		logCleanupAt:   "03:00",
	}
}

// Start registers the jobs and starts the scheduler in the background
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.bucketInterval).Do(s.cleanupBuckets)
	if err != nil {
		logging.Error("Failed to schedule rate limiter cleanup", "error", err)
		return fmt.Errorf("failed to schedule rate limiter cleanup: %w", err)
	}

	if s.logCleaner != nil {
		_, err = s.scheduler.Every(1).Days().At(s.logCleanupAt).Do(s.cleanupLogs)
		if err != nil {
			logging.Error("Failed to schedule log cleanup", "error", err)
			return fmt.Errorf("failed to schedule log cleanup: %w", err)
		}
	}

	s.scheduler.StartAsync()
	logging.Info("Maintenance scheduler started", "jobs", len(s.scheduler.Jobs()))

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// cleanupBuckets evicts rate limiter clients with full buckets
func (s *Scheduler) cleanupBuckets() {
	remaining := s.buckets.Cleanup()
	logging.Debug("Rate limiter cleanup completed", "remaining_clients", remaining)
}

// cleanupLogs removes log files older than the retention period
func (s *Scheduler) cleanupLogs() {
	deleted, err := s.logCleaner()
	if err != nil {
		logging.Warn("Failed to cleanup old logs", "error", err)
		return
	}
	if deleted > 0 {
		logging.Info("Cleaned up old log files", "count", deleted)
	}
}
