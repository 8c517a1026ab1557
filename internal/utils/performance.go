package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"go.uber.org/zap"
)

// PerformanceMonitor measures the steps of one operation
type PerformanceMonitor struct {
	startTime   time.Time
	operation   string
	logger      *logging.SafeLogger
	checkpoints []Checkpoint
}

// Checkpoint is the elapsed time at a named step
type Checkpoint struct {
	Name     string
	Duration time.Duration
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor(ctx context.Context, operation string) *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:   time.Now(),
		operation:   operation,
		logger:      logging.Logger,
		checkpoints: make([]Checkpoint, 0, 4),
	}
}

// Checkpoint records the time elapsed since the monitor started
func (pm *PerformanceMonitor) Checkpoint(name string) {
	checkpoint := Checkpoint{
		Name:     name,
		Duration: time.Since(pm.startTime),
	}
	pm.checkpoints = append(pm.checkpoints, checkpoint)

	pm.logger.Debug("performance checkpoint",
		zap.String("operation", pm.operation),
		zap.String("checkpoint", name),
		zap.Duration("duration", checkpoint.Duration),
	)
}

// Checkpoints returns the recorded checkpoints in order
func (pm *PerformanceMonitor) Checkpoints() []Checkpoint {
	return pm.checkpoints
}

// End logs the total duration and observes it in the operation histogram
func (pm *PerformanceMonitor) End() time.Duration {
	total := time.Since(pm.startTime)

	pm.logger.Debug("performance monitoring completed",
		zap.String("operation", pm.operation),
		zap.Duration("total_duration", total),
		zap.Int("checkpoint_count", len(pm.checkpoints)),
	)

	observability.OperationDuration.WithLabelValues(pm.operation).Observe(total.Seconds())
	return total
}

// PerformanceWarning logs a warning if the elapsed time exceeds threshold
func (pm *PerformanceMonitor) PerformanceWarning(threshold time.Duration, message string) bool {
	elapsed := time.Since(pm.startTime)
	if elapsed <= threshold {
		return false
	}
	pm.logger.Warn("performance warning",
		zap.String("operation", pm.operation),
		zap.Duration("elapsed", elapsed),
		zap.Duration("threshold", threshold),
		zap.String("message", message),
	)
	return true
}

// GetPerformanceReport returns a formatted performance report
func (pm *PerformanceMonitor) GetPerformanceReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Performance Report for %s:\n", pm.operation)
	fmt.Fprintf(&b, "  Total Duration: %s\n", time.Since(pm.startTime))
	fmt.Fprintf(&b, "  Checkpoints: %d\n", len(pm.checkpoints))
	for _, cp := range pm.checkpoints {
		fmt.Fprintf(&b, "    %s: %s\n", cp.Name, cp.Duration)
	}
	return b.String()
}

// MonitorFunction monitors the duration of fn
func MonitorFunction(ctx context.Context, operation string, fn func() error) error {
	monitor := NewPerformanceMonitor(ctx, operation)
	defer monitor.End()

	err := fn()
	if err != nil {
		monitor.logger.Error("operation failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
	return err
}
