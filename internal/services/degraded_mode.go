package services

import (
	"context"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"go.uber.org/zap"
)

// ReasonMongoDBDown is the degraded reason reported while MongoDB does not answer pings
const ReasonMongoDBDown = "mongodb_down"

// DependencyCheck names a condition that puts the service in degraded mode while Probe fails
type DependencyCheck struct {
	Reason string
	Probe  func(ctx context.Context) error
}

// DegradedMode tracks whether registrations can be written. Checks run in order
// and the first failing one becomes the reason.
type DegradedMode struct {
	checks       []DependencyCheck
	interval     time.Duration
	probeTimeout time.Duration
	isActive     bool
	reason       string
	activatedAt  time.Time
	mu           sync.RWMutex
	stopChan     chan struct{}
	stopOnce     sync.Once
	logger       *logging.SafeLogger
}

// NewDegradedMode creates a degraded mode manager that probes every interval
func NewDegradedMode(interval time.Duration, checks ...DependencyCheck) *DegradedMode {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &DegradedMode{
		checks:       checks,
		interval:     interval,
		probeTimeout: 2 * time.Second,
		stopChan:     make(chan struct{}),
		logger:       logging.Logger,
	}
}

// StartMonitoring checks right away and then on every tick until Stop
func (dm *DegradedMode) StartMonitoring() {
	dm.logger.Info("starting degraded mode monitoring", zap.Duration("interval", dm.interval))
	dm.CheckConditions()

	ticker := time.NewTicker(dm.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			dm.CheckConditions()
		case <-dm.stopChan:
			dm.logger.Info("degraded mode monitoring stopped")
			return
		}
	}
}

// Stop stops the monitoring loop
func (dm *DegradedMode) Stop() {
	dm.stopOnce.Do(func() { close(dm.stopChan) })
}

// CheckConditions runs every check and activates or clears degraded mode
func (dm *DegradedMode) CheckConditions() {
	for _, check := range dm.checks {
		ctx, cancel := context.WithTimeout(context.Background(), dm.probeTimeout)
		err := check.Probe(ctx)
		cancel()

		if err != nil {
			dm.logger.Debug("dependency check failed", zap.String("reason", check.Reason), zap.Error(err))
			dm.Activate(check.Reason)
			return
		}
	}

	dm.Deactivate()
}

// Activate enters degraded mode; a later reason replaces the current one
func (dm *DegradedMode) Activate(reason string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.isActive {
		if dm.reason != reason {
			dm.logger.Warn("degraded mode reason changed",
				zap.String("previous_reason", dm.reason),
				zap.String("reason", reason))
			dm.reason = reason
		}
		return
	}

	dm.isActive = true
	dm.reason = reason
	dm.activatedAt = time.Now()

	dm.logger.Warn("degraded mode activated",
		zap.String("reason", reason),
		zap.Time("activated_at", dm.activatedAt))
	observability.DegradedMode.Set(1)
}

// Deactivate leaves degraded mode
func (dm *DegradedMode) Deactivate() {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if !dm.isActive {
		return
	}

	dm.logger.Info("degraded mode deactivated",
		zap.String("previous_reason", dm.reason),
		zap.Duration("duration", time.Since(dm.activatedAt)))
	observability.DegradedMode.Set(0)

	dm.isActive = false
	dm.reason = ""
	dm.activatedAt = time.Time{}
}

// IsActive returns whether degraded mode is active
func (dm *DegradedMode) IsActive() bool {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.isActive
}

// GetReason returns the reason for degraded mode
func (dm *DegradedMode) GetReason() string {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.reason
}

// GetDuration returns how long degraded mode has been active
func (dm *DegradedMode) GetDuration() time.Duration {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	if !dm.isActive {
		return 0
	}
	return time.Since(dm.activatedAt)
}
