package services

import (
	"sync"
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
	"go.uber.org/zap"
)

// RateLimiter implements a token bucket rate limiter
type RateLimiter struct {
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	lastSeen   time.Time
	mutex      sync.Mutex
	now        func() time.Time
}

// NewRateLimiter creates a full bucket of maxTokens that regains one token per refillRate
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return newRateLimiterAt(maxTokens, refillRate, time.Now)
}

func newRateLimiterAt(maxTokens int, refillRate time.Duration, now func() time.Time) *RateLimiter {
	t := now()
	return &RateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: t,
		lastSeen:   t,
		now:        now,
	}
}

// Allow takes a token if one is available
func (rl *RateLimiter) Allow() bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	rl.lastSeen = now

	if tokensToAdd := int(now.Sub(rl.lastRefill) / rl.refillRate); tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = rl.lastRefill.Add(time.Duration(tokensToAdd) * rl.refillRate)
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}

// GetStatus returns the current and maximum token counts
func (rl *RateLimiter) GetStatus() (int, int) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.tokens, rl.maxTokens
}

func (rl *RateLimiter) idleSince() time.Time {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	return rl.lastSeen
}

// SubmissionRateLimiter keeps one bucket per client key, e.g. the client IP
type SubmissionRateLimiter struct {
	buckets              sync.Map
	maxRequestsPerMinute int
	logger               *logging.SafeLogger
	now                  func() time.Time
}

// NewSubmissionRateLimiter allows each key maxRequestsPerMinute requests per minute
func NewSubmissionRateLimiter(maxRequestsPerMinute int, logger *logging.SafeLogger) *SubmissionRateLimiter {
	if maxRequestsPerMinute <= 0 {
		maxRequestsPerMinute = 1
	}
	return &SubmissionRateLimiter{
		maxRequestsPerMinute: maxRequestsPerMinute,
		logger:               logger,
		now:                  time.Now,
	}
}

// Allow reports whether key may submit now
func (m *SubmissionRateLimiter) Allow(key string) bool {
	refillRate := time.Minute / time.Duration(m.maxRequestsPerMinute)
	bucket, _ := m.buckets.LoadOrStore(key, newRateLimiterAt(m.maxRequestsPerMinute, refillRate, m.now))

	if bucket.(*RateLimiter).Allow() {
		return true
	}

	m.logger.Warn("rate limiter rejected request", zap.String("client", key))
	return false
}

// CleanupOldEntries drops buckets idle for longer than olderThan
func (m *SubmissionRateLimiter) CleanupOldEntries(olderThan time.Duration) int {
	cutoff := m.now().Add(-olderThan)
	removed := 0

	m.buckets.Range(func(key, value interface{}) bool {
		if value.(*RateLimiter).idleSince().Before(cutoff) {
			m.buckets.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// GetCacheSize returns the number of tracked keys
func (m *SubmissionRateLimiter) GetCacheSize() int {
	count := 0
	m.buckets.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	return count
}

// StartCleanup removes idle buckets every interval until stop is closed
func (m *SubmissionRateLimiter) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := m.CleanupOldEntries(interval); removed > 0 {
					m.logger.Debug("cleaned up idle rate limit entries", zap.Int("removed", removed))
				}
			case <-stop:
				return
			}
		}
	}()
}
