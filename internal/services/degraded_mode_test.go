package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type switchableProbe struct {
	down  atomic.Bool
	calls atomic.Int32
}

func (p *switchableProbe) probe(ctx context.Context) error {
	p.calls.Add(1)
	if p.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestDegradedMode_FollowsMongoHealth(t *testing.T) {
	mongo := &switchableProbe{}
	dm := NewDegradedMode(time.Minute, DependencyCheck{Reason: ReasonMongoDBDown, Probe: mongo.probe})

	dm.CheckConditions()
	assert.False(t, dm.IsActive())
	assert.Zero(t, dm.GetDuration())

	mongo.down.Store(true)
	dm.CheckConditions()
	assert.True(t, dm.IsActive())
	assert.Equal(t, ReasonMongoDBDown, dm.GetReason())

	mongo.down.Store(false)
	dm.CheckConditions()
	assert.False(t, dm.IsActive())
	assert.Empty(t, dm.GetReason())
}

func TestDegradedMode_FirstFailingCheckWins(t *testing.T) {
	first := &switchableProbe{}
	second := &switchableProbe{}
	second.down.Store(true)
	dm := NewDegradedMode(time.Minute,
		DependencyCheck{Reason: ReasonMongoDBDown, Probe: first.probe},
		DependencyCheck{Reason: "other_down", Probe: second.probe},
	)

	dm.CheckConditions()
	assert.Equal(t, "other_down", dm.GetReason())

	first.down.Store(true)
	dm.CheckConditions()
	assert.Equal(t, ReasonMongoDBDown, dm.GetReason())
	assert.Equal(t, int32(1), second.calls.Load(), "checks after the first failure are skipped")
}

func TestDegradedMode_ProbeHonorsTimeout(t *testing.T) {
	dm := NewDegradedMode(time.Minute, DependencyCheck{
		Reason: ReasonMongoDBDown,
		Probe: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	dm.probeTimeout = 10 * time.Millisecond

	dm.CheckConditions()
	assert.True(t, dm.IsActive())
}

func TestDegradedMode_MonitoringLoop(t *testing.T) {
	mongo := &switchableProbe{}
	mongo.down.Store(true)
	dm := NewDegradedMode(5*time.Millisecond, DependencyCheck{Reason: ReasonMongoDBDown, Probe: mongo.probe})

	done := make(chan struct{})
	go func() {
		dm.StartMonitoring()
		close(done)
	}()

	assert.Eventually(t, dm.IsActive, time.Second, 5*time.Millisecond)
	mongo.down.Store(false)
	assert.Eventually(t, func() bool { return !dm.IsActive() }, time.Second, 5*time.Millisecond)

	dm.Stop()
	dm.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitoring loop did not stop")
	}
}
