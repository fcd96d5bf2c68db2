package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForRun(t *testing.T, runs <-chan struct{}) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatal("job did not run in time")
	}
}

func TestSchedulerRunsJobsOnInterval(t *testing.T) {
	s := NewScheduler()
	runs := make(chan struct{}, 16)
	s.AddJob("tick", 5*time.Millisecond, func(context.Context) error {
		runs <- struct{}{}
		return nil
	})

	s.Start(context.Background())
	defer s.Stop()

	// Immediate first run, then the ticker takes over.
	for i := 0; i < 3; i++ {
		waitForRun(t, runs)
	}
}

func TestSchedulerStopWaitsForInFlightRun(t *testing.T) {
	s := NewScheduler()
	var finished atomic.Bool
	s.AddJob("slow", time.Hour, func(context.Context) error {
		time.Sleep(20 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	s.Start(context.Background())
	s.Stop()

	assert.True(t, finished.Load())
}

func TestSchedulerSurvivesPanickingJob(t *testing.T) {
	s := NewScheduler()
	runs := make(chan struct{}, 16)
	s.AddJob("flaky", 5*time.Millisecond, func(context.Context) error {
		runs <- struct{}{}
		panic("boom")
	})

	s.Start(context.Background())
	defer s.Stop()

	// A second run after the first panic proves the schedule survived.
	waitForRun(t, runs)
	waitForRun(t, runs)
}

type maintenanceSpy struct {
	sweeps int
	resets int
}

func (m *maintenanceSpy) DailySweep(context.Context) error {
	m.sweeps++
	return nil
}

func (m *maintenanceSpy) YearlyReset(context.Context) error {
	m.resets++
	return nil
}

func TestLeaveJobsGateOnClock(t *testing.T) {
	spy := &maintenanceSpy{}
	ctx := context.Background()

	noon := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	jobs := NewLeaveJobs(spy, clock.Fixed{T: noon})
	require.NoError(t, jobs.RunDailySweep(ctx))
	require.NoError(t, jobs.RunYearlyReset(ctx))
	assert.Zero(t, spy.sweeps)
	assert.Zero(t, spy.resets)

	midnight := time.Date(2025, 6, 15, 0, 30, 0, 0, time.UTC)
	jobs = NewLeaveJobs(spy, clock.Fixed{T: midnight})
	require.NoError(t, jobs.RunDailySweep(ctx))
	require.NoError(t, jobs.RunYearlyReset(ctx))
	assert.Equal(t, 1, spy.sweeps)
	assert.Zero(t, spy.resets)

	newYear := time.Date(2026, 1, 1, 0, 10, 0, 0, time.UTC)
	jobs = NewLeaveJobs(spy, clock.Fixed{T: newYear})
	require.NoError(t, jobs.RunDailySweep(ctx))
	require.NoError(t, jobs.RunYearlyReset(ctx))
	assert.Equal(t, 2, spy.sweeps)
	assert.Equal(t, 1, spy.resets)
}
