package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
)

// LeaveMaintenance is the slice of the leave service the jobs call.
type LeaveMaintenance interface {
	DailySweep(ctx context.Context) error
	YearlyReset(ctx context.Context) error
}

type LeaveJobs struct {
	svc   LeaveMaintenance
	clock clock.Clock
}

func NewLeaveJobs(svc LeaveMaintenance, clk clock.Clock) *LeaveJobs {
	return &LeaveJobs{svc: svc, clock: clk}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("leave_daily_sweep", 1*time.Hour, j.RunDailySweep)
	scheduler.AddJob("leave_yearly_reset", 1*time.Hour, j.RunYearlyReset)
}

// RunDailySweep ticks accrual counters and expires stale requests.
// Only runs in the midnight hour (00:00-00:59 UTC).
func (j *LeaveJobs) RunDailySweep(ctx context.Context) error {
	if j.clock.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("cron: starting daily leave sweep")
	return j.svc.DailySweep(ctx)
}

// RunYearlyReset restores the yearly quotas. Only runs in the midnight
// hour of January 1st; the reset itself is idempotent, so a repeated
// run within the hour is harmless.
func (j *LeaveJobs) RunYearlyReset(ctx context.Context) error {
	now := j.clock.Now().UTC()
	if now.Month() != time.January || now.Day() != 1 || now.Hour() != 0 {
		return nil
	}

	slog.Info("cron: starting yearly leave reset")
	return j.svc.YearlyReset(ctx)
}
