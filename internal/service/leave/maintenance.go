package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
)

// DailySweep runs the two once-a-day passes: the accrual tick and the
// expiry of yesterday's untouched requests. Per-item failures are
// logged and skipped; the sweep never aborts the batch.
func (s *ServiceImpl) DailySweep(ctx context.Context) error {
	now := s.clock.Now()
	today := clock.StartOfDay(now)

	ticked, err := s.ledgers.IncrementAccrual(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to tick accrual counters: %w", err)
	}

	granted, err := s.ledgers.GrantAccrued(ctx)
	if err != nil {
		return fmt.Errorf("failed to grant accrued leave: %w", err)
	}

	slog.Info("leave accrual sweep completed", "ticked", ticked, "granted", granted)

	return s.expireStale(ctx, today)
}

// expireStale marks requests that started yesterday with no manager
// action as expired and returns their reserved days.
func (s *ServiceImpl) expireStale(ctx context.Context, today time.Time) error {
	yesterday := today.AddDate(0, 0, -1)

	stale, err := s.requests.ListPendingStartingOn(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list stale leave requests: %w", err)
	}

	expired := 0
	for _, req := range stale {
		if err := s.expireOne(ctx, req); err != nil {
			slog.Error("failed to expire leave request",
				"request_id", req.ID,
				"employee", req.Employee,
				"error", err,
			)
			continue
		}
		expired++
	}

	slog.Info("leave expiry sweep completed", "stale", len(stale), "expired", expired)
	return nil
}

func (s *ServiceImpl) expireOne(ctx context.Context, req leave.Request) error {
	s.locks.Lock(req.Employee)
	defer s.locks.Unlock(req.Employee)

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledgers.Credit(ctx, req.Employee, req.Type, req.Days); err != nil {
			return err
		}
		return s.requests.MarkExpired(ctx, req.ID)
	})
}

// YearlyReset caps carried-over PL and restores the SL and CL quotas.
// Safe to run more than once.
func (s *ServiceImpl) YearlyReset(ctx context.Context) error {
	if err := s.ledgers.ResetYearly(ctx); err != nil {
		return err
	}
	slog.Info("yearly leave balance reset completed",
		"pl_cap", leave.YearlyPaidCap,
		"sl_quota", leave.YearlySickQuota,
		"cl_quota", leave.YearlyCasualQuota,
	)
	return nil
}
