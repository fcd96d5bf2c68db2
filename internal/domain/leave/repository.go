package leave

import (
	"context"
	"time"
)

// LedgerRepository persists per-employee balances. Debit relies on the
// store's per-row atomicity: the update is conditional on sufficient
// balance, so a committed ledger can never go negative.
type LedgerRepository interface {
	Create(ctx context.Context, l Ledger) (Ledger, error)
	GetByEmail(ctx context.Context, email string) (Ledger, error)
	// Debit subtracts days from the given balance, failing with
	// ErrInsufficientBalance when the balance is short.
	Debit(ctx context.Context, email string, t Type, days float64) error
	Credit(ctx context.Context, email string, t Type, days float64) error
	// IncrementAccrual ticks the accrual counter for every ledger whose
	// joining date is before the cutoff. Returns rows affected.
	IncrementAccrual(ctx context.Context, joinedBefore time.Time) (int64, error)
	// GrantAccrued converts completed accrual cycles into PL credit and
	// resets the counter. Returns rows affected.
	GrantAccrued(ctx context.Context) (int64, error)
	// ResetYearly caps PL at YearlyPaidCap and restores the SL/CL
	// quotas. Idempotent.
	ResetYearly(ctx context.Context) error
}

type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	SetAction(ctx context.Context, id string, action Action, at time.Time) error
	MarkExpired(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	// ListPendingStartingOn returns un-actioned, un-expired requests
	// whose start date falls on the given day. The expiry sweep feeds
	// on this.
	ListPendingStartingOn(ctx context.Context, day time.Time) ([]Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
}
