package leave

import (
	"context"
	"testing"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySweepAccrualCycle(t *testing.T) {
	f := newFixture(t, testNow)
	ctx := context.Background()

	joined := testNow.AddDate(-1, 0, 0)
	_, err := f.ledgers.Create(ctx, leave.Ledger{
		Email:        "steady@acme.test",
		PL:           3,
		AccrualCount: leave.AccrualCycleDays - 1,
		JoiningDate:  joined,
		ProbationEnd: joined.AddDate(0, leave.ProbationMonths, 0),
	})
	require.NoError(t, err)

	// Not yet joined: the counter must not move.
	future := testNow.AddDate(0, 1, 0)
	_, err = f.ledgers.Create(ctx, leave.Ledger{
		Email:        "future@acme.test",
		JoiningDate:  future,
		ProbationEnd: future.AddDate(0, leave.ProbationMonths, 0),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DailySweep(ctx))

	steady, err := f.ledgers.GetByEmail(ctx, "steady@acme.test")
	require.NoError(t, err)
	assert.Equal(t, 3+leave.AccrualGrantDays, steady.PL)
	assert.Equal(t, 0, steady.AccrualCount)

	notJoined, err := f.ledgers.GetByEmail(ctx, "future@acme.test")
	require.NoError(t, err)
	assert.Equal(t, 0, notJoined.AccrualCount)
	assert.Equal(t, 0.0, notJoined.PL)
}

func TestDailySweepMidCycleOnlyTicks(t *testing.T) {
	f := newFixture(t, testNow)
	ctx := context.Background()

	joined := testNow.AddDate(-1, 0, 0)
	_, err := f.ledgers.Create(ctx, leave.Ledger{
		Email:        "emp@acme.test",
		AccrualCount: 10,
		JoiningDate:  joined,
		ProbationEnd: joined.AddDate(0, leave.ProbationMonths, 0),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.DailySweep(ctx))

	ledger, err := f.ledgers.GetByEmail(ctx, "emp@acme.test")
	require.NoError(t, err)
	assert.Equal(t, 11, ledger.AccrualCount)
	assert.Equal(t, 0.0, ledger.PL)
}

func TestDailySweepExpiresStaleRequests(t *testing.T) {
	f := newFixture(t, testNow)
	actor := f.seedEmployee(t, "emp@acme.test", "mgr@acme.test")
	ctx := context.Background()

	// File a request for tomorrow, then move the clock past its start.
	req, err := f.svc.CreateRequest(ctx, actor, leave.CreateRequestRequest{
		Type:      leave.TypeCasual,
		StartDate: "2025-06-16",
		EndDate:   "2025-06-17",
	})
	require.NoError(t, err)

	before, _ := f.svc.GetLedger(ctx, actor.Email)
	assert.Equal(t, leave.YearlyCasualQuota-2, before.CL)

	// Two days later the request started yesterday with no action.
	f.svc.clock = fixedAt(testNow.AddDate(0, 0, 2))
	require.NoError(t, f.svc.DailySweep(ctx))

	expired, err := f.requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, expired.IsExpired)

	after, _ := f.svc.GetLedger(ctx, actor.Email)
	assert.Equal(t, leave.YearlyCasualQuota, after.CL)

	// A second sweep the same day must not credit twice.
	require.NoError(t, f.svc.DailySweep(ctx))
	again, _ := f.svc.GetLedger(ctx, actor.Email)
	assert.Equal(t, leave.YearlyCasualQuota, again.CL)
}

func TestDailySweepLeavesActionedRequestsAlone(t *testing.T) {
	f := newFixture(t, testNow)
	actor := f.seedEmployee(t, "emp@acme.test", "mgr@acme.test")
	ctx := context.Background()

	req, err := f.svc.CreateRequest(ctx, actor, leave.CreateRequestRequest{
		Type:      leave.TypeSick,
		StartDate: "2025-06-16",
		EndDate:   "2025-06-16",
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.Action(ctx, managerIdentity("mgr@acme.test"), req.ID, leave.ActionApproved))

	f.svc.clock = fixedAt(testNow.AddDate(0, 0, 2))
	require.NoError(t, f.svc.DailySweep(ctx))

	approved, err := f.requests.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.False(t, approved.IsExpired)
}

func TestYearlyResetCapsAndRestores(t *testing.T) {
	f := newFixture(t, testNow)
	ctx := context.Background()

	joined := testNow.AddDate(-3, 0, 0)
	_, err := f.ledgers.Create(ctx, leave.Ledger{
		Email:        "veteran@acme.test",
		PL:           leave.YearlyPaidCap + 7,
		SL:           1,
		CL:           0,
		JoiningDate:  joined,
		ProbationEnd: joined.AddDate(0, leave.ProbationMonths, 0),
	})
	require.NoError(t, err)

	_, err = f.ledgers.Create(ctx, leave.Ledger{
		Email:        "junior@acme.test",
		PL:           4,
		SL:           6,
		CL:           2,
		JoiningDate:  joined,
		ProbationEnd: joined.AddDate(0, leave.ProbationMonths, 0),
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.YearlyReset(ctx))

	veteran, _ := f.ledgers.GetByEmail(ctx, "veteran@acme.test")
	assert.Equal(t, leave.YearlyPaidCap, veteran.PL)
	assert.Equal(t, leave.YearlySickQuota, veteran.SL)
	assert.Equal(t, leave.YearlyCasualQuota, veteran.CL)

	// PL under the cap carries over untouched.
	junior, _ := f.ledgers.GetByEmail(ctx, "junior@acme.test")
	assert.Equal(t, 4.0, junior.PL)

	// Running it again changes nothing.
	require.NoError(t, f.svc.YearlyReset(ctx))
	veteran, _ = f.ledgers.GetByEmail(ctx, "veteran@acme.test")
	assert.Equal(t, leave.YearlyPaidCap, veteran.PL)
}
