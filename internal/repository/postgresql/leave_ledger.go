package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const ledgerColumns = `id, email, pl, sl, cl, accrual_count, joining_date, probation_end`

type ledgerRepositoryImpl struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) leave.LedgerRepository {
	return &ledgerRepositoryImpl{db: db}
}

func scanLedger(row pgx.Row) (leave.Ledger, error) {
	var l leave.Ledger
	err := row.Scan(&l.ID, &l.Email, &l.PL, &l.SL, &l.CL, &l.AccrualCount, &l.JoiningDate, &l.ProbationEnd)
	return l, err
}

// balanceColumn maps a leave type to its ledger column. The type is a
// closed enum, so this whitelist keeps the dynamic SQL safe.
func balanceColumn(t leave.Type) (string, error) {
	switch t {
	case leave.TypePaid:
		return "pl", nil
	case leave.TypeSick:
		return "sl", nil
	case leave.TypeCasual:
		return "cl", nil
	}
	return "", fmt.Errorf("unknown leave type %q", t)
}

// Create implements leave.LedgerRepository.
func (r *ledgerRepositoryImpl) Create(ctx context.Context, l leave.Ledger) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO emp_leave_ledgers (id, email, pl, sl, cl, accrual_count, joining_date, probation_end)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ledgerColumns

	result, err := scanLedger(q.QueryRow(ctx, query,
		uuid.NewString(), l.Email, l.PL, l.SL, l.CL, l.AccrualCount, l.JoiningDate, l.ProbationEnd,
	))
	if err != nil {
		return leave.Ledger{}, fmt.Errorf("failed to create leave ledger: %w", err)
	}

	return result, nil
}

// GetByEmail implements leave.LedgerRepository.
func (r *ledgerRepositoryImpl) GetByEmail(ctx context.Context, email string) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanLedger(q.QueryRow(ctx, `SELECT `+ledgerColumns+` FROM emp_leave_ledgers WHERE email = $1`, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Ledger{}, leave.ErrLedgerNotFound
	}
	if err != nil {
		return leave.Ledger{}, fmt.Errorf("failed to get leave ledger: %w", err)
	}

	return result, nil
}

// Debit implements leave.LedgerRepository. The update is conditional on
// sufficient balance so a committed ledger can never go negative, even
// when two debits race past the service-level check.
func (r *ledgerRepositoryImpl) Debit(ctx context.Context, email string, t leave.Type, days float64) error {
	column, err := balanceColumn(t)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(
		`UPDATE emp_leave_ledgers SET %s = %s - $1 WHERE email = $2 AND %s >= $1`,
		column, column, column,
	)

	commandTag, err := q.Exec(ctx, query, days, email)
	if err != nil {
		return fmt.Errorf("failed to debit leave balance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		// Distinguish a missing ledger from a short balance.
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM emp_leave_ledgers WHERE email = $1)`, email).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ledger existence: %w", err)
		}
		if !exists {
			return leave.ErrLedgerNotFound
		}
		return leave.ErrInsufficientBalance
	}

	return nil
}

// Credit implements leave.LedgerRepository.
func (r *ledgerRepositoryImpl) Credit(ctx context.Context, email string, t leave.Type, days float64) error {
	column, err := balanceColumn(t)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`UPDATE emp_leave_ledgers SET %s = %s + $1 WHERE email = $2`, column, column)

	commandTag, err := q.Exec(ctx, query, days, email)
	if err != nil {
		return fmt.Errorf("failed to credit leave balance: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrLedgerNotFound
	}

	return nil
}

// IncrementAccrual implements leave.LedgerRepository.
func (r *ledgerRepositoryImpl) IncrementAccrual(ctx context.Context, joinedBefore time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE emp_leave_ledgers SET accrual_count = accrual_count + 1 WHERE joining_date < $1`,
		joinedBefore,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to increment accrual counters: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// GrantAccrued implements leave.LedgerRepository.
func (r *ledgerRepositoryImpl) GrantAccrued(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx,
		`UPDATE emp_leave_ledgers SET pl = pl + $1, accrual_count = 0 WHERE accrual_count >= $2`,
		leave.AccrualGrantDays, leave.AccrualCycleDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to grant accrued leave: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

// ResetYearly implements leave.LedgerRepository.
func (r *ledgerRepositoryImpl) ResetYearly(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`UPDATE emp_leave_ledgers SET pl = LEAST(pl, $1), sl = $2, cl = $3`,
		leave.YearlyPaidCap, leave.YearlySickQuota, leave.YearlyCasualQuota,
	)
	if err != nil {
		return fmt.Errorf("failed to reset yearly balances: %w", err)
	}

	return nil
}
