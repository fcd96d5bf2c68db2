// Package leave implements the leave request workflow and the balance
// ledger rules: debit at create, credit on reject/delete/expiry, and
// the rejected-to-approved re-debit.
package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/keylock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	ledgers  leave.LedgerRepository
	requests leave.RequestRepository
	users    user.Repository
	tx       database.Transactor
	clock    clock.Clock

	// locks serializes ledger mutations per employee so two concurrent
	// requests cannot both pass the balance check.
	locks *keylock.KeyLock
}

func NewService(
	ledgers leave.LedgerRepository,
	requests leave.RequestRepository,
	users user.Repository,
	tx database.Transactor,
	clk clock.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		ledgers:  ledgers,
		requests: requests,
		users:    users,
		tx:       tx,
		clock:    clk,
		locks:    keylock.New(),
	}
}

// GetLedger returns the caller's leave ledger.
func (s *ServiceImpl) GetLedger(ctx context.Context, email string) (leave.Ledger, error) {
	return s.ledgers.GetByEmail(ctx, email)
}

// CreateRequest files a leave request and debits the balance up front.
// The debit is the reservation: a pending request already holds its
// days.
func (s *ServiceImpl) CreateRequest(ctx context.Context, actor user.Identity, req leave.CreateRequestRequest) (leave.Request, error) {
	u, err := s.users.GetByEmail(ctx, actor.Email)
	if err != nil {
		return leave.Request{}, err
	}
	if !u.HasManager() {
		return leave.Request{}, leave.ErrManagerNotAssigned
	}

	now := s.clock.Now()
	start, end, err := validateRequest(req, now)
	if err != nil {
		return leave.Request{}, err
	}

	ledger, err := s.ledgers.GetByEmail(ctx, u.Email)
	if err != nil {
		return leave.Request{}, err
	}

	if now.Before(ledger.JoiningDate) {
		return leave.Request{}, leave.ErrNotJoined
	}
	if req.Type != leave.TypeSick && ledger.InProbation(now) {
		return leave.Request{}, leave.ErrProbation
	}

	days := leave.Days(start, end, req.Half)
	if ledger.Balance(req.Type) < days {
		return leave.Request{}, leave.ErrInsufficientBalance
	}

	s.locks.Lock(u.Email)
	defer s.locks.Unlock(u.Email)

	var created leave.Request
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledgers.Debit(ctx, u.Email, req.Type, days); err != nil {
			return err
		}

		created, err = s.requests.Create(ctx, leave.Request{
			Employee:  u.Email,
			Manager:   *u.Manager,
			Type:      req.Type,
			StartDate: start,
			EndDate:   end,
			Half:      req.Half,
			Days:      days,
			Reason:    req.Reason,
			CreatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.Request{}, err
	}

	return created, nil
}

func validateRequest(req leave.CreateRequestRequest, now time.Time) (start, end time.Time, err error) {
	var errs validator.ValidationErrors
	if !req.Type.Valid() {
		errs = append(errs, validator.ValidationError{Field: "leave_type", Message: "leave type must be PL, SL or CL"})
	}
	if req.Half != nil && !req.Half.Valid() {
		errs = append(errs, validator.ValidationError{Field: "half", Message: "half must be first or second"})
	}

	start, startOK := validator.ParseDate(req.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.ParseDate(req.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "date must be in YYYY-MM-DD format"})
	}

	if startOK && endOK {
		today := clock.StartOfDay(now)
		if start.Before(today) {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start date cannot be in the past"})
		}
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end date cannot precede start date"})
		}
		if req.Half != nil && !start.Equal(end) {
			errs = append(errs, validator.ValidationError{Field: "half", Message: "half-day leave must start and end on the same day"})
		}
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return start, end, nil
}

// Action approves or rejects a request. Either decision may overturn
// the other: rejecting credits the reserved days back, and approving a
// rejected request re-debits them.
func (s *ServiceImpl) Action(ctx context.Context, actor user.Identity, requestID string, action leave.Action) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if req.IsExpired {
		return leave.ErrRequestExpired
	}

	switch action {
	case leave.ActionApproved:
		if req.Approved() {
			return leave.ErrAlreadyApproved
		}
	case leave.ActionRejected:
		if req.Rejected() {
			return leave.ErrAlreadyRejected
		}
	default:
		return fmt.Errorf("unknown leave action %q", action)
	}

	if err := s.authorizeManager(ctx, actor, req); err != nil {
		return err
	}

	now := s.clock.Now()

	s.locks.Lock(req.Employee)
	defer s.locks.Unlock(req.Employee)

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		switch {
		case action == leave.ActionApproved && req.Rejected():
			// The rejection credited the days back; approving again
			// must find the balance still there.
			if err := s.ledgers.Debit(ctx, req.Employee, req.Type, req.Days); err != nil {
				return err
			}
		case action == leave.ActionRejected:
			if err := s.ledgers.Credit(ctx, req.Employee, req.Type, req.Days); err != nil {
				return err
			}
		}
		return s.requests.SetAction(ctx, req.ID, action, now)
	})
}

// authorizeManager checks both sides of the reporting link at action
// time: the request must name the actor, and the employee must still
// report to the actor. Manager reassignment revokes the old manager's
// authority over older requests.
func (s *ServiceImpl) authorizeManager(ctx context.Context, actor user.Identity, req leave.Request) error {
	if !strings.EqualFold(req.Manager, actor.Email) {
		return leave.ErrNotRequestManager
	}

	emp, err := s.users.GetByEmail(ctx, req.Employee)
	if err != nil {
		return err
	}
	if !emp.Active {
		return user.ErrUserDeleted
	}
	if emp.Manager == nil || !strings.EqualFold(*emp.Manager, actor.Email) {
		return leave.ErrManagerChanged
	}
	return nil
}

// DeleteRequest withdraws a pending request: credits the reserved days
// back, then hard-deletes the row. Only the owner may withdraw, and
// only while the request is pending.
func (s *ServiceImpl) DeleteRequest(ctx context.Context, actor user.Identity, requestID string) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(req.Employee, actor.Email) {
		return leave.ErrNotRequestOwner
	}
	if req.IsExpired {
		return leave.ErrRequestExpired
	}
	if req.Action != nil {
		return leave.ErrAlreadyActioned
	}

	s.locks.Lock(req.Employee)
	defer s.locks.Unlock(req.Employee)

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.ledgers.Credit(ctx, req.Employee, req.Type, req.Days); err != nil {
			return err
		}
		return s.requests.Delete(ctx, req.ID)
	})
}

// ListMyRequests returns the caller's own requests.
func (s *ServiceImpl) ListMyRequests(ctx context.Context, actor user.Identity) ([]leave.Request, error) {
	return s.requests.List(ctx, leave.RequestFilter{Employee: &actor.Email})
}

// ListManagedRequests returns requests addressed to the caller as
// manager, optionally narrowed to a decided state or to pending only.
func (s *ServiceImpl) ListManagedRequests(ctx context.Context, actor user.Identity, action *leave.Action, pendingOnly bool) ([]leave.Request, error) {
	return s.requests.List(ctx, leave.RequestFilter{
		Manager:     &actor.Email,
		Action:      action,
		PendingOnly: pendingOnly,
	})
}
