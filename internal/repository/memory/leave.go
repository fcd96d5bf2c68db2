package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type LedgerRepository struct {
	mu      sync.RWMutex
	ledgers map[string]leave.Ledger // keyed by email
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{ledgers: make(map[string]leave.Ledger)}
}

// Create implements leave.LedgerRepository.
func (r *LedgerRepository) Create(_ context.Context, l leave.Ledger) (leave.Ledger, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	r.ledgers[l.Email] = l
	return l, nil
}

// GetByEmail implements leave.LedgerRepository.
func (r *LedgerRepository) GetByEmail(_ context.Context, email string) (leave.Ledger, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.ledgers[email]
	if !ok {
		return leave.Ledger{}, leave.ErrLedgerNotFound
	}
	return l, nil
}

// Debit implements leave.LedgerRepository. Like the SQL variant, the
// check and the subtraction happen under one lock so the balance can
// never go negative.
func (r *LedgerRepository) Debit(_ context.Context, email string, t leave.Type, days float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.ledgers[email]
	if !ok {
		return leave.ErrLedgerNotFound
	}
	if l.Balance(t) < days {
		return leave.ErrInsufficientBalance
	}
	r.ledgers[email] = adjust(l, t, -days)
	return nil
}

// Credit implements leave.LedgerRepository.
func (r *LedgerRepository) Credit(_ context.Context, email string, t leave.Type, days float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.ledgers[email]
	if !ok {
		return leave.ErrLedgerNotFound
	}
	r.ledgers[email] = adjust(l, t, days)
	return nil
}

func adjust(l leave.Ledger, t leave.Type, delta float64) leave.Ledger {
	switch t {
	case leave.TypePaid:
		l.PL += delta
	case leave.TypeSick:
		l.SL += delta
	case leave.TypeCasual:
		l.CL += delta
	}
	return l
}

// IncrementAccrual implements leave.LedgerRepository.
func (r *LedgerRepository) IncrementAccrual(_ context.Context, joinedBefore time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for email, l := range r.ledgers {
		if l.JoiningDate.Before(joinedBefore) {
			l.AccrualCount++
			r.ledgers[email] = l
			n++
		}
	}
	return n, nil
}

// GrantAccrued implements leave.LedgerRepository.
func (r *LedgerRepository) GrantAccrued(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for email, l := range r.ledgers {
		if l.AccrualCount >= leave.AccrualCycleDays {
			l.PL += leave.AccrualGrantDays
			l.AccrualCount = 0
			r.ledgers[email] = l
			n++
		}
	}
	return n, nil
}

// ResetYearly implements leave.LedgerRepository.
func (r *LedgerRepository) ResetYearly(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for email, l := range r.ledgers {
		if l.PL > leave.YearlyPaidCap {
			l.PL = leave.YearlyPaidCap
		}
		l.SL = leave.YearlySickQuota
		l.CL = leave.YearlyCasualQuota
		r.ledgers[email] = l
	}
	return nil
}

type RequestRepository struct {
	mu       sync.RWMutex
	requests map[string]leave.Request
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: make(map[string]leave.Request)}
}

// Create implements leave.RequestRepository.
func (r *RequestRepository) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	r.requests[req.ID] = req
	return req, nil
}

// GetByID implements leave.RequestRepository.
func (r *RequestRepository) GetByID(_ context.Context, id string) (leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return req, nil
}

// SetAction implements leave.RequestRepository.
func (r *RequestRepository) SetAction(_ context.Context, id string, action leave.Action, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	req.Action = &action
	req.ActionAt = &at
	r.requests[id] = req
	return nil
}

// MarkExpired implements leave.RequestRepository.
func (r *RequestRepository) MarkExpired(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.ErrRequestNotFound
	}
	req.IsExpired = true
	r.requests[id] = req
	return nil
}

// Delete implements leave.RequestRepository.
func (r *RequestRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return leave.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

// ListPendingStartingOn implements leave.RequestRepository.
func (r *RequestRepository) ListPendingStartingOn(_ context.Context, day time.Time) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []leave.Request
	for _, req := range r.requests {
		if req.Pending() && req.StartDate.Equal(day) {
			out = append(out, req)
		}
	}
	return out, nil
}

// List implements leave.RequestRepository.
func (r *RequestRepository) List(_ context.Context, filter leave.RequestFilter) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []leave.Request
	for _, req := range r.requests {
		if filter.Employee != nil && req.Employee != *filter.Employee {
			continue
		}
		if filter.Manager != nil && req.Manager != *filter.Manager {
			continue
		}
		if filter.Action != nil && (req.Action == nil || *req.Action != *filter.Action) {
			continue
		}
		if filter.PendingOnly && !req.Pending() {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
