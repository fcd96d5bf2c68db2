package leave

import "time"

type Type string

const (
	TypePaid   Type = "PL"
	TypeSick   Type = "SL"
	TypeCasual Type = "CL"
)

func (t Type) Valid() bool {
	return t == TypePaid || t == TypeSick || t == TypeCasual
}

type Half string

const (
	HalfFirst  Half = "first"
	HalfSecond Half = "second"
)

func (h Half) Valid() bool {
	return h == HalfFirst || h == HalfSecond
}

type Action string

const (
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
)

// Accrual and reset policy constants.
const (
	// AccrualCycleDays is how many daily ticks earn one accrual grant.
	AccrualCycleDays = 31
	// AccrualGrantDays is the PL credit per completed cycle.
	AccrualGrantDays = 1.5
	// YearlyPaidCap caps PL carry-over at the yearly reset.
	YearlyPaidCap = 30.0
	// YearlySickQuota and YearlyCasualQuota are reset unconditionally.
	YearlySickQuota   = 6.0
	YearlyCasualQuota = 6.0
	// ProbationMonths is the window after joining during which PL and
	// CL cannot be consumed.
	ProbationMonths = 6
)

// Ledger is the per-employee leave balance record. Created alongside
// the user at onboarding; retained after soft-delete for audit.
type Ledger struct {
	ID    string `json:"id"`
	Email string `json:"email"`

	PL float64 `json:"pl"`
	SL float64 `json:"sl"`
	CL float64 `json:"cl"`

	// AccrualCount is the number of daily ticks since the last PL
	// grant, always in [0, AccrualCycleDays].
	AccrualCount int `json:"accrual_count"`

	JoiningDate  time.Time `json:"joining_date"`
	ProbationEnd time.Time `json:"probation_end"`
}

// Balance returns the current balance for a leave type.
func (l Ledger) Balance(t Type) float64 {
	switch t {
	case TypePaid:
		return l.PL
	case TypeSick:
		return l.SL
	case TypeCasual:
		return l.CL
	}
	return 0
}

// InProbation reports whether PL/CL consumption is still blocked.
// Sick leave is unaffected by probation.
func (l Ledger) InProbation(now time.Time) bool {
	return !now.After(l.ProbationEnd)
}

// Request is a leave request. Action nil + IsExpired false = pending.
type Request struct {
	ID       string `json:"id"`
	Employee string `json:"employee"`
	Manager  string `json:"manager"`
	Type     Type   `json:"leave_type"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Half      *Half     `json:"half,omitempty"`
	Days      float64   `json:"leave_days"`
	Reason    string    `json:"reason"`

	Action    *Action    `json:"action,omitempty"`
	ActionAt  *time.Time `json:"action_at,omitempty"`
	IsExpired bool       `json:"is_expired"`

	CreatedAt time.Time `json:"created_at"`
}

// Pending reports whether the request still awaits a manager decision.
func (r Request) Pending() bool {
	return r.Action == nil && !r.IsExpired
}

func (r Request) Approved() bool {
	return r.Action != nil && *r.Action == ActionApproved
}

func (r Request) Rejected() bool {
	return r.Action != nil && *r.Action == ActionRejected
}
