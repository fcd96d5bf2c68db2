package leave

import "errors"

var (
	ErrLedgerNotFound  = errors.New("leave ledger not found")
	ErrRequestNotFound = errors.New("leave request not found")

	// Balance and eligibility policy
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrProbation           = errors.New("cannot use PL or CL during the probation period")
	ErrNotJoined           = errors.New("cannot create leave request before the joining date")
	ErrManagerNotAssigned  = errors.New("no manager assigned")

	// Workflow state
	ErrAlreadyApproved = errors.New("leave request already approved")
	ErrAlreadyRejected = errors.New("leave request already rejected")
	ErrAlreadyActioned = errors.New("cannot delete an approved or rejected leave request")
	ErrRequestExpired  = errors.New("leave request expired")

	// Authorization
	ErrNotRequestManager = errors.New("you cannot take action on this leave request")
	ErrManagerChanged    = errors.New("you are no longer the manager of this employee")
	ErrNotRequestOwner   = errors.New("only the requester can delete this leave request")
)
