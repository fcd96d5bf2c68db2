package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrManagerNotFound = errors.New("manager not found")
	ErrEmailExists     = errors.New("user with provided email already exists")
	ErrPhoneExists     = errors.New("user with provided phone number already exists")
	ErrUserDeleted     = errors.New("cannot perform action on deleted user")
	ErrAlreadyDeleted  = errors.New("user already deleted")

	// Onboarding policy
	ErrAdminOnboardsHROnly  = errors.New("admin can only onboard HR managers")
	ErrHRDepartmentRequired = errors.New("only the HR department can have the HR role")
	ErrTopTierGrade         = errors.New("cannot onboard at this grade; employees can only be promoted into it")

	// Manager assignment
	ErrDepartmentMismatch = errors.New("manager and employee must belong to the same department")
	ErrManagerCycle       = errors.New("manager assignment would create a reporting cycle")

	// Promotion/demotion
	ErrGradeChangeCooldown = errors.New("user was recently promoted; six months must pass since the last grade change")
	ErrNoFurtherPromotion  = errors.New("cannot further promote the employee")
	ErrNoFurtherDemotion   = errors.New("cannot further demote the employee")
)
