// Package user implements onboarding, profile management, soft delete
// and manager assignment.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

// HRDepartment is the only department allowed to hold the HR role.
const HRDepartment = "HR"

// Hierarchy is the slice of the org service the user service needs.
type Hierarchy interface {
	IsValidManager(ctx context.Context, employeeGrade, managerGrade string) (bool, error)
	IsTopTier(ctx context.Context, gradeName string) (bool, error)
}

type ServiceImpl struct {
	users        user.Repository
	departments  org.DepartmentRepository
	grades       org.GradeRepository
	designations org.DesignationRepository
	ledgers      leave.LedgerRepository
	sessions     auth.SessionRepository
	hierarchy    Hierarchy
	tx           database.Transactor
	clock        clock.Clock
}

func NewService(
	users user.Repository,
	departments org.DepartmentRepository,
	grades org.GradeRepository,
	designations org.DesignationRepository,
	ledgers leave.LedgerRepository,
	sessions auth.SessionRepository,
	hierarchy Hierarchy,
	tx database.Transactor,
	clk clock.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		users:        users,
		departments:  departments,
		grades:       grades,
		designations: designations,
		ledgers:      ledgers,
		sessions:     sessions,
		hierarchy:    hierarchy,
		tx:           tx,
		clock:        clk,
	}
}

// Onboard registers a new user and opens their leave ledger in one
// transaction. Admins may only onboard HR managers; HR onboards
// everyone else.
func (s *ServiceImpl) Onboard(ctx context.Context, actor user.Identity, req user.OnboardUserRequest) (user.User, error) {
	dob, joining, err := validateOnboarding(req)
	if err != nil {
		return user.User{}, err
	}

	if actor.Role == user.RoleAdmin && req.Role != user.RoleHR {
		return user.User{}, user.ErrAdminOnboardsHROnly
	}
	if req.Role == user.RoleHR && !strings.EqualFold(req.Department, HRDepartment) {
		return user.User{}, user.ErrHRDepartmentRequired
	}

	emailTaken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return user.User{}, user.ErrEmailExists
	}

	phoneTaken, err := s.users.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check phone: %w", err)
	}
	if phoneTaken {
		return user.User{}, user.ErrPhoneExists
	}

	department, err := s.departments.GetByName(ctx, req.Department)
	if err != nil {
		return user.User{}, err
	}
	if !department.Active {
		return user.User{}, org.ErrDepartmentDeleted
	}

	grade, err := s.grades.GetByName(ctx, req.Grade)
	if err != nil {
		return user.User{}, err
	}
	if !grade.Active {
		return user.User{}, org.ErrGradeDeleted
	}

	topTier, err := s.hierarchy.IsTopTier(ctx, grade.Grade)
	if err != nil {
		return user.User{}, err
	}
	if topTier {
		return user.User{}, user.ErrTopTierGrade
	}

	designation, err := s.designations.GetByName(ctx, req.Designation)
	if err != nil {
		return user.User{}, err
	}
	if !designation.Active {
		return user.User{}, org.ErrDesignationDeleted
	}
	if designation.Department != department.Name || designation.Grade != grade.Grade {
		return user.User{}, validator.ValidationErrors{{
			Field:   "designation",
			Message: "designation does not belong to the given department and grade",
		}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.clock.Now()
	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		Photo:        req.Photo,
		Phone:        req.Phone,
		DOB:          dob,
		Role:         req.Role,
		Department:   department.Name,
		Grade:        grade.Grade,
		Designation:  designation.Name,
		Salary:       req.Salary,
		JoiningDate:  joining,
		Address:      req.Address,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
	}

	var created user.User
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err = s.users.Create(ctx, newUser)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		_, err = s.ledgers.Create(ctx, leave.Ledger{
			Email:        created.Email,
			PL:           0,
			SL:           leave.YearlySickQuota,
			CL:           leave.YearlyCasualQuota,
			AccrualCount: 0,
			JoiningDate:  joining,
			ProbationEnd: joining.AddDate(0, leave.ProbationMonths, 0),
		})
		if err != nil {
			return fmt.Errorf("failed to create leave ledger: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.User{}, err
	}

	return created, nil
}

func validateOnboarding(req user.OnboardUserRequest) (dob, joining time.Time, err error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidEmail(req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if !validator.IsValidPhoneNumber(req.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
	if !req.Role.Valid() || req.Role == user.RoleAdmin {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "role must be HR or employee"})
	}
	if len(req.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if req.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salary", Message: "salary cannot be negative"})
	}

	var ok bool
	dob, ok = validator.ParseDate(req.DOB)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "dob", Message: "date must be in YYYY-MM-DD format"})
	}
	joining, ok = validator.ParseDate(req.JoiningDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "joining_date", Message: "date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, errs
	}
	return dob, joining, nil
}

// GetByEmail returns a user by email.
func (s *ServiceImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// List returns users matching the filter.
func (s *ServiceImpl) List(ctx context.Context, filter user.Filter) ([]user.User, error) {
	return s.users.List(ctx, filter)
}

// ListSubordinates returns the active users reporting to managerEmail.
func (s *ServiceImpl) ListSubordinates(ctx context.Context, managerEmail string) ([]user.User, error) {
	subs, err := s.users.ListByManager(ctx, managerEmail)
	if err != nil {
		return nil, err
	}

	active := subs[:0]
	for _, sub := range subs {
		if sub.Active {
			active = append(active, sub)
		}
	}
	return active, nil
}

// Update edits the admin-editable profile fields.
func (s *ServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	if req.Phone != nil {
		if !validator.IsValidPhoneNumber(*req.Phone) {
			return validator.ValidationErrors{{Field: "phone", Message: "invalid phone number"}}
		}
		taken, err := s.users.ExistsByPhone(ctx, *req.Phone)
		if err != nil {
			return fmt.Errorf("failed to check phone: %w", err)
		}
		if taken {
			return user.ErrPhoneExists
		}
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		return validator.ValidationErrors{{Field: "salary", Message: "salary cannot be negative"}}
	}

	return s.users.Update(ctx, req)
}

// SetManager assigns a manager to an employee. Both must be active and
// share a department, the grade pairing must satisfy the hierarchy
// rule, and the assignment must not close a reporting cycle.
func (s *ServiceImpl) SetManager(ctx context.Context, employeeEmail, managerEmail string) error {
	emp, err := s.users.GetByEmail(ctx, employeeEmail)
	if err != nil {
		return err
	}
	if !emp.Active {
		return user.ErrUserDeleted
	}

	mgr, err := s.users.GetByEmail(ctx, managerEmail)
	if errors.Is(err, user.ErrUserNotFound) {
		return user.ErrManagerNotFound
	}
	if err != nil {
		return err
	}
	if !mgr.Active {
		return user.ErrManagerNotFound
	}

	if emp.Department != mgr.Department {
		return user.ErrDepartmentMismatch
	}

	valid, err := s.hierarchy.IsValidManager(ctx, emp.Grade, mgr.Grade)
	if err != nil {
		return err
	}
	if !valid {
		return org.ErrInvalidHierarchy
	}

	if err := s.checkNoCycle(ctx, emp.Email, mgr); err != nil {
		return err
	}

	return s.users.SetManager(ctx, emp.Email, &mgr.Email)
}

// checkNoCycle walks the reporting chain upward from the candidate
// manager; reaching the employee means the assignment would close a
// loop.
func (s *ServiceImpl) checkNoCycle(ctx context.Context, employeeEmail string, mgr user.User) error {
	seen := map[string]bool{}
	current := mgr
	for {
		if strings.EqualFold(current.Email, employeeEmail) {
			return user.ErrManagerCycle
		}
		if !current.HasManager() {
			return nil
		}
		next := *current.Manager
		if seen[next] {
			// Pre-existing loop in stored data; the assignment cannot
			// make it worse, but refuse anyway.
			return user.ErrManagerCycle
		}
		seen[next] = true

		up, err := s.users.GetByEmail(ctx, next)
		if errors.Is(err, user.ErrUserNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		current = up
	}
}

// Delete soft-deletes a user: flips the active flag, detaches every
// subordinate and revokes live sessions. The leave ledger is retained.
func (s *ServiceImpl) Delete(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !u.Active {
		return user.ErrAlreadyDeleted
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.Deactivate(ctx, u.ID); err != nil {
			return fmt.Errorf("failed to deactivate user: %w", err)
		}
		if err := s.users.ClearManagerOf(ctx, u.Email); err != nil {
			return fmt.Errorf("failed to detach subordinates: %w", err)
		}
		if err := s.sessions.DeleteByEmail(ctx, u.Email); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return nil
	})
}
