// Package grade implements the promotion and demotion engine. A grade
// change is computed as a pure change-set first, validated end to end,
// and only then applied.
package grade

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
)

// CooldownMonths is the minimum gap between two grade changes for the
// same employee.
const CooldownMonths = 6

// Hierarchy is the slice of the org service the engine needs.
type Hierarchy interface {
	IsValidManager(ctx context.Context, employeeGrade, managerGrade string) (bool, error)
}

type ServiceImpl struct {
	users        user.Repository
	grades       org.GradeRepository
	categories   org.GradeCategoryRepository
	designations org.DesignationRepository
	hierarchy    Hierarchy
	tx           database.Transactor
	clock        clock.Clock
}

func NewService(
	users user.Repository,
	grades org.GradeRepository,
	categories org.GradeCategoryRepository,
	designations org.DesignationRepository,
	hierarchy Hierarchy,
	tx database.Transactor,
	clk clock.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		users:        users,
		grades:       grades,
		categories:   categories,
		designations: designations,
		hierarchy:    hierarchy,
		tx:           tx,
		clock:        clk,
	}
}

// ComputeGradeChange validates a promotion or demotion and returns the
// resulting change-set without persisting anything. manager, when
// non-nil, replaces the employee's current manager in the validation.
func (s *ServiceImpl) ComputeGradeChange(ctx context.Context, email string, action user.GradeAction, manager *string) (user.GradeChange, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return user.GradeChange{}, err
	}
	if !u.Active {
		return user.GradeChange{}, user.ErrUserDeleted
	}

	now := s.clock.Now()
	if u.GradeUpdateRecent != nil && now.Before(u.GradeUpdateRecent.AddDate(0, CooldownMonths, 0)) {
		return user.GradeChange{}, user.ErrGradeChangeCooldown
	}

	current, err := s.grades.GetByName(ctx, u.Grade)
	if err != nil {
		return user.GradeChange{}, err
	}

	var candidate org.Grade
	switch action {
	case user.GradeActionPromotion:
		candidate, err = s.nextGradeUp(ctx, current)
	case user.GradeActionDemotion:
		candidate, err = s.nextGradeDown(ctx, current)
	default:
		return user.GradeChange{}, fmt.Errorf("unknown grade action %q", action)
	}
	if err != nil {
		return user.GradeChange{}, err
	}

	if err := s.checkSubordinates(ctx, u.Email, candidate.Grade); err != nil {
		return user.GradeChange{}, err
	}

	designation, err := s.designations.GetByDepartmentGrade(ctx, u.Department, candidate.Grade)
	if err != nil {
		return user.GradeChange{}, err
	}
	if !designation.Active {
		return user.GradeChange{}, org.ErrDesignationDeleted
	}

	managerEmail, err := s.resolveManager(ctx, u, candidate.Grade, manager)
	if err != nil {
		return user.GradeChange{}, err
	}

	return user.GradeChange{
		Email:          u.Email,
		NewGrade:       candidate.Grade,
		NewDesignation: designation.Name,
		NewManager:     managerEmail,
		Action:         action,
	}, nil
}

// nextGradeUp climbs one level within the category, rolling over to
// level 1 of the next-weight category at the top of a ladder.
func (s *ServiceImpl) nextGradeUp(ctx context.Context, current org.Grade) (org.Grade, error) {
	candidate, err := s.grades.GetByCategoryLevel(ctx, current.Category, current.Level+1)
	if err == nil {
		if !candidate.Active {
			return org.Grade{}, user.ErrNoFurtherPromotion
		}
		return candidate, nil
	}
	if !errors.Is(err, org.ErrGradeNotFound) {
		return org.Grade{}, err
	}

	category, err := s.categories.GetByCategory(ctx, current.Category)
	if err != nil {
		return org.Grade{}, err
	}

	next, err := s.categories.GetByWeight(ctx, category.Weight+1)
	if errors.Is(err, org.ErrCategoryNotFound) {
		return org.Grade{}, user.ErrNoFurtherPromotion
	}
	if err != nil {
		return org.Grade{}, err
	}

	candidate, err = s.grades.GetByCategoryLevel(ctx, next.Category, 1)
	if errors.Is(err, org.ErrGradeNotFound) {
		return org.Grade{}, user.ErrNoFurtherPromotion
	}
	if err != nil {
		return org.Grade{}, err
	}
	if !candidate.Active {
		return org.Grade{}, user.ErrNoFurtherPromotion
	}
	return candidate, nil
}

// nextGradeDown steps one level down within the category, rolling over
// to the highest level of the previous-weight category at level 1.
func (s *ServiceImpl) nextGradeDown(ctx context.Context, current org.Grade) (org.Grade, error) {
	if current.Level > 1 {
		candidate, err := s.grades.GetByCategoryLevel(ctx, current.Category, current.Level-1)
		if errors.Is(err, org.ErrGradeNotFound) {
			return org.Grade{}, user.ErrNoFurtherDemotion
		}
		if err != nil {
			return org.Grade{}, err
		}
		if !candidate.Active {
			return org.Grade{}, user.ErrNoFurtherDemotion
		}
		return candidate, nil
	}

	category, err := s.categories.GetByCategory(ctx, current.Category)
	if err != nil {
		return org.Grade{}, err
	}

	prev, err := s.categories.GetByWeight(ctx, category.Weight-1)
	if errors.Is(err, org.ErrCategoryNotFound) {
		return org.Grade{}, user.ErrNoFurtherDemotion
	}
	if err != nil {
		return org.Grade{}, err
	}

	candidate, err := s.grades.HighestInCategory(ctx, prev.Category)
	if errors.Is(err, org.ErrGradeNotFound) {
		return org.Grade{}, user.ErrNoFurtherDemotion
	}
	if err != nil {
		return org.Grade{}, err
	}
	if !candidate.Active {
		return org.Grade{}, user.ErrNoFurtherDemotion
	}
	return candidate, nil
}

// checkSubordinates verifies every active direct report stays valid
// under the candidate grade.
func (s *ServiceImpl) checkSubordinates(ctx context.Context, email, candidateGrade string) error {
	subs, err := s.users.ListByManager(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to list subordinates: %w", err)
	}

	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		valid, err := s.hierarchy.IsValidManager(ctx, sub.Grade, candidateGrade)
		if err != nil {
			return err
		}
		if !valid {
			return org.ErrSubordinateHierarchy
		}
	}
	return nil
}

// resolveManager picks the supplied manager over the existing one and
// re-validates the pairing against the candidate grade.
func (s *ServiceImpl) resolveManager(ctx context.Context, u user.User, candidateGrade string, supplied *string) (*string, error) {
	email := u.Manager
	if supplied != nil && *supplied != "" {
		email = supplied
	}
	if email == nil || *email == "" {
		return nil, nil
	}

	mgr, err := s.users.GetByEmail(ctx, *email)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrManagerNotFound
	}
	if err != nil {
		return nil, err
	}
	if !mgr.Active {
		return nil, user.ErrManagerNotFound
	}
	if mgr.Department != u.Department {
		return nil, user.ErrDepartmentMismatch
	}

	valid, err := s.hierarchy.IsValidManager(ctx, candidateGrade, mgr.Grade)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, org.ErrInvalidHierarchy
	}
	return &mgr.Email, nil
}

// Apply persists a computed change-set and stamps the cooldown clock.
func (s *ServiceImpl) Apply(ctx context.Context, change user.GradeChange) error {
	return s.users.ApplyGradeChange(ctx, user.ApplyGradeChangeRequest{
		Email:       change.Email,
		Grade:       change.NewGrade,
		Designation: change.NewDesignation,
		Manager:     change.NewManager,
		ChangedAt:   s.clock.Now(),
	})
}

// Change computes and applies a grade change in one transaction.
func (s *ServiceImpl) Change(ctx context.Context, email string, action user.GradeAction, manager *string) (user.GradeChange, error) {
	var change user.GradeChange
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		change, err = s.ComputeGradeChange(ctx, email, action, manager)
		if err != nil {
			return err
		}
		return s.Apply(ctx, change)
	})
	if err != nil {
		return user.GradeChange{}, err
	}
	return change, nil
}
