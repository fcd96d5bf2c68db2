// Package org implements the organizational master data service and
// the grade hierarchy rule used across manager assignment, leave
// approval and the promotion engine.
package org

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
)

type ServiceImpl struct {
	departments  org.DepartmentRepository
	categories   org.GradeCategoryRepository
	grades       org.GradeRepository
	designations org.DesignationRepository
	users        user.Repository
}

func NewService(
	departments org.DepartmentRepository,
	categories org.GradeCategoryRepository,
	grades org.GradeRepository,
	designations org.DesignationRepository,
	users user.Repository,
) *ServiceImpl {
	return &ServiceImpl{
		departments:  departments,
		categories:   categories,
		grades:       grades,
		designations: designations,
		users:        users,
	}
}

// IsValidManager reports whether managerGrade may manage employeeGrade.
// Employees in the two lowest-weight categories report two steps up,
// to weight 3; everyone else reports exactly one weight up. The
// asymmetry is intentional: entry categories share the same management
// tier.
func (s *ServiceImpl) IsValidManager(ctx context.Context, employeeGrade, managerGrade string) (bool, error) {
	empWeight, err := s.gradeWeight(ctx, employeeGrade)
	if err != nil {
		return false, err
	}
	mgrWeight, err := s.gradeWeight(ctx, managerGrade)
	if err != nil {
		return false, err
	}

	if empWeight == 1 || empWeight == 2 {
		return mgrWeight == 3, nil
	}
	return mgrWeight-empWeight == 1, nil
}

func (s *ServiceImpl) gradeWeight(ctx context.Context, gradeName string) (int, error) {
	g, err := s.grades.GetByName(ctx, gradeName)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve grade %q: %w", gradeName, err)
	}

	c, err := s.categories.GetByCategory(ctx, g.Category)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve category of grade %q: %w", gradeName, err)
	}

	return c.Weight, nil
}

// IsTopTier reports whether the grade sits in the highest-weight
// category. Nobody is onboarded there; the only way in is promotion.
func (s *ServiceImpl) IsTopTier(ctx context.Context, gradeName string) (bool, error) {
	weight, err := s.gradeWeight(ctx, gradeName)
	if err != nil {
		return false, err
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list grade categories: %w", err)
	}

	max := 0
	for _, c := range categories {
		if c.Weight > max {
			max = c.Weight
		}
	}
	return weight == max, nil
}

// CreateDepartment registers a new department.
func (s *ServiceImpl) CreateDepartment(ctx context.Context, req org.CreateDepartmentRequest) (org.Department, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(errs) > 0 {
		return org.Department{}, errs
	}

	exists, err := s.departments.ExistsByName(ctx, req.Name)
	if err != nil {
		return org.Department{}, fmt.Errorf("failed to check department name: %w", err)
	}
	if exists {
		return org.Department{}, org.ErrDepartmentExists
	}

	return s.departments.Create(ctx, org.Department{Name: req.Name, Description: req.Description})
}

// ListDepartments returns all departments.
func (s *ServiceImpl) ListDepartments(ctx context.Context) ([]org.Department, error) {
	return s.departments.List(ctx)
}

// UpdateDepartmentDescription edits a department's description.
func (s *ServiceImpl) UpdateDepartmentDescription(ctx context.Context, id, description string) error {
	return s.departments.UpdateDescription(ctx, id, description)
}

// DeleteDepartment soft-deletes a department; departments with active
// employees cannot be removed.
func (s *ServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	d, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !d.Active {
		return org.ErrDepartmentDeleted
	}

	inUse, err := s.users.ExistsByDepartment(ctx, d.Name)
	if err != nil {
		return fmt.Errorf("failed to check department usage: %w", err)
	}
	if inUse {
		return org.ErrDepartmentInUse
	}

	return s.departments.Deactivate(ctx, id)
}

// ListGradeCategories returns the category ladder ordered by weight.
func (s *ServiceImpl) ListGradeCategories(ctx context.Context) ([]org.GradeCategory, error) {
	return s.categories.List(ctx)
}

// CreateGrade appends the next rung to a category ladder. The level
// and the grade name are derived from what already exists, so ladders
// stay contiguous.
func (s *ServiceImpl) CreateGrade(ctx context.Context, req org.CreateGradeRequest) (org.Grade, error) {
	if validator.IsEmpty(req.Category) {
		return org.Grade{}, validator.ValidationErrors{{Field: "category", Message: "category is required"}}
	}

	category, err := s.categories.GetByCategory(ctx, req.Category)
	if err != nil {
		return org.Grade{}, err
	}

	level := 1
	highest, err := s.grades.HighestInCategory(ctx, category.Category)
	switch {
	case err == nil:
		level = highest.Level + 1
	case !errors.Is(err, org.ErrGradeNotFound):
		return org.Grade{}, fmt.Errorf("failed to resolve highest grade: %w", err)
	}

	return s.grades.Create(ctx, org.Grade{
		Category:    category.Category,
		Level:       level,
		Description: req.Description,
		Grade:       category.Category + strconv.Itoa(level),
	})
}

// ListGrades returns grades matching the filter.
func (s *ServiceImpl) ListGrades(ctx context.Context, filter org.GradeFilter) ([]org.Grade, error) {
	return s.grades.List(ctx, filter)
}

// UpdateGradeDescription edits a grade's description.
func (s *ServiceImpl) UpdateGradeDescription(ctx context.Context, id, description string) error {
	return s.grades.UpdateDescription(ctx, id, description)
}

// DeleteGrade soft-deletes a grade unless an active employee holds it.
func (s *ServiceImpl) DeleteGrade(ctx context.Context, id string) error {
	g, err := s.grades.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !g.Active {
		return org.ErrGradeDeleted
	}

	inUse, err := s.users.ExistsByGrade(ctx, g.Grade)
	if err != nil {
		return fmt.Errorf("failed to check grade usage: %w", err)
	}
	if inUse {
		return org.ErrGradeInUse
	}

	return s.grades.Deactivate(ctx, id)
}

// CreateDesignation binds a job title to a (department, grade) pair.
func (s *ServiceImpl) CreateDesignation(ctx context.Context, req org.CreateDesignationRequest) (org.Designation, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(req.Department) {
		errs = append(errs, validator.ValidationError{Field: "department", Message: "department is required"})
	}
	if validator.IsEmpty(req.Grade) {
		errs = append(errs, validator.ValidationError{Field: "grade", Message: "grade is required"})
	}
	if len(errs) > 0 {
		return org.Designation{}, errs
	}

	exists, err := s.designations.ExistsByName(ctx, req.Name)
	if err != nil {
		return org.Designation{}, fmt.Errorf("failed to check designation name: %w", err)
	}
	if exists {
		return org.Designation{}, org.ErrDesignationExists
	}

	department, err := s.departments.GetByName(ctx, req.Department)
	if err != nil {
		return org.Designation{}, err
	}
	if !department.Active {
		return org.Designation{}, org.ErrDepartmentDeleted
	}

	grade, err := s.grades.GetByName(ctx, req.Grade)
	if err != nil {
		return org.Designation{}, err
	}
	if !grade.Active {
		return org.Designation{}, org.ErrGradeDeleted
	}

	return s.designations.Create(ctx, org.Designation{
		Name:       req.Name,
		Department: department.Name,
		Grade:      grade.Grade,
	})
}

// ListDesignations returns designations matching the filter.
func (s *ServiceImpl) ListDesignations(ctx context.Context, filter org.DesignationFilter) ([]org.Designation, error) {
	return s.designations.List(ctx, filter)
}

// RenameDesignation changes a designation's title.
func (s *ServiceImpl) RenameDesignation(ctx context.Context, id, name string) error {
	if validator.IsEmpty(name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}

	exists, err := s.designations.ExistsByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to check designation name: %w", err)
	}
	if exists {
		return org.ErrDesignationExists
	}

	return s.designations.Rename(ctx, id, name)
}

// DeleteDesignation soft-deletes a designation unless an active
// employee holds it.
func (s *ServiceImpl) DeleteDesignation(ctx context.Context, id string) error {
	d, err := s.designations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !d.Active {
		return org.ErrDesignationDeleted
	}

	inUse, err := s.users.ExistsByDesignation(ctx, d.Name)
	if err != nil {
		return fmt.Errorf("failed to check designation usage: %w", err)
	}
	if inUse {
		return org.ErrDesignationInUse
	}

	return s.designations.Deactivate(ctx, id)
}
