package org

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]Department, error)
	UpdateDescription(ctx context.Context, id, description string) error
	Deactivate(ctx context.Context, id string) error
}

type GradeCategoryRepository interface {
	GetByCategory(ctx context.Context, category string) (GradeCategory, error)
	GetByWeight(ctx context.Context, weight int) (GradeCategory, error)
	List(ctx context.Context) ([]GradeCategory, error)
}

type GradeRepository interface {
	Create(ctx context.Context, g Grade) (Grade, error)
	GetByID(ctx context.Context, id string) (Grade, error)
	GetByName(ctx context.Context, grade string) (Grade, error)
	GetByCategoryLevel(ctx context.Context, category string, level int) (Grade, error)
	// HighestInCategory returns the grade with the greatest level in a
	// category, or ErrGradeNotFound when the category has none.
	HighestInCategory(ctx context.Context, category string) (Grade, error)
	ExistsByName(ctx context.Context, grade string) (bool, error)
	List(ctx context.Context, filter GradeFilter) ([]Grade, error)
	UpdateDescription(ctx context.Context, id, description string) error
	Deactivate(ctx context.Context, id string) error
}

type DesignationRepository interface {
	Create(ctx context.Context, d Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	GetByName(ctx context.Context, name string) (Designation, error)
	// GetByDepartmentGrade resolves the designation for a (department,
	// grade) pair; the promotion engine depends on this lookup.
	GetByDepartmentGrade(ctx context.Context, department, grade string) (Designation, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, filter DesignationFilter) ([]Designation, error)
	Rename(ctx context.Context, id, name string) error
	Deactivate(ctx context.Context, id string) error
}
