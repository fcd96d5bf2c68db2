package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByDepartment(ctx context.Context, department string) (bool, error)
	ExistsByGrade(ctx context.Context, grade string) (bool, error)
	ExistsByDesignation(ctx context.Context, designation string) (bool, error)
	List(ctx context.Context, filter Filter) ([]User, error)
	ListByManager(ctx context.Context, managerEmail string) ([]User, error)
	Update(ctx context.Context, req UpdateUserRequest) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	SetManager(ctx context.Context, email string, manager *string) error
	// ClearManagerOf removes the back-reference from every subordinate
	// of managerEmail. Used when the manager is soft-deleted.
	ClearManagerOf(ctx context.Context, managerEmail string) error
	ApplyGradeChange(ctx context.Context, req ApplyGradeChangeRequest) error
	// Deactivate flips the soft-delete flag; there is no reverse transition.
	Deactivate(ctx context.Context, id string) error
}
