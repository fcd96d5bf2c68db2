// Package memory provides map-backed implementations of the domain
// repository interfaces. The services are tested against these stores,
// which mirror the semantics of the PostgreSQL layer.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/google/uuid"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]user.User // keyed by ID
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]user.User)}
}

// Create implements user.Repository.
func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	r.users[u.ID] = u
	return u, nil
}

// GetByID implements user.Repository.
func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// GetByEmail implements user.Repository.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

// ExistsByEmail implements user.Repository.
func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByPhone implements user.Repository.
func (r *UserRepository) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByDepartment implements user.Repository.
func (r *UserRepository) ExistsByDepartment(_ context.Context, department string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Department == department && u.Active {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByGrade implements user.Repository.
func (r *UserRepository) ExistsByGrade(_ context.Context, grade string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Grade == grade && u.Active {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByDesignation implements user.Repository.
func (r *UserRepository) ExistsByDesignation(_ context.Context, designation string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Designation == designation && u.Active {
			return true, nil
		}
	}
	return false, nil
}

// List implements user.Repository.
func (r *UserRepository) List(_ context.Context, filter user.Filter) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.User
	for _, u := range r.users {
		if filter.Email != nil && !strings.EqualFold(u.Email, *filter.Email) {
			continue
		}
		if filter.Department != nil && u.Department != *filter.Department {
			continue
		}
		if filter.Grade != nil && u.Grade != *filter.Grade {
			continue
		}
		if filter.Designation != nil && u.Designation != *filter.Designation {
			continue
		}
		if filter.Manager != nil && (u.Manager == nil || *u.Manager != *filter.Manager) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// ListByManager implements user.Repository.
func (r *UserRepository) ListByManager(_ context.Context, managerEmail string) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []user.User
	for _, u := range r.users {
		if u.Manager != nil && strings.EqualFold(*u.Manager, managerEmail) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Update implements user.Repository.
func (r *UserRepository) Update(_ context.Context, req user.UpdateUserRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if req.Photo != nil {
		u.Photo = req.Photo
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Salary != nil {
		u.Salary = *req.Salary
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	r.users[u.ID] = u
	return nil
}

// UpdatePassword implements user.Repository.
func (r *UserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	r.users[id] = u
	return nil
}

// SetManager implements user.Repository.
func (r *UserRepository) SetManager(_ context.Context, email string, manager *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			u.Manager = manager
			r.users[id] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

// ClearManagerOf implements user.Repository.
func (r *UserRepository) ClearManagerOf(_ context.Context, managerEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if u.Manager != nil && strings.EqualFold(*u.Manager, managerEmail) {
			u.Manager = nil
			r.users[id] = u
		}
	}
	return nil
}

// ApplyGradeChange implements user.Repository.
func (r *UserRepository) ApplyGradeChange(_ context.Context, req user.ApplyGradeChangeRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, u := range r.users {
		if strings.EqualFold(u.Email, req.Email) {
			u.Grade = req.Grade
			u.Designation = req.Designation
			u.Manager = req.Manager
			changedAt := req.ChangedAt
			u.GradeUpdateRecent = &changedAt
			r.users[id] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

// Deactivate implements user.Repository.
func (r *UserRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Active = false
	r.users[id] = u
	return nil
}
