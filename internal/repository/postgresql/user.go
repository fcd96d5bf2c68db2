package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `
	id, name, email, photo, phone, dob, role, department, grade, designation,
	manager, salary, joining_date, address, password_hash, active,
	grade_update_recent, created_at
`

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Photo, &u.Phone, &u.DOB, &u.Role,
		&u.Department, &u.Grade, &u.Designation, &u.Manager, &u.Salary,
		&u.JoiningDate, &u.Address, &u.PasswordHash, &u.Active,
		&u.GradeUpdateRecent, &u.CreatedAt,
	)
	return u, err
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (
			id, name, email, photo, phone, dob, role, department, grade,
			designation, manager, salary, joining_date, address,
			password_hash, active, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, true, $16)
		RETURNING ` + userColumns

	result, err := scanUser(q.QueryRow(ctx, query,
		uuid.NewString(), u.Name, u.Email, u.Photo, u.Phone, u.DOB, u.Role,
		u.Department, u.Grade, u.Designation, u.Manager, u.Salary,
		u.JoiningDate, u.Address, u.PasswordHash, u.CreatedAt,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return result, nil
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	result, err := scanUser(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return result, nil
}

// GetByEmail implements user.Repository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	result, err := scanUser(q.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return result, nil
}

func (r *userRepositoryImpl) exists(ctx context.Context, query string, arg string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, query, arg).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// ExistsByEmail implements user.Repository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

// ExistsByPhone implements user.Repository.
func (r *userRepositoryImpl) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1)`, phone)
}

// ExistsByDepartment implements user.Repository.
func (r *userRepositoryImpl) ExistsByDepartment(ctx context.Context, department string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE department = $1)`, department)
}

// ExistsByGrade implements user.Repository.
func (r *userRepositoryImpl) ExistsByGrade(ctx context.Context, grade string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE grade = $1)`, grade)
}

// ExistsByDesignation implements user.Repository.
func (r *userRepositoryImpl) ExistsByDesignation(ctx context.Context, designation string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE designation = $1)`, designation)
}

// List implements user.Repository.
func (r *userRepositoryImpl) List(ctx context.Context, filter user.Filter) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []interface{}{}
	idx := 1

	addFilter := func(column string, value *string) {
		if value != nil {
			query += fmt.Sprintf(" AND %s = $%d", column, idx)
			args = append(args, *value)
			idx++
		}
	}
	addFilter("email", filter.Email)
	addFilter("department", filter.Department)
	addFilter("grade", filter.Grade)
	addFilter("designation", filter.Designation)
	addFilter("manager", filter.Manager)
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// ListByManager implements user.Repository.
func (r *userRepositoryImpl) ListByManager(ctx context.Context, managerEmail string) ([]user.User, error) {
	return r.List(ctx, user.Filter{Manager: &managerEmail})
}

// Update implements user.Repository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET photo = COALESCE($1, photo),
		    phone = COALESCE($2, phone),
		    salary = COALESCE($3, salary),
		    address = COALESCE($4, address)
		WHERE id = $5
	`

	commandTag, err := q.Exec(ctx, query, req.Photo, req.Phone, req.Salary, req.Address, req.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdatePassword implements user.Repository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// SetManager implements user.Repository.
func (r *userRepositoryImpl) SetManager(ctx context.Context, email string, manager *string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET manager = $1 WHERE email = $2`, manager, email)
	if err != nil {
		return fmt.Errorf("failed to set manager: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ClearManagerOf implements user.Repository.
func (r *userRepositoryImpl) ClearManagerOf(ctx context.Context, managerEmail string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE users SET manager = NULL WHERE manager = $1`, managerEmail)
	if err != nil {
		return fmt.Errorf("failed to clear manager references: %w", err)
	}

	return nil
}

// ApplyGradeChange implements user.Repository.
func (r *userRepositoryImpl) ApplyGradeChange(ctx context.Context, req user.ApplyGradeChangeRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET grade = $1,
		    designation = $2,
		    manager = COALESCE($3, manager),
		    grade_update_recent = $4
		WHERE email = $5
	`

	commandTag, err := q.Exec(ctx, query, req.Grade, req.Designation, req.Manager, req.ChangedAt, req.Email)
	if err != nil {
		return fmt.Errorf("failed to apply grade change: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Deactivate implements user.Repository.
func (r *userRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE users SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
