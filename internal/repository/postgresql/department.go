package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) org.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d org.Department) (org.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (id, name, description, active)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, description, active
	`

	var result org.Department
	err := q.QueryRow(ctx, query, uuid.NewString(), d.Name, d.Description).Scan(
		&result.ID, &result.Name, &result.Description, &result.Active,
	)
	if err != nil {
		return org.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return result, nil
}

// GetByID implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (org.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, description, active FROM departments WHERE id = $1`

	var result org.Department
	err := q.QueryRow(ctx, query, id).Scan(&result.ID, &result.Name, &result.Description, &result.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Department{}, org.ErrDepartmentNotFound
	}
	if err != nil {
		return org.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return result, nil
}

// GetByName implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (org.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, description, active FROM departments WHERE name = $1`

	var result org.Department
	err := q.QueryRow(ctx, query, name).Scan(&result.ID, &result.Name, &result.Description, &result.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Department{}, org.ErrDepartmentNotFound
	}
	if err != nil {
		return org.Department{}, fmt.Errorf("failed to get department by name: %w", err)
	}

	return result, nil
}

// ExistsByName implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM departments WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check department existence: %w", err)
	}

	return exists, nil
}

// List implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]org.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description, active FROM departments ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []org.Department
	for rows.Next() {
		var d org.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Active); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}

// UpdateDescription implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) UpdateDescription(ctx context.Context, id, description string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE departments SET description = $1 WHERE id = $2`, description, id)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return org.ErrDepartmentNotFound
	}

	return nil
}

// Deactivate implements org.DepartmentRepository.
func (r *departmentRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE departments SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate department: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return org.ErrDepartmentNotFound
	}

	return nil
}
