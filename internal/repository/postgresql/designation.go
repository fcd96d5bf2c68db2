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

const designationColumns = `id, name, department, grade, active`

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) org.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

func scanDesignation(row pgx.Row) (org.Designation, error) {
	var d org.Designation
	err := row.Scan(&d.ID, &d.Name, &d.Department, &d.Grade, &d.Active)
	return d, err
}

// Create implements org.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d org.Designation) (org.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO designations (id, name, department, grade, active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING ` + designationColumns

	result, err := scanDesignation(q.QueryRow(ctx, query, uuid.NewString(), d.Name, d.Department, d.Grade))
	if err != nil {
		return org.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}

	return result, nil
}

// GetByID implements org.DesignationRepository.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (org.Designation, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanDesignation(q.QueryRow(ctx, `SELECT `+designationColumns+` FROM designations WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Designation{}, org.ErrDesignationNotFound
	}
	if err != nil {
		return org.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}

	return result, nil
}

// GetByName implements org.DesignationRepository.
func (r *designationRepositoryImpl) GetByName(ctx context.Context, name string) (org.Designation, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanDesignation(q.QueryRow(ctx, `SELECT `+designationColumns+` FROM designations WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Designation{}, org.ErrDesignationNotFound
	}
	if err != nil {
		return org.Designation{}, fmt.Errorf("failed to get designation by name: %w", err)
	}

	return result, nil
}

// GetByDepartmentGrade implements org.DesignationRepository.
func (r *designationRepositoryImpl) GetByDepartmentGrade(ctx context.Context, department, grade string) (org.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + designationColumns + ` FROM designations WHERE department = $1 AND grade = $2`

	result, err := scanDesignation(q.QueryRow(ctx, query, department, grade))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Designation{}, org.ErrDesignationNotFound
	}
	if err != nil {
		return org.Designation{}, fmt.Errorf("failed to get designation by department and grade: %w", err)
	}

	return result, nil
}

// ExistsByName implements org.DesignationRepository.
func (r *designationRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM designations WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check designation existence: %w", err)
	}

	return exists, nil
}

// List implements org.DesignationRepository.
func (r *designationRepositoryImpl) List(ctx context.Context, filter org.DesignationFilter) ([]org.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + designationColumns + ` FROM designations WHERE 1=1`
	args := []interface{}{}
	idx := 1

	addFilter := func(column string, value *string) {
		if value != nil {
			query += fmt.Sprintf(" AND %s = $%d", column, idx)
			args = append(args, *value)
			idx++
		}
	}
	addFilter("name", filter.Name)
	addFilter("department", filter.Department)
	addFilter("grade", filter.Grade)
	query += ` ORDER BY name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	var designations []org.Designation
	for rows.Next() {
		d, err := scanDesignation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan designation: %w", err)
		}
		designations = append(designations, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return designations, nil
}

// Rename implements org.DesignationRepository.
func (r *designationRepositoryImpl) Rename(ctx context.Context, id, name string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE designations SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return fmt.Errorf("failed to rename designation: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return org.ErrDesignationNotFound
	}

	return nil
}

// Deactivate implements org.DesignationRepository.
func (r *designationRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE designations SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate designation: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return org.ErrDesignationNotFound
	}

	return nil
}
