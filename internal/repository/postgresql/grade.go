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

const gradeColumns = `id, category, level, description, grade, active`

type gradeRepositoryImpl struct {
	db *database.DB
}

func NewGradeRepository(db *database.DB) org.GradeRepository {
	return &gradeRepositoryImpl{db: db}
}

func scanGrade(row pgx.Row) (org.Grade, error) {
	var g org.Grade
	err := row.Scan(&g.ID, &g.Category, &g.Level, &g.Description, &g.Grade, &g.Active)
	return g, err
}

// Create implements org.GradeRepository.
func (r *gradeRepositoryImpl) Create(ctx context.Context, g org.Grade) (org.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO grades (id, category, level, description, grade, active)
		VALUES ($1, $2, $3, $4, $5, true)
		RETURNING ` + gradeColumns

	result, err := scanGrade(q.QueryRow(ctx, query, uuid.NewString(), g.Category, g.Level, g.Description, g.Grade))
	if err != nil {
		return org.Grade{}, fmt.Errorf("failed to create grade: %w", err)
	}

	return result, nil
}

// GetByID implements org.GradeRepository.
func (r *gradeRepositoryImpl) GetByID(ctx context.Context, id string) (org.Grade, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanGrade(q.QueryRow(ctx, `SELECT `+gradeColumns+` FROM grades WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Grade{}, org.ErrGradeNotFound
	}
	if err != nil {
		return org.Grade{}, fmt.Errorf("failed to get grade: %w", err)
	}

	return result, nil
}

// GetByName implements org.GradeRepository.
func (r *gradeRepositoryImpl) GetByName(ctx context.Context, grade string) (org.Grade, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanGrade(q.QueryRow(ctx, `SELECT `+gradeColumns+` FROM grades WHERE grade = $1`, grade))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Grade{}, org.ErrGradeNotFound
	}
	if err != nil {
		return org.Grade{}, fmt.Errorf("failed to get grade by name: %w", err)
	}

	return result, nil
}

// GetByCategoryLevel implements org.GradeRepository.
func (r *gradeRepositoryImpl) GetByCategoryLevel(ctx context.Context, category string, level int) (org.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + gradeColumns + ` FROM grades WHERE category = $1 AND level = $2`

	result, err := scanGrade(q.QueryRow(ctx, query, category, level))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Grade{}, org.ErrGradeNotFound
	}
	if err != nil {
		return org.Grade{}, fmt.Errorf("failed to get grade by category and level: %w", err)
	}

	return result, nil
}

// HighestInCategory implements org.GradeRepository.
func (r *gradeRepositoryImpl) HighestInCategory(ctx context.Context, category string) (org.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + gradeColumns + ` FROM grades WHERE category = $1 ORDER BY level DESC LIMIT 1`

	result, err := scanGrade(q.QueryRow(ctx, query, category))
	if errors.Is(err, pgx.ErrNoRows) {
		return org.Grade{}, org.ErrGradeNotFound
	}
	if err != nil {
		return org.Grade{}, fmt.Errorf("failed to get highest grade in category: %w", err)
	}

	return result, nil
}

// ExistsByName implements org.GradeRepository.
func (r *gradeRepositoryImpl) ExistsByName(ctx context.Context, grade string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM grades WHERE grade = $1)`, grade).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check grade existence: %w", err)
	}

	return exists, nil
}

// List implements org.GradeRepository.
func (r *gradeRepositoryImpl) List(ctx context.Context, filter org.GradeFilter) ([]org.Grade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + gradeColumns + ` FROM grades WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.Category != nil {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, *filter.Category)
		idx++
	}
	if filter.Level != nil {
		query += fmt.Sprintf(" AND level = $%d", idx)
		args = append(args, *filter.Level)
		idx++
	}
	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", idx)
		args = append(args, *filter.Active)
		idx++
	}
	query += ` ORDER BY category ASC, level ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}
	defer rows.Close()

	var grades []org.Grade
	for rows.Next() {
		g, err := scanGrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return grades, nil
}

// UpdateDescription implements org.GradeRepository.
func (r *gradeRepositoryImpl) UpdateDescription(ctx context.Context, id, description string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE grades SET description = $1 WHERE id = $2`, description, id)
	if err != nil {
		return fmt.Errorf("failed to update grade: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return org.ErrGradeNotFound
	}

	return nil
}

// Deactivate implements org.GradeRepository.
func (r *gradeRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE grades SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate grade: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return org.ErrGradeNotFound
	}

	return nil
}
