package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type gradeCategoryRepositoryImpl struct {
	db *database.DB
}

func NewGradeCategoryRepository(db *database.DB) org.GradeCategoryRepository {
	return &gradeCategoryRepositoryImpl{db: db}
}

// GetByCategory implements org.GradeCategoryRepository.
func (r *gradeCategoryRepositoryImpl) GetByCategory(ctx context.Context, category string) (org.GradeCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, category, weight FROM grade_categories WHERE category = $1`

	var result org.GradeCategory
	err := q.QueryRow(ctx, query, category).Scan(&result.ID, &result.Category, &result.Weight)
	if errors.Is(err, pgx.ErrNoRows) {
		return org.GradeCategory{}, org.ErrCategoryNotFound
	}
	if err != nil {
		return org.GradeCategory{}, fmt.Errorf("failed to get grade category: %w", err)
	}

	return result, nil
}

// GetByWeight implements org.GradeCategoryRepository.
func (r *gradeCategoryRepositoryImpl) GetByWeight(ctx context.Context, weight int) (org.GradeCategory, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, category, weight FROM grade_categories WHERE weight = $1`

	var result org.GradeCategory
	err := q.QueryRow(ctx, query, weight).Scan(&result.ID, &result.Category, &result.Weight)
	if errors.Is(err, pgx.ErrNoRows) {
		return org.GradeCategory{}, org.ErrCategoryNotFound
	}
	if err != nil {
		return org.GradeCategory{}, fmt.Errorf("failed to get grade category by weight: %w", err)
	}

	return result, nil
}

// List implements org.GradeCategoryRepository.
func (r *gradeCategoryRepositoryImpl) List(ctx context.Context) ([]org.GradeCategory, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, category, weight FROM grade_categories ORDER BY weight ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list grade categories: %w", err)
	}
	defer rows.Close()

	var categories []org.GradeCategory
	for rows.Next() {
		var c org.GradeCategory
		if err := rows.Scan(&c.ID, &c.Category, &c.Weight); err != nil {
			return nil, fmt.Errorf("failed to scan grade category: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return categories, nil
}
