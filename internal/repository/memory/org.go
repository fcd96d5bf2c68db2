package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/google/uuid"
)

type DepartmentRepository struct {
	mu    sync.RWMutex
	items map[string]org.Department
}

func NewDepartmentRepository() *DepartmentRepository {
	return &DepartmentRepository{items: make(map[string]org.Department)}
}

// Create implements org.DepartmentRepository.
func (r *DepartmentRepository) Create(_ context.Context, d org.Department) (org.Department, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Active = true
	r.items[d.ID] = d
	return d, nil
}

// GetByID implements org.DepartmentRepository.
func (r *DepartmentRepository) GetByID(_ context.Context, id string) (org.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]
	if !ok {
		return org.Department{}, org.ErrDepartmentNotFound
	}
	return d, nil
}

// GetByName implements org.DepartmentRepository.
func (r *DepartmentRepository) GetByName(_ context.Context, name string) (org.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.items {
		if d.Name == name {
			return d, nil
		}
	}
	return org.Department{}, org.ErrDepartmentNotFound
}

// ExistsByName implements org.DepartmentRepository.
func (r *DepartmentRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.items {
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// List implements org.DepartmentRepository.
func (r *DepartmentRepository) List(_ context.Context) ([]org.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]org.Department, 0, len(r.items))
	for _, d := range r.items {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateDescription implements org.DepartmentRepository.
func (r *DepartmentRepository) UpdateDescription(_ context.Context, id, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]
	if !ok {
		return org.ErrDepartmentNotFound
	}
	d.Description = description
	r.items[id] = d
	return nil
}

// Deactivate implements org.DepartmentRepository.
func (r *DepartmentRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]
	if !ok {
		return org.ErrDepartmentNotFound
	}
	d.Active = false
	r.items[id] = d
	return nil
}

type GradeCategoryRepository struct {
	mu    sync.RWMutex
	items []org.GradeCategory
}

func NewGradeCategoryRepository(categories ...org.GradeCategory) *GradeCategoryRepository {
	r := &GradeCategoryRepository{}
	for _, c := range categories {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.items = append(r.items, c)
	}
	return r
}

// GetByCategory implements org.GradeCategoryRepository.
func (r *GradeCategoryRepository) GetByCategory(_ context.Context, category string) (org.GradeCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Category == category {
			return c, nil
		}
	}
	return org.GradeCategory{}, org.ErrCategoryNotFound
}

// GetByWeight implements org.GradeCategoryRepository.
func (r *GradeCategoryRepository) GetByWeight(_ context.Context, weight int) (org.GradeCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.items {
		if c.Weight == weight {
			return c, nil
		}
	}
	return org.GradeCategory{}, org.ErrCategoryNotFound
}

// List implements org.GradeCategoryRepository.
func (r *GradeCategoryRepository) List(_ context.Context) ([]org.GradeCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]org.GradeCategory, len(r.items))
	copy(out, r.items)
	sort.Slice(out, func(i, j int) bool { return out[i].Weight < out[j].Weight })
	return out, nil
}

type GradeRepository struct {
	mu    sync.RWMutex
	items map[string]org.Grade
}

func NewGradeRepository() *GradeRepository {
	return &GradeRepository{items: make(map[string]org.Grade)}
}

// Create implements org.GradeRepository.
func (r *GradeRepository) Create(_ context.Context, g org.Grade) (org.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	g.Active = true
	r.items[g.ID] = g
	return g, nil
}

// GetByID implements org.GradeRepository.
func (r *GradeRepository) GetByID(_ context.Context, id string) (org.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[id]
	if !ok {
		return org.Grade{}, org.ErrGradeNotFound
	}
	return g, nil
}

// GetByName implements org.GradeRepository.
func (r *GradeRepository) GetByName(_ context.Context, grade string) (org.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.items {
		if g.Grade == grade {
			return g, nil
		}
	}
	return org.Grade{}, org.ErrGradeNotFound
}

// GetByCategoryLevel implements org.GradeRepository.
func (r *GradeRepository) GetByCategoryLevel(_ context.Context, category string, level int) (org.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.items {
		if g.Category == category && g.Level == level {
			return g, nil
		}
	}
	return org.Grade{}, org.ErrGradeNotFound
}

// HighestInCategory implements org.GradeRepository.
func (r *GradeRepository) HighestInCategory(_ context.Context, category string) (org.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best org.Grade
	found := false
	for _, g := range r.items {
		if g.Category == category && (!found || g.Level > best.Level) {
			best = g
			found = true
		}
	}
	if !found {
		return org.Grade{}, org.ErrGradeNotFound
	}
	return best, nil
}

// ExistsByName implements org.GradeRepository.
func (r *GradeRepository) ExistsByName(_ context.Context, grade string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.items {
		if g.Grade == grade {
			return true, nil
		}
	}
	return false, nil
}

// List implements org.GradeRepository.
func (r *GradeRepository) List(_ context.Context, filter org.GradeFilter) ([]org.Grade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []org.Grade
	for _, g := range r.items {
		if filter.Category != nil && g.Category != *filter.Category {
			continue
		}
		if filter.Level != nil && g.Level != *filter.Level {
			continue
		}
		if filter.Active != nil && g.Active != *filter.Active {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Level < out[j].Level
	})
	return out, nil
}

// UpdateDescription implements org.GradeRepository.
func (r *GradeRepository) UpdateDescription(_ context.Context, id, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok {
		return org.ErrGradeNotFound
	}
	g.Description = description
	r.items[id] = g
	return nil
}

// Deactivate implements org.GradeRepository.
func (r *GradeRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok {
		return org.ErrGradeNotFound
	}
	g.Active = false
	r.items[id] = g
	return nil
}

type DesignationRepository struct {
	mu    sync.RWMutex
	items map[string]org.Designation
}

func NewDesignationRepository() *DesignationRepository {
	return &DesignationRepository{items: make(map[string]org.Designation)}
}

// Create implements org.DesignationRepository.
func (r *DesignationRepository) Create(_ context.Context, d org.Designation) (org.Designation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Active = true
	r.items[d.ID] = d
	return d, nil
}

// GetByID implements org.DesignationRepository.
func (r *DesignationRepository) GetByID(_ context.Context, id string) (org.Designation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.items[id]
	if !ok {
		return org.Designation{}, org.ErrDesignationNotFound
	}
	return d, nil
}

// GetByName implements org.DesignationRepository.
func (r *DesignationRepository) GetByName(_ context.Context, name string) (org.Designation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.items {
		if d.Name == name {
			return d, nil
		}
	}
	return org.Designation{}, org.ErrDesignationNotFound
}

// GetByDepartmentGrade implements org.DesignationRepository.
func (r *DesignationRepository) GetByDepartmentGrade(_ context.Context, department, grade string) (org.Designation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.items {
		if d.Department == department && d.Grade == grade {
			return d, nil
		}
	}
	return org.Designation{}, org.ErrDesignationNotFound
}

// ExistsByName implements org.DesignationRepository.
func (r *DesignationRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.items {
		if d.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// List implements org.DesignationRepository.
func (r *DesignationRepository) List(_ context.Context, filter org.DesignationFilter) ([]org.Designation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []org.Designation
	for _, d := range r.items {
		if filter.Name != nil && d.Name != *filter.Name {
			continue
		}
		if filter.Department != nil && d.Department != *filter.Department {
			continue
		}
		if filter.Grade != nil && d.Grade != *filter.Grade {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Rename implements org.DesignationRepository.
func (r *DesignationRepository) Rename(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]
	if !ok {
		return org.ErrDesignationNotFound
	}
	d.Name = name
	r.items[id] = d
	return nil
}

// Deactivate implements org.DesignationRepository.
func (r *DesignationRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.items[id]
	if !ok {
		return org.ErrDesignationNotFound
	}
	d.Active = false
	r.items[id] = d
	return nil
}
