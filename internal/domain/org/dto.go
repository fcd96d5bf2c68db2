package org

// CreateDepartmentRequest creates a department.
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateGradeRequest creates the next grade in a category. Level and
// the grade name are derived, never supplied.
type CreateGradeRequest struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// CreateDesignationRequest binds a title to a department and grade.
type CreateDesignationRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Grade      string `json:"grade"`
}

// GradeFilter narrows grade listings; nil fields are ignored.
type GradeFilter struct {
	Category *string
	Level    *int
	Active   *bool
}

// DesignationFilter narrows designation listings.
type DesignationFilter struct {
	Name       *string
	Department *string
	Grade      *string
}
