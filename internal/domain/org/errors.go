package org

import "errors"

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrDepartmentExists   = errors.New("duplicate department")
	ErrDepartmentInUse    = errors.New("department is in use")
	ErrDepartmentDeleted  = errors.New("department already deleted")

	ErrCategoryNotFound = errors.New("grade category not found")

	ErrGradeNotFound = errors.New("grade not found")
	ErrGradeExists   = errors.New("duplicate grade")
	ErrGradeInUse    = errors.New("grade is in use")
	ErrGradeDeleted  = errors.New("grade already deleted")

	ErrDesignationNotFound = errors.New("designation not found")
	ErrDesignationExists   = errors.New("duplicate designation")
	ErrDesignationInUse    = errors.New("designation is in use")
	ErrDesignationDeleted  = errors.New("designation already deleted")

	// ErrInvalidHierarchy is the manager-pairing rule violation: TS/S
	// category employees report to M category, M category reports to G
	// category.
	ErrInvalidHierarchy = errors.New("grade pairing violates the manager hierarchy rule")

	// ErrSubordinateHierarchy rejects a grade change that would
	// invalidate an existing reporting line.
	ErrSubordinateHierarchy = errors.New("grade change would invalidate a subordinate's reporting line")
)
