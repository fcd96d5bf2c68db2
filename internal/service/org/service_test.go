package org

import (
	"context"
	"testing"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*ServiceImpl, *memory.UserRepository) {
	t.Helper()
	ctx := context.Background()

	categories := memory.NewGradeCategoryRepository(
		org.GradeCategory{Category: "TS", Weight: 1},
		org.GradeCategory{Category: "S", Weight: 2},
		org.GradeCategory{Category: "M", Weight: 3},
		org.GradeCategory{Category: "G", Weight: 4},
	)

	grades := memory.NewGradeRepository()
	for _, g := range []org.Grade{
		{Category: "TS", Level: 1, Grade: "TS1"},
		{Category: "TS", Level: 2, Grade: "TS2"},
		{Category: "TS", Level: 3, Grade: "TS3"},
		{Category: "S", Level: 1, Grade: "S1"},
		{Category: "S", Level: 2, Grade: "S2"},
		{Category: "M", Level: 1, Grade: "M1"},
		{Category: "M", Level: 2, Grade: "M2"},
		{Category: "G", Level: 1, Grade: "G1"},
	} {
		_, err := grades.Create(ctx, g)
		require.NoError(t, err)
	}

	departments := memory.NewDepartmentRepository()
	for _, name := range []string{"Engineering", "HR"} {
		_, err := departments.Create(ctx, org.Department{Name: name})
		require.NoError(t, err)
	}

	users := memory.NewUserRepository()
	return NewService(departments, categories, grades, memory.NewDesignationRepository(), users), users
}

func TestIsValidManager(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		employee string
		manager  string
		want     bool
	}{
		// Weight 1 and 2 employees both report to weight 3.
		{"trainee to management", "TS2", "M1", true},
		{"staff to management", "S1", "M2", true},
		{"trainee to staff refused", "TS1", "S1", false},
		{"trainee to top tier refused", "TS3", "G1", false},
		{"staff to top tier refused", "S2", "G1", false},
		// From weight 3 upward the manager is exactly one weight up.
		{"management to top tier", "M1", "G1", true},
		{"management to management refused", "M1", "M2", false},
		{"peer trainees refused", "TS1", "TS3", false},
		{"inverted pairing refused", "M1", "S1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsValidManager(ctx, tt.employee, tt.manager)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsValidManagerUnknownGrade(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.IsValidManager(context.Background(), "TS9", "M1")
	assert.ErrorIs(t, err, org.ErrGradeNotFound)
}

func TestIsTopTier(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	top, err := svc.IsTopTier(ctx, "G1")
	require.NoError(t, err)
	assert.True(t, top)

	top, err = svc.IsTopTier(ctx, "M2")
	require.NoError(t, err)
	assert.False(t, top)
}

func TestCreateGradeDerivesLevelAndName(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	g, err := svc.CreateGrade(ctx, org.CreateGradeRequest{Category: "S", Description: "senior staff"})
	require.NoError(t, err)
	assert.Equal(t, 3, g.Level)
	assert.Equal(t, "S3", g.Grade)

	_, err = svc.CreateGrade(ctx, org.CreateGradeRequest{Category: "X"})
	assert.ErrorIs(t, err, org.ErrCategoryNotFound)
}

func TestCreateDepartmentDuplicate(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateDepartment(context.Background(), org.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, org.ErrDepartmentExists)
}

func TestDeleteDepartmentInUse(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	_, err := users.Create(ctx, user.User{
		Email:      "emp@acme.test",
		Department: "Engineering",
		Active:     true,
	})
	require.NoError(t, err)

	d, err := svc.departments.GetByName(ctx, "Engineering")
	require.NoError(t, err)

	err = svc.DeleteDepartment(ctx, d.ID)
	assert.ErrorIs(t, err, org.ErrDepartmentInUse)
}

func TestDesignationLifecycle(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	d, err := svc.CreateDesignation(ctx, org.CreateDesignationRequest{
		Name:       "Software Engineer",
		Department: "Engineering",
		Grade:      "TS2",
	})
	require.NoError(t, err)
	assert.True(t, d.Active)

	_, err = svc.CreateDesignation(ctx, org.CreateDesignationRequest{
		Name:       "Software Engineer",
		Department: "Engineering",
		Grade:      "TS3",
	})
	assert.ErrorIs(t, err, org.ErrDesignationExists)

	_, err = svc.CreateDesignation(ctx, org.CreateDesignationRequest{
		Name:       "Ghost Role",
		Department: "Warehouse",
		Grade:      "TS1",
	})
	assert.ErrorIs(t, err, org.ErrDepartmentNotFound)

	// A designation held by an active employee cannot be removed.
	_, err = users.Create(ctx, user.User{
		Email:       "emp@acme.test",
		Designation: "Software Engineer",
		Active:      true,
	})
	require.NoError(t, err)

	err = svc.DeleteDesignation(ctx, d.ID)
	assert.ErrorIs(t, err, org.ErrDesignationInUse)
}

func TestDeleteGradeInUse(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	_, err := users.Create(ctx, user.User{Email: "emp@acme.test", Grade: "TS2", Active: true})
	require.NoError(t, err)

	g, err := svc.grades.GetByName(ctx, "TS2")
	require.NoError(t, err)

	err = svc.DeleteGrade(ctx, g.ID)
	assert.ErrorIs(t, err, org.ErrGradeInUse)

	// An unused grade deactivates cleanly, and a second delete reports
	// it gone.
	g1, err := svc.grades.GetByName(ctx, "G1")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGrade(ctx, g1.ID))

	err = svc.DeleteGrade(ctx, g1.ID)
	assert.ErrorIs(t, err, org.ErrGradeDeleted)
}
