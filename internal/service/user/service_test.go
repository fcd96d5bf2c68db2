package user

import (
	"context"
	"testing"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/leave"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/org"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
	"github.com/arcadia-hr/hrm-backend-go/internal/repository/memory"
	orgService "github.com/arcadia-hr/hrm-backend-go/internal/service/org"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *ServiceImpl
	users    *memory.UserRepository
	ledgers  *memory.LedgerRepository
	sessions *memory.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	categories := memory.NewGradeCategoryRepository(
		org.GradeCategory{Category: "TS", Weight: 1},
		org.GradeCategory{Category: "S", Weight: 2},
		org.GradeCategory{Category: "M", Weight: 3},
		org.GradeCategory{Category: "G", Weight: 4},
	)

	grades := memory.NewGradeRepository()
	designations := memory.NewDesignationRepository()
	for _, g := range []org.Grade{
		{Category: "TS", Level: 1, Grade: "TS1"},
		{Category: "S", Level: 1, Grade: "S1"},
		{Category: "M", Level: 1, Grade: "M1"},
		{Category: "G", Level: 1, Grade: "G1"},
	} {
		_, err := grades.Create(ctx, g)
		require.NoError(t, err)

		_, err = designations.Create(ctx, org.Designation{
			Name:       "Engineer " + g.Grade,
			Department: "Engineering",
			Grade:      g.Grade,
		})
		require.NoError(t, err)
	}
	_, err := designations.Create(ctx, org.Designation{
		Name:       "People Ops",
		Department: "HR",
		Grade:      "TS1",
	})
	require.NoError(t, err)

	departments := memory.NewDepartmentRepository()
	for _, name := range []string{"Engineering", "HR"} {
		_, err := departments.Create(ctx, org.Department{Name: name})
		require.NoError(t, err)
	}

	users := memory.NewUserRepository()
	ledgers := memory.NewLedgerRepository()
	sessions := memory.NewSessionRepository()
	hierarchy := orgService.NewService(departments, categories, grades, designations, users)
	svc := NewService(users, departments, grades, designations, ledgers, sessions, hierarchy, memory.Transactor{}, clock.Fixed{T: testNow})
	return &fixture{svc: svc, users: users, ledgers: ledgers, sessions: sessions}
}

func (f *fixture) seedUser(t *testing.T, email, grade string, manager *string) user.User {
	t.Helper()

	u, err := f.users.Create(context.Background(), user.User{
		Name:       email,
		Email:      email,
		Role:       user.RoleEmployee,
		Department: "Engineering",
		Grade:      grade,
		Manager:    manager,
		Active:     true,
	})
	require.NoError(t, err)
	return u
}

func hrIdentity() user.Identity {
	return user.Identity{Email: "hr@acme.test", Role: user.RoleHR}
}

func onboardReq(email, phone string) user.OnboardUserRequest {
	return user.OnboardUserRequest{
		Name:        "New Hire",
		Email:       email,
		Phone:       phone,
		DOB:         "1999-01-20",
		Role:        user.RoleEmployee,
		Department:  "Engineering",
		Grade:       "TS1",
		Designation: "Engineer TS1",
		Salary:      decimal.NewFromInt(50000),
		JoiningDate: "2025-07-01",
		Address:     "12 MG Road, Bengaluru",
		Password:    "long-enough-secret",
	}
}

func ptr(s string) *string { return &s }

func TestOnboardOpensLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Onboard(ctx, hrIdentity(), onboardReq("hire@acme.test", "9876543210"))
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, "Engineer TS1", created.Designation)
	assert.NotEqual(t, "long-enough-secret", created.PasswordHash)

	ledger, err := f.ledgers.GetByEmail(ctx, "hire@acme.test")
	require.NoError(t, err)
	assert.Equal(t, 0.0, ledger.PL)
	assert.Equal(t, leave.YearlySickQuota, ledger.SL)
	assert.Equal(t, leave.YearlyCasualQuota, ledger.CL)

	joining := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, ledger.JoiningDate.Equal(joining))
	assert.True(t, ledger.ProbationEnd.Equal(joining.AddDate(0, leave.ProbationMonths, 0)))
}

func TestOnboardFieldValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := onboardReq("hire@acme.test", "9876543210")
	req.Email = "not-an-email"
	req.Password = "short"
	req.JoiningDate = "01-07-2025"

	_, err := f.svc.Onboard(ctx, hrIdentity(), req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)

	fields := errs.ToMap()
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "joining_date")
}

func TestAdminOnboardsHROnly(t *testing.T) {
	f := newFixture(t)
	admin := user.Identity{Email: "root@acme.test", Role: user.RoleAdmin}

	_, err := f.svc.Onboard(context.Background(), admin, onboardReq("hire@acme.test", "9876543210"))
	assert.ErrorIs(t, err, user.ErrAdminOnboardsHROnly)

	req := onboardReq("people@acme.test", "9876543211")
	req.Role = user.RoleHR
	req.Department = "HR"
	req.Designation = "People Ops"
	_, err = f.svc.Onboard(context.Background(), admin, req)
	assert.NoError(t, err)
}

func TestHRRoleNeedsHRDepartment(t *testing.T) {
	f := newFixture(t)

	req := onboardReq("hire@acme.test", "9876543210")
	req.Role = user.RoleHR

	_, err := f.svc.Onboard(context.Background(), hrIdentity(), req)
	assert.ErrorIs(t, err, user.ErrHRDepartmentRequired)
}

func TestOnboardUniqueEmailAndPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Onboard(ctx, hrIdentity(), onboardReq("hire@acme.test", "9876543210"))
	require.NoError(t, err)

	_, err = f.svc.Onboard(ctx, hrIdentity(), onboardReq("hire@acme.test", "9876543211"))
	assert.ErrorIs(t, err, user.ErrEmailExists)

	_, err = f.svc.Onboard(ctx, hrIdentity(), onboardReq("other@acme.test", "9876543210"))
	assert.ErrorIs(t, err, user.ErrPhoneExists)
}

func TestOnboardRefusesTopTierGrade(t *testing.T) {
	f := newFixture(t)

	req := onboardReq("hire@acme.test", "9876543210")
	req.Grade = "G1"
	req.Designation = "Engineer G1"

	_, err := f.svc.Onboard(context.Background(), hrIdentity(), req)
	assert.ErrorIs(t, err, user.ErrTopTierGrade)
}

func TestOnboardDesignationMustMatch(t *testing.T) {
	f := newFixture(t)

	// Engineer S1 belongs to grade S1, not the requested TS1.
	req := onboardReq("hire@acme.test", "9876543210")
	req.Designation = "Engineer S1"

	_, err := f.svc.Onboard(context.Background(), hrIdentity(), req)
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "designation")
}

func TestSetManager(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "mgr@acme.test", "M1", nil)
	f.seedUser(t, "emp@acme.test", "TS1", nil)
	ctx := context.Background()

	require.NoError(t, f.svc.SetManager(ctx, "emp@acme.test", "mgr@acme.test"))

	emp, err := f.users.GetByEmail(ctx, "emp@acme.test")
	require.NoError(t, err)
	require.NotNil(t, emp.Manager)
	assert.Equal(t, "mgr@acme.test", *emp.Manager)
}

func TestSetManagerValidations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, "emp@acme.test", "TS1", nil)
	f.seedUser(t, "peer@acme.test", "S1", nil)

	hrMgr := f.seedUser(t, "hr-mgr@acme.test", "M1", nil)
	hrMgr.Department = "HR"
	_, err := f.users.Create(ctx, hrMgr)
	require.NoError(t, err)

	err = f.svc.SetManager(ctx, "emp@acme.test", "ghost@acme.test")
	assert.ErrorIs(t, err, user.ErrManagerNotFound)

	err = f.svc.SetManager(ctx, "emp@acme.test", "hr-mgr@acme.test")
	assert.ErrorIs(t, err, user.ErrDepartmentMismatch)

	err = f.svc.SetManager(ctx, "emp@acme.test", "peer@acme.test")
	assert.ErrorIs(t, err, org.ErrInvalidHierarchy)

	gone := f.seedUser(t, "gone@acme.test", "M1", nil)
	require.NoError(t, f.users.Deactivate(ctx, gone.ID))
	err = f.svc.SetManager(ctx, "emp@acme.test", "gone@acme.test")
	assert.ErrorIs(t, err, user.ErrManagerNotFound)
}

func TestSetManagerRejectsCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	emp := f.seedUser(t, "emp@acme.test", "M1", nil)
	f.seedUser(t, "mgr@acme.test", "G1", nil)

	// Corrupt link planted straight into the store: the would-be manager
	// already reports to the employee.
	require.NoError(t, f.users.SetManager(ctx, "mgr@acme.test", &emp.Email))

	err := f.svc.SetManager(ctx, "emp@acme.test", "mgr@acme.test")
	assert.ErrorIs(t, err, user.ErrManagerCycle)
}

func TestDeleteSoftDeletes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Onboard(ctx, hrIdentity(), onboardReq("emp@acme.test", "9876543210"))
	require.NoError(t, err)
	f.seedUser(t, "sub@acme.test", "TS1", &created.Email)

	_, err = f.sessions.Create(ctx, auth.Session{Token: "tok-1", Email: "emp@acme.test"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, "emp@acme.test"))

	u, err := f.users.GetByEmail(ctx, "emp@acme.test")
	require.NoError(t, err)
	assert.False(t, u.Active)

	sub, err := f.users.GetByEmail(ctx, "sub@acme.test")
	require.NoError(t, err)
	assert.Nil(t, sub.Manager)

	n, err := f.sessions.CountByEmail(ctx, "emp@acme.test")
	require.NoError(t, err)
	assert.Zero(t, n)

	// The ledger survives the delete.
	_, err = f.ledgers.GetByEmail(ctx, "emp@acme.test")
	assert.NoError(t, err)

	err = f.svc.Delete(ctx, "emp@acme.test")
	assert.ErrorIs(t, err, user.ErrAlreadyDeleted)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.seedUser(t, "emp@acme.test", "TS1", nil)
	other := f.seedUser(t, "other@acme.test", "TS1", nil)
	other.Phone = "9876543219"
	_, err := f.users.Create(ctx, other)
	require.NoError(t, err)

	err = f.svc.Update(ctx, user.UpdateUserRequest{ID: u.ID, Phone: ptr("123")})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)

	err = f.svc.Update(ctx, user.UpdateUserRequest{ID: u.ID, Phone: ptr("9876543219")})
	assert.ErrorIs(t, err, user.ErrPhoneExists)

	newSalary := decimal.NewFromInt(75000)
	require.NoError(t, f.svc.Update(ctx, user.UpdateUserRequest{
		ID:     u.ID,
		Phone:  ptr("9876543218"),
		Salary: &newSalary,
	}))

	updated, err := f.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "9876543218", updated.Phone)
	assert.True(t, updated.Salary.Equal(newSalary))
}

func TestListSubordinatesSkipsInactive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedUser(t, "mgr@acme.test", "M1", nil)
	f.seedUser(t, "a@acme.test", "TS1", ptr("mgr@acme.test"))
	gone := f.seedUser(t, "b@acme.test", "TS1", ptr("mgr@acme.test"))
	require.NoError(t, f.users.Deactivate(ctx, gone.ID))

	subs, err := f.svc.ListSubordinates(ctx, "mgr@acme.test")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a@acme.test", subs[0].Email)
}
