package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/jwt"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
	"github.com/arcadia-hr/hrm-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

const testPassword = "correct-horse-battery"

type fixture struct {
	svc      *ServiceImpl
	users    *memory.UserRepository
	sessions *memory.SessionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := memory.NewUserRepository()
	sessions := memory.NewSessionRepository()
	tokens := jwt.NewJWTService("test-secret", "24h")
	svc := NewService(users, sessions, tokens, clock.Fixed{T: testNow})
	return &fixture{svc: svc, users: users, sessions: sessions}
}

func (f *fixture) seedUser(t *testing.T, email string) user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := f.users.Create(context.Background(), user.User{
		Name:         "Test User",
		Email:        email,
		Role:         user.RoleEmployee,
		PasswordHash: string(hash),
		JoiningDate:  testNow.AddDate(-1, 0, 0),
		Active:       true,
	})
	require.NoError(t, err)
	return u
}

func TestLoginOpensSession(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "emp@acme.test", resp.Email)
	assert.Equal(t, string(user.RoleEmployee), resp.Role)

	n, err := f.sessions.CountByEmail(ctx, "emp@acme.test")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	identity, err := f.svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "emp@acme.test", identity.Email)
}

func TestLoginValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "email")
	assert.Contains(t, errs.ToMap(), "password")
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown accounts are indistinguishable from wrong passwords.
	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "ghost@acme.test", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginDeletedUser(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "emp@acme.test")
	require.NoError(t, f.users.Deactivate(context.Background(), u.ID))

	_, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrUserDeleted)
}

func TestLoginBeforeJoiningDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := f.seedUser(t, "emp@acme.test")
	u.JoiningDate = testNow.AddDate(0, 1, 0)
	_, err := f.users.Create(ctx, u)
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrNotJoinedYet)
}

func TestLoginSessionLimit(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	for i := 0; i < auth.MaxSessions; i++ {
		_, err := f.sessions.Create(ctx, auth.Session{
			Email: "emp@acme.test",
			Token: fmt.Sprintf("tok-%d", i),
		})
		require.NoError(t, err)
	}

	_, err := f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrSessionLimit)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, resp.Token))

	// A verified token with no backing session is refused.
	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)

	err = f.svc.Logout(ctx, resp.Token)
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	require.NoError(t, err)

	identity := user.Identity{Email: "emp@acme.test", Role: user.RoleEmployee}
	require.NoError(t, f.svc.ChangePassword(ctx, identity, auth.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "fresh-horse-battery",
	}))

	// Every session opened under the old credential is gone.
	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: "fresh-horse-battery"})
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	identity := user.Identity{Email: "emp@acme.test", Role: user.RoleEmployee}
	err := f.svc.ChangePassword(ctx, identity, auth.ChangePasswordRequest{
		CurrentPassword: "not-my-password",
		NewPassword:     "fresh-horse-battery",
	})
	assert.ErrorIs(t, err, auth.ErrWrongPassword)

	// The old credential still works.
	_, err = f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	assert.NoError(t, err)
}

func TestChangePasswordTooShort(t *testing.T) {
	f := newFixture(t)
	f.seedUser(t, "emp@acme.test")

	identity := user.Identity{Email: "emp@acme.test", Role: user.RoleEmployee}
	err := f.svc.ChangePassword(context.Background(), identity, auth.ChangePasswordRequest{
		CurrentPassword: testPassword,
		NewPassword:     "short",
	})
	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthenticateDeletedUser(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t, "emp@acme.test")
	ctx := context.Background()

	resp, err := f.svc.Login(ctx, auth.LoginRequest{Email: "emp@acme.test", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, f.users.Deactivate(ctx, u.ID))

	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, auth.ErrUserDeleted)
}
