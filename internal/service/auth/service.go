// Package auth implements login, logout and session-backed
// authentication.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/clock"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/jwt"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type ServiceImpl struct {
	users    user.Repository
	sessions auth.SessionRepository
	tokens   jwt.Service
	clock    clock.Clock
}

func NewService(users user.Repository, sessions auth.SessionRepository, tokens jwt.Service, clk clock.Clock) *ServiceImpl {
	return &ServiceImpl{users: users, sessions: sessions, tokens: tokens, clock: clk}
}

// Login verifies credentials and opens a session. Future joiners and
// soft-deleted users are refused; a user holds at most
// auth.MaxSessions concurrent sessions.
func (s *ServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(req.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if validator.IsEmpty(req.Password) {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password is required"})
	}
	if len(errs) > 0 {
		return auth.LoginResponse{}, errs
	}

	u, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, user.ErrUserNotFound) {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !u.Active {
		return auth.LoginResponse{}, auth.ErrUserDeleted
	}

	now := s.clock.Now()
	if u.JoiningDate.After(now) {
		return auth.LoginResponse{}, auth.ErrNotJoinedYet
	}

	count, err := s.sessions.CountByEmail(ctx, u.Email)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to count sessions: %w", err)
	}
	if count >= auth.MaxSessions {
		return auth.LoginResponse{}, auth.ErrSessionLimit
	}

	token, expiresAt, err := s.tokens.GenerateToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	_, err = s.sessions.Create(ctx, auth.Session{
		Email:     u.Email,
		Token:     token,
		LoginTime: now,
	})
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	return auth.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
	}, nil
}

// ChangePassword replaces the caller's password after verifying the
// current one, then revokes every live session so stolen tokens die
// with the old credential.
func (s *ServiceImpl) ChangePassword(ctx context.Context, actor user.Identity, req auth.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return validator.ValidationErrors{{Field: "new_password", Message: "password must be at least 8 characters"}}
	}

	u, err := s.users.GetByEmail(ctx, actor.Email)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}

	return s.sessions.DeleteByEmail(ctx, u.Email)
}

// Logout closes the session bound to the token.
func (s *ServiceImpl) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteByToken(ctx, token)
}

// Authenticate resolves a bearer token to the caller's identity. The
// token must verify and still be backed by a live session, so logout
// and soft delete revoke access immediately.
func (s *ServiceImpl) Authenticate(ctx context.Context, token string) (user.Identity, error) {
	email, err := s.tokens.ParseToken(token)
	if err != nil {
		return user.Identity{}, auth.ErrInvalidToken
	}

	if _, err := s.sessions.GetByToken(ctx, token); err != nil {
		return user.Identity{}, auth.ErrNotLoggedIn
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return user.Identity{}, auth.ErrInvalidToken
	}
	if !u.Active {
		return user.Identity{}, auth.ErrUserDeleted
	}

	return u.Identity(), nil
}
