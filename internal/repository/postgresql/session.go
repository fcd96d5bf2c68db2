package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type sessionRepositoryImpl struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) auth.SessionRepository {
	return &sessionRepositoryImpl{db: db}
}

// Create implements auth.SessionRepository.
func (r *sessionRepositoryImpl) Create(ctx context.Context, s auth.Session) (auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO sessions (id, email, token, login_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, token, login_time
	`

	var result auth.Session
	err := q.QueryRow(ctx, query, uuid.NewString(), s.Email, s.Token, s.LoginTime).Scan(
		&result.ID, &result.Email, &result.Token, &result.LoginTime,
	)
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return result, nil
}

// GetByToken implements auth.SessionRepository.
func (r *sessionRepositoryImpl) GetByToken(ctx context.Context, token string) (auth.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, email, token, login_time FROM sessions WHERE token = $1`

	var result auth.Session
	err := q.QueryRow(ctx, query, token).Scan(
		&result.ID, &result.Email, &result.Token, &result.LoginTime,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return auth.Session{}, auth.ErrNotLoggedIn
	}
	if err != nil {
		return auth.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	return result, nil
}

// CountByEmail implements auth.SessionRepository.
func (r *sessionRepositoryImpl) CountByEmail(ctx context.Context, email string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM sessions WHERE email = $1`, email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	return count, nil
}

// DeleteByToken implements auth.SessionRepository.
func (r *sessionRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteByEmail implements auth.SessionRepository.
func (r *sessionRepositoryImpl) DeleteByEmail(ctx context.Context, email string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM sessions WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}

	return nil
}
