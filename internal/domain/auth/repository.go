package auth

import "context"

type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)
	GetByToken(ctx context.Context, token string) (Session, error)
	CountByEmail(ctx context.Context, email string) (int, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByEmail(ctx context.Context, email string) error
}
