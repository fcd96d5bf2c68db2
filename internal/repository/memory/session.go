package memory

import (
	"context"
	"sync"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/google/uuid"
)

type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]auth.Session // keyed by token
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]auth.Session)}
}

// Create implements auth.SessionRepository.
func (r *SessionRepository) Create(_ context.Context, s auth.Session) (auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	r.sessions[s.Token] = s
	return s, nil
}

// GetByToken implements auth.SessionRepository.
func (r *SessionRepository) GetByToken(_ context.Context, token string) (auth.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[token]
	if !ok {
		return auth.Session{}, auth.ErrNotLoggedIn
	}
	return s, nil
}

// CountByEmail implements auth.SessionRepository.
func (r *SessionRepository) CountByEmail(_ context.Context, email string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, s := range r.sessions {
		if s.Email == email {
			n++
		}
	}
	return n, nil
}

// DeleteByToken implements auth.SessionRepository.
func (r *SessionRepository) DeleteByToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return auth.ErrNotLoggedIn
	}
	delete(r.sessions, token)
	return nil
}

// DeleteByEmail implements auth.SessionRepository.
func (r *SessionRepository) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, s := range r.sessions {
		if s.Email == email {
			delete(r.sessions, token)
		}
	}
	return nil
}
