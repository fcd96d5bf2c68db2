package middleware

import (
	"context"
	"net/http"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/auth"
	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type identityKey struct{}

// Authenticator resolves a bearer token to a caller identity. The auth
// service implements this; it rejects tokens without a live session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Identity, error)
}

// IdentityFromContext returns the authenticated caller set by
// AuthRequired.
func IdentityFromContext(ctx context.Context) (user.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(user.Identity)
	return id, ok
}

// WithIdentity injects an identity into the context. Exposed for
// handler tests.
func WithIdentity(ctx context.Context, id user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// AuthRequired verifies the JWT, checks the token type, and resolves
// the caller through the session store.
func AuthRequired(authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			raw := jwtauth.TokenFromHeader(r)
			identity, err := authn.Authenticate(r.Context(), raw)
			if err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		}
		return http.HandlerFunc(hfn)
	}
}
