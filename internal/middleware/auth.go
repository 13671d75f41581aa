package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/hongminglow/linkinbio-be/internal/auth"
	"github.com/hongminglow/linkinbio-be/internal/http/respond"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext returns the identity stored by RequireAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(auth.Identity)
	return id, ok
}

// RequireAuth rejects requests without a valid bearer token: 401 when the
// token is absent, 403 when it fails verification.
func RequireAuth(guard *auth.Guard, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := guard.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, auth.ErrTokenMissing) {
				respond.Error(w, http.StatusUnauthorized, "Access token required")
				return
			}
			respond.Error(w, http.StatusForbidden, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
