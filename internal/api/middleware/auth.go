package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const IdentityCtxKey contextKey = "identity"

// TokenAuthenticator resolves verified token claims to a caller.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, claims jwt.MapClaims) (*service.Identity, error)
}

// Authenticator rejects requests without a live bearer token. It expects
// jwtauth.Verifier to have run earlier in the chain.
func Authenticator(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			identity, err := auth.Authenticate(r.Context(), claims)
			if err != nil {
				if errors.Is(err, common.ErrUnauthorized) {
					common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
					return
				}
				common.RespondWithErr(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityCtxKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get the caller from context
func GetIdentityFromContext(ctx context.Context) (*service.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(*service.Identity)
	return identity, ok && identity != nil
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	identity, ok := GetIdentityFromContext(ctx)
	if !ok {
		return "", false
	}
	return identity.UserID, true
}
