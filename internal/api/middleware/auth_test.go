package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KostiukVM/BlogAPI/internal/app/service"
	"github.com/KostiukVM/BlogAPI/internal/common"
	"github.com/KostiukVM/BlogAPI/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	err error
}

func (s stubAuthenticator) Authenticate(_ context.Context, claims jwt.MapClaims) (*service.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	tokenID, err := security.GetTokenIDFromClaims(claims)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return &service.Identity{UserID: userID, TokenID: tokenID}, nil
}

func serve(t *testing.T, auth TokenAuthenticator, bearer string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	issuer := security.NewTokenIssuer([]byte("secret"), time.Hour)

	var seen string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := jwtauth.Verifier(issuer.JWTAuth())(Authenticator(auth)(final))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	switch bearer {
	case "":
	case "valid":
		tok, err := issuer.Issue("user-1")
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	default:
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w, seen
}

func TestAuthenticator(t *testing.T) {
	w, userID := serve(t, stubAuthenticator{}, "valid")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "user-1", userID)

	w, _ = serve(t, stubAuthenticator{}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, w.Body.String())

	w, _ = serve(t, stubAuthenticator{}, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = serve(t, stubAuthenticator{err: common.ErrUnauthorized}, "valid")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = serve(t, stubAuthenticator{err: errors.New("store down")}, "valid")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUserIDFromContextEmpty(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
