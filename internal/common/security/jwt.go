package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and verifies the HS256 bearer tokens handed out at login.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

// JWTAuth is used by jwtauth.Verifier to decode tokens from requests.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}

// IssuedToken is a freshly signed token and the identifiers embedded in it.
type IssuedToken struct {
	ID        string
	UserID    string
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (t *TokenIssuer) Issue(userID string) (*IssuedToken, error) {
	now := time.Now().UTC()
	issued := &IssuedToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(t.ttl),
	}
	claims := jwt.MapClaims{
		"user_id": userID,
		"jti":     issued.ID,
	}
	jwtauth.SetIssuedAt(claims, now)
	jwtauth.SetExpiry(claims, issued.ExpiresAt)

	_, tokenString, err := t.auth.Encode(claims)
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	issued.Token = tokenString
	return issued, nil
}

// Parse verifies signature and expiry of tokenString and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwtauth.VerifyToken(t.auth, tokenString)
	if err != nil {
		return nil, err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetTokenIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["jti"].(string)
	if !ok || id == "" {
		return "", errors.New("jti claim is missing or not a string")
	}
	return id, nil
}
