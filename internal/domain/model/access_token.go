package model

import (
	"time"
)

// AccessTokenName is recorded on every token issued by the login endpoint.
const AccessTokenName = "BlogAPI"

// AccessToken is the server-side record of an issued bearer token. Its ID is
// the token's jti claim; deleting the record revokes the token.
type AccessToken struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	ExpiresAt  time.Time  `json:"expires_at"`
}
