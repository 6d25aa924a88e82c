package security

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	issued, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := issuer.Parse(issued.Token)
	require.NoError(t, err)

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	tokenID, err := GetTokenIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, tokenID)
}

func TestEachIssueHasDistinctID(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)

	a, err := issuer.Issue("user-1")
	require.NoError(t, err)
	b, err := issuer.Issue("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Token, b.Token)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	issued, err := NewTokenIssuer([]byte("secret-a"), time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("secret-b"), time.Hour).Parse(issued.Token)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)
	issued, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = issuer.Parse(issued.Token)
	assert.Error(t, err)
}

func TestClaimHelpersRejectMissing(t *testing.T) {
	_, err := GetUserIDFromClaims(map[string]interface{}{})
	assert.Error(t, err)
	_, err = GetTokenIDFromClaims(map[string]interface{}{"jti": 5})
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("12345678")
	require.NoError(t, err)
	assert.NotEqual(t, "12345678", hash)

	assert.True(t, CheckPasswordHash("12345678", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestPasswordHashLongMultibyte(t *testing.T) {
	long := strings.Repeat("пароль", 7) // 84 bytes
	hash, err := HashPassword(long)
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash(long, hash))
	assert.False(t, CheckPasswordHash(strings.Repeat("пароль", 5), hash))
}
