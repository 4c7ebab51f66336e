package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	session := UserSession{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: "admin"}

	token, expiresAt, err := issuer.GenerateToken(session)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, session, claims.User)
	assert.True(t, claims.User.IsAdmin())
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	token, _, err := NewTokenIssuer("secret-a", time.Hour).GenerateToken(UserSession{ID: "u1"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := issuer.GenerateToken(UserSession{ID: "u1"})
	require.NoError(t, err)

	_, err = issuer.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret!")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("Sup3rSecret!", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.Error(t, ValidatePasswordStrength("short"))
	assert.NoError(t, ValidatePasswordStrength("long-enough"))
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("ops@telco.sn"))
	assert.False(t, IsValidEmail("not-an-email"))
}
