package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	now := time.Now()
	token, err := GenerateSessionToken("sess-1", "acct-1", "Alice", "alice@example.com", "user", testSecret, now, now.Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "acct-1", claims.Subject)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	now := time.Now()
	token, err := GenerateSessionToken("sess-1", "acct-1", "Alice", "alice@example.com", "user", testSecret, now, now.Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsExpired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := GenerateSessionToken("sess-1", "acct-1", "Alice", "alice@example.com", "user", testSecret, issued, issued.Add(time.Hour))
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsTamperedPayload(t *testing.T) {
	now := time.Now()
	token, err := GenerateSessionToken("sess-1", "acct-1", "Alice", "alice@example.com", "user", testSecret, now, now.Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), `"role":"user"`, `"role":"supervisor"`, 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = ValidateSessionToken(strings.Join(parts, "."), testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := ValidateSessionToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
