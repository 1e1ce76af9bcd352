package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	SetCost(bcrypt.MinCost)
	m.Run()
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, Verify("correct horse", hash))
	assert.False(t, Verify("wrong horse", hash))
	assert.False(t, Verify("correct horse", "not-a-hash"))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("same-password")
	require.NoError(t, err)
	b, err := Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("123456"), HashToken("123456"))
	assert.NotEqual(t, HashToken("123456"), HashToken("654321"))
	assert.Len(t, HashToken("x"), 64)
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("short"))
	assert.True(t, ValidatePassword("longenough"))
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(6)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}

func TestVerifyMissingDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { VerifyMissing("anything") })
}
