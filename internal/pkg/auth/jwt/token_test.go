package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	payload := &Payload{ID: "account-123", Email: "collector@example.com"}

	token, err := GenerateToken(payload, "super-secret", time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(token, "super-secret")
	require.NoError(t, err)
	assert.Equal(t, "account-123", parsed.ID)
	assert.Equal(t, "collector@example.com", parsed.Email)
	assert.Equal(t, TokenIssuer, parsed.Issuer)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(&Payload{ID: "u1"}, "secret", -1*time.Second)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(&Payload{ID: "u1"}, "right-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "wrong-secret")
	assert.Error(t, err)
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", "secret")
	assert.Error(t, err)
}
