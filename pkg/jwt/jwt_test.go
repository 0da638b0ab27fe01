package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, claims, err := m.GenerateToken(7, "admin@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.TokenID())

	got, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, claims.TokenID(), got.TokenID())
	assert.InDelta(t, time.Hour.Seconds(), got.Remaining(time.Now()).Seconds(), 5)
}

func TestEachTokenHasOwnID(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	_, a, err := m.GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	_, b, err := m.GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.TokenID(), b.TokenID())
}

func TestVerifyRejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, _, err := m.GenerateToken(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewJWTManager("other-secret", time.Hour).VerifyToken(token)
	assert.Error(t, err)

	expired, _, err := NewJWTManager("secret", -time.Minute).GenerateToken(1, "a@example.com")
	require.NoError(t, err)
	_, err = m.VerifyToken(expired)
	assert.Error(t, err)

	// 没有jti的令牌无法吊销，不接受
	noID := gojwt.NewWithClaims(gojwt.SigningMethodHS256, &JWTClaims{
		UserID: 1,
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := noID.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.VerifyToken(signed)
	assert.Error(t, err)
}
