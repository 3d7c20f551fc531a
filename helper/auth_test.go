package helper

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"wedding_manager/model"
)

func TestTokensUseSecretSetAfterInit(t *testing.T) {
	// Secrets arrive through .env loading at startup, long after this
	// package's init ran. Signing and parsing must both see the live value.
	t.Setenv("JWT_SECRET", "runtime-secret")

	token, err := GenerateAccessToken(model.TokenClaim{
		AccountId: 7, CoupleId: 3, Email: "demo@example.com",
	})
	require.NoError(t, err)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(7), claims["accountId"])

	_, err = jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(""), nil
	})
	require.Error(t, err, "token must not verify against an empty key")
}

func TestParseTokenRejectsForeignSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateRefreshToken(model.TokenClaim{AccountId: 1, Email: "a@b.c"})
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "rotated-secret")
	parsed, err := ParseToken(token)
	require.Error(t, err)
	if parsed != nil {
		require.False(t, parsed.Valid)
	}
}
