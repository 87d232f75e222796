package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-academy/academy-back/internal/config"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "secret-password"))
	assert.Error(t, CheckPassword(hash, "wrong"))
}

func TestIssueTokens(t *testing.T) {
	cfg := &config.Config{JWT_SECRET: "test-secret"}

	access, refresh, err := IssueTokens(cfg, "student@academy.test")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWT_SECRET), nil
	}

	token, err := jwt.Parse(access, keyFunc)
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "student@academy.test", claims["email"])
	assert.Nil(t, claims["type"])

	token, err = jwt.Parse(refresh, keyFunc)
	require.NoError(t, err)
	claims = token.Claims.(jwt.MapClaims)
	assert.Equal(t, "refresh", claims["type"])
}

func TestIssueTokensRejectsTamperedSecret(t *testing.T) {
	cfg := &config.Config{JWT_SECRET: "test-secret"}
	access, _, err := IssueTokens(cfg, "student@academy.test")
	require.NoError(t, err)

	_, err = jwt.Parse(access, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
